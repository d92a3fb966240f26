package repositories

import (
	"math"

	"tesBack/internal/models"
)

// RoundRating rounds to one decimal place.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// AverageAgentRating is the mean agentRating over the published reviews of
// agentID, rounded to one decimal. No reviews yields 0.
func AverageAgentRating(reviews []models.Review, agentID int) float64 {
	var sum, n int
	for _, r := range reviews {
		if r.AgentID == agentID && r.Status == models.ReviewPublished {
			sum += r.AgentRating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return RoundRating(float64(sum) / float64(n))
}

// AverageRating is the mean overall rating of the published reviews.
func AverageRating(reviews []models.Review) float64 {
	var sum, n int
	for _, r := range reviews {
		if r.Status == models.ReviewPublished {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return RoundRating(float64(sum) / float64(n))
}
