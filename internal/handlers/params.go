package handlers

import (
	"context"
	"net/http"
	"strconv"

	"tesBack/internal/models"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API available in recent Go versions.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

// intParam parses a positive integer parameter.
func intParam(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(getParam(r, name))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// queryInt returns 0 when the query value is absent or malformed.
func queryInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(name))
	return v
}

func queryInt64(r *http.Request, name string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	return v
}

func propertyFilter(r *http.Request) models.PropertyFilter {
	q := r.URL.Query()
	return models.PropertyFilter{
		Status:   q.Get("status"),
		Type:     q.Get("type"),
		MinPrice: queryInt64(r, "min_price"),
		MaxPrice: queryInt64(r, "max_price"),
		Location: q.Get("location"),
		Bedrooms: queryInt(r, "bedrooms"),
		Search:   q.Get("search"),
		AgentID:  queryInt(r, "agent_id"),
	}
}

type ctxKey string

const (
	userIDKey ctxKey = "user_id"
	roleKey   ctxKey = "role"
)

// WithIdentity stores the authenticated caller on ctx.
func WithIdentity(ctx context.Context, userID int, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// Identity returns the caller stored by WithIdentity.
func Identity(ctx context.Context) (userID int, role string, ok bool) {
	userID, ok = ctx.Value(userIDKey).(int)
	role, _ = ctx.Value(roleKey).(string)
	return userID, role, ok && userID > 0
}
