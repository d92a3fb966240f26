package timeutil

import "time"

var manilaLocation = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		return time.FixedZone("Asia/Manila", 8*60*60)
	}
	return loc
}

// Now returns the current time in Asia/Manila timezone.
func Now() time.Time {
	return time.Now().In(manilaLocation)
}

// InManila converts provided time to Asia/Manila timezone.
func InManila(t time.Time) time.Time {
	return t.In(manilaLocation)
}

// Location returns Asia/Manila location instance.
func Location() *time.Location {
	return manilaLocation
}

// Date formats t as an appointment date in Asia/Manila.
func Date(t time.Time) string {
	return t.In(manilaLocation).Format("2006-01-02")
}

// StartOfDay returns local midnight of the day t falls on.
func StartOfDay(t time.Time) time.Time {
	t = t.In(manilaLocation)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, manilaLocation)
}
