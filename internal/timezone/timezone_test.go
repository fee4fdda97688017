package timezone

import (
	"testing"
	"time"
)

func TestIsValid(t *testing.T) {
	testCases := []struct {
		name     string
		tz       string
		expected bool
	}{
		{name: "utc", tz: "UTC", expected: true},
		{name: "iana name", tz: "America/Sao_Paulo", expected: true},
		{name: "empty", tz: "", expected: false},
		{name: "garbage", tz: "Not/AZone", expected: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if actual := IsValid(tc.tz); actual != tc.expected {
				t.Errorf("IsValid(%q) = %t, expected %t", tc.tz, actual, tc.expected)
			}
		})
	}
}

func TestLocationFallsBackToDefault(t *testing.T) {
	loc := Location("Not/AZone")
	want, _ := time.LoadLocation(DefaultTimezone)
	if loc.String() != want.String() {
		t.Errorf("Location fallback = %s, expected %s", loc, want)
	}
}
