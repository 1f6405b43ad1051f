package service

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateTrackingNumber_Format(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		tn := generateTrackingNumber(now)
		if !trackingNumberPattern.MatchString(tn) {
			t.Fatalf("generated %q, want SC + 6 date digits + 5 random digits", tn)
		}
		if !strings.HasPrefix(tn, "SC260829") {
			t.Fatalf("generated %q, want date component 260829", tn)
		}
		if len(tn) != 13 {
			t.Fatalf("generated %q with length %d, want 13", tn, len(tn))
		}
	}
}

func TestGenerateTrackingNumber_DayGranularity(t *testing.T) {
	morning := time.Date(2026, 8, 29, 0, 0, 1, 0, time.UTC)
	evening := time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC)

	if generateTrackingNumber(morning)[:8] != generateTrackingNumber(evening)[:8] {
		t.Error("date component must be stable within one day")
	}
}
