package models

import (
	"testing"
	"time"
)

func TestExpiryFromConcertDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		zero bool
	}{
		{"calendar date", "2099-06-01", false},
		{"rfc3339 timestamp", "2099-06-01T20:30:00Z", false},
		{"malformed", "next friday", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpiryFromConcertDate(tt.date)
			if got.IsZero() != tt.zero {
				t.Errorf("ExpiryFromConcertDate(%q) = %v, zero = %v", tt.date, got, tt.zero)
			}
		})
	}
}

func TestIsActiveTreatsZeroExpiryAsExpired(t *testing.T) {
	now := time.Now()

	expired := Ride{ExpiresAt: time.Time{}}
	if expired.IsActive(now) {
		t.Error("a ride with no parseable date must count as expired")
	}

	future := Ride{ExpiresAt: now.Add(time.Hour)}
	if !future.IsActive(now) {
		t.Error("a ride expiring in the future must count as active")
	}

	past := Ride{ExpiresAt: now.Add(-time.Hour)}
	if past.IsActive(now) {
		t.Error("a ride past its concert date must count as expired")
	}
}

func TestSenderFlip(t *testing.T) {
	if SenderMe.Flip() != SenderOther || SenderOther.Flip() != SenderMe {
		t.Error("me and other must flip into each other")
	}
	if SenderSystem.Flip() != SenderSystem {
		t.Error("system entries are perspective-free and must not flip")
	}
}
