package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseNaturalDate(t *testing.T) {
	// Wednesday, March 11 2026, 10:30
	now := time.Date(2026, time.March, 11, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		text string
		want time.Time
	}{
		{"today", now},
		{"seeing John tomorrow", now.AddDate(0, 0, 1)},
		{"dinner this friday", now.AddDate(0, 0, 2)},
		{"wednesday", now.AddDate(0, 0, 7)}, // same weekday rolls a full week
		{"next tuesday", now.AddDate(0, 0, 13)},
		{"next week", now.AddDate(0, 0, 7)},
		{"dentist on April 3", time.Date(2026, time.April, 3, 9, 0, 0, 0, time.UTC)},
		{"March 5th", time.Date(2027, time.March, 5, 9, 0, 0, 0, time.UTC)}, // already past, next year
		{"January 2, 2027", time.Date(2027, time.January, 2, 9, 0, 0, 0, time.UTC)},
		{"rent due on the 22nd", time.Date(2026, time.March, 22, 9, 0, 0, 0, time.UTC)},
		{"flight on 12/25", time.Date(2026, time.December, 25, 9, 0, 0, 0, time.UTC)},
		{"2026-07-04", time.Date(2026, time.July, 4, 9, 0, 0, 0, time.UTC)},
		{"dinner at 7pm tomorrow", time.Date(2026, time.March, 12, 19, 0, 0, 0, time.UTC)},
		{"call at 9:15am", time.Date(2026, time.March, 11, 9, 15, 0, 0, time.UTC)},
		{"at noon on thursday", time.Date(2026, time.March, 12, 12, 0, 0, 0, time.UTC)},
		{"someday, eventually", now}, // unparseable falls back to the reference time
		{"", now},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNaturalDate(tt.text, now))
		})
	}
}
