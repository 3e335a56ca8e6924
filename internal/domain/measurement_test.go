package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateFilter_Matches(t *testing.T) {
	f := DateFilter{
		Field: "date",
		From:  time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		To:    time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"lower bound is inclusive", f.From, true},
		{"inside", time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC), true},
		{"upper bound is exclusive", f.To, false},
		{"before", f.From.Add(-time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Matches(tt.at))
		})
	}
}

func TestDateFilter_String(t *testing.T) {
	f := DateFilter{
		Field: "date",
		From:  time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		To:    time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "date >= 2024-03-04T00:00:00Z AND date < 2024-03-11T00:00:00Z", f.String())
}
