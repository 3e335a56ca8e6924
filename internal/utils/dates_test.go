package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, 3, 10, 17, 45, 12, 99, time.UTC)

	got := StartOfDay(ts, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestStartOfDay_UsesTargetLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on the 10th is already the 11th in Tokyo
	ts := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	got := StartOfDay(ts, tokyo)

	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, tokyo), got)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	c := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b, time.UTC))
	assert.False(t, SameDay(b, c, time.UTC))
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2024-03-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDay("10/03/2024", time.UTC)
	assert.Error(t, err)
}

func TestFormatDay(t *testing.T) {
	ts := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-10", FormatDay(ts, time.UTC))
}
