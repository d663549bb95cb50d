package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaxDuration(t *testing.T) {
	tests := []struct {
		name      string
		durations []time.Duration
		want      time.Duration
	}{
		{
			name:      "multiple values returns maximum",
			durations: []time.Duration{100 * time.Millisecond, 500 * time.Millisecond, 200 * time.Millisecond},
			want:      500 * time.Millisecond,
		},
		{
			name:      "single value returns that value",
			durations: []time.Duration{300 * time.Millisecond},
			want:      300 * time.Millisecond,
		},
		{
			name:      "empty slice returns zero",
			durations: []time.Duration{},
			want:      0,
		},
		{
			name:      "all same values returns that value",
			durations: []time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 100 * time.Millisecond},
			want:      100 * time.Millisecond,
		},
		{
			name:      "negative durations handled correctly",
			durations: []time.Duration{-100 * time.Millisecond, 50 * time.Millisecond, -200 * time.Millisecond},
			want:      50 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxDuration(tt.durations))
		})
	}
}

func TestDurationPtr(t *testing.T) {
	d := 5 * time.Second
	p := DurationPtr(d)
	assert.NotNil(t, p)
	assert.Equal(t, d, *p)
}

func TestNoopSleeper_DoesNotBlock(t *testing.T) {
	start := time.Now()
	NoopSleeper{}.Sleep(50 * time.Millisecond)
	assert.Less(t, time.Since(start), 10*time.Millisecond)
}

func TestRealSleeper_NonPositiveIsNoop(t *testing.T) {
	start := time.Now()
	RealSleeper{}.Sleep(0)
	assert.Less(t, time.Since(start), 10*time.Millisecond)
}
