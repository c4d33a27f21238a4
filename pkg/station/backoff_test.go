package station

import (
	"testing"
	"time"
)

func TestBackoff(t *testing.T) {
	t.Run("DefaultSequence", func(t *testing.T) {
		b := NewBackoff(BackoffConfig{Jitter: -1}) // negative clamps to no jitter

		// Expected sequence: 1s, 2s, 4s, 8s, 16s, 30s, 30s...
		expected := []time.Duration{
			1 * time.Second,
			2 * time.Second,
			4 * time.Second,
			8 * time.Second,
			16 * time.Second,
			30 * time.Second,
			30 * time.Second, // capped at max
		}

		for i, exp := range expected {
			if got := b.Next(); got != exp {
				t.Errorf("Next() #%d = %v, want %v", i, got, exp)
			}
		}
	})

	t.Run("Jitter", func(t *testing.T) {
		samples := make([]time.Duration, 10)
		for i := range samples {
			b := NewBackoff(BackoffConfig{})
			samples[i] = b.Next()
		}

		// All samples should be between 1s and 1.25s.
		for i, s := range samples {
			if s < 1*time.Second || s > time.Duration(float64(time.Second)*1.25)+time.Millisecond {
				t.Errorf("sample %d: %v out of expected range [1s, 1.25s]", i, s)
			}
		}

		allSame := true
		for i := 1; i < len(samples); i++ {
			if samples[i] != samples[0] {
				allSame = false
				break
			}
		}
		if allSame {
			t.Error("all jittered samples are identical - jitter may not be working")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		b := NewBackoff(BackoffConfig{Jitter: -1})
		for i := 0; i < 4; i++ {
			b.Next()
		}
		if b.Attempts() != 4 {
			t.Errorf("Attempts = %d, want 4", b.Attempts())
		}

		b.Reset()
		if b.Attempts() != 0 {
			t.Errorf("Attempts after Reset = %d, want 0", b.Attempts())
		}
		if got := b.Next(); got != InitialBackoff {
			t.Errorf("Next after Reset = %v, want %v", got, InitialBackoff)
		}
	})

	t.Run("CustomConfig", func(t *testing.T) {
		b := NewBackoff(BackoffConfig{
			Initial:    50 * time.Millisecond,
			Max:        100 * time.Millisecond,
			Multiplier: 3,
			Jitter:     -1,
		})
		if got := b.Next(); got != 50*time.Millisecond {
			t.Errorf("first Next = %v, want 50ms", got)
		}
		if got := b.Next(); got != 100*time.Millisecond {
			t.Errorf("second Next = %v, want 100ms (capped)", got)
		}
	})
}
