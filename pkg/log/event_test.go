package log

import (
	"testing"
	"time"
)

func TestEncodeDecodeEvent(t *testing.T) {
	in := Event{
		Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC),
		SessionID: "0c5d4f6e",
		Category:  CategoryAttempt,
		Attempt: &AttemptEvent{
			SSID:    "MyHomeNetwork",
			Outcome: OutcomeConnected,
			Round:   2,
			Cached:  true,
			Timeout: 12 * time.Second,
			Elapsed: 900 * time.Millisecond,
			Addr:    "192.168.4.17",
		},
	}

	data, err := EncodeEvent(in)
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}

	out, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}

	if !out.Timestamp.Equal(in.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", out.Timestamp, in.Timestamp)
	}
	if out.SessionID != in.SessionID || out.Category != in.Category {
		t.Errorf("header = %q/%v, want %q/%v", out.SessionID, out.Category, in.SessionID, in.Category)
	}
	if out.Attempt == nil {
		t.Fatal("Attempt payload lost")
	}
	if *out.Attempt != *in.Attempt {
		t.Errorf("Attempt = %+v, want %+v", *out.Attempt, *in.Attempt)
	}
}

func TestDecodeEventGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00, 0x01}); err == nil {
		t.Error("DecodeEvent on garbage should fail")
	}
}

func TestCategoryString(t *testing.T) {
	cases := map[Category]string{
		CategoryAttempt: "ATTEMPT",
		CategoryState:   "STATE",
		CategoryStore:   "STORE",
		CategoryError:   "ERROR",
		Category(7):     "UNKNOWN",
	}
	for c, want := range cases {
		if got := c.String(); got != want {
			t.Errorf("Category(%d).String() = %q, want %q", c, got, want)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	cases := map[Outcome]string{
		OutcomeStarted:   "STARTED",
		OutcomeConnected: "CONNECTED",
		OutcomeTimeout:   "TIMEOUT",
		OutcomeFailed:    "FAILED",
		OutcomeCanceled:  "CANCELED",
		Outcome(9):       "UNKNOWN",
	}
	for o, want := range cases {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", o, got, want)
		}
	}
}
