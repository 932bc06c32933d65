package providers

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatalf("Wait() %d error = %v", i, err)
		}
	}
	if st := rl.Status(); st.TotalConsumed != 2 || st.TokensAvailable != 0 {
		t.Errorf("Status() = %+v", st)
	}

	// The bucket is empty and refills at one token per 30s.
	ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); err == nil {
		t.Fatal("expected context deadline while bucket is empty")
	}
}

func TestRateLimiterRecord429(t *testing.T) {
	rl := NewRateLimiter(100)
	rl.Record429(time.Second)
	st := rl.Status()
	if st.Last429Time.IsZero() {
		t.Error("Last429Time not recorded")
	}
	if st.TokensAvailable != 0 {
		t.Errorf("TokensAvailable = %d, want 0 after drain", st.TokensAvailable)
	}
}
