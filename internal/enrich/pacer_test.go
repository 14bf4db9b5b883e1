package enrich

import (
	"context"
	"math/rand"
	"testing"
	"time"
)

func TestPacerWaitCompletes(t *testing.T) {
	pacer := NewPacer(PacerOptions{
		MinDelay:      time.Millisecond,
		MaxDelay:      2 * time.Millisecond,
		CooldownEvery: 2,
		CooldownMin:   time.Millisecond,
		CooldownMax:   2 * time.Millisecond,
		Source:        rand.NewSource(1),
	})

	for processed := 1; processed <= 5; processed++ {
		if err := pacer.Wait(context.Background(), processed); err != nil {
			t.Fatalf("Wait(%d): %v", processed, err)
		}
	}
}

func TestPacerWaitHonorsCancellation(t *testing.T) {
	pacer := NewPacer(PacerOptions{
		MinDelay: time.Minute,
		MaxDelay: time.Minute,
		Source:   rand.NewSource(1),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pacer.Wait(ctx, 1); err == nil {
		t.Fatal("expected context error")
	}
}

func TestPacerJitterStaysInRange(t *testing.T) {
	pacer := NewPacer(PacerOptions{Source: rand.NewSource(42)})
	for i := 0; i < 100; i++ {
		got := pacer.jitter(30*time.Second, 60*time.Second)
		if got < 30*time.Second || got >= 60*time.Second {
			t.Fatalf("jitter out of range: %v", got)
		}
	}
}

func TestPacerDefaults(t *testing.T) {
	pacer := NewPacer(PacerOptions{})
	if pacer.minDelay != 4*time.Second || pacer.maxDelay != 7*time.Second {
		t.Fatalf("delay defaults = %v..%v", pacer.minDelay, pacer.maxDelay)
	}
	if pacer.cooldownEvery != 20 {
		t.Fatalf("cooldown every = %d", pacer.cooldownEvery)
	}
	if pacer.cooldownMin != 30*time.Second || pacer.cooldownMax != 60*time.Second {
		t.Fatalf("cooldown range = %v..%v", pacer.cooldownMin, pacer.cooldownMax)
	}
}
