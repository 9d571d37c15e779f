package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
)

// fakeProgress is an in-memory CampaignProgress whose status can be flipped
// from the test while the poller runs, the way another request or process
// would flip it in storage.
type fakeProgress struct {
	mu       sync.Mutex
	status   string
	statusN  int
	refreshN int
}

func (f *fakeProgress) Status(ctx context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusN++
	return f.status, nil
}

func (f *fakeProgress) Refresh(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshN++
	return nil
}

func (f *fakeProgress) setStatus(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = s
}

func (f *fakeProgress) counts() (statusN, refreshN int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusN, f.refreshN
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestPollerStopsWhenCampaignStopsRunning(t *testing.T) {
	src := &fakeProgress{status: entity.CampaignStatusRunning}
	p := NewCampaignPoller(src, 2*time.Millisecond, zap.NewNop())

	p.Start(context.Background(), "campaign-1")

	// Let it refresh a few times, then flip the stored status from outside
	// the poller. The next tick must observe the flip and halt.
	waitFor(t, time.Second, func() bool {
		_, n := src.counts()
		return n >= 3
	})
	src.setStatus(entity.CampaignStatusPaused)

	waitFor(t, time.Second, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return !p.running
	})

	// No refresh happens after the loop saw the non-running status.
	_, before := src.counts()
	time.Sleep(20 * time.Millisecond)
	_, after := src.counts()
	if after != before {
		t.Errorf("poller refreshed %d times after stopping", after-before)
	}
}

func TestPollerReadsStatusEveryTick(t *testing.T) {
	src := &fakeProgress{status: entity.CampaignStatusRunning}
	p := NewCampaignPoller(src, 2*time.Millisecond, zap.NewNop())

	p.Start(context.Background(), "campaign-1")
	waitFor(t, time.Second, func() bool {
		statusN, refreshN := src.counts()
		return statusN >= 5 && refreshN >= 5
	})
	p.Stop()

	statusN, refreshN := src.counts()
	if statusN < refreshN {
		t.Errorf("status read %d times but refreshed %d; status must be checked every tick", statusN, refreshN)
	}
}

func TestPollerStopHaltsPromptly(t *testing.T) {
	src := &fakeProgress{status: entity.CampaignStatusRunning}
	p := NewCampaignPoller(src, time.Millisecond, zap.NewNop())

	p.Start(context.Background(), "campaign-1")
	waitFor(t, time.Second, func() bool {
		n, _ := src.counts()
		return n >= 1
	})

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}

	// Stopping an already stopped poller is safe.
	p.Stop()
}

func TestPollerRestartAfterStop(t *testing.T) {
	src := &fakeProgress{status: entity.CampaignStatusRunning}
	p := NewCampaignPoller(src, time.Millisecond, zap.NewNop())

	p.Start(context.Background(), "campaign-1")
	waitFor(t, time.Second, func() bool {
		n, _ := src.counts()
		return n >= 1
	})
	p.Stop()

	before, _ := src.counts()
	p.Start(context.Background(), "campaign-1")
	waitFor(t, time.Second, func() bool {
		n, _ := src.counts()
		return n > before
	})
	p.Stop()
}
