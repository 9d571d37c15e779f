package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
)

// CampaignProgress is what the poller needs from the campaign service:
// the current status from storage and a progress refresh.
type CampaignProgress interface {
	Status(ctx context.Context, id string) (string, error)
	Refresh(ctx context.Context, id string) error
}

// CampaignPoller refreshes a running campaign's progress on an interval.
// The status is re-read from storage on every tick, so the loop halts on
// the next interval after the campaign stops running, regardless of which
// process stopped it. Stop tears the loop down without leaking the ticker.
type CampaignPoller struct {
	source   CampaignProgress
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running bool
}

func NewCampaignPoller(source CampaignProgress, interval time.Duration, logger *zap.Logger) *CampaignPoller {
	return &CampaignPoller{
		source:   source,
		interval: interval,
		logger:   logger,
	}
}

// Start begins polling one campaign in the background. A second Start while
// the loop is alive is a no-op.
func (p *CampaignPoller) Start(ctx context.Context, campaignID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	p.running = true

	go func() {
		defer close(p.done)
		defer func() {
			p.mu.Lock()
			p.running = false
			p.mu.Unlock()
		}()
		p.run(ctx, campaignID)
	}()
}

// Stop halts the loop and waits for it to exit.
func (p *CampaignPoller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	stop, done := p.stop, p.done
	p.mu.Unlock()

	close(stop)
	<-done
}

// PollerManager keeps at most one poller per campaign. Ensure is called
// when a campaign starts (and at boot for campaigns already running);
// StopAll tears every loop down on shutdown.
type PollerManager struct {
	source   CampaignProgress
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	pollers map[string]*CampaignPoller
}

func NewPollerManager(source CampaignProgress, interval time.Duration, logger *zap.Logger) *PollerManager {
	return &PollerManager{
		source:   source,
		interval: interval,
		logger:   logger,
		pollers:  make(map[string]*CampaignPoller),
	}
}

// Ensure starts a poller for the campaign if one is not already live.
func (m *PollerManager) Ensure(ctx context.Context, campaignID string) {
	m.mu.Lock()
	p, ok := m.pollers[campaignID]
	if !ok {
		p = NewCampaignPoller(m.source, m.interval, m.logger)
		m.pollers[campaignID] = p
	}
	m.mu.Unlock()

	p.Start(ctx, campaignID)
}

func (m *PollerManager) StopAll() {
	m.mu.Lock()
	pollers := make([]*CampaignPoller, 0, len(m.pollers))
	for _, p := range m.pollers {
		pollers = append(pollers, p)
	}
	m.mu.Unlock()

	for _, p := range pollers {
		p.Stop()
	}
}

func (p *CampaignPoller) run(ctx context.Context, campaignID string) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			status, err := p.source.Status(ctx, campaignID)
			if err != nil {
				p.logger.Warn("campaign poll: status read failed",
					zap.String("campaign_id", campaignID), zap.Error(err))
				continue
			}
			if status != entity.CampaignStatusRunning {
				return
			}
			if err := p.source.Refresh(ctx, campaignID); err != nil {
				p.logger.Warn("campaign poll: refresh failed",
					zap.String("campaign_id", campaignID), zap.Error(err))
			}
		}
	}
}
