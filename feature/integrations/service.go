package integrations

import (
	"context"
	"errors"
	"sync"
	"time"

	"releasedrop/core/reconcile"

	"go.uber.org/zap"
)

// DefaultPingTimeout bounds each provider reachability check.
const DefaultPingTimeout = 5 * time.Second

// Status is the reachability report of one media server.
type Status struct {
	Configured bool   `json:"configured"`
	Available  bool   `json:"available"`
	Error      string `json:"error,omitempty"`
}

// Service reports the state of the configured media servers.
type Service struct {
	providers []reconcile.Provider
	timeout   time.Duration
	logger    *zap.Logger
}

// NewService creates a status service over providers.
func NewService(providers []reconcile.Provider, logger *zap.Logger) *Service {
	return &Service{providers: providers, timeout: DefaultPingTimeout, logger: logger}
}

// Status pings every provider concurrently and returns the results keyed by provider name.
func (s *Service) Status(ctx context.Context) map[string]Status {
	out := make(map[string]Status, len(s.providers))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, p := range s.providers {
		wg.Add(1)
		go func(p reconcile.Provider) {
			defer wg.Done()
			st := s.check(ctx, p)
			mu.Lock()
			out[p.Name()] = st
			mu.Unlock()
		}(p)
	}
	wg.Wait()
	return out
}

func (s *Service) check(ctx context.Context, p reconcile.Provider) Status {
	st := Status{Configured: true}
	if c, ok := p.(reconcile.Configurable); ok {
		st.Configured = c.Configured()
	}
	if !st.Configured {
		return st
	}

	pinger, ok := p.(reconcile.Pinger)
	if !ok {
		// No way to probe, trust the configuration.
		st.Available = true
		return st
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := pinger.Ping(ctx); err != nil {
		if !errors.Is(err, reconcile.ErrNotConfigured) {
			s.logger.Warn("Provider unreachable", zap.String("provider", p.Name()), zap.Error(err))
		}
		st.Error = err.Error()
		return st
	}
	st.Available = true
	return st
}
