package ratelimit

import (
	"sync"
	"time"
)

// Config holds the admission policy. The observed deployments disagreed on
// the threshold, so it is a parameter; the default is the stricter value.
type Config struct {
	Window    time.Duration
	Threshold int
}

func DefaultConfig() Config {
	return Config{
		Window:    5 * time.Second,
		Threshold: 5,
	}
}

// Limiter is a per-user sliding-window message gate. Windows are
// process-local and lost on restart; that only disarms the throttle
// briefly, which is acceptable.
type Limiter struct {
	cfg Config

	mu      sync.Mutex
	windows map[int64][]time.Time
}

func NewLimiter(cfg Config) *Limiter {
	if cfg.Window <= 0 {
		cfg.Window = DefaultConfig().Window
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultConfig().Threshold
	}
	return &Limiter{
		cfg:     cfg,
		windows: make(map[int64][]time.Time),
	}
}

// Admit records the message timestamp and reports whether the message may
// be processed. The timestamp is appended even when the answer is no, so a
// sustained burst stays rejected until the sender backs off past the window.
func (l *Limiter) Admit(userID int64, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	window := l.windows[userID]
	kept := window[:0]
	for _, t := range window {
		if now.Sub(t) < l.cfg.Window {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	l.windows[userID] = kept

	return len(kept) <= l.cfg.Threshold
}
