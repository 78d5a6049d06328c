package limits

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Guard rate-limits tool calls per tool name. A nil Guard allows
// everything, so callers never need to branch on configuration.
type Guard struct {
	mu        sync.Mutex
	perMinute int
	byTool    map[string]*rate.Limiter
}

// NewGuard returns a guard allowing perMinute calls per tool, or nil
// when perMinute is zero (unlimited).
func NewGuard(perMinute int) *Guard {
	if perMinute <= 0 {
		return nil
	}
	return &Guard{
		perMinute: perMinute,
		byTool:    make(map[string]*rate.Limiter),
	}
}

// Allow reports whether one more call to tool may proceed now.
func (g *Guard) Allow(tool string) bool {
	if g == nil {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	limiter := g.byTool[tool]
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(g.perMinute)), g.perMinute)
		g.byTool[tool] = limiter
	}
	return limiter.Allow()
}
