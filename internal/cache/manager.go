package cache

import (
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
)

// Manager owns the cache and its background eviction loop. It is
// constructed at process start and stopped at shutdown.
type Manager struct {
	cache  *Cache
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewManager creates a manager around an existing cache.
func NewManager(c *Cache) *Manager {
	return &Manager{cache: c}
}

// Cache returns the managed cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// StartCleanup launches the periodic eviction loop. Calling it while a
// loop is already running is a no-op.
func (m *Manager) StartCleanup(interval time.Duration) {
	if m.stopCh != nil {
		return
	}
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})

	go m.cleanupLoop(interval)
}

// StopCleanup signals the loop to stop and waits for it to finish its
// in-flight pass.
func (m *Manager) StopCleanup() {
	if m.stopCh == nil {
		return
	}
	close(m.stopCh)
	<-m.doneCh
	m.stopCh = nil
	m.doneCh = nil
}

// Running reports whether the eviction loop is active.
func (m *Manager) Running() bool {
	return m.stopCh != nil
}

func (m *Manager) cleanupLoop(interval time.Duration) {
	defer close(m.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			removed := m.cache.CleanupExpired()
			if removed > 0 {
				logx.Info("Cleaned up %d expired cache entries", removed)
			}
		}
	}
}

// InvalidatePlayer drops all cached entries for a player. Keys are
// hashed, so there is no per-player pattern to match; the whole cache
// is cleared. Entries rebuild on the next request.
func (m *Manager) InvalidatePlayer(puuid string) {
	m.cache.Clear()
	short := puuid
	if len(short) > 8 {
		short = short[:8]
	}
	logx.Info("Invalidated cache for player %s...", short)
}

// Status reports cache statistics plus cleanup loop state.
type Status struct {
	Stats
	CleanupRunning bool `json:"cleanup_task_running"`
}

// GetStatus returns the current cache status.
func (m *Manager) GetStatus() Status {
	return Status{
		Stats:          m.cache.GetStats(),
		CleanupRunning: m.Running(),
	}
}
