package tracking

import (
	"sync"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/models"
)

// Cache holds the single in-memory active-timecard pointer. It is a view
// derived from storage: the timeclock rebuilds it at startup and the store
// reconciles it on every timecard upsert. No other component writes it.
type Cache struct {
	mu     sync.RWMutex
	active *models.Timecard
}

func NewCache() *Cache {
	return &Cache{}
}

// Active returns the cached active timecard, nil when no timecard is open.
func (c *Cache) Active() *models.Timecard {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Replace sets the cached active timecard.
func (c *Cache) Replace(tc *models.Timecard) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = tc
}

// ClearIf clears the cache when the cached timecard has the given id.
func (c *Cache) ClearIf(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil && c.active.ID == id {
		c.active = nil
	}
}
