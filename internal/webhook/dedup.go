package webhook

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultDedupWindow = time.Hour
	defaultDedupSize   = 10000
)

// deliveryCache remembers recently processed delivery ids so a redelivery
// does not post the same event twice.
type deliveryCache struct {
	mu   sync.Mutex
	seen *expirable.LRU[string, struct{}]
}

func newDeliveryCache(size int, window time.Duration) *deliveryCache {
	if size <= 0 {
		size = defaultDedupSize
	}
	if window <= 0 {
		window = defaultDedupWindow
	}
	return &deliveryCache{seen: expirable.NewLRU[string, struct{}](size, nil, window)}
}

// firstSeen records id and reports whether it was new.
func (d *deliveryCache) firstSeen(id string) bool {
	if id == "" {
		return true
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen.Contains(id) {
		return false
	}
	d.seen.Add(id, struct{}{})
	return true
}

// forget drops id so a redelivery of a failed event is processed again.
func (d *deliveryCache) forget(id string) {
	if id == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen.Remove(id)
}
