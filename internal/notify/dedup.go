package notify

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUDeduper is the process-local idempotency guard: a bounded cache of
// (booking, event) keys already dispatched. It exists to absorb rapid
// double-invocation (a double-clicked approve), not to survive restarts.
// Losing it costs at most a duplicate notification, never a lost one.
type LRUDeduper struct {
	cache *lru.Cache[string, struct{}]
}

const DefaultDedupSize = 4096

func NewLRUDeduper(size int) (*LRUDeduper, error) {
	if size <= 0 {
		size = DefaultDedupSize
	}
	cache, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, err
	}
	return &LRUDeduper{cache: cache}, nil
}

func (d *LRUDeduper) MarkSent(key string) bool {
	present, _ := d.cache.ContainsOrAdd(key, struct{}{})
	return !present
}
