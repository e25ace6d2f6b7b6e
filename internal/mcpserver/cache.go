package mcpserver

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/erraggy/oasparams/loader"
)

type cached struct {
	key     string
	doc     *loader.Document
	expires time.Time
}

// documentCache holds decoded documents for the lifetime of the server.
// Recency is tracked by a list whose front is the most recently used entry;
// the back is evicted once capacity is reached.
type documentCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	byKey    map[string]*list.Element
	sweeping bool
}

func newDocumentCache(capacity int) *documentCache {
	return &documentCache{
		capacity: capacity,
		order:    list.New(),
		byKey:    make(map[string]*list.Element),
	}
}

var docCache = newDocumentCache(cfg.CacheMaxSize)

// get returns the document stored under key, or nil when it is absent or
// has expired.
func (c *documentCache) get(key string) *loader.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.byKey[key]
	if !ok {
		return nil
	}
	entry := el.Value.(*cached)
	if time.Now().After(entry.expires) {
		c.drop(el)
		return nil
	}
	c.order.MoveToFront(el)
	return entry.doc
}

func (c *documentCache) put(key string, doc *loader.Document, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := time.Now().Add(ttl)
	if el, ok := c.byKey[key]; ok {
		entry := el.Value.(*cached)
		entry.doc, entry.expires = doc, expires
		c.order.MoveToFront(el)
		return
	}
	for c.order.Len() > 0 && c.order.Len() >= c.capacity {
		c.drop(c.order.Back())
	}
	c.byKey[key] = c.order.PushFront(&cached{key: key, doc: doc, expires: expires})
}

// drop must be called with mu held.
func (c *documentCache) drop(el *list.Element) {
	c.order.Remove(el)
	delete(c.byKey, el.Value.(*cached).key)
}

func (c *documentCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if now.After(el.Value.(*cached).expires) {
			c.drop(el)
		}
		el = next
	}
}

// startSweeper sweeps every interval until ctx is done. At most one sweeper
// runs at a time.
func (c *documentCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	c.mu.Lock()
	if c.sweeping {
		c.mu.Unlock()
		return
	}
	c.sweeping = true
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer func() {
			ticker.Stop()
			c.mu.Lock()
			c.sweeping = false
			c.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *documentCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.byKey)
}

func (c *documentCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
