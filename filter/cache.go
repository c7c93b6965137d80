package filter

import (
	"container/list"
	"sync"
)

// lruCache is a thread-safe LRU cache of compiled filters keyed by expression
type lruCache struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
	mu        sync.Mutex
}

type cacheEntry struct {
	expression string
	filter     CompiledFilter
}

func newLRUCache(size int) *lruCache {
	return &lruCache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

// Get returns the cached filter and marks it most recently used
func (c *lruCache) Get(expression string) (CompiledFilter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.items[expression]
	if !ok {
		return nil, false
	}
	c.evictList.MoveToFront(node)
	return node.Value.(*cacheEntry).filter, true
}

// Put stores a filter, evicting the least recently used one when full
func (c *lruCache) Put(expression string, filter CompiledFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.items[expression]; ok {
		c.evictList.MoveToFront(node)
		node.Value.(*cacheEntry).filter = filter
		return
	}

	c.items[expression] = c.evictList.PushFront(&cacheEntry{expression: expression, filter: filter})

	if c.evictList.Len() > c.size {
		oldest := c.evictList.Back()
		c.evictList.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).expression)
	}
}

// Clear removes all items from the cache
func (c *lruCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.evictList.Init()
}

// Size returns the number of items in the cache
func (c *lruCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}
