package lrucache

import (
	"container/list"
	"sync"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
)

type entry struct {
	key   externalapi.DomainHash
	value interface{}
}

// LRUCache is a least-recently-used cache for any type
// that's able to be indexed by DomainHash. It is safe for concurrent use.
type LRUCache struct {
	lock     sync.Mutex
	cache    map[externalapi.DomainHash]*list.Element
	order    *list.List
	capacity int
}

// New creates a new LRUCache
func New(capacity int, preallocate bool) *LRUCache {
	var cache map[externalapi.DomainHash]*list.Element
	if preallocate {
		cache = make(map[externalapi.DomainHash]*list.Element, capacity+1)
	} else {
		cache = make(map[externalapi.DomainHash]*list.Element)
	}
	return &LRUCache{
		cache:    cache,
		order:    list.New(),
		capacity: capacity,
	}
}

// Add adds an entry to the LRUCache, evicting the least recently used entry
// when the capacity is exceeded.
func (c *LRUCache) Add(key *externalapi.DomainHash, value interface{}) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if element, ok := c.cache[*key]; ok {
		element.Value.(*entry).value = value
		c.order.MoveToFront(element)
		return
	}
	c.cache[*key] = c.order.PushFront(&entry{key: *key, value: value})

	if len(c.cache) > c.capacity {
		c.evictOldest()
	}
}

// Get returns the entry for the given key, or (nil, false) otherwise
func (c *LRUCache) Get(key *externalapi.DomainHash) (interface{}, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	element, ok := c.cache[*key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(element)
	return element.Value.(*entry).value, true
}

// Len returns the number of entries in the cache.
func (c *LRUCache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return len(c.cache)
}

func (c *LRUCache) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.order.Remove(oldest)
	delete(c.cache, oldest.Value.(*entry).key)
}
