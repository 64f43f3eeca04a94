package paragraph

import (
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"
)

const (
	shapeShards   = 16
	shapeShardCap = 256
)

// shapeKey identifies a shaped run. Runs of the same text, face and size
// always produce the same advances.
type shapeKey struct {
	text string
	face *Face
	size uint64
}

func (k *shapeKey) shard() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.face.name))
	_, _ = h.Write([]byte(k.text))
	var b [8]byte
	for i := range b {
		b[i] = byte(k.size >> (8 * i))
	}
	_, _ = h.Write(b[:])
	return h.Sum64() & (shapeShards - 1)
}

// shapeCache is a sharded LRU of per-rune advances.
type shapeCache struct {
	shards [shapeShards]*shapeShard

	hits   atomic.Uint64
	misses atomic.Uint64
}

type shapeShard struct {
	mu      sync.Mutex
	entries map[shapeKey]*shapeEntry
	lru     recency
}

type shapeEntry struct {
	adv  []float64
	node *recencyNode
}

// ShapeStats reports shaping cache use.
type ShapeStats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

func newShapeCache() *shapeCache {
	c := &shapeCache{}
	for i := range c.shards {
		c.shards[i] = &shapeShard{entries: make(map[shapeKey]*shapeEntry)}
	}
	return c
}

// advances returns the cached advances for key, computing and storing them
// with shape on a miss. The returned slice must not be modified.
func (c *shapeCache) advances(key shapeKey, shape func() []float64) []float64 {
	s := c.shards[key.shard()]
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		s.lru.touch(e.node)
		c.hits.Add(1)
		return e.adv
	}
	c.misses.Add(1)
	adv := shape()
	for s.lru.len >= shapeShardCap {
		old := s.lru.popOldest()
		delete(s.entries, old.key)
	}
	s.entries[key] = &shapeEntry{adv: adv, node: s.lru.push(key)}
	return adv
}

func (c *shapeCache) stats() ShapeStats {
	var st ShapeStats
	for _, s := range c.shards {
		s.mu.Lock()
		st.Len += len(s.entries)
		s.mu.Unlock()
	}
	st.Hits = c.hits.Load()
	st.Misses = c.misses.Load()
	return st
}

func sizeBits(size float64) uint64 { return math.Float64bits(size) }

// recency is a doubly linked list, most recently used first.
type recency struct {
	head, tail *recencyNode
	len        int
}

type recencyNode struct {
	key        shapeKey
	prev, next *recencyNode
}

func (l *recency) push(key shapeKey) *recencyNode {
	n := &recencyNode{key: key, next: l.head}
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.len++
	return n
}

func (l *recency) touch(n *recencyNode) {
	if n == l.head {
		return
	}
	l.unlink(n)
	n.next = l.head
	l.head.prev = n
	l.head = n
	l.len++
}

func (l *recency) popOldest() *recencyNode {
	n := l.tail
	l.unlink(n)
	return n
}

func (l *recency) unlink(n *recencyNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
}
