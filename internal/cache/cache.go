// Package cache implements the position cache of the AI: results of previous searches (best move
// and score) indexed by the canonical key of the board and the player to move.
//
// Eviction is FIFO by insertion order: when full, the oldest half of the entries is dropped before
// a new key is inserted.
package cache

import (
	. "github.com/janpfeifer/gomokuGo/internal/state"
	"k8s.io/klog/v2"
)

// DefaultMaxSize is the default number of positions kept.
const DefaultMaxSize = 1000

// entry holds what is known about a position. Either field may be missing.
type entry struct {
	move     Move
	hasMove  bool
	score    float32
	hasScore bool
}

// Cache of positions. It is not safe for concurrent use: it is meant to be owned by a single AI.
type Cache struct {
	maxSize int
	entries map[string]*entry

	// fifo holds the keys in insertion order, the oldest first.
	fifo []string

	hits, misses int
}

// Stats of the cache usage since it was created or last cleared.
type Stats struct {
	Hits, Misses, Len, MaxSize int
}

// New creates a cache holding up to maxSize positions. If maxSize <= 0, DefaultMaxSize is used.
func New(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Cache{
		maxSize: maxSize,
		entries: make(map[string]*entry, maxSize),
		fifo:    make([]string, 0, maxSize),
	}
}

// MaxSize returns the capacity of the cache.
func (c *Cache) MaxSize() int { return c.maxSize }

// Len returns the number of positions in the cache.
func (c *Cache) Len() int { return len(c.entries) }

// BestMove returns the move stored for the key, if any.
func (c *Cache) BestMove(key string) (move Move, found bool) {
	e, ok := c.entries[key]
	if !ok || !e.hasMove {
		c.misses++
		return
	}
	c.hits++
	return e.move, true
}

// Score returns the score stored for the key, if any.
func (c *Cache) Score(key string) (score float32, found bool) {
	e, ok := c.entries[key]
	if !ok || !e.hasScore {
		c.misses++
		return
	}
	c.hits++
	return e.score, true
}

// SetBestMove stores the best move for the key.
func (c *Cache) SetBestMove(key string, move Move) {
	e := c.getOrInsert(key)
	e.move, e.hasMove = move, true
}

// SetScore stores the score for the key.
func (c *Cache) SetScore(key string, score float32) {
	e := c.getOrInsert(key)
	e.score, e.hasScore = score, true
}

// Clear removes all positions and resets the stats.
func (c *Cache) Clear() {
	clear(c.entries)
	c.fifo = c.fifo[:0]
	c.hits, c.misses = 0, 0
}

// Stats returns the hits and misses of lookups, and the current size.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits, Misses: c.misses, Len: len(c.entries), MaxSize: c.maxSize}
}

// getOrInsert returns the entry for key, creating it if needed. Updating an existing key doesn't
// change its position in the eviction order.
func (c *Cache) getOrInsert(key string) *entry {
	if e, ok := c.entries[key]; ok {
		return e
	}
	if len(c.entries) >= c.maxSize {
		c.evictOldestHalf()
	}
	e := &entry{}
	c.entries[key] = e
	c.fifo = append(c.fifo, key)
	return e
}

// evictOldestHalf drops the oldest half (rounded up) of the entries.
func (c *Cache) evictOldestHalf() {
	numEvict := (len(c.fifo) + 1) / 2
	for _, key := range c.fifo[:numEvict] {
		delete(c.entries, key)
	}
	remaining := copy(c.fifo, c.fifo[numEvict:])
	c.fifo = c.fifo[:remaining]
	klog.V(2).Infof("cache: evicted %d positions, %d left", numEvict, remaining)
}
