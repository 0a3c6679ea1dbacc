package layout

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/piwi3910/Carcass/internal/model"
)

// DefaultCacheSize is the number of layouts a Cache keeps before it resets.
const DefaultCacheSize = 64

// Cache memoises Build results keyed by a digest of the inputs.
// It is not safe for concurrent use.
type Cache struct {
	max     int
	entries map[string]Result
	hits    int
	misses  int
}

// NewCache creates a cache holding up to max layouts. A non-positive max
// selects DefaultCacheSize.
func NewCache(max int) *Cache {
	if max <= 0 {
		max = DefaultCacheSize
	}
	return &Cache{max: max, entries: make(map[string]Result)}
}

type cacheInput struct {
	Root   model.Dimensions `json:"root"`
	Pieces []model.Piece    `json:"pieces"`
}

// Key returns the SHA-256 digest of the canonical JSON encoding of the
// layout inputs.
func Key(root model.Dimensions, pieces []model.Piece) string {
	data, err := json.Marshal(cacheInput{Root: root, Pieces: pieces})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Build returns the layout for the inputs, computing it on a miss.
// The returned result is a copy the caller may modify.
func (c *Cache) Build(root model.Dimensions, pieces []model.Piece) Result {
	key := Key(root, pieces)
	if key == "" {
		return Build(root, pieces)
	}
	if r, ok := c.entries[key]; ok {
		c.hits++
		return r.Clone()
	}
	c.misses++
	r := Build(root, pieces)
	if len(c.entries) >= c.max {
		c.entries = make(map[string]Result)
	}
	c.entries[key] = r
	return r.Clone()
}

// Len returns the number of cached layouts.
func (c *Cache) Len() int { return len(c.entries) }

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses int) { return c.hits, c.misses }

// Reset drops every cached layout.
func (c *Cache) Reset() {
	c.entries = make(map[string]Result)
}

// Clone returns a deep copy of the result.
func (r Result) Clone() Result {
	cp := Result{
		Spaces: make([]model.Space, len(r.Spaces)),
		Pieces: model.ClonePieces(r.Pieces),
	}
	for i, s := range r.Spaces {
		cp.Spaces[i] = s
		if s.Children != nil {
			cp.Spaces[i].Children = append([]int(nil), s.Children...)
		}
	}
	if r.Active != nil {
		cp.Active = append([]int(nil), r.Active...)
	}
	if r.Warnings != nil {
		cp.Warnings = append([]string(nil), r.Warnings...)
	}
	return cp
}
