package classify

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of classification results kept by NewCached.
const DefaultCacheSize = 100

// Detector classifies text and resolves pinned selections.
type Detector interface {
	Classify(text string) Result
	Resolve(text, selected string) (Result, error)
	Scores(text string) []Score
}

// CachedClassifier memoizes automatic classifications keyed by text digest.
// Pinned selections bypass the cache since they involve no scoring.
type CachedClassifier struct {
	*Classifier
	cache *lru.Cache[string, Result]
}

// NewCached wraps c with an LRU cache holding up to size results.
func NewCached(c *Classifier, size int) (*CachedClassifier, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, Result](size)
	if err != nil {
		return nil, err
	}
	return &CachedClassifier{Classifier: c, cache: cache}, nil
}

// Classify returns the cached result for text or computes and stores it.
func (c *CachedClassifier) Classify(text string) Result {
	key := digest(text)
	if r, ok := c.cache.Get(key); ok {
		r.Industry = r.Industry.Clone()
		return r
	}
	r := c.Classifier.Classify(text)
	cached := r
	cached.Industry = r.Industry.Clone()
	c.cache.Add(key, cached)
	return r
}

// Resolve is Classifier.Resolve backed by the cache for automatic detection.
func (c *CachedClassifier) Resolve(text, selected string) (Result, error) {
	if IsAuto(selected) {
		return c.Classify(text), nil
	}
	return c.Classifier.Resolve(text, selected)
}

// Len returns the number of cached results.
func (c *CachedClassifier) Len() int {
	return c.cache.Len()
}

// Purge drops every cached result.
func (c *CachedClassifier) Purge() {
	c.cache.Purge()
}

func digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

var (
	_ Detector = (*Classifier)(nil)
	_ Detector = (*CachedClassifier)(nil)
)
