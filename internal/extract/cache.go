package extract

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"ats-analyzer/internal/shared/util"
)

// Extractor memoizes ExtractPDF by document content hash.
// A zero size disables memoization. Safe for concurrent use.
type Extractor struct {
	cache   *lru.Cache[string, string]
	extract func(context.Context, []byte) (string, error)
}

// NewExtractor constructs an Extractor holding at most size documents.
func NewExtractor(size int) *Extractor {
	e := &Extractor{extract: ExtractPDF}
	if size > 0 {
		// lru.New only fails on a non-positive size.
		e.cache, _ = lru.New[string, string](size)
	}
	return e
}

// Extract returns the document text, reusing a prior successful extraction.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	if e.cache == nil {
		return e.extract(ctx, data)
	}
	key := util.HashBytes(data)
	if text, ok := e.cache.Get(key); ok {
		return text, nil
	}
	text, err := e.extract(ctx, data)
	if err != nil {
		return "", err
	}
	e.cache.Add(key, text)
	return text, nil
}

// Len reports the number of memoized documents.
func (e *Extractor) Len() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.Len()
}
