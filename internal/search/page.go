package search

import (
	"fmt"
	"sync"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/cadencefm/cadence/internal/shared"
)

// Page is a lazy, length-aware indexed view over one category of matches.
// Elements are materialized on access; two calls to At for the same index
// need not return the same value identity.
//
// A non-empty page holds one reference on the owning resource for its own
// lifetime, independent of the originating handle's reference. Close releases
// it; the first call wins.
type Page[T any] struct {
	res       catalog.Resource
	length    func() int
	at        func(int) T
	closeOnce sync.Once
}

// newPage takes a reference on res for the view's lifetime.
func newPage[T any](res catalog.Resource, length func() int, at func(int) T) *Page[T] {
	res.Acquire()
	return &Page[T]{res: res, length: length, at: at}
}

// emptyPage is the degraded view returned while an operation is not loaded.
// It owns no resource and Close is a no-op.
func emptyPage[T any]() *Page[T] {
	return &Page[T]{}
}

// Len returns the number of matches realized in this page. It may be less
// than the category's total match count reported by the handle.
func (p *Page[T]) Len() int {
	if p.length == nil {
		return 0
	}
	return p.length()
}

// At materializes the match at index i. Indexing at or beyond Len returns
// [shared.ErrIndexOutOfRange].
func (p *Page[T]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= p.Len() {
		return zero, fmt.Errorf("%w: index %d, length %d", shared.ErrIndexOutOfRange, i, p.Len())
	}
	return p.at(i), nil
}

// Items materializes every match in the page.
func (p *Page[T]) Items() []T {
	n := p.Len()
	items := make([]T, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, p.at(i))
	}
	return items
}

// Close releases the page's reference on the owning resource.
func (p *Page[T]) Close() {
	p.closeOnce.Do(func() {
		if p.res != nil {
			p.res.Release()
		}
	})
}
