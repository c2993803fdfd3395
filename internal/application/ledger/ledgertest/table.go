package ledgertest

import (
	"sort"
	"time"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const inserted = -1

// accessors lets a table handle any aggregate type
type accessors[T any] struct {
	name    string
	id      func(T) uuid.UUID
	version func(T) int
	bump    func(*T)
	created func(T) time.Time
	clone   func(T) T
}

// table is the committed state of one aggregate type
type table[T any] struct {
	accessors[T]
	rows map[uuid.UUID]T
}

func newTable[T any](acc accessors[T]) *table[T] {
	return &table[T]{accessors: acc, rows: make(map[uuid.UUID]T)}
}

// txTable buffers one transaction's writes against a table
type txTable[T any] struct {
	base    *table[T]
	rows    map[uuid.UUID]T
	deleted map[uuid.UUID]bool
	expect  map[uuid.UUID]int
}

func newTxTable[T any](base *table[T]) *txTable[T] {
	return &txTable[T]{
		base:    base,
		rows:    make(map[uuid.UUID]T),
		deleted: make(map[uuid.UUID]bool),
		expect:  make(map[uuid.UUID]int),
	}
}

// get must be called with the store lock held
func (t *txTable[T]) get(id uuid.UUID) (T, bool) {
	var zero T
	if t.deleted[id] {
		return zero, false
	}
	if v, ok := t.rows[id]; ok {
		return t.base.clone(v), true
	}
	if v, ok := t.base.rows[id]; ok {
		return t.base.clone(v), true
	}
	return zero, false
}

func (t *txTable[T]) find(id uuid.UUID) (*T, error) {
	v, ok := t.get(id)
	if !ok {
		return nil, shared.NewNotFoundError(t.base.name, id)
	}
	return &v, nil
}

// all returns every visible row, newest first
func (t *txTable[T]) all() []T {
	out := make([]T, 0, len(t.base.rows)+len(t.rows))
	seen := make(map[uuid.UUID]bool, len(t.rows))
	for id, v := range t.rows {
		seen[id] = true
		if !t.deleted[id] {
			out = append(out, t.base.clone(v))
		}
	}
	for id, v := range t.base.rows {
		if seen[id] || t.deleted[id] {
			continue
		}
		out = append(out, t.base.clone(v))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return t.base.created(out[i]).After(t.base.created(out[j]))
	})
	return out
}

func (t *txTable[T]) insert(v T) error {
	id := t.base.id(v)
	if _, ok := t.get(id); ok {
		return shared.ErrAlreadyExists
	}
	t.rows[id] = t.base.clone(v)
	delete(t.deleted, id)
	if _, ok := t.expect[id]; !ok {
		t.expect[id] = inserted
	}
	return nil
}

func (t *txTable[T]) update(v *T) error {
	id := t.base.id(*v)
	current, ok := t.get(id)
	if !ok {
		return shared.NewNotFoundError(t.base.name, id)
	}
	if t.base.version(current) != t.base.version(*v) {
		return shared.ErrConcurrencyConflict
	}
	if _, ok := t.expect[id]; !ok {
		t.expect[id] = t.base.version(current)
	}
	t.base.bump(v)
	t.rows[id] = t.base.clone(*v)
	return nil
}

func (t *txTable[T]) remove(id uuid.UUID) error {
	current, ok := t.get(id)
	if !ok {
		return shared.NewNotFoundError(t.base.name, id)
	}
	if _, ok := t.expect[id]; !ok {
		t.expect[id] = t.base.version(current)
	}
	delete(t.rows, id)
	t.deleted[id] = true
	return nil
}

// validate checks that nothing this transaction read-and-wrote has moved on
func (t *txTable[T]) validate() error {
	for id, want := range t.expect {
		committed, ok := t.base.rows[id]
		if want == inserted {
			if ok {
				return shared.ErrAlreadyExists
			}
			continue
		}
		if !ok || t.base.version(committed) != want {
			return shared.ErrConcurrencyConflict
		}
	}
	return nil
}

func (t *txTable[T]) apply() {
	for id, v := range t.rows {
		t.base.rows[id] = v
	}
	for id := range t.deleted {
		delete(t.base.rows, id)
	}
}

func (t *txTable[T]) reset() {
	t.rows = make(map[uuid.UUID]T)
	t.deleted = make(map[uuid.UUID]bool)
	t.expect = make(map[uuid.UUID]int)
}

func paginate[T any](items []T, filter shared.Filter) []T {
	if filter.PageSize <= 0 {
		return items
	}
	start := filter.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + filter.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
