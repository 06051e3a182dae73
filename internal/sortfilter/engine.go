// Package sortfilter derives a filtered, sorted view of a record list from a
// search query and a three-state sort toggle.
package sortfilter

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparer orders record keys. Names are compared with locale collation.
// A Comparer is not safe for concurrent use.
type Comparer struct {
	collator *collate.Collator
}

// NewComparer creates a comparer collating names for the given language
func NewComparer(tag language.Tag) *Comparer {
	return &Comparer{collator: collate.New(tag)}
}

// Compare returns -1, 0 or 1 comparing a and b on field
func (c *Comparer) Compare(field Field, a, b Keys) int {
	switch field {
	case FieldName:
		return c.collator.CompareString(a.Name, b.Name)
	case FieldWordCount:
		return cmp.Compare(a.WordCount, b.WordCount)
	case FieldSections:
		return cmp.Compare(a.Sections, b.Sections)
	}
	return 0
}

// Apply filters items by st.Query and sorts them by st.SortKey. The input
// slice is never modified. A nil comparer collates names as English.
func Apply[T Record](items []T, st State, c *Comparer) []T {
	out := make([]T, 0, len(items))
	query := strings.ToLower(st.Query)
	for _, item := range items {
		if query == "" || strings.Contains(strings.ToLower(item.SortKeys().Name), query) {
			out = append(out, item)
		}
	}

	if st.SortKey == FieldNone {
		return out
	}
	if c == nil {
		c = NewComparer(language.English)
	}

	slices.SortStableFunc(out, func(a, b T) int {
		result := c.Compare(st.SortKey, a.SortKeys(), b.SortKeys())
		if st.Direction == Descending {
			return -result
		}
		return result
	})
	return out
}

// Option configures an Engine
type Option func(*options)

type options struct {
	state    State
	comparer *Comparer
}

// WithState sets the initial query and sort state
func WithState(st State) Option {
	return func(o *options) {
		o.state = st
	}
}

// WithComparer sets the comparer used for sorting
func WithComparer(c *Comparer) Option {
	return func(o *options) {
		o.comparer = c
	}
}

// Engine keeps the query/sort state for one view and memoizes the derived
// list until the items or the state change.
type Engine[T Record] struct {
	items    []T
	state    State
	comparer *Comparer

	view  []T
	stale bool
}

// New creates an engine with DefaultState unless overridden
func New[T Record](opts ...Option) *Engine[T] {
	o := options{state: DefaultState()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.comparer == nil {
		o.comparer = NewComparer(language.English)
	}
	return &Engine[T]{
		state:    o.state,
		comparer: o.comparer,
		stale:    true,
	}
}

// SetItems replaces the source list
func (e *Engine[T]) SetItems(items []T) {
	e.items = items
	e.stale = true
}

// SetQuery replaces the search query
func (e *Engine[T]) SetQuery(query string) {
	if query == e.state.Query {
		return
	}
	e.state.Query = query
	e.stale = true
}

// ToggleSort advances the sort state machine for field
func (e *Engine[T]) ToggleSort(field Field) {
	next := e.state.Toggle(field)
	if next == e.state {
		return
	}
	e.state = next
	e.stale = true
}

// SetState replaces the whole query/sort state
func (e *Engine[T]) SetState(st State) {
	if st == e.state {
		return
	}
	e.state = st
	e.stale = true
}

// State returns the current query/sort state
func (e *Engine[T]) State() State {
	return e.state
}

func (e *Engine[T]) Query() string {
	return e.state.Query
}

func (e *Engine[T]) SortKey() Field {
	return e.state.SortKey
}

func (e *Engine[T]) Direction() Direction {
	return e.state.Direction
}

// Total returns the number of source items before filtering
func (e *Engine[T]) Total() int {
	return len(e.items)
}

// Items returns the filtered, sorted view. Callers must not modify it.
func (e *Engine[T]) Items() []T {
	if e.stale {
		e.view = Apply(e.items, e.state, e.comparer)
		e.stale = false
	}
	return e.view
}

// Len returns the number of records in the derived view
func (e *Engine[T]) Len() int {
	return len(e.Items())
}
