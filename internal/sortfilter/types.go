package sortfilter

import (
	"fmt"
	"strings"
)

// Field names a sortable record attribute
type Field int

const (
	FieldNone Field = iota
	FieldName
	FieldWordCount
	FieldSections
)

// Fields lists the sortable fields in display order
var Fields = []Field{FieldName, FieldWordCount, FieldSections}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldWordCount:
		return "word_count"
	case FieldSections:
		return "sections"
	default:
		return "none"
	}
}

// ParseField converts a field name into a Field
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, nil
	case "word_count", "words":
		return FieldWordCount, nil
	case "sections":
		return FieldSections, nil
	case "none", "":
		return FieldNone, nil
	}
	return FieldNone, fmt.Errorf("unknown sort field %q", s)
}

// Direction is the order applied to the sort field
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection converts "asc"/"desc" (or their long forms) into a Direction
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort direction %q", s)
}

// Keys are the values a record exposes for filtering and sorting
type Keys struct {
	Name      string
	WordCount int
	Sections  int
}

// Record is anything the engine can filter and sort. Other fields of the
// implementing type are carried through untouched.
type Record interface {
	SortKeys() Keys
}

// State holds the query and sort configuration owned by a single view
type State struct {
	Query     string
	SortKey   Field
	Direction Direction
}

// DefaultState sorts by word count, largest first, with no query
func DefaultState() State {
	return State{
		SortKey:   FieldWordCount,
		Direction: Descending,
	}
}

// Toggle returns the state after the sort control for field is activated.
// Each field cycles ascending -> descending -> unsorted; picking a different
// field always starts it ascending. FieldNone leaves the state unchanged.
func (s State) Toggle(field Field) State {
	if field == FieldNone {
		return s
	}
	switch {
	case field != s.SortKey:
		s.SortKey = field
		s.Direction = Ascending
	case s.Direction == Ascending:
		s.Direction = Descending
	default:
		s.SortKey = FieldNone
		s.Direction = Ascending
	}
	return s
}
