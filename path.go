package formwork

import (
	"strconv"
	"strings"
)

// Step is one segment of a Path: either an object key or an array index.
type Step struct {
	key   string
	index int
	isKey bool
}

// StepKey returns a Step addressing an object field.
func StepKey(name string) Step { return Step{key: name, isKey: true} }

// StepIndex returns a Step addressing an array element.
func StepIndex(i int) Step { return Step{index: i} }

// IsKey reports whether the step addresses an object field.
func (s Step) IsKey() bool { return s.isKey }

// Key returns the field name for key steps ("" for index steps).
func (s Step) Key() string { return s.key }

// Index returns the element index for index steps (0 for key steps).
func (s Step) Index() int { return s.index }

func (s Step) String() string {
	if s.isKey {
		return s.key
	}
	return strconv.Itoa(s.index)
}

// MarshalJSON renders key steps as JSON strings and index steps as JSON
// numbers, preserving the mixed-array path shape downstream consumers
// pattern-match on.
func (s Step) MarshalJSON() ([]byte, error) {
	if s.isKey {
		return []byte(strconv.Quote(s.key)), nil
	}
	return []byte(strconv.Itoa(s.index)), nil
}

// Path is the ordered key/index sequence locating a value inside nested
// input. Paths are persistent: Field and Index return new values and never
// mutate the receiver, so sibling branches of one traversal can share a
// common prefix safely.
type Path []Step

// Field returns a new Path descending into the named object field.
func (p Path) Field(name string) Path {
	np := make(Path, len(p), len(p)+1)
	copy(np, p)
	return append(np, StepKey(name))
}

// Index returns a new Path descending into the i-th array element.
func (p Path) Index(i int) Path {
	np := make(Path, len(p), len(p)+1)
	copy(np, p)
	return append(np, StepIndex(i))
}

// String renders the path as a JSON Pointer (for example /items/2/price).
// The root path renders as "/". Key segments are escaped per RFC 6901
// ("~" as "~0", "/" as "~1") so dynamic keys containing those characters
// render unambiguously.
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, s := range p {
		b.WriteByte('/')
		if s.isKey {
			b.WriteString(escapePointerSegment(s.key))
		} else {
			b.WriteString(strconv.Itoa(s.index))
		}
	}
	return b.String()
}

func escapePointerSegment(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// MarshalJSON renders the path as a mixed string/number array. A nil root
// path marshals as [], never null; clients iterate this field.
func (p Path) MarshalJSON() ([]byte, error) {
	b := &strings.Builder{}
	b.WriteByte('[')
	for i, s := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		raw, err := s.MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(raw)
	}
	b.WriteByte(']')
	return []byte(b.String()), nil
}

// Equal reports whether two paths address the same location.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
