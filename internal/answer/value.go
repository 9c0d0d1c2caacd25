// Package answer holds the answers collected during one wizard session.
package answer

import (
	"slices"

	"github.com/jywlabs/brio/internal/schema"
)

// Other is the sentinel choice that requires companion free text.
const Other = schema.OtherValue

// Shape is the structural form of an answer value.
type Shape int

const (
	ShapeText Shape = iota
	ShapeNumber
	ShapeSet
)

func (s Shape) String() string {
	switch s {
	case ShapeText:
		return "text"
	case ShapeNumber:
		return "number"
	case ShapeSet:
		return "set"
	default:
		return "unknown"
	}
}

// ShapeFor returns the value shape a question kind expects.
func ShapeFor(kind schema.Kind) Shape {
	switch kind {
	case schema.LikertScale, schema.NpsScore:
		return ShapeNumber
	case schema.MultiChoice:
		return ShapeSet
	default:
		return ShapeText
	}
}

// Value is one answer. The concrete type is one of Text, Number or Set.
type Value interface {
	Shape() Shape
}

// Text answers short text, NPS reason and single choice questions.
type Text string

func (Text) Shape() Shape { return ShapeText }

// Number answers Likert and NPS score questions.
type Number int

func (Number) Shape() Shape { return ShapeNumber }

// Set answers multi choice questions. Members keep insertion order and
// never repeat.
type Set []string

func (Set) Shape() Shape { return ShapeSet }

// Contains reports whether v is a member.
func (s Set) Contains(v string) bool {
	return slices.Contains(s, v)
}

// With returns a copy of s with v added.
func (s Set) With(v string) Set {
	out := slices.Clone(s)
	if out.Contains(v) {
		return out
	}
	return append(out, v)
}

// distinct returns a copy of s keeping the first occurrence of each member.
func (s Set) distinct() Set {
	out := make(Set, 0, len(s))
	for _, m := range s {
		if !out.Contains(m) {
			out = append(out, m)
		}
	}
	return out
}

// Without returns a copy of s with v removed.
func (s Set) Without(v string) Set {
	out := make(Set, 0, len(s))
	for _, m := range s {
		if m != v {
			out = append(out, m)
		}
	}
	return out
}

// Fits reports whether v has the shape kind expects.
func Fits(kind schema.Kind, v Value) bool {
	return v != nil && v.Shape() == ShapeFor(kind)
}
