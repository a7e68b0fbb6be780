package dsl

import (
	"fmt"
)

// Composition operators. Every operator derives a new ObjectSchema and
// leaves the receiver untouched; field adapters are shared by reference, so
// deriving from a large schema is cheap. Naming a key the schema does not
// declare is a construction bug and panics, same as MustBuild on a broken
// builder.

func (o *ObjectSchema) derive(fields []fieldEntry) *ObjectSchema {
	index := make(map[string]int, len(fields))
	for i, fe := range fields {
		index[fe.name] = i
	}
	return &ObjectSchema{fields: fields, index: index, policy: o.policy}
}

// Pick keeps only the named fields, in the receiver's declaration order.
// Object-level refinements are dropped: they were written against the full
// shape and may read fields that no longer exist.
func (o *ObjectSchema) Pick(names ...string) *ObjectSchema {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := o.index[n]; !ok {
			panic(fmt.Sprintf("dsl: Pick: unknown field %q", n))
		}
		keep[n] = true
	}
	fields := make([]fieldEntry, 0, len(names))
	for _, fe := range o.fields {
		if keep[fe.name] {
			fields = append(fields, fe)
		}
	}
	return o.derive(fields)
}

// Omit removes the named fields. Like Pick, refinements are dropped.
func (o *ObjectSchema) Omit(names ...string) *ObjectSchema {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := o.index[n]; !ok {
			panic(fmt.Sprintf("dsl: Omit: unknown field %q", n))
		}
		drop[n] = true
	}
	fields := make([]fieldEntry, 0, len(o.fields)-len(names))
	for _, fe := range o.fields {
		if !drop[fe.name] {
			fields = append(fields, fe)
		}
	}
	return o.derive(fields)
}

// Partial marks every field optional. Defaults still apply before the
// optional short-circuit, so a defaulted field keeps its default. Refinements
// are dropped for the same reason as Pick.
func (o *ObjectSchema) Partial() *ObjectSchema {
	fields := make([]fieldEntry, len(o.fields))
	for i, fe := range o.fields {
		fe.ad.optional = true
		fields[i] = fe
	}
	return o.derive(fields)
}

// ObjectShape is an in-progress object declaration usable as an Extend
// argument: an ObjectBuilder, or the FieldStep a Field chain ends on.
type ObjectShape interface {
	shape() *ObjectBuilder
}

func (b *ObjectBuilder) shape() *ObjectBuilder { return b }
func (f *FieldStep) shape() *ObjectBuilder     { return f.b }

// Extend overlays the fields of sh onto the receiver. A redefined field
// replaces the original in place; a new field is appended after the existing
// ones. If the shape chose an unknown-key policy it wins; object-level
// refinements of both sides are kept, receiver's first.
func (o *ObjectSchema) Extend(sh ObjectShape) *ObjectSchema {
	if sh == nil {
		panic("dsl: Extend: nil shape")
	}
	shape := sh.shape()
	if shape.err != nil {
		panic(fmt.Sprintf("dsl: Extend: invalid shape: %v", shape.err))
	}
	fields := make([]fieldEntry, len(o.fields))
	copy(fields, o.fields)
	index := make(map[string]int, len(fields)+len(shape.fields))
	for i, fe := range fields {
		index[fe.name] = i
	}
	for _, fe := range shape.fields {
		if i, ok := index[fe.name]; ok {
			fields[i] = fe
		} else {
			index[fe.name] = len(fields)
			fields = append(fields, fe)
		}
	}
	policy := o.policy
	if shape.policy != 0 {
		policy = shape.policy
	}
	refines := make([]objRefine, 0, len(o.refines)+len(shape.refines))
	refines = append(refines, o.refines...)
	refines = append(refines, shape.refines...)
	return &ObjectSchema{fields: fields, index: index, policy: policy, refines: refines}
}

// Merge combines two object schemas the way Extend combines a schema with a
// builder: other's fields, policy, and refinements win on conflict.
func (o *ObjectSchema) Merge(other *ObjectSchema) *ObjectSchema {
	if other == nil {
		panic("dsl: Merge: nil schema")
	}
	fields := make([]fieldEntry, len(o.fields))
	copy(fields, o.fields)
	index := make(map[string]int, len(fields)+len(other.fields))
	for i, fe := range fields {
		index[fe.name] = i
	}
	for _, fe := range other.fields {
		if i, ok := index[fe.name]; ok {
			fields[i] = fe
		} else {
			index[fe.name] = len(fields)
			fields = append(fields, fe)
		}
	}
	policy := o.policy
	if other.policy != 0 {
		policy = other.policy
	}
	refines := make([]objRefine, 0, len(o.refines)+len(other.refines))
	refines = append(refines, o.refines...)
	refines = append(refines, other.refines...)
	return &ObjectSchema{fields: fields, index: index, policy: policy, refines: refines}
}
