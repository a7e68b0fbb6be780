package dsl

import (
	"context"
	"fmt"

	formwork "github.com/formwork-go/formwork"
)

// ObjectBuilder accumulates an object schema: fields in declaration order,
// presence flags, an unknown-key policy, and object-level refinements. The
// unknown-key policy is a required, explicit choice; Build fails when none
// was made.
type ObjectBuilder struct {
	fields  []fieldEntry
	index   map[string]int
	policy  formwork.UnknownPolicy
	refines []objRefine
	err     error
}

type fieldEntry struct {
	name string
	ad   AnyAdapter
}

type objRefine struct {
	name string
	fn   func(context.Context, map[string]any) error
}

// FieldStep scopes fluent per-field calls (Optional/Nullable/Default) to the
// field most recently registered.
type FieldStep struct {
	b    *ObjectBuilder
	name string
}

// Object creates a new object builder. Fields are required unless marked
// Optional; no unknown-key policy is preselected.
func Object() *ObjectBuilder {
	return &ObjectBuilder{index: map[string]int{}}
}

// Field registers a field with its schema. Declaration order is preserved
// and drives issue ordering at validation time.
func (b *ObjectBuilder) Field(name string, s AnySchema) *FieldStep {
	if _, dup := b.index[name]; dup {
		if b.err == nil {
			b.err = fmt.Errorf("dsl: object field %q declared twice", name)
		}
		return &FieldStep{b: b, name: name}
	}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, fieldEntry{name: name, ad: adapterOf(s)})
	return &FieldStep{b: b, name: name}
}

func (b *ObjectBuilder) updateField(name string, fn func(AnyAdapter) AnyAdapter) {
	if i, ok := b.index[name]; ok {
		b.fields[i].ad = fn(b.fields[i].ad)
	}
}

// Optional marks the current field as allowed to be absent.
func (f *FieldStep) Optional() *ObjectBuilder {
	f.b.updateField(f.name, AnyAdapter.Optional)
	return f.b
}

// Nullable marks the current field as accepting null.
func (f *FieldStep) Nullable() *ObjectBuilder {
	f.b.updateField(f.name, AnyAdapter.Nullable)
	return f.b
}

// Default substitutes v when the current field is absent. The value is
// parsed through the field schema as if it had been supplied.
func (f *FieldStep) Default(v any) *ObjectBuilder {
	f.b.updateField(f.name, func(ad AnyAdapter) AnyAdapter { return ad.Default(v) })
	return f.b
}

// The remaining FieldStep methods forward to the builder so chains need not
// repeat the receiver.
func (f *FieldStep) Field(name string, s AnySchema) *FieldStep { return f.b.Field(name, s) }
func (f *FieldStep) UnknownStrict() *ObjectBuilder             { return f.b.UnknownStrict() }
func (f *FieldStep) UnknownStrip() *ObjectBuilder              { return f.b.UnknownStrip() }
func (f *FieldStep) UnknownPassthrough() *ObjectBuilder        { return f.b.UnknownPassthrough() }
func (f *FieldStep) Refine(name string, fn func(context.Context, map[string]any) error) *ObjectBuilder {
	return f.b.Refine(name, fn)
}
func (f *FieldStep) Build() (*ObjectSchema, error) { return f.b.Build() }
func (f *FieldStep) MustBuild() *ObjectSchema      { return f.b.MustBuild() }

// UnknownStrict rejects undeclared keys with unrecognized_key issues.
func (b *ObjectBuilder) UnknownStrict() *ObjectBuilder {
	b.policy = formwork.UnknownStrict
	return b
}

// UnknownStrip drops undeclared keys from the output.
func (b *ObjectBuilder) UnknownStrip() *ObjectBuilder {
	b.policy = formwork.UnknownStrip
	return b
}

// UnknownPassthrough copies undeclared keys into the output unvalidated.
func (b *ObjectBuilder) UnknownPassthrough() *ObjectBuilder {
	b.policy = formwork.UnknownPassthrough
	return b
}

// Refine adds an object-level predicate for cross-field validation. It runs
// only when every field validated cleanly, so it never observes invalid
// data. The returned error may be formwork.Issues for field-addressed
// failures; any other error becomes one custom issue at the object path.
func (b *ObjectBuilder) Refine(name string, fn func(context.Context, map[string]any) error) *ObjectBuilder {
	if fn == nil {
		return b
	}
	b.refines = append(b.refines, objRefine{name: name, fn: fn})
	return b
}

// Build validates the builder and returns an immutable ObjectSchema. The
// builder may keep being used afterwards; the schema snapshots its state.
func (b *ObjectBuilder) Build() (*ObjectSchema, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.policy == formwork.UnknownPolicy(0) {
		return nil, fmt.Errorf("dsl: unknown-key policy not chosen; call UnknownStrict, UnknownStrip, or UnknownPassthrough")
	}
	fields := make([]fieldEntry, len(b.fields))
	copy(fields, b.fields)
	index := make(map[string]int, len(b.index))
	for k, v := range b.index {
		index[k] = v
	}
	refines := make([]objRefine, len(b.refines))
	copy(refines, b.refines)
	return &ObjectSchema{fields: fields, index: index, policy: b.policy, refines: refines}, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder) MustBuild() *ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
