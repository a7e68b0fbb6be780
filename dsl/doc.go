// Package dsl provides the schema builders for formwork.
//
// Overview
//   - Builder API: declare object semantics (fields/optional/default/refine)
//     with Object()/Field()/UnknownStrict()/MustBuild().
//   - Primitives: String()/Number()/Bool()/Literal()/Enum() with chainable
//     constraint methods; builders are persistent and can be forked freely.
//   - Containers: Array(elem), Record(value) recurse through any element
//     schema, including objects and Lazy self-references.
//   - Wrappers: Optional/Nullable/Default/Transform/Refine adjust presence
//     and post-validation semantics of any schema.
//   - Composition: Pick/Omit/Partial/Extend/Merge derive new object schemas
//     without mutating their sources.
//   - Binding: Bind[T]/MustBind project a validated map onto a struct by
//     json tag.
//
// Entry points
//   - Object(): create an object builder; chain Field and an Unknown* policy
//     choice, then MustBuild()/Build().
//   - String()/Number()/Bool(): primitive schemas with constraints.
//   - Array(elem)/Record(value): homogeneous containers.
//   - Adapt[T](s): wrap an external Schema[T] for use as an object field.
//
// File layout (roles)
//   - engine.go: internal recursion seam (anyParseFn) and issue helpers.
//   - adapter.go: AnyAdapter and its presence flags.
//   - object_builder.go/object_core.go: builder and validation traversal.
//   - compose.go: Pick/Omit/Partial/Extend/Merge.
//   - wrap.go: Optional/Nullable/Default/Transform/Refine/Lazy.
//   - bind.go: struct binding over a built object schema.
//
// Design guidelines
//   - Keep public APIs minimal; every schema kind satisfies formwork.Schema.
//   - Unknown-key handling is an explicit choice, never a silent default.
//   - Checks added after a type failure never run; transforms never observe
//     invalid data.
package dsl
