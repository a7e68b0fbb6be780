// Package formwork provides:
//
// - Runtime validation of untrusted, dynamically-shaped input (already
//   deserialized maps, slices, and scalars) into strongly-typed values
// - A stable error model: path-addressed Issues aggregated into one
//   ValidationError per call, no exceptions for data errors
// - A Result type (Ok/Err) with Map/FlatMap/MapError/Match combinators as
//   the uniform return contract
// - Structural composition of object schemas (Pick/Omit/Partial/Extend/
//   Merge) that shares sub-schemas by reference instead of cloning
//
// Design policy:
// - Keep only public contract types in the root package; builders and the
//   traversal engine live under dsl/, messages under i18n/, helpers under
//   internal/.
// - Schemas are immutable once built; fluent calls return new values.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user := dsl.Object().
//		Field("name", dsl.String().Min(2)).
//		Field("age", dsl.Number().Min(0)).
//		UnknownStrip().
//		MustBuild()
//
//	res := formwork.ParseJSON(ctx, user, body)
//	if res.IsErr() {
//		for _, it := range res.Err().Issues { ... }
//	}
package formwork
