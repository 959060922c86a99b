// Package schema defines the generation-time description of record types:
// where a declaration came from (Source, Document), what it declares
// (StructSpec, FieldSpec, TypeExpr) and the Extractor contract that turns one
// into the other.
//
// Schemas can be produced by an extractor or written out by hand with
// NewStructSpec and Field; the rest of the pipeline treats both the same.
package schema
