// Package model defines the builder models consumed by renderers. A planner
// derives one BuilderModel per record: the storage slot type of every field,
// the setter parameter type and the generated identifiers. Planners reside in
// internal/model but return the types defined here.
package model
