// Package catalog holds the in-memory course catalog: an immutable mapping
// from normalized course code to Course.
//
// A Catalog is built once per load with New and is read-only afterwards.
// Loading a new data set produces a new Catalog; there is no incremental
// merge. Within one build, a later course with the same normalized code
// replaces the earlier one.
package catalog
