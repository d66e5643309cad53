// Package planner answers the three advising queries over a catalog
// snapshot: the sorted course list, the details of one course and the
// recommended study order. Every function takes the catalog explicitly and
// keeps no state between calls.
package planner
