// Package dag holds the prerequisite graph of a catalog. Build turns a
// catalog snapshot into a Graph with one node per course and one edge
// "prerequisite -> dependent" per distinct prerequisite that names another
// course in the same catalog. The graph is built fresh for every ordering
// request and is never shared between calls.
package dag
