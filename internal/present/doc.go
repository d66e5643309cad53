// Package present renders query results for people and programs. Text
// output keeps the wording of the interactive planner; JSON and YAML output
// serialize the planner types directly. WriteHCL exports a catalog in the
// HCL catalog format read by the loader.
package present
