// Package scheduler turns a prerequisite graph into a recommended study
// order.
//
// # How It Works
//
// Order runs Kahn's algorithm over a private copy of the graph's in-degrees:
//  1. Every code with in-degree zero goes into the ready set.
//  2. The lexicographically smallest ready code is removed and appended to
//     the order.
//  3. Each of its dependents loses one in-degree; those that reach zero join
//     the ready set.
//  4. Repeat until the ready set is empty.
//
// The ready set is a min-heap, so ties between independent courses are
// always broken the same way and the same graph always yields the same
// order.
//
// # Cycles
//
// Courses on a prerequisite cycle, and every course that depends on one,
// never reach in-degree zero. When the order comes out shorter than the
// graph the Result is marked incomplete. The partial order is still valid:
// every placed course comes after all of its placed prerequisites. The
// unplaced codes are reported in Blocked together with one concrete loop in
// Cycle.
package scheduler
