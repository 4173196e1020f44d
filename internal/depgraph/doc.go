// Package depgraph implements the dependency-graph and topological-sort
// component of the plug-in lifecycle engine plus the semantic-
// version compatibility rule the resolver relies on.
//
// A Graph is built fresh on every load pass: one node per plug-in whose
// dependency verdict is Yes, one edge per declared dependency pointing from
// the dependency to its dependant. Sort performs the depth-first, three-
// color post-order traversal that produces a legal load order or reports a
// cycle.
package depgraph
