// Package menu defines the compiled form of a menu template: an immutable
// tree of nodes, each carrying its static attributes and the directives the
// compiler extracted from them (conditional, two-way bindings, event
// bindings, navigation hints).
//
// Nothing in this package evaluates or mutates anything at runtime. The
// tree is built once by the mml compiler and then shared freely between the
// renderer, the event dispatcher, and the navigation graph; only the state
// the directives reference ever changes.
package menu
