// Package render turns an evaluated form snapshot into a renderer-neutral
// View and defines the contract renderers (HTML, terminal) implement.
//
// BuildView is the only place presentation rules live: which CSS state an
// input gets, when feedback is suppressed on a pristine form, how the
// strength line reads and whether the submit control is enabled. Renderers
// only lay the View out.
package render
