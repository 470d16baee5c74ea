// Package workspace resolves the members of a yarn workspace project.
//
// A Mapping associates every workspace name, including the root package, with
// its location relative to the project root. The root package always maps to
// the empty path. Mappings are built once per run by Resolve and are
// read-only afterwards.
package workspace
