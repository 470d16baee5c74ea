// Package update rewrites workspace manifests with the versions selected
// from an outdated report.
//
// The default TextPatcher edits the manifest text in place so indentation,
// key order and trailing newlines survive untouched. JSONPatcher is available
// for manifests where every dependency section must be updated. Writes are
// atomic and keep the file's mode and owner.
package update
