package outdated

import (
	"regexp"

	"golang.org/x/mod/semver"
)

var regularVersion = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Bump kinds returned by BumpKind.
const (
	BumpMajor = "major"
	BumpMinor = "minor"
	BumpPatch = "patch"
)

// IsRegularVersion reports whether v is a plain MAJOR.MINOR.PATCH version,
// with no prerelease, build metadata, or range operator.
func IsRegularVersion(v string) bool {
	return regularVersion.MatchString(v)
}

// NewVersion returns the version row should be bumped to.
//
// Latest is used only when preferLatest is set and Latest is a regular
// version; registries may list dist-tags or prereleases there. Otherwise
// the range-compatible Wanted version is used.
func NewVersion(row Row, preferLatest bool) string {
	if preferLatest && IsRegularVersion(row.Latest) {
		return row.Latest
	}
	return row.Wanted
}

// WantsUpdate reports whether applying NewVersion would change the row.
func WantsUpdate(row Row, preferLatest bool) bool {
	return NewVersion(row, preferLatest) != row.Current
}

// BumpKind classifies the step from current to next as major, minor, or
// patch. It returns "" when either side is not a semantic version or next is
// not newer than current.
func BumpKind(current, next string) string {
	cur, nxt := canonical(current), canonical(next)
	if cur == "" || nxt == "" || semver.Compare(nxt, cur) <= 0 {
		return ""
	}
	switch {
	case semver.Major(cur) != semver.Major(nxt):
		return BumpMajor
	case semver.MajorMinor(cur) != semver.MajorMinor(nxt):
		return BumpMinor
	default:
		return BumpPatch
	}
}

func canonical(v string) string {
	if v == "" {
		return ""
	}
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
