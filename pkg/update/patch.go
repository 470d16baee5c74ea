package update

import (
	"regexp"
	"strings"

	"github.com/ajxudir/wsbump/pkg/config"
)

// VersionPatcher rewrites the declared version of one dependency in the text
// of a manifest. Implementations must return text unchanged when the
// dependency is not declared in a form they recognize.
//
// Declares reports whether text holds a declaration of dependency that
// ApplyVersionPatch would rewrite.
type VersionPatcher interface {
	ApplyVersionPatch(text, dependency, newVersion string) (string, error)
	Declares(text, dependency string) bool
}

// NewPatcher returns the patcher selected by update.rewriter.
func NewPatcher(cfg *config.Config) VersionPatcher {
	if cfg.Update.Rewriter == config.RewriterJSON {
		return &JSONPatcher{Fields: cfg.Update.Fields}
	}
	return &TextPatcher{AllOccurrences: cfg.Update.AllOccurrences}
}

// TextPatcher replaces `"<dependency>": "<^|~|><MAJOR.MINOR.PATCH>"` in place,
// keeping the range operator and leaving every other byte of the manifest
// untouched.
//
// Only the first occurrence is replaced unless AllOccurrences is set, so a
// dependency listed in both dependencies and devDependencies is by default
// bumped in whichever section comes first.
type TextPatcher struct {
	AllOccurrences bool
}

func declaredVersionPattern(dependency string) *regexp.Regexp {
	return regexp.MustCompile(`"` + regexp.QuoteMeta(dependency) + `": "(\^|~)?\d+\.\d+\.\d+"`)
}

// Declares implements VersionPatcher.
func (p *TextPatcher) Declares(text, dependency string) bool {
	return declaredVersionPattern(dependency).MatchString(text)
}

// ApplyVersionPatch implements VersionPatcher.
func (p *TextPatcher) ApplyVersionPatch(text, dependency, newVersion string) (string, error) {
	limit := 1
	if p.AllOccurrences {
		limit = -1
	}

	matches := declaredVersionPattern(dependency).FindAllStringSubmatchIndex(text, limit)
	if len(matches) == 0 {
		return text, nil
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		prefix := ""
		if m[2] >= 0 {
			prefix = text[m[2]:m[3]]
		}
		sb.WriteString(text[last:m[0]])
		sb.WriteString(`"` + dependency + `": "` + prefix + newVersion + `"`)
		last = m[1]
	}
	sb.WriteString(text[last:])
	return sb.String(), nil
}
