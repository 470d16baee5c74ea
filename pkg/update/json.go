package update

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iancoleman/orderedmap"
)

var rangedVersion = regexp.MustCompile(`^(\^|~)?\d+\.\d+\.\d+$`)

// JSONPatcher is the structure-aware alternative to TextPatcher. It decodes
// the manifest, updates the dependency in every section listed in Fields,
// and re-encodes it with two-space indentation. Key order is kept, but any
// formatting that differs from the canonical encoding is not.
type JSONPatcher struct {
	Fields []string
}

// ApplyVersionPatch implements VersionPatcher. Declared versions other than
// an optional ^ or ~ followed by MAJOR.MINOR.PATCH are left alone, as with
// TextPatcher. The text is returned as is when no declaration changes.
func (p *JSONPatcher) ApplyVersionPatch(text, dependency, newVersion string) (string, error) {
	data, err := decodeManifest(text)
	if err != nil {
		return "", err
	}

	changed := false
	p.eachDeclaration(data, dependency, func(deps *orderedmap.OrderedMap, field, prefix, current string) {
		next := prefix + newVersion
		if next == current {
			return
		}
		deps.Set(dependency, next)
		data.Set(field, deps)
		changed = true
	})

	if !changed {
		return text, nil
	}

	out, err := marshalJSON(data)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(text, "\n") {
		out = append(out, '\n')
	}
	return string(out), nil
}

// Declares implements VersionPatcher. Invalid JSON declares nothing.
func (p *JSONPatcher) Declares(text, dependency string) bool {
	data, err := decodeManifest(text)
	if err != nil {
		return false
	}
	found := false
	p.eachDeclaration(data, dependency, func(*orderedmap.OrderedMap, string, string, string) {
		found = true
	})
	return found
}

func decodeManifest(text string) (*orderedmap.OrderedMap, error) {
	data := orderedmap.New()
	if err := json.Unmarshal([]byte(text), data); err != nil {
		return nil, fmt.Errorf("invalid JSON manifest: %w", err)
	}
	return data, nil
}

// eachDeclaration calls fn for every section in p.Fields that declares
// dependency with a ranged version, passing the range operator and the
// declared value.
func (p *JSONPatcher) eachDeclaration(data *orderedmap.OrderedMap, dependency string, fn func(deps *orderedmap.OrderedMap, field, prefix, current string)) {
	for _, field := range p.Fields {
		raw, ok := data.Get(field)
		if !ok {
			continue
		}
		deps := asOrderedMap(raw)
		if deps == nil {
			continue
		}

		declared, ok := deps.Get(dependency)
		if !ok {
			continue
		}
		current, isString := declared.(string)
		if !isString {
			continue
		}
		if m := rangedVersion.FindStringSubmatch(current); m != nil {
			fn(deps, field, m[1], current)
		}
	}
}

// asOrderedMap returns the dependency section as an ordered map. Nested
// objects decode as orderedmap values; anything else is skipped.
func asOrderedMap(raw interface{}) *orderedmap.OrderedMap {
	switch v := raw.(type) {
	case *orderedmap.OrderedMap:
		return v
	case orderedmap.OrderedMap:
		m := v
		return &m
	default:
		return nil
	}
}

// marshalJSON encodes data with two-space indentation and without HTML
// escaping, trimming the encoder's trailing newline.
func marshalJSON(data *orderedmap.OrderedMap) ([]byte, error) {
	disableOrderedMapEscape(data)

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// disableOrderedMapEscape turns off HTML escaping on m and every nested map;
// orderedmap escapes "<", ">" and "&" by default, which would rewrite URLs
// and scripts in the manifest.
func disableOrderedMapEscape(m *orderedmap.OrderedMap) {
	m.SetEscapeHTML(false)
	for _, key := range m.Keys() {
		val, _ := m.Get(key)
		m.Set(key, normalizeEscaping(val))
	}
}

func normalizeEscaping(val interface{}) interface{} {
	switch v := val.(type) {
	case *orderedmap.OrderedMap:
		disableOrderedMapEscape(v)
		return v
	case orderedmap.OrderedMap:
		m := v
		disableOrderedMapEscape(&m)
		return &m
	case []interface{}:
		for i, item := range v {
			v[i] = normalizeEscaping(item)
		}
		return v
	default:
		return val
	}
}
