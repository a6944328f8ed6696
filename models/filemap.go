package models

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FileMap is an insertion-ordered mapping from filename to file content.
// Plain Go maps and encoding/json both discard key order, but the order
// files were created in matters: the first entry is the canonical entry
// file. The JSON wire form is a regular object whose key order is
// preserved on both decode and encode.
type FileMap struct {
	names    []string
	contents map[string]string
}

// Set stores content under name. A new name is appended to the insertion
// order; an existing name keeps its position and gets new content.
func (m *FileMap) Set(name, content string) {
	if m.contents == nil {
		m.contents = make(map[string]string)
	}
	if _, ok := m.contents[name]; !ok {
		m.names = append(m.names, name)
	}
	m.contents[name] = content
}

// Get returns the content stored under name.
func (m *FileMap) Get(name string) (string, bool) {
	content, ok := m.contents[name]
	return content, ok
}

// Has reports whether name is present.
func (m *FileMap) Has(name string) bool {
	_, ok := m.contents[name]
	return ok
}

// Len returns the number of files.
func (m *FileMap) Len() int {
	return len(m.names)
}

// Names returns filenames in insertion order.
func (m *FileMap) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// First returns the name of the first-created file, the canonical entry
// file of a project.
func (m *FileMap) First() (string, bool) {
	if len(m.names) == 0 {
		return "", false
	}
	return m.names[0], true
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m FileMap) MarshalJSON() ([]byte, error) {
	out := []byte("{}")
	var err error
	for _, name := range m.names {
		out, err = sjson.SetBytes(out, escapePath(name), m.contents[name])
		if err != nil {
			return nil, fmt.Errorf("encode file %q: %w", name, err)
		}
	}
	return out, nil
}

// UnmarshalJSON decodes a JSON object, preserving its key order.
func (m *FileMap) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid JSON for file map")
	}
	parsed := gjson.ParseBytes(data)
	if parsed.Type == gjson.Null {
		m.names = nil
		m.contents = nil
		return nil
	}
	if !parsed.IsObject() {
		return fmt.Errorf("file map must be a JSON object")
	}

	m.names = nil
	m.contents = make(map[string]string)
	var badValue string
	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			badValue = key.String()
			return false
		}
		m.Set(key.String(), value.String())
		return true
	})
	if badValue != "" {
		return fmt.Errorf("file %q: content must be a string", badValue)
	}
	return nil
}

// escapePath neutralizes sjson path syntax so filenames like "App.jsx"
// are treated as single keys rather than nested paths.
func escapePath(name string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`.`, `\.`,
		`*`, `\*`,
		`?`, `\?`,
		`|`, `\|`,
	)
	return r.Replace(name)
}
