// Package obsidian renders books as Obsidian markdown notes with YAML
// frontmatter.
package obsidian

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Note is a markdown document with YAML frontmatter and a body.
type Note struct {
	Frontmatter *Frontmatter
	Body        string
}

// Frontmatter holds note metadata. Keys are always serialized in sorted
// order and tags in flow style, so equal notes produce equal bytes.
type Frontmatter struct {
	fields map[string]any
}

// NewFrontmatter creates an empty Frontmatter
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{fields: make(map[string]any)}
}

// Set stores value under key
func (f *Frontmatter) Set(key string, value any) {
	f.fields[key] = value
}

// Get returns the value stored under key
func (f *Frontmatter) Get(key string) (any, bool) {
	val, ok := f.fields[key]
	return val, ok
}

// GetString returns the string under key, or "" for missing or non-string values
func (f *Frontmatter) GetString(key string) string {
	s, _ := f.fields[key].(string)
	return s
}

// GetInt returns the int under key, or 0
func (f *Frontmatter) GetInt(key string) int {
	i, _ := f.fields[key].(int)
	return i
}

// GetStringArray returns the list under key, or an empty slice
func (f *Frontmatter) GetStringArray(key string) []string {
	return TagsFromAny(f.fields[key])
}

// Keys returns the frontmatter keys in sorted order
func (f *Frontmatter) Keys() []string {
	keys := make([]string, 0, len(f.fields))
	for key := range f.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MarshalYAML writes keys in sorted order with tags as a flow sequence.
func (f *Frontmatter) MarshalYAML() (any, error) {
	keys := f.Keys()
	node := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: make([]*yaml.Node, 0, len(keys)*2),
	}

	for _, key := range keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}

		valueNode := &yaml.Node{}
		if key == "tags" {
			valueNode.Kind = yaml.SequenceNode
			valueNode.Style = yaml.FlowStyle
			for _, tag := range TagsFromAny(f.fields[key]) {
				valueNode.Content = append(valueNode.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: tag})
			}
		} else if err := valueNode.Encode(f.fields[key]); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, keyNode, valueNode)
	}

	return node, nil
}

// ParseMarkdown splits a note into frontmatter and body. A document without
// a complete frontmatter block is all body.
func ParseMarkdown(content []byte) (*Note, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")

	rest, ok := strings.CutPrefix(text, "---\n")
	if !ok {
		return &Note{Frontmatter: NewFrontmatter(), Body: text}, nil
	}

	var header, body string
	if strings.HasPrefix(rest, "---\n") {
		body = strings.TrimPrefix(rest, "---\n")
	} else if header, body, ok = strings.Cut(rest, "\n---\n"); !ok {
		return &Note{Frontmatter: NewFrontmatter(), Body: text}, nil
	}

	var data map[string]any
	if err := yaml.Unmarshal([]byte(header), &data); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	fm := NewFrontmatter()
	for key, value := range data {
		fm.Set(key, value)
	}

	return &Note{Frontmatter: fm, Body: strings.TrimPrefix(body, "\n")}, nil
}

// Build serializes the note. Empty frontmatter is omitted.
func (n *Note) Build() ([]byte, error) {
	var buf bytes.Buffer

	if n.Frontmatter != nil && len(n.Frontmatter.fields) > 0 {
		header, err := yaml.Marshal(n.Frontmatter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(header)
		buf.WriteString("---\n\n")
	}

	buf.WriteString(n.Body)
	return buf.Bytes(), nil
}
