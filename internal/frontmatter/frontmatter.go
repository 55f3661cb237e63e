// Package frontmatter parses YAML front matter from module README files.
// The format is: ---\nyaml\n---\nbody.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fields holds the YAML fields recognized in a module README.
type Fields struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Parse splits a README into front matter fields and body content.
// The file must start with "---\n", followed by YAML, then "---\n", then body.
func Parse(raw string) (Fields, string, error) {
	const delimiter = "---"
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	if !strings.HasPrefix(raw, delimiter) {
		return Fields{}, "", fmt.Errorf("missing opening frontmatter delimiter")
	}

	// Find the first newline after the opening delimiter.
	firstNewline := strings.Index(raw, "\n")
	if firstNewline < 0 {
		return Fields{}, "", fmt.Errorf("missing content after opening delimiter")
	}
	rest := raw[firstNewline+1:]

	// The closing delimiter must start a line.
	var yamlBlock, body string
	switch {
	case strings.HasPrefix(rest, delimiter):
		body = rest[len(delimiter):]
	default:
		idx := strings.Index(rest, "\n"+delimiter)
		if idx < 0 {
			return Fields{}, "", fmt.Errorf("missing closing frontmatter delimiter")
		}
		yamlBlock = rest[:idx]
		body = rest[idx+1+len(delimiter):]
	}

	var fm Fields
	if err := yaml.Unmarshal([]byte(yamlBlock), &fm); err != nil {
		return Fields{}, "", fmt.Errorf("parse frontmatter YAML: %w", err)
	}
	fm.Title = strings.TrimSpace(fm.Title)
	fm.Description = strings.TrimSpace(fm.Description)

	return fm, strings.TrimSpace(body), nil
}

// Description returns the description of a README: the front matter field
// when present, otherwise the first paragraph of the body. Files without
// front matter are treated as plain body text.
func Description(raw string) string {
	fields, body, err := Parse(raw)
	if err != nil {
		body = strings.TrimSpace(raw)
	} else if fields.Description != "" {
		return fields.Description
	}
	return firstParagraph(body)
}

// firstParagraph returns the first block of non-heading text.
func firstParagraph(body string) string {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			if len(lines) > 0 {
				break
			}
			continue
		}
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, " ")
}
