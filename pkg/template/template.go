// Package template loads prompt templates and fills {{NAME}} placeholders
// with per-row variable values.
package template

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// LoadFile reads a plain-text prompt template from path.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template file %s: %w", path, err)
	}
	return string(data), nil
}

// Fill replaces every {{NAME}} placeholder in tmpl with the corresponding
// value from vars. Variables with empty values substitute as empty strings.
// Placeholders with no corresponding variable are left unchanged, so filling
// an already-filled template with the same vars is a no-op.
func Fill(tmpl string, vars map[string]string) string {
	result := tmpl
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// Placeholders returns the distinct placeholder names in tmpl, in order of
// first appearance.
func Placeholders(tmpl string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
