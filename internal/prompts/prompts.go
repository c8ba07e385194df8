// Package prompts loads and validates the prompt templates served to the
// front-end. Templates are plain text files with literal placeholder
// tokens that an external caller substitutes before sending the prompt to
// an AI service.
package prompts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RequiredPlaceholder must appear verbatim in every template.
const RequiredPlaceholder = "{family_tree_json}"

// OptionalPlaceholders may appear in a template; their absence is not an
// error.
var OptionalPlaceholders = []string{"{theme}", "{style}", "{mood}"}

var (
	// ErrUnsafeName is returned before any filesystem access when a
	// template name could resolve outside the templates directory.
	ErrUnsafeName = errors.New("template name must not contain path separators or '..'")

	// ErrMissingPlaceholder is returned when a template does not contain
	// RequiredPlaceholder.
	ErrMissingPlaceholder = errors.New("template is missing required placeholder " + RequiredPlaceholder)
)

// Template is a prompt template read from disk.
type Template struct {
	Name    string
	Content string
}

// ValidateName rejects template names that contain a parent-directory
// segment or a path separator. Names never come from request input in the
// current design, but the check guards against a bad PROMPT_TEMPLATE_NAME
// all the same.
func ValidateName(name string) error {
	if name == "" {
		return ErrUnsafeName
	}
	if strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) {
		return ErrUnsafeName
	}
	return nil
}

// Load reads and validates the named template beneath dir. The file is
// read fresh on every call; templates are operator-owned and may change
// between requests.
func Load(dir, name string) (*Template, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("template %q not found: %w", name, err)
		}
		return nil, fmt.Errorf("failed to read template %q: %w", name, err)
	}
	content := string(data)
	if !strings.Contains(content, RequiredPlaceholder) {
		return nil, fmt.Errorf("template %q: %w", name, ErrMissingPlaceholder)
	}
	return &Template{Name: name, Content: content}, nil
}

// OptionalTokens returns which of the optional placeholders the template
// contains, in declaration order.
func (t *Template) OptionalTokens() []string {
	var found []string
	for _, token := range OptionalPlaceholders {
		if strings.Contains(t.Content, token) {
			found = append(found, token)
		}
	}
	return found
}

// ListAvailable returns the names of all .txt files in dir, for startup
// diagnostics when the configured template fails validation.
func ListAvailable(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".txt") {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
