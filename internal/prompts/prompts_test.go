package prompts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write template fixture: %v", err)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain filename", "gpt_template1.txt", false},
		{"filename with dots", "v1.2.txt", false},
		{"empty", "", true},
		{"parent dir", "../secrets.txt", true},
		{"bare dotdot", "..", true},
		{"forward slash", "sub/tpl.txt", true},
		{"backslash", `sub\tpl.txt`, true},
		{"absolute path", "/etc/passwd", true},
		{"hidden traversal", "a/../../b.txt", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr && !errors.Is(err, ErrUnsafeName) {
				t.Errorf("ValidateName(%q) = %v, want ErrUnsafeName", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateName(%q) = %v, want nil", tt.input, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "good.txt", "Hello {family_tree_json} world")
	writeTemplate(t, dir, "bad.txt", "No placeholder here")

	t.Run("valid template", func(t *testing.T) {
		tpl, err := Load(dir, "good.txt")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if tpl.Name != "good.txt" {
			t.Errorf("Name = %q, want %q", tpl.Name, "good.txt")
		}
		if tpl.Content != "Hello {family_tree_json} world" {
			t.Errorf("Content = %q, want file content verbatim", tpl.Content)
		}
	})

	t.Run("unsafe name never touches disk", func(t *testing.T) {
		// good.txt exists, but a traversal-shaped path to it must still
		// be rejected up front.
		_, err := Load(dir, "sub/../good.txt")
		if !errors.Is(err, ErrUnsafeName) {
			t.Errorf("Load() error = %v, want ErrUnsafeName", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(dir, "nope.txt")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("missing placeholder", func(t *testing.T) {
		_, err := Load(dir, "bad.txt")
		if !errors.Is(err, ErrMissingPlaceholder) {
			t.Errorf("Load() error = %v, want ErrMissingPlaceholder", err)
		}
	})
}

func TestOptionalTokens(t *testing.T) {
	tpl := &Template{Content: "Draw {family_tree_json} in {style} with a {mood} feel"}
	got := tpl.OptionalTokens()
	want := []string{"{style}", "{mood}"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("OptionalTokens() = %v, want %v", got, want)
	}

	bare := &Template{Content: "{family_tree_json}"}
	if tokens := bare.OptionalTokens(); tokens != nil {
		t.Errorf("OptionalTokens() = %v, want nil", tokens)
	}
}

func TestListAvailable(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "a.txt", "x")
	writeTemplate(t, dir, "b.txt", "y")
	writeTemplate(t, dir, "notes.md", "z")
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0755); err != nil {
		t.Fatal(err)
	}

	names, err := ListAvailable(dir)
	if err != nil {
		t.Fatalf("ListAvailable() error = %v", err)
	}
	want := []string{"a.txt", "b.txt"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ListAvailable() = %v, want %v", names, want)
	}

	if _, err := ListAvailable(filepath.Join(dir, "missing")); err == nil {
		t.Error("ListAvailable() on missing dir: want error, got nil")
	}
}
