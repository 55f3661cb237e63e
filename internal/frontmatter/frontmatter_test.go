package frontmatter

import (
	"testing"
)

func TestParse(t *testing.T) {
	input := "---\ntitle: Button\ndescription: \"Triggers an action\"\n---\n\n# Body content\nHello world"
	fields, body, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields.Title != "Button" {
		t.Errorf("title = %q, want %q", fields.Title, "Button")
	}
	if fields.Description != "Triggers an action" {
		t.Errorf("description = %q, want %q", fields.Description, "Triggers an action")
	}
	if body != "# Body content\nHello world" {
		t.Errorf("body = %q, want %q", body, "# Body content\nHello world")
	}
}

func TestParseMissingOpeningDelimiter(t *testing.T) {
	_, _, err := Parse("no frontmatter here")
	if err == nil {
		t.Fatal("expected error for missing frontmatter")
	}
}

func TestParseMissingClosingDelimiter(t *testing.T) {
	_, _, err := Parse("---\ntitle: test\ndescription: foo\n")
	if err == nil {
		t.Fatal("expected error for missing closing delimiter")
	}
}

func TestParseNoNewlineAfterOpening(t *testing.T) {
	_, _, err := Parse("---")
	if err == nil {
		t.Fatal("expected error for missing content after delimiter")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, _, err := Parse("---\ndescription: [unclosed\n---\nbody")
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestParseEmptyFrontmatter(t *testing.T) {
	fields, body, err := Parse("---\n---\nJust a body")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields.Description != "" {
		t.Errorf("description = %q, want empty", fields.Description)
	}
	if body != "Just a body" {
		t.Errorf("body = %q, want %q", body, "Just a body")
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"frontmatter wins", "---\ndescription: From YAML\n---\nBody text", "From YAML"},
		{"first paragraph", "---\ntitle: x\n---\n# Switch\n\nA toggle\nwith two states.\n\nMore.", "A toggle with two states."},
		{"plain markdown", "# Sheet\n\nSlides in from the edge.", "Slides in from the edge."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Description(tt.raw); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}
