package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/clubsphere/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Weekly chess meetups"); got != "Weekly chess meetups" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_KeepsFormatting(t *testing.T) {
	input := "<p><strong>Bold</strong> and <em>italic</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected formatting preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Hello</p><script>alert('xss')</script>"
	if got := htmlsanitize.Sanitize(input); got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="javascript:alert('xss')">Click</a>`)
	if strings.Contains(got, "javascript:") {
		t.Errorf("expected javascript: href removed, got %q", got)
	}
}

func TestSanitize_RemovesIframe(t *testing.T) {
	got := htmlsanitize.Sanitize(`<p>Content</p><iframe src="https://evil.com"></iframe>`)
	if strings.Contains(got, "iframe") {
		t.Error("expected iframe to be removed")
	}
	if !strings.Contains(got, "Content") {
		t.Error("expected safe content to be preserved")
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"  Room 101  ", "Room 101"},
		{"<b>Chess</b> Club", "Chess Club"},
		{"<script>alert(1)</script>Title", "Title"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := htmlsanitize.PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
