package colors

import (
	"strings"
	"testing"
)

// TestConvertANSIToHTML tests span generation for bold, color and reset
// sequences and the escaping of the text between them
func TestConvertANSIToHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text is escaped", `x & 'y' "z"`, "x &amp; &#39;y&#39; &#34;z&#34;"},
		{"bold and color", "\x1b[1;31mA<b>\x1b[0m plain", `<span style="font-weight:bold;color:#cd3131">A&lt;b&gt;</span> plain`},
		{"nested spans", "\x1b[32mx\x1b[1my\x1b[0mz", `<span style="color:#0dbc79">x<span style="font-weight:bold">y</span></span>z`},
		{"bright color", "\x1b[91merror\x1b[0m", `<span style="color:#f14c4c">error</span>`},
		{"empty reset", "\x1b[31ma\x1b[mb", `<span style="color:#cd3131">a</span>b`},
		{"reset inside params", "\x1b[31ma\x1b[0;1mb", `<span style="color:#cd3131">a</span><span style="font-weight:bold">b</span>`},
		{"unknown code dropped", "\x1b[4mu\x1b[0m", "u"},
		{"unclosed span", "\x1b[36mcyan", `<span style="color:#11a8cd">cyan</span>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertANSIToHTML(tt.in); got != tt.want {
				t.Errorf("ConvertANSIToHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestStyledTextToHTML tests that a color rendered by this package survives
// the HTML conversion
func TestStyledTextToHTML(t *testing.T) {
	ForceANSI()
	defer SetEnabled(false)

	got := ConvertANSIToHTML(BOLD_RED.Sprint("a<b"))
	for _, want := range []string{"font-weight:bold", "color:#f14c4c", "a&lt;b", "</span>"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, "\x1b") {
		t.Errorf("Expected no escape sequences left, got %q", got)
	}
}
