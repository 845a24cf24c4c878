package view

import (
	"strings"
	"testing"
)

func TestServiceIconFallsBack(t *testing.T) {
	if got := ServiceIcon("Chart-Line "); string(got) != serviceIcons.lookup["chart-line"].SVG {
		t.Fatalf("expected chart-line icon, got %q", got)
	}
	if got := ServiceIcon("no-such-icon"); string(got) != serviceIcons.fallback.SVG {
		t.Fatalf("expected fallback icon, got %q", got)
	}
	if !IsServiceIcon("briefcase") || IsServiceIcon("rocket") {
		t.Fatal("unexpected IsServiceIcon result")
	}
}

func TestSocialIconOptions(t *testing.T) {
	options := SocialIconOptions()
	keys := make([]string, 0, len(options))
	for _, option := range options {
		keys = append(keys, option.Key)
	}
	joined := strings.Join(keys, ",")
	for _, want := range []string{"linkedin", "twitter", "facebook", "instagram"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %s in %s", want, joined)
		}
	}
	if !strings.HasPrefix(string(SocialIcon("")), "<svg") {
		t.Fatal("expected an svg for an empty key")
	}
}
