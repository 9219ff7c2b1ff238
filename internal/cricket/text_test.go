package cricket

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "entities decoded", in: "Royal &amp; Ancient", want: "Royal & Ancient"},
		{name: "apostrophe entity", in: "St George&#x27;s", want: "St George's"},
		{name: "whitespace collapsed", in: "  New\n Zealand \t A ", want: "New Zealand A"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanText(tt.in); got != tt.want {
				t.Fatalf("cleanText(%q)=%q want=%q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	if got := slugify("India vs Australia, 1st Test"); got != "india-vs-australia-1st-test" {
		t.Fatalf("unexpected slug: %q", got)
	}
	if got := slugify("  !!  "); got != "match" {
		t.Fatalf("expected fallback slug, got %q", got)
	}
}

func TestNormalizeKey(t *testing.T) {
	if got := normalizeKey("New Zealand A"); got != "newzealanda" {
		t.Fatalf("unexpected key: %q", got)
	}
	if got := normalizeKey("U.A.E."); got != "uae" {
		t.Fatalf("unexpected key: %q", got)
	}
}
