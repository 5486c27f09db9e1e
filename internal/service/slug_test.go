package service

import (
	"strings"
	"testing"
)

func TestMakeSlug(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "Café déjà vu!", want: "cafe-deja-vu"},
		{input: "Hello World", want: "hello-world"},
		{input: "Żółć   i  łąka", want: "zolc-i-laka"},
		{input: "  --Już--  ", want: "juz"},
		{input: "C++ & Go: a comparison?", want: "c-go-a-comparison"},
		{input: "!!!", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := MakeSlug(tc.input); got != tc.want {
			t.Fatalf("MakeSlug(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestMakeSlugCapsLength(t *testing.T) {
	long := strings.Repeat("word ", 60)
	slug := MakeSlug(long)
	if len(slug) > 120 {
		t.Fatalf("expected slug capped at 120 chars, got %d", len(slug))
	}
	if strings.HasSuffix(slug, "-") || strings.HasPrefix(slug, "-") {
		t.Fatalf("expected trimmed slug, got %q", slug)
	}
}

type mapProber map[string]bool

func (m mapProber) SlugTaken(candidate string, _ uint) (bool, error) {
	return m[candidate], nil
}

func TestNegotiateSlugPicksNextFreeSuffix(t *testing.T) {
	existing := mapProber{"post": true, "post-2": true}

	got, err := NegotiateSlug(existing, "post", 0)
	if err != nil {
		t.Fatalf("negotiate slug: %v", err)
	}
	if got != "post-3" {
		t.Fatalf("expected post-3, got %q", got)
	}
}

func TestNegotiateSlugReturnsBaseWhenFree(t *testing.T) {
	got, err := NegotiateSlug(mapProber{}, "fresh", 0)
	if err != nil {
		t.Fatalf("negotiate slug: %v", err)
	}
	if got != "fresh" {
		t.Fatalf("expected fresh, got %q", got)
	}
}

type saturatedProber struct{}

func (saturatedProber) SlugTaken(string, uint) (bool, error) { return true, nil }

func TestNegotiateSlugFailsAfterCeiling(t *testing.T) {
	if _, err := NegotiateSlug(saturatedProber{}, "post", 0); err != ErrSlugExhausted {
		t.Fatalf("expected ErrSlugExhausted, got %v", err)
	}
}
