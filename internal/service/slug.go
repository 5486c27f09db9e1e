package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrSlugExhausted reports that uniqueness suffixing hit its ceiling.
var ErrSlugExhausted = errors.New("slug negotiation exhausted suffix attempts")

const (
	maxSlugLength     = 120
	maxSuffixAttempts = 50
	fallbackSlug      = "article"
)

var asciiFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Letters that survive NFD untouched but still need folding. ł shows up in
// nearly every Polish title.
var slugReplacer = strings.NewReplacer(
	"ł", "l",
	"Ł", "l",
	"ß", "ss",
	"ø", "o",
	"Ø", "o",
)

// MakeSlug derives a URL-safe identifier from a title: accents folded,
// lowercased, anything but letters, digits, spaces and hyphens dropped,
// whitespace collapsed to single hyphens, capped at 120 characters.
func MakeSlug(title string) string {
	folded, _, err := transform.String(asciiFolder, slugReplacer.Replace(title))
	if err != nil {
		folded = title
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '\t':
			b.WriteRune(' ')
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}
	return slug
}

// SlugProber answers whether a candidate slug is already taken by a
// document other than the one identified by excludeID.
type SlugProber interface {
	SlugTaken(candidate string, excludeID uint) (bool, error)
}

// NegotiateSlug probes candidates derived from base, appending -2, -3, …
// until a free slug is found. It fails loudly once the attempt ceiling is
// reached rather than looping forever.
func NegotiateSlug(prober SlugProber, base string, excludeID uint) (string, error) {
	candidate := strings.TrimSpace(base)
	if candidate == "" {
		candidate = fallbackSlug
	}

	for attempt := 1; attempt <= maxSuffixAttempts; attempt++ {
		probe := candidate
		if attempt > 1 {
			probe = fmt.Sprintf("%s-%d", candidate, attempt)
		}

		taken, err := prober.SlugTaken(probe, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return probe, nil
		}
	}

	return "", ErrSlugExhausted
}
