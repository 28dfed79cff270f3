package sanitize

import (
	"errors"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ErrSearchEmpty        = errors.New("search input is empty")
	ErrSearchTooLong      = errors.New("search input exceeds 100 characters")
	ErrSearchInvalidChars = errors.New("search input contains invalid characters")
	ErrSearchBlocked      = errors.New("search input contains blocked patterns")
	ErrSearchNoTokens     = errors.New("search input contains no usable terms")
)

const (
	maxSearchLength = 100
	maxTokenLength  = 50
)

var (
	controlChars    = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	scriptTags      = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>|</?script[^>]*>`)
	unsafeSchemes   = regexp.MustCompile(`(?i)(javascript|vbscript)\s*:|data\s*:\s*[^,]*(text/html|application/javascript|base64)`)
	inlineHandlers  = regexp.MustCompile(`(?i)\bon[a-z]+\s*=`)
	searchCharset   = regexp.MustCompile(`^[A-Za-z0-9 \-_.,!?()]+$`)
	tokenCharset    = regexp.MustCompile(`^[a-z0-9\-_.,!?()]+$`)
	stripTagsPolicy = bluemonday.StrictPolicy()
)

// Substrings that indicate injection attempts. Matched case-insensitively
// against the raw search input.
var blockedPatterns = []string{
	"select ", "insert ", "update ", "delete ", "drop ", "union ", "exec ",
	"script", "alert(", "prompt(", "confirm(", "eval(", "expression(",
	"onerror", "onload", "javascript:", "vbscript:",
	"document.", "window.", "--", "/*", "*/",
}

// English stop words excluded from search tokenization
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "were": true,
	"will": true, "with": true,
}

// Input returns a safe-for-render copy of free text. It strips null and
// control characters, script tags, unsafe URL schemes and inline event
// handlers, then HTML-escapes the reserved characters. It never fails.
func Input(text string) string {
	s := controlChars.ReplaceAllString(text, "")
	s = scriptTags.ReplaceAllString(s, "")
	s = unsafeSchemes.ReplaceAllString(s, "")
	s = inlineHandlers.ReplaceAllString(s, "")
	return html.EscapeString(s)
}

// StripHTML removes all markup from rich text content fields, keeping the
// text itself. Used for product descriptions and customer-supplied notes.
func StripHTML(text string) string {
	s := controlChars.ReplaceAllString(text, "")
	return html.UnescapeString(stripTagsPolicy.Sanitize(s))
}

// ValidateSearch verifies a raw search query is safe to process. It reports
// an error for empty input, over-long input, input that sanitizes to nothing,
// characters outside the allowed set, or injection-indicative substrings.
func ValidateSearch(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrSearchEmpty
	}
	if len(trimmed) > maxSearchLength {
		return ErrSearchTooLong
	}
	if strings.TrimSpace(Input(trimmed)) == "" {
		return ErrSearchEmpty
	}
	if !searchCharset.MatchString(trimmed) {
		return ErrSearchInvalidChars
	}

	lower := strings.ToLower(trimmed)
	for _, pattern := range blockedPatterns {
		if strings.Contains(lower, pattern) {
			return ErrSearchBlocked
		}
	}
	return nil
}

// SearchTokens validates a query and breaks it into ordered tokens. Tokens
// are lowercased plain literals with stop words dropped; whichever layer
// matches them against a pattern syntax is responsible for escaping its own
// metacharacters.
func SearchTokens(text string) ([]string, error) {
	if err := ValidateSearch(text); err != nil {
		return nil, err
	}

	cleaned := strings.ToLower(strings.TrimSpace(text))
	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if stopWords[word] {
			continue
		}
		if !tokenCharset.MatchString(word) {
			return nil, ErrSearchInvalidChars
		}
		if len(word) > maxTokenLength {
			return nil, ErrSearchTooLong
		}
		tokens = append(tokens, word)
	}

	if len(tokens) == 0 {
		return nil, ErrSearchNoTokens
	}
	return tokens, nil
}

// IsSearchError reports whether err is one of the search validation errors,
// which callers map to a 400 rather than a 500
func IsSearchError(err error) bool {
	return errors.Is(err, ErrSearchEmpty) ||
		errors.Is(err, ErrSearchTooLong) ||
		errors.Is(err, ErrSearchInvalidChars) ||
		errors.Is(err, ErrSearchBlocked) ||
		errors.Is(err, ErrSearchNoTokens)
}
