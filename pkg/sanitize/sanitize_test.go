package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_StripsScriptTags(t *testing.T) {
	out := Input("<script>alert(1)</script>")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
}

func TestInput_StripsControlChars(t *testing.T) {
	out := Input("hello\x00world\x1f!")
	assert.Equal(t, "helloworld!", out)
}

func TestInput_StripsUnsafeSchemes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		deny  string
	}{
		{"javascript scheme", "javascript:alert(1)", "javascript:"},
		{"vbscript scheme", "VBScript:msgbox", "vbscript:"},
		{"inline handler", `<img onerror=alert(1)>`, "onerror="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := strings.ToLower(Input(tt.input))
			assert.NotContains(t, out, tt.deny)
		})
	}
}

func TestInput_EscapesReservedChars(t *testing.T) {
	out := Input(`5 > 3 & "quoted"`)
	assert.NotContains(t, out, ">")
	assert.NotContains(t, out, `"`)
	assert.Contains(t, out, "&gt;")
	assert.Contains(t, out, "&amp;")
}

func TestInput_NeverFailsOnPlainText(t *testing.T) {
	assert.Equal(t, "blue cotton t-shirt", Input("blue cotton t-shirt"))
}

func TestStripHTML(t *testing.T) {
	out := StripHTML("<p>Soft <b>cotton</b> shirt</p>")
	assert.Equal(t, "Soft cotton shirt", out)
}

func TestValidateSearch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid query", "blue shirt", nil},
		{"empty", "", ErrSearchEmpty},
		{"whitespace only", "   ", ErrSearchEmpty},
		{"too long", strings.Repeat("a", 101), ErrSearchTooLong},
		{"sql injection", "' OR 1=1 --", ErrSearchInvalidChars},
		{"script marker", "script alert", ErrSearchBlocked},
		{"sql verb", "select name", ErrSearchBlocked},
		{"js global", "window.location", ErrSearchBlocked},
		{"angle brackets", "<b>shirt</b>", ErrSearchInvalidChars},
		{"case insensitive denylist", "SELECT name", ErrSearchBlocked},
		{"punctuation allowed", "shirts, size 2-3!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSearch(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSearchTokens_DropsStopWords(t *testing.T) {
	tokens, err := SearchTokens("the quick brown fox")
	require.NoError(t, err)
	assert.Equal(t, []string{"quick", "brown", "fox"}, tokens)
}

func TestSearchTokens_Lowercases(t *testing.T) {
	tokens, err := SearchTokens("Blue Shirt")
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "shirt"}, tokens)
}

func TestSearchTokens_KeepsPunctuationLiteral(t *testing.T) {
	tokens, err := SearchTokens("2-3 years.")
	require.NoError(t, err)
	// Tokens carry their punctuation as-is; the query layer escapes its
	// own pattern syntax
	assert.Equal(t, []string{"2-3", "years."}, tokens)
}

func TestSearchTokens_AllStopWords(t *testing.T) {
	tokens, err := SearchTokens("the and of")
	assert.ErrorIs(t, err, ErrSearchNoTokens)
	assert.Nil(t, tokens)
}

func TestSearchTokens_InvalidInput(t *testing.T) {
	tokens, err := SearchTokens("' OR 1=1 --")
	assert.Error(t, err)
	assert.Nil(t, tokens)
}
