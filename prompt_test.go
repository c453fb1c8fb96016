package newsgenie_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/newsgenie"
	"github.com/stretchr/testify/assert"
)

func TestBuildSummaryPrompt(t *testing.T) {
	t.Parallel()

	t.Run("contains instructions and article", func(t *testing.T) {
		t.Parallel()

		prompt := newsgenie.BuildSummaryPrompt("The article body.")

		assert.Contains(t, prompt, "EXACTLY 5 important bullet points")
		assert.Contains(t, prompt, `"• "`)
		assert.Contains(t, prompt, "label them as opinion in parentheses")
		assert.True(t, strings.HasSuffix(prompt, "ARTICLE:\nThe article body."))
	})

	t.Run("truncates article text", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("a", newsgenie.MaxPromptChars) + "TAIL"

		prompt := newsgenie.BuildSummaryPrompt(text)

		assert.NotContains(t, prompt, "TAIL")
		assert.Contains(t, prompt, strings.Repeat("a", newsgenie.MaxPromptChars))
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	t.Run("returns short strings unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "héllo", newsgenie.Truncate("héllo", 10))
	})

	t.Run("cuts on rune boundaries", func(t *testing.T) {
		t.Parallel()

		got := newsgenie.Truncate("ééééé", 3)

		assert.Equal(t, "ééé", got)
		assert.True(t, utf8.ValidString(got))
	})

	t.Run("returns empty for non-positive limits", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, newsgenie.Truncate("abc", 0))
	})
}
