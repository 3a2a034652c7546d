package sanitize_utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Text_WithPlainInput_ReturnsUnchanged(t *testing.T) {
	assert.Equal(t, "Acme Corp", Text("Acme Corp"))
}

func Test_Text_WithMarkup_StripsTags(t *testing.T) {
	assert.Equal(t, "alert(1)", Text("<script>alert(1)</script>"))
	assert.Equal(t, "bold", Text("<b>bold</b>"))
}

func Test_Text_WithControlCharacters_StripsThem(t *testing.T) {
	assert.Equal(t, "term", Text("te\x00rm\x1b"))
}

func Test_Text_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "John Smith", Text("  John Smith  "))
}

func Test_SearchTerm_EscapesLikeMetacharacters(t *testing.T) {
	assert.Equal(t, `100\%`, SearchTerm("100%"))
	assert.Equal(t, `a\_b`, SearchTerm("a_b"))
	assert.Equal(t, `a\\b`, SearchTerm(`a\b`))
}

func Test_SplitFullName_WithTwoTokens_ReturnsBothNames(t *testing.T) {
	first, last, ok := SplitFullName("John Smith")

	assert.True(t, ok)
	assert.Equal(t, "John", first)
	assert.Equal(t, "Smith", last)
}

func Test_SplitFullName_WithSingleToken_ReturnsFirstNameOnly(t *testing.T) {
	first, last, ok := SplitFullName("John")

	assert.False(t, ok)
	assert.Equal(t, "John", first)
	assert.Empty(t, last)
}

func Test_SplitFullName_WithThreeTokens_ReturnsFirstTokenOnly(t *testing.T) {
	first, _, ok := SplitFullName("John Smith Jones")

	assert.False(t, ok)
	assert.Equal(t, "John", first)
}

func Test_SplitFullName_WithEmptyTerm_ReturnsNotOk(t *testing.T) {
	first, last, ok := SplitFullName("   ")

	assert.False(t, ok)
	assert.Empty(t, first)
	assert.Empty(t, last)
}
