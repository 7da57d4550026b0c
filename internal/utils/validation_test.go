package utils_test

import (
	"strings"
	"testing"

	"github.com/opencampus/doctrack/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	assert.NoError(t, utils.ValidateID("doc-123_A"))

	assert.ErrorIs(t, utils.ValidateID(""), utils.ErrEmptyID)
	assert.ErrorIs(t, utils.ValidateID("has space"), utils.ErrInvalidIDFormat)
	assert.ErrorIs(t, utils.ValidateID("../etc/passwd"), utils.ErrInvalidIDFormat)
	assert.ErrorIs(t, utils.ValidateID(strings.Repeat("a", 65)), utils.ErrIDTooLong)
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, utils.ValidateTitle("Syllabus Revision"))
	assert.ErrorIs(t, utils.ValidateTitle("   "), utils.ErrEmptyTitle)
	assert.ErrorIs(t, utils.ValidateTitle(strings.Repeat("a", 256)), utils.ErrTitleTooLong)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;", utils.SanitizeString("<script>"))
	assert.Equal(t, "line1\nline2\ttabbed", utils.SanitizeString("line1\nline2\ttabbed"))
	assert.Equal(t, "clean", utils.SanitizeString("cle\x00an"), "control characters are stripped")
}

func TestTrimAndValidate(t *testing.T) {
	out, err := utils.TrimAndValidate("  hello  ", 10)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	_, err = utils.TrimAndValidate("   ", 10)
	assert.ErrorIs(t, err, utils.ErrEmptyString)

	_, err = utils.TrimAndValidate("toolongvalue", 5)
	assert.ErrorIs(t, err, utils.ErrStringTooLong)
}
