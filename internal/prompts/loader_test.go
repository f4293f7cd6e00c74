package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownKey(t *testing.T) {
	ClearCache()

	prompt, err := Get("generation.json", "resume-content")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Position}}")
	assert.Contains(t, prompt, "{{.Company}}")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("generation.json", "no-such-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-key")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "resume-content")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("generation.json", "no-such-key")
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Place}}. Again: {{.Name}}."
	result := Format(template, map[string]string{
		"Name":  "Jane",
		"Place": "Acme",
	})
	assert.Equal(t, "Hello Jane, welcome to Acme. Again: Jane.", result)
}

func TestFormat_UnusedPlaceholderLeftIntact(t *testing.T) {
	result := Format("Hi {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hi {{.Name}}", result)
}

func TestAllPromptFilesParse(t *testing.T) {
	ClearCache()

	for _, filename := range []string{"generation.json", "formatting.json", "parsing.json"} {
		keys, err := loadFile(filename)
		require.NoError(t, err, filename)
		assert.NotEmpty(t, keys, filename)
		for key, body := range keys {
			assert.False(t, strings.TrimSpace(body) == "", "%s/%s is empty", filename, key)
		}
	}
}
