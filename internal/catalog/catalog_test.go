package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Languages(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, []string{"Spanish", "French", "Dutch"}, c.ListLanguages())
}

func TestDefault_LessonsFor(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		language string
		code     string
		lessons  []string
	}{
		{"Spanish", "es-ES", []string{"Spanish Basic Greetings", "Spanish Common Nouns"}},
		{"French", "fr-FR", []string{"French Basic Greetings", "French Food Items"}},
		{"Dutch", "nl-NL", []string{"Dutch Basic Greetings", "Dutch Everyday Nouns"}},
	}
	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			lessons, err := c.LessonsFor(tt.language)
			require.NoError(t, err)

			var names []string
			for _, l := range lessons {
				names = append(names, l.Name)
				assert.Equal(t, tt.code, l.LanguageCode)
				assert.NotEmpty(t, l.Questions)
			}
			assert.Equal(t, tt.lessons, names)
		})
	}
}

func TestDefault_DutchGreetings(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	lessons, err := c.LessonsFor("Dutch")
	require.NoError(t, err)
	assert.Equal(t, "Dutch Basic Greetings", lessons[0].Name)
	q := lessons[0].Questions
	require.Len(t, q, 4)
	assert.Equal(t, "Translate 'Can you understand me?' to Dutch.", q[2].Prompt)
	assert.Equal(t, "Kan jij mij verstaan", q[2].ExpectedAnswer)
}

func TestLessonsFor_Unknown(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, err = c.LessonsFor("Klingon")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = c.Language("spanish")
	require.ErrorIs(t, err, common.ErrorNotFound, "names are case-sensitive")
}

func TestLessonsFor_ReturnsCopies(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	lessons, err := c.LessonsFor("Spanish")
	require.NoError(t, err)
	lessons[0].Questions[0].ExpectedAnswer = "changed"
	lessons[0].Name = "changed"

	again, err := c.LessonsFor("Spanish")
	require.NoError(t, err)
	assert.Equal(t, "Spanish Basic Greetings", again[0].Name)
	assert.Equal(t, "Hola", again[0].Questions[0].ExpectedAnswer)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		msg     string
	}{
		{
			name:    "empty",
			input:   "",
			wantErr: common.ErrValidation,
		},
		{
			name:    "syntax",
			input:   "[[language]\nname=",
			wantErr: nil,
			msg:     "decode catalog",
		},
		{
			name: "missing code",
			input: `[[language]]
name = "Spanish"`,
			wantErr: common.ErrValidation,
			msg:     "Code",
		},
		{
			name: "bad code",
			input: `[[language]]
name = "Spanish"
code = "not a tag"`,
			wantErr: common.ErrValidation,
		},
		{
			name: "empty answer",
			input: `[[language]]
name = "Spanish"
code = "es-ES"
[[language.lesson]]
name = "L"
[[language.lesson.question]]
prompt = "p"
answer = ""`,
			wantErr: common.ErrValidation,
			msg:     "Answer",
		},
		{
			name: "duplicate language",
			input: `[[language]]
name = "Spanish"
code = "es-ES"
[[language]]
name = "Spanish"
code = "es-MX"`,
			wantErr: common.ErrValidation,
			msg:     "duplicate language",
		},
		{
			name: "duplicate lesson",
			input: `[[language]]
name = "Spanish"
code = "es-ES"
[[language.lesson]]
name = "L"
[[language.lesson]]
name = "L"`,
			wantErr: common.ErrValidation,
			msg:     "duplicate lesson",
		},
		{
			name: "unknown key",
			input: `[[language]]
name = "Spanish"
code = "es-ES"
flag = "x"`,
			wantErr: common.ErrValidation,
			msg:     "flag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestLoad_EmptyLessonAllowed(t *testing.T) {
	c, err := Load(strings.NewReader(`[[language]]
name = "Esperanto"
code = "eo"
[[language.lesson]]
name = "Nothing yet"`))
	require.NoError(t, err)

	lessons, err := c.LessonsFor("Esperanto")
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Empty(t, lessons[0].Questions)
	assert.Equal(t, "eo", lessons[0].LanguageCode)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(defaultDefinition), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, c.ListLanguages(), 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open catalog")
}
