// Package catalog is the read-only registry of languages, their lessons and
// the questions of each lesson.
//
// A Catalog is built once from a TOML definition (the embedded default or a
// file) and never changes afterwards. Accessors hand out copies, so a
// Catalog can be shared by any number of readers.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/go-playground/validator/v10"
)

//go:embed catalog.toml
var defaultDefinition string

// Question is one prompt with its expected answer.
type Question struct {
	Prompt         string
	ExpectedAnswer string
}

// Lesson is an ordered set of questions tagged with the speech code of its
// language. Its identity is Name within the language.
type Lesson struct {
	Name         string
	LanguageCode string
	Questions    []Question
}

// Language groups lessons under a display name and a BCP-47 speech code.
type Language struct {
	Name    string
	Code    string
	Lessons []Lesson
}

type Catalog struct {
	languages []Language
	index     map[string]int
}

type definition struct {
	Languages []languageDef `toml:"language" validate:"required,min=1,dive"`
}

type languageDef struct {
	Name    string      `toml:"name" validate:"required"`
	Code    string      `toml:"code" validate:"required,bcp47_language_tag"`
	Lessons []lessonDef `toml:"lesson" validate:"dive"`
}

type lessonDef struct {
	Name      string        `toml:"name" validate:"required"`
	Questions []questionDef `toml:"question" validate:"dive"`
}

type questionDef struct {
	Prompt string `toml:"prompt" validate:"required"`
	Answer string `toml:"answer" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Load(strings.NewReader(defaultDefinition))
}

// LoadFile reads a catalog definition from a TOML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses and validates a TOML catalog definition.
func Load(r io.Reader) (*Catalog, error) {
	var def definition
	md, err := toml.NewDecoder(r).Decode(&def)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown catalog key %q", common.ErrValidation, undecoded[0].String())
	}
	if err := validate.Struct(def); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, describe(err))
	}
	return build(def)
}

func build(def definition) (*Catalog, error) {
	c := &Catalog{
		languages: make([]Language, 0, len(def.Languages)),
		index:     make(map[string]int, len(def.Languages)),
	}

	for _, ld := range def.Languages {
		if _, dup := c.index[ld.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate language %q", common.ErrValidation, ld.Name)
		}

		lang := Language{Name: ld.Name, Code: ld.Code, Lessons: make([]Lesson, 0, len(ld.Lessons))}
		seen := make(map[string]struct{}, len(ld.Lessons))
		for _, lsd := range ld.Lessons {
			if _, dup := seen[lsd.Name]; dup {
				return nil, fmt.Errorf("%w: duplicate lesson %q in %s", common.ErrValidation, lsd.Name, ld.Name)
			}
			seen[lsd.Name] = struct{}{}

			lesson := Lesson{Name: lsd.Name, LanguageCode: ld.Code, Questions: make([]Question, 0, len(lsd.Questions))}
			for _, q := range lsd.Questions {
				lesson.Questions = append(lesson.Questions, Question{Prompt: q.Prompt, ExpectedAnswer: q.Answer})
			}
			lang.Lessons = append(lang.Lessons, lesson)
		}

		c.index[ld.Name] = len(c.languages)
		c.languages = append(c.languages, lang)
	}
	return c, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// ListLanguages returns the language names in definition order.
func (c *Catalog) ListLanguages() []string {
	names := make([]string, 0, len(c.languages))
	for _, l := range c.languages {
		names = append(names, l.Name)
	}
	return names
}

// Language returns a copy of the named language. Unknown names yield
// common.ErrorNotFound.
func (c *Catalog) Language(name string) (Language, error) {
	i, ok := c.index[name]
	if !ok {
		return Language{}, fmt.Errorf("language %q: %w", name, common.ErrorNotFound)
	}
	src := c.languages[i]
	out := Language{Name: src.Name, Code: src.Code, Lessons: make([]Lesson, 0, len(src.Lessons))}
	for _, l := range src.Lessons {
		out.Lessons = append(out.Lessons, l.clone())
	}
	return out, nil
}

// LessonsFor returns the lessons of a language in definition order.
func (c *Catalog) LessonsFor(language string) ([]Lesson, error) {
	l, err := c.Language(language)
	if err != nil {
		return nil, err
	}
	return l.Lessons, nil
}

func (l Lesson) clone() Lesson {
	l.Questions = slices.Clone(l.Questions)
	return l
}
