// Package i18n looks up user-facing strings. Message keys are the English
// format strings; German translations live in the catalog below and any key
// without a translation prints as English. Numbers are formatted for the
// printer's locale, so 2873 prints as "2,873" in en and "2.873" in de.
package i18n

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const DefaultLocale = "en"

var tags = map[string]language.Tag{
	"en": language.English,
	"de": language.German,
}

var cat = buildCatalog()

// Translator formats messages for one locale.
type Translator struct {
	locale  string
	printer *message.Printer
}

// New returns a Translator for locale. An empty locale means DefaultLocale.
func New(locale string) (*Translator, error) {
	locale = normalize(locale)
	tag, ok := tags[locale]
	if !ok {
		return nil, fmt.Errorf("unsupported locale %q (use %s)", locale, strings.Join(Supported(), ", "))
	}
	return &Translator{locale: locale, printer: message.NewPrinter(tag, message.Catalog(cat))}, nil
}

// MustNew is New for known-good locales.
func MustNew(locale string) *Translator {
	t, err := New(locale)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Translator) Locale() string { return t.locale }

func (t *Translator) Sprintf(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Word translates a single-word key such as a band or goal type name.
func (t *Translator) Word(key string) string {
	return t.printer.Sprintf(message.Key(key, key))
}

func Supported() []string {
	out := make([]string, 0, len(tags))
	for k := range tags {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func IsSupported(locale string) bool {
	_, ok := tags[normalize(locale)]
	return ok
}

func normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return DefaultLocale
	}
	return locale
}

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key := range german {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
	}
	for key, msg := range german {
		if err := b.SetString(language.German, key, msg); err != nil {
			panic(err)
		}
	}
	return b
}
