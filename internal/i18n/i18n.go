// Package i18n provides translation lookup for the two supported locales.
package i18n

// DefaultLanguage is used whenever an unknown locale code is requested.
const DefaultLanguage = "en"

// Supported lists the closed set of locale codes.
var Supported = []string{"en", "es"}

// Locale resolves translation keys for the active language.
type Locale struct {
	lang string
}

// New returns a locale for the given language code, falling back to the
// default for unknown codes.
func New(lang string) *Locale {
	return &Locale{lang: normalize(lang)}
}

// Language returns the active language code.
func (l *Locale) Language() string {
	return l.lang
}

// SetLanguage switches the active language. Idempotent; unknown codes
// fall back to the default.
func (l *Locale) SetLanguage(lang string) {
	l.lang = normalize(lang)
}

// T looks up a translation key. Unresolved keys are returned as-is.
func (l *Locale) T(key string) string {
	if table, ok := messages[l.lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLanguage][key]; ok {
		return s
	}
	return key
}

func normalize(lang string) string {
	for _, s := range Supported {
		if s == lang {
			return lang
		}
	}
	return DefaultLanguage
}
