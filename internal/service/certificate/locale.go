package certificate

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Locale controls how dates are printed on a certificate.
type Locale struct {
	Tag            language.Tag
	DateLayout     string
	DateTimeLayout string
}

// FormatDate prints a calendar date.
func (l Locale) FormatDate(t time.Time) string {
	return t.Format(l.DateLayout)
}

// FormatDateTime prints a date with wall-clock time.
func (l Locale) FormatDateTime(t time.Time) string {
	return t.Format(l.DateTimeLayout)
}

var supportedLocales = []Locale{
	{Tag: language.AmericanEnglish, DateLayout: "1/2/2006", DateTimeLayout: "1/2/2006, 3:04:05 PM"},
	{Tag: language.BritishEnglish, DateLayout: "02/01/2006", DateTimeLayout: "02/01/2006, 15:04:05"},
	{Tag: language.German, DateLayout: "2.1.2006", DateTimeLayout: "2.1.2006, 15:04:05"},
	{Tag: language.French, DateLayout: "02/01/2006", DateTimeLayout: "02/01/2006 15:04:05"},
	{Tag: language.BrazilianPortuguese, DateLayout: "02/01/2006", DateTimeLayout: "02/01/2006, 15:04:05"},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(supportedLocales))
	for _, l := range supportedLocales {
		tags = append(tags, l.Tag)
	}
	return language.NewMatcher(tags)
}()

// LookupLocale returns the supported locale closest to the given tag string.
// The bool is false when nothing matched.
func LookupLocale(value string) (Locale, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return Locale{}, false
	}
	return match(tag)
}

// ResolveLocale picks the locale for a request: explicit lang value first,
// then the Accept-Language header, then the fallback.
func ResolveLocale(lang, acceptLanguage string, fallback Locale) Locale {
	if lang = strings.TrimSpace(lang); lang != "" {
		if l, ok := LookupLocale(lang); ok {
			return l
		}
	}

	if accept := strings.TrimSpace(acceptLanguage); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if l, ok := match(tags...); ok {
				return l
			}
		}
	}

	return fallback
}

// DefaultLocale is used when no configuration or request preference applies.
func DefaultLocale() Locale {
	return supportedLocales[0]
}

func match(tags ...language.Tag) (Locale, bool) {
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return Locale{}, false
	}
	return supportedLocales[index], true
}
