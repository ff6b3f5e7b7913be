package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves UI and receipt strings by key for a set of locales.
type Translator struct {
	locales  map[string]map[string]string
	matcher  language.Matcher
	tags     []language.Tag
	codes    []string
	fallback string
}

// New loads the embedded locale files. fallback must be one of the shipped
// locales ("en", "es").
func New(fallback string) (*Translator, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}

	t := &Translator{
		locales:  make(map[string]map[string]string, len(entries)),
		fallback: fallback,
	}
	for _, e := range entries {
		code := strings.TrimSuffix(e.Name(), ".json")
		raw, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, err
		}
		msgs := map[string]string{}
		if err := json.Unmarshal(raw, &msgs); err != nil {
			return nil, fmt.Errorf("locale %s: %w", code, err)
		}
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", code, err)
		}
		t.locales[code] = msgs
		t.tags = append(t.tags, tag)
		t.codes = append(t.codes, code)
	}
	if _, ok := t.locales[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q not shipped", fallback)
	}
	t.matcher = language.NewMatcher(t.tags)
	return t, nil
}

// Match picks the best shipped locale for an Accept-Language style string.
func (t *Translator) Match(preferred string) string {
	tags, _, err := language.ParseAcceptLanguage(preferred)
	if err != nil || len(tags) == 0 {
		return t.fallback
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.fallback
	}
	return t.codes[idx]
}

// Has reports whether the locale is shipped.
func (t *Translator) Has(locale string) bool {
	_, ok := t.locales[locale]
	return ok
}

// Messages returns the full key set for a locale, for clients that want to
// do lookups themselves. Unknown locales fall back.
func (t *Translator) Messages(locale string) map[string]string {
	if msgs, ok := t.locales[locale]; ok {
		return msgs
	}
	return t.locales[t.fallback]
}

// T resolves key in the given locale, interpolating {name} placeholders from
// args. A missing key resolves to the key itself so the UI never goes blank.
func (t *Translator) T(locale, key string, args map[string]string) string {
	msgs, ok := t.locales[locale]
	if !ok {
		msgs = t.locales[t.fallback]
	}
	msg, ok := msgs[key]
	if !ok {
		if msg, ok = t.locales[t.fallback][key]; !ok {
			return key
		}
	}
	for name, val := range args {
		msg = strings.ReplaceAll(msg, "{"+name+"}", val)
	}
	return msg
}
