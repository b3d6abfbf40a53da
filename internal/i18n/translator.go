// Package i18n projects bilingual content down to a single locale. All
// reference data is stored with both Arabic and English variants and a
// client picks one side per request via the Accept-Language header.
package i18n

import "strings"

type Locale string

const (
	LocaleAr Locale = "ar"
	LocaleEn Locale = "en"
)

// ResolveLocale maps an Accept-Language header to a supported locale.
// English is selected only for an exact "en" prefix; everything else,
// including a missing header, falls back to Arabic.
func ResolveLocale(acceptLanguage string) Locale {
	if strings.HasPrefix(acceptLanguage, "en") {
		return LocaleEn
	}
	return LocaleAr
}

// Text is a bilingual value. It marshals as {"ar": ..., "en": ...} so
// the stored document keeps both sides.
type Text struct {
	Ar string `json:"ar"`
	En string `json:"en"`
}

func (t Text) Resolve(loc Locale) string {
	if loc == LocaleEn {
		return t.En
	}
	return t.Ar
}

// ProjectItem replaces every top-level field whose value looks like a
// bilingual object (a map containing an "ar" key) with that object's
// value for the locale. Other fields pass through untouched. Only one
// level is inspected. The input map is never mutated.
func ProjectItem(item map[string]any, loc Locale) map[string]any {
	if item == nil {
		return nil
	}

	out := make(map[string]any, len(item))
	for key, value := range item {
		if bilingual, ok := value.(map[string]any); ok {
			if _, hasAr := bilingual["ar"]; hasAr {
				out[key] = bilingual[string(loc)]
				continue
			}
		}
		out[key] = value
	}
	return out
}

// ProjectCollection maps ProjectItem over a slice. A nil input yields
// an empty, non-nil slice so list endpoints always return an array.
func ProjectCollection(items []map[string]any, loc Locale) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, ProjectItem(item, loc))
	}
	return out
}
