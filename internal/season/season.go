// Package season implements tire season-tag detection and matching.
//
// Products carry their season as a short code embedded at the end of the
// name/code string (e.g. "ShinaX 205/55 ЗИМ"), as an explicit season field,
// or as a season_tags list; matching consults them in that order.
package season

import (
	"regexp"
	"strings"
)

// Recognized end-tag codes: winter, studded, all-season, and assorted
// tread/type abbreviations carried over from the supplier catalogs.
var (
	endTagRe    = regexp.MustCompile(`(?i)(?:\s|\(|-|^)(ЗИМ|ШИП|ВС|ДР|ПП|УВ|РУО|ВДО|ПРО|КАР)\)?\s*$`)
	noPatternRe = regexp.MustCompile(`(?i)(?:\s|\(|-|^)(Без\s+рисунка)\)?\s*$`)
)

// CanonicalNoPattern is the canonical form every "no pattern" phrase variant
// normalizes to.
const CanonicalNoPattern = "БЕЗ РИСУНКА"

// Normalize trims and uppercases a tag, collapsing any "no pattern" phrase
// variant to the canonical token.
func Normalize(tag string) string {
	t := strings.ToUpper(strings.TrimSpace(tag))
	if strings.Contains(t, "БЕЗ") && strings.Contains(t, "РИСУНК") {
		return CanonicalNoPattern
	}
	return t
}

// DetectEndTag extracts the season tag from the end of text, or "" when none
// is present. The "no pattern" phrase is checked before the short codes so
// that "Без рисунка" is not missed.
func DetectEndTag(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	if m := noPatternRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if m := endTagRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// Tagged is the subset of product fields consulted when matching a tag.
type Tagged struct {
	Name       string
	Code       string
	Season     string
	SeasonTags []string
}

// Matches reports whether the product matches the selected season tag.
// Resolution order: an end tag in name+code wins outright (even over a
// contradicting season field), then the season field, then season_tags.
// An empty selection matches everything.
func Matches(p Tagged, selected string) bool {
	if selected == "" {
		return true
	}
	want := Normalize(selected)
	if end := DetectEndTag(p.Name + " " + p.Code); end != "" {
		return Normalize(end) == want
	}
	if p.Season != "" {
		return Normalize(p.Season) == want
	}
	for _, t := range p.SeasonTags {
		if Normalize(t) == want {
			return true
		}
	}
	return false
}
