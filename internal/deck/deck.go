package deck

import (
	"regexp"
	"strings"
)

// Key is the canonical identifier for one of the 78 cards, optionally
// suffixed "_reversed". Keys are the only currency between the matcher,
// the store and the reply renderer.
type Key = string

const reversedSuffix = "_reversed"

const reversedMarker = "(reversed)"

// majorCanon maps spoken major-arcana names to their canonical slugs.
// A handful of majors (strength, justice, death, temperance, judgement)
// carry no "the_" prefix in their slug.
var majorCanon = map[string]string{
	"fool":           "the_fool",
	"magician":       "the_magician",
	"high priestess": "the_high_priestess",
	"empress":        "the_empress",
	"emperor":        "the_emperor",
	"hierophant":     "the_hierophant",
	"lovers":         "the_lovers",
	"chariot":        "the_chariot",
	"strength":       "strength",
	"hermit":         "the_hermit",
	"wheel of fortune": "wheel_of_fortune",
	"justice":        "justice",
	"hanged man":     "the_hanged_man",
	"death":          "death",
	"temperance":     "temperance",
	"devil":          "the_devil",
	"tower":          "the_tower",
	"star":           "the_star",
	"moon":           "the_moon",
	"sun":            "the_sun",
	"judgement":      "judgement",
	"world":          "the_world",
}

var ranks = map[string]string{
	"ace": "ace", "two": "two", "three": "three", "four": "four",
	"five": "five", "six": "six", "seven": "seven", "eight": "eight",
	"nine": "nine", "ten": "ten", "page": "page", "knight": "knight",
	"queen": "queen", "king": "king",
}

var suits = map[string]string{
	"wands": "wands", "cups": "cups", "swords": "swords", "pentacles": "pentacles",
}

var cardPattern = regexp.MustCompile(`(?i)\b(` +
	`the\s+(fool|magician|high\s+priestess|empress|emperor|hierophant|lovers|chariot|strength|hermit|wheel\s+of\s+fortune|justice|hanged\s+man|death|temperance|devil|tower|star|moon|sun|judgement|world)` +
	`|(ace|two|three|four|five|six|seven|eight|nine|ten|page|knight|queen|king)\s+of\s+(wands|cups|swords|pentacles)` +
	`)\b(\s*\(reversed\))?`)

var minorPattern = regexp.MustCompile(`^(ace|two|three|four|five|six|seven|eight|nine|ten|page|knight|queen|king)\s+of\s+(wands|cups|swords|pentacles)$`)

// Match scans text for the first card mention and returns its canonical
// key. The scan is first-occurrence, not most-specific: when a comment
// names several cards, only the earliest one counts.
func Match(text string) (Key, bool) {
	raw := cardPattern.FindString(text)
	if raw == "" {
		return "", false
	}
	return Canonicalize(raw), true
}

// canonRule is one normalization step. Rules run in order and the first
// one that resolves wins, which keeps the fallback priority auditable.
type canonRule struct {
	name  string
	apply func(s string) (string, bool)
}

var canonRules = []canonRule{
	{name: "major_with_article", apply: func(s string) (string, bool) {
		rest, ok := strings.CutPrefix(s, "the ")
		if !ok {
			return "", false
		}
		if key, ok := majorCanon[rest]; ok {
			return key, true
		}
		// Unanticipated "the ..." input: degrade to a slug of the whole
		// string rather than failing.
		return strings.ReplaceAll(s, " ", "_"), true
	}},
	{name: "bare_major", apply: func(s string) (string, bool) {
		key, ok := majorCanon[s]
		return key, ok
	}},
	{name: "minor", apply: func(s string) (string, bool) {
		m := minorPattern.FindStringSubmatch(s)
		if m == nil {
			return "", false
		}
		return ranks[m[1]] + "_of_" + suits[m[2]], true
	}},
	{name: "slug_fallback", apply: func(s string) (string, bool) {
		return strings.ReplaceAll(s, " ", "_"), true
	}},
}

// Canonicalize normalizes a matched card mention into its key. It is
// total: any input produces some key, and unrecognized text degrades to
// a space-to-underscore slug that downstream stages will treat as
// unmapped.
func Canonicalize(raw string) Key {
	s := strings.ToLower(strings.TrimSpace(raw))
	isReversed := strings.HasSuffix(s, reversedMarker)
	s = strings.TrimSpace(strings.ReplaceAll(s, reversedMarker, ""))
	s = strings.Join(strings.Fields(s), " ")

	var key string
	for _, rule := range canonRules {
		if resolved, ok := rule.apply(s); ok {
			key = resolved
			break
		}
	}
	if isReversed {
		key += reversedSuffix
	}
	return key
}

// IsReversed reports whether a key carries the reversal suffix.
func IsReversed(key Key) bool {
	return strings.HasSuffix(key, reversedSuffix)
}

// Pretty renders a key as a human-readable label: underscores become
// spaces, words are title-cased with a lowercase "of", and reversal is
// shown as a trailing "(Reversed)" annotation.
func Pretty(key Key) string {
	reversed := strings.HasSuffix(key, reversedSuffix)
	base := strings.TrimSuffix(key, reversedSuffix)

	words := strings.Split(base, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		if word == "of" && i > 0 {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	label := strings.Join(words, " ")
	if reversed {
		label += " (Reversed)"
	}
	return label
}
