package deck

import (
	"strings"
	"testing"
)

func TestMatchMajors(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"I drew The Fool today", "the_fool"},
		{"the high priestess spoke to me", "the_high_priestess"},
		{"THE HANGED MAN (reversed) again...", "the_hanged_man_reversed"},
		{"got the wheel of fortune!", "wheel_of_fortune"},
		{"The Strength", "strength"},
		{"the judgement", "judgement"},
	}
	for _, tc := range cases {
		got, ok := Match(tc.text)
		if !ok {
			t.Fatalf("Match(%q) found nothing, want %s", tc.text, tc.want)
		}
		if got != tc.want {
			t.Fatalf("Match(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestMatchMinors(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Five of Cups", "five_of_cups"},
		{"five of cups", "five_of_cups"},
		{"FIVE OF CUPS", "five_of_cups"},
		{"pulled the ace of wands this morning", "ace_of_wands"},
		{"queen of pentacles (reversed)", "queen_of_pentacles_reversed"},
		{"knight  of  swords", "knight_of_swords"},
	}
	for _, tc := range cases {
		got, ok := Match(tc.text)
		if !ok {
			t.Fatalf("Match(%q) found nothing, want %s", tc.text, tc.want)
		}
		if got != tc.want {
			t.Fatalf("Match(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestMatchFirstOccurrenceWins(t *testing.T) {
	got, ok := Match("the tower then the ace of cups")
	if !ok || got != "the_tower" {
		t.Fatalf("expected first mention the_tower, got %q ok=%v", got, ok)
	}
}

func TestMatchNoMention(t *testing.T) {
	for _, text := range []string{"", "great video!", "I love towers of hanoi", "aceofcups"} {
		if got, ok := Match(text); ok {
			t.Fatalf("Match(%q) unexpectedly matched %s", text, got)
		}
	}
}

func TestMatchWordBoundaries(t *testing.T) {
	// "star" inside another word must not match.
	if got, ok := Match("starting my day"); ok {
		t.Fatalf("unexpected match %s", got)
	}
	if _, ok := Match("wish upon the star"); !ok {
		t.Fatalf("expected the star to match")
	}
}

func TestCanonicalizeReversalNotDoubled(t *testing.T) {
	key := Canonicalize("the fool (reversed)")
	if key != "the_fool_reversed" {
		t.Fatalf("unexpected key %s", key)
	}
	if strings.Count(key, "_reversed") != 1 {
		t.Fatalf("reversal suffix appended more than once: %s", key)
	}
}

func TestCanonicalizeFallbackNeverFails(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"the nameless one", "the_nameless_one"},
		{"some gibberish", "some_gibberish"},
		{"  padded  ", "padded"},
	}
	for _, tc := range cases {
		if got := Canonicalize(tc.raw); got != tc.want {
			t.Fatalf("Canonicalize(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestCanonicalizeIdempotentOnCase(t *testing.T) {
	want := Canonicalize("five of cups")
	for _, raw := range []string{"Five of Cups", "FIVE OF CUPS", " five of cups "} {
		if got := Canonicalize(raw); got != want {
			t.Fatalf("Canonicalize(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestPretty(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"the_fool", "The Fool"},
		{"five_of_cups", "Five of Cups"},
		{"the_hanged_man_reversed", "The Hanged Man (Reversed)"},
		{"wheel_of_fortune", "Wheel of Fortune"},
		{"queen_of_pentacles_reversed", "Queen of Pentacles (Reversed)"},
	}
	for _, tc := range cases {
		if got := Pretty(tc.key); got != tc.want {
			t.Fatalf("Pretty(%s) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestMatchAllMajorsResolve(t *testing.T) {
	for name, slug := range majorCanon {
		got, ok := Match("I drew the " + name + " yesterday")
		if !ok {
			t.Fatalf("major %q did not match", name)
		}
		if got != slug {
			t.Fatalf("major %q = %s, want %s", name, got, slug)
		}
	}
}
