package season

import "testing"

func TestDetectEndTag(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"ShinaX 205/55 ЗИМ", "ЗИМ"},
		{"ShinaX 205/55 зим", "зим"},
		{"Cordiant 185/65 (ШИП)", "ШИП"},
		{"Tunga 175/70-ВС", "ВС"},
		{"Kama 205 Без рисунка", "Без рисунка"},
		{"Kama 205 без  рисунка", "без  рисунка"},
		{"ShinaX 205/55", ""},
		{"ЗИМа продолжается", ""}, // not at end of string
		{"", ""},
	}
	for _, tt := range tests {
		if got := DetectEndTag(tt.text); got != tt.want {
			t.Errorf("DetectEndTag(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{" зим ", "ЗИМ"},
		{"ЗИМ", "ЗИМ"},
		{"Без рисунка", "БЕЗ РИСУНКА"},
		{"без  рисунка", "БЕЗ РИСУНКА"},
		{"(БЕЗ РИСУНКА)", "БЕЗ РИСУНКА"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.tag); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestMatchesEndTag(t *testing.T) {
	p := Tagged{Name: "ShinaX 205/55 ЗИМ"}
	if !Matches(p, "зим") {
		t.Error("end tag ЗИМ should match selected зим case-insensitively")
	}
	if Matches(p, "лето") {
		t.Error("end tag ЗИМ should not match лето")
	}
}

func TestMatchesEndTagWinsOverSeasonField(t *testing.T) {
	// An end tag in the name takes precedence over a contradicting season field.
	p := Tagged{Name: "ShinaX 205/55 ЗИМ", Season: "ЛЕТО"}
	if Matches(p, "лето") {
		t.Error("end tag should shadow the season field")
	}
	if !Matches(p, "ЗИМ") {
		t.Error("end tag should match")
	}
}

func TestMatchesSeasonField(t *testing.T) {
	p := Tagged{Name: "ShinaX 205/55", Season: "ЗИМ"}
	if !Matches(p, " зим") {
		t.Error("season field should match after normalization")
	}
}

func TestMatchesSeasonTagsList(t *testing.T) {
	p := Tagged{Name: "ShinaX 205/55", SeasonTags: []string{"ЛЕТО"}}
	if !Matches(p, "лето") {
		t.Error("season_tags entry should match")
	}
	if Matches(p, "зим") {
		t.Error("season_tags without зим should not match")
	}
}

func TestMatchesNothing(t *testing.T) {
	p := Tagged{Name: "ShinaX 205/55"}
	if Matches(p, "зим") {
		t.Error("product with no tag information should not match")
	}
}

func TestMatchesEmptySelection(t *testing.T) {
	if !Matches(Tagged{Name: "anything"}, "") {
		t.Error("empty selection matches everything")
	}
}

func TestMatchesNoPatternVariants(t *testing.T) {
	p := Tagged{Name: "Kama 205 Без рисунка"}
	if !Matches(p, "БЕЗ  РИСУНКА") {
		t.Error("no-pattern variants should normalize to one canonical token")
	}
}

func TestMatchesCodeContributesEndTag(t *testing.T) {
	p := Tagged{Name: "ShinaX 205/55", Code: "SX-205 ШИП"}
	if !Matches(p, "шип") {
		t.Error("end tag in code should match")
	}
}
