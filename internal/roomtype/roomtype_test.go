package roomtype

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Fassade", "fassade"},
		{"Gäste-WC", "gaeste-wc"},
		{"Gäste-WC", "gaeste-wc"}, // decomposed umlaut
		{"Küche", "kueche"},
		{"Küche", "kueche"},
		{"Wohnzimmer", "wohnzimmer"},
		{"Außenansicht", "aussenansicht"},
		{"Hauswirtschaftsraum", "hauswirtschaftsraum"},
		{"  Esszimmer  ", "esszimmer"},
		{"Salle à manger", "salle-a-manger"},
		{"Wohn / Esszimmer", "wohn-esszimmer"},
		{"Büro 2", "buero-2"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.label); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, label := range Labels() {
		once := Normalize(label)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", label, once, twice)
		}
	}
}

func TestNormalizeCollapsesWhitespaceRuns(t *testing.T) {
	if got := Normalize("Gäste   WC"); got != "gaeste-wc" {
		t.Fatalf("whitespace run not collapsed: %q", got)
	}
}

func TestKnownAcceptsLabelAndToken(t *testing.T) {
	if !Known("Gäste-WC") {
		t.Fatal("expected catalog label to be known")
	}
	if !Known("gaeste-wc") {
		t.Fatal("expected normalized token to be known")
	}
	if Known("Ballsaal") {
		t.Fatal("unexpected label reported as known")
	}
}

func TestLabelForToken(t *testing.T) {
	label, ok := LabelForToken("gaeste-wc")
	if !ok || label != "Gäste-WC" {
		t.Fatalf("LabelForToken = %q, %v", label, ok)
	}
	if _, ok := LabelForToken("ballsaal"); ok {
		t.Fatal("expected unknown token to miss")
	}
}
