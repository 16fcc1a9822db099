package source

import "testing"

func TestVariantFromTitle(t *testing.T) {
	cases := []struct {
		title    string
		variants []string
		want     string
	}{
		{"Berlin Shogi Open", []string{"shogi"}, "Shogi"},
		{"Xiangqi Meisterschaft", []string{"xiangqi"}, "Xiangqi"},
		// no variant word in the title: fall back to the first configured one
		{"Spring Open", []string{"shogi", "xiangqi"}, "Shogi"},
		// ambiguous title: fall back as well
		{"Shogi and Xiangqi Festival", []string{"shogi", "xiangqi"}, "Shogi"},
		// exactly one of several configured variants matches
		{"Janggi Cup 2024", []string{"shogi", "janggi", "makruk"}, "Janggi"},
		{"MAKRUK open", []string{"makruk"}, "Makruk"},
	}
	for _, tc := range cases {
		if got := variantFromTitle(tc.title, tc.variants); got != tc.want {
			t.Errorf("variantFromTitle(%q, %v) = %q, want %q", tc.title, tc.variants, got, tc.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	for in, want := range map[string]string{"shogi": "Shogi", "XIANGQI": "Xiangqi", "": ""} {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
