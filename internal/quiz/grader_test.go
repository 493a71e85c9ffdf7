package quiz

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		expected  string
		want      bool
	}{
		{"exact", "56", "56", true},
		{"surrounding whitespace", " 5 ", "5", true},
		{"inner whitespace", "3 0 0", "300", true},
		{"latin case folded", "h2o", "H2O", true},
		{"arabic exact", "نيوتن", "نيوتن", true},
		{"arabic with spaces", " نيوتن ", "نيوتن", true},
		{"wrong answer", "55", "56", false},
		{"no numeric equivalence", "4.0", "4", false},
		{"set same order", "2,-2", "2,-2", true},
		{"set reversed", "-2,2", "2,-2", true},
		{"set with spaces", "2 , -2", "2,-2", true},
		{"set duplicate submission", "2,2,-2", "2,-2", true},
		{"set missing element", "2", "2,-2", false},
		{"set extra element", "2,-2,3", "2,-2", false},
		{"arabic set reversed", "جلوكوز,أكسجين", "أكسجين,جلوكوز", true},
	}

	for _, tt := range tests {
		if got := Matches(tt.submitted, tt.expected); got != tt.want {
			t.Errorf("%s: Matches(%q, %q) = %v, want %v", tt.name, tt.submitted, tt.expected, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := normalize(" A b\tC "); got != "abc" {
		t.Errorf("normalize(\" A b\\tC \") = %q, want %q", got, "abc")
	}
	if got := normalize("س + ٥"); got != "س+٥" {
		t.Errorf("normalize arabic = %q, want %q", got, "س+٥")
	}
}
