package utils

import "testing"

func TestNormalizeFilepath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already normalized is unchanged",
			input: "Normal Full Title (2021)",
			want:  "Normal Full Title (2021)",
		},
		{
			name:  "control characters and punctuation",
			input: "%Normal-Full\t\n\r\f\vTitle_ (2021)",
			want:  "Normal-Full-Title_ (2021)",
		},
		{
			name:  "colon becomes dash",
			input: "Mission: Impossible (2023)",
			want:  "Mission - Impossible (2023)",
		},
		{
			name:  "diacritics stripped to ascii",
			input: "Amélie à Paris (2001)",
			want:  "Amelie a Paris (2001)",
		},
		{
			name:  "leading and trailing dashes trimmed",
			input: "--Title-- (2020)",
			want:  "Title- (2020)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeFilepath(tt.input)
			if err != nil {
				t.Fatalf("NormalizeFilepath(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeFilepath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeFilepathIdempotent(t *testing.T) {
	inputs := []string{
		"Normal Full Title (2021)",
		"%Normal-Full\t\n\r\f\vTitle_ (2021)",
		"Mission: Impossible (2023)",
	}

	for _, input := range inputs {
		once, err := NormalizeFilepath(input)
		if err != nil {
			t.Fatalf("first pass on %q failed: %v", input, err)
		}
		twice, err := NormalizeFilepath(once)
		if err != nil {
			t.Fatalf("second pass on %q failed: %v", once, err)
		}
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", input, once, twice)
		}
	}
}

func TestNormalizeFilepathEmptyResult(t *testing.T) {
	for _, input := range []string{" %^$&%  –  ", "", "___"} {
		got, err := NormalizeFilepath(input)
		if err == nil {
			t.Errorf("NormalizeFilepath(%q) = %q, want error", input, got)
		}
	}
}
