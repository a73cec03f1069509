package phone

import "testing"

func TestNormalizeBR(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "5511987654321", "5511987654321"},
		{"eleven digit mobile", "11987654321", "5511987654321"},
		{"ten digit mobile missing nine", "1187654321", "5511987654321"},
		{"ten digit landline keeps shape", "1133334444", "551133334444"},
		{"eight digit local", "87654321", "5587654321"},
		{"renormalized eight digit local", "5587654321", "5587654321"},
		{"formatted input", "(11) 98765-4321", "5511987654321"},
		{"plus prefix", "+55 11 98765-4321", "5511987654321"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeBR(tt.input)
			if got != tt.want {
				t.Fatalf("NormalizeBR(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeBRIdempotent(t *testing.T) {
	inputs := []string{
		"87654321",
		"1187654321",
		"11987654321",
		"5511987654321",
		"551133334444",
		"+55 (11) 98765-4321",
	}

	for _, input := range inputs {
		once := NormalizeBR(input)
		twice := NormalizeBR(once)
		if once != twice {
			t.Fatalf("NormalizeBR not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("ligue (11) 98765-4321!"); got != "11987654321" {
		t.Fatalf("Digits = %q, want 11987654321", got)
	}
}
