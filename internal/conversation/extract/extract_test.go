package extract

import "testing"

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"eleven digit run", "meu número é 11999999999", "11999999999", true},
		{"ten digit run", "1133334444 é meu fixo", "1133334444", true},
		{"embedded in text", "liga no 11987654321 ou manda email", "11987654321", true},
		{"first run wins", "11999999999 ou 21888888888", "11999999999", true},
		{"too short", "12345", "", false},
		{"no digits", "me chama no zap", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Phone(tt.text)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("Phone(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"plain address", "joao@email.com", "joao@email.com", true},
		{"inside sentence", "meu email é maria.silva@firma.com.br obrigada", "maria.silva@firma.com.br", true},
		{"plus alias", "contato+leads@gmail.com", "contato+leads@gmail.com", true},
		{"missing tld", "joao@email", "", false},
		{"no address", "não tenho email", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Email(tt.text)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("Email(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHasPhoneAndEmailTogether(t *testing.T) {
	text := "11999999999 joao@email.com"
	if !HasPhone(text) {
		t.Fatal("expected phone run to be detected")
	}
	if !HasEmail(text) {
		t.Fatal("expected email to be detected")
	}
}
