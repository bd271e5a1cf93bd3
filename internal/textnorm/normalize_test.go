package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain ascii", "hello world", "hello world"},
		{"uppercase ascii", "HELLO", "hello"},
		{"turkish letters", "bağış güvenli", "bagis guvenli"},
		{"dotted capital i", "İstanbul", "istanbul"},
		{"dotless capital i", "IŞIK", "isik"},
		{"circumflex", "kâğıt", "kagit"},
		{"punctuation stripped", "bağışım güvende mi?", "bagisim guvende mi"},
		{"symbols stripped", "%100 destek!", "100 destek"},
		{"surrounding space trimmed", "  merhaba  ", "merhaba"},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Bağışım güvende mi?",
		"ÖĞRENCİ DOĞRULAMA süreci",
		"  çok   boşluklu   sorgu  ",
		"kredi kartı %3 komisyon",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", in)
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single token", "bagis", []string{"bagis"}},
		{"short tokens dropped", "a b bagis c", []string{"bagis"}},
		{"all short", "a b c", nil},
		{"two letter kept", "mi bagis", []string{"mi", "bagis"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Tokenize(Normalize(tt.input))
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
