package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	c := NewClassifier()

	tests := []struct {
		text string
		want Intent
	}{
		{"Merhaba!", IntentGreeting},
		{"selam, nasılsın", IntentGreeting},
		{"öğrenci bulmak istiyorum", IntentFindStudent},
		{"Bağış yapmak istiyorum", IntentFindStudent},
		{"neden bağış yapmalıyım", IntentMotivation},
		{"hoşça kal", IntentFarewell},
		{"görüşürüz!", IntentFarewell},
		{"çok teşekkür ederim", IntentThanks},
		{"sağol", IntentThanks},
		{"bağışım güvende mi", IntentFAQ},
		{"komisyon oranı nedir", IntentFAQ},
		{"", IntentFAQ},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.text), "text %q", tt.text)
	}
}

func TestClassifyDeclarationOrderWins(t *testing.T) {
	t.Parallel()
	c := NewClassifier()

	// Contains both a greeting phrase and a find-student phrase; greeting is
	// declared first so it must win.
	assert.Equal(t, IntentGreeting, c.Classify("merhaba, öğrenci bul"))
}
