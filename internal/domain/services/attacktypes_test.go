package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redflag-lab/internal/domain/models"
)

func TestClassifyPhishingConfidence(t *testing.T) {
	c := NewAttackTypeClassifier()

	tests := []struct {
		name     string
		report   *SignalReport
		expected int
	}{
		{
			name:     "urls only",
			report:   &SignalReport{Triggered: map[string]bool{}, HasURLs: true},
			expected: 65,
		},
		{
			name:     "credential only",
			report:   &SignalReport{Triggered: map[string]bool{"credential": true}},
			expected: 75,
		},
		{
			name:     "otp and credential",
			report:   &SignalReport{Triggered: map[string]bool{"otp": true, "credential": true}},
			expected: 95,
		},
		{
			name:     "everything capped at 95",
			report:   &SignalReport{Triggered: map[string]bool{"otp": true, "credential": true}, HasURLs: true},
			expected: 95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types := c.Classify(models.KindEmail, tt.report)
			conf, ok := findTag(types, "phishing")
			require.True(t, ok, "expected phishing tag")
			assert.Equal(t, tt.expected, conf)
		})
	}
}

func TestClassifyNoPhishingForSocial(t *testing.T) {
	c := NewAttackTypeClassifier()
	types := c.Classify(models.KindSocial, &SignalReport{Triggered: map[string]bool{"credential": true}})

	_, ok := findTag(types, "phishing")
	assert.False(t, ok)
}

func TestClassifyBECRequiresMoneyAndAuthority(t *testing.T) {
	c := NewAttackTypeClassifier()

	both := c.Classify(models.KindEmail, &SignalReport{Triggered: map[string]bool{"money": true, "authority": true}})
	conf, ok := findTag(both, "BEC / CEO fraud")
	require.True(t, ok)
	assert.Equal(t, 85, conf)

	moneyOnly := c.Classify(models.KindEmail, &SignalReport{Triggered: map[string]bool{"money": true}})
	_, ok = findTag(moneyOnly, "BEC / CEO fraud")
	assert.False(t, ok)
}

func TestClassifySocialKindTags(t *testing.T) {
	c := NewAttackTypeClassifier()
	types := c.Classify(models.KindSocial, &SignalReport{Triggered: map[string]bool{"virality": true, "getrich": true}})

	_, hasMisinfo := findTag(types, "misinformation / engagement bait")
	_, hasInvestment := findTag(types, "investment fraud / get-rich-quick")
	assert.True(t, hasMisinfo)
	assert.True(t, hasInvestment)
}

func TestClassifyDedupAndOrder(t *testing.T) {
	c := NewAttackTypeClassifier()
	types := c.Classify(models.KindText, &SignalReport{
		Triggered: map[string]bool{
			"otp": true, "credential": true, "money": true, "authority": true,
			"attachment": true, "virality": true, "getrich": true,
		},
		HasURLs: true,
	})

	seen := make(map[string]bool)
	for _, at := range types {
		assert.False(t, seen[at.Tag], "duplicate tag %s", at.Tag)
		seen[at.Tag] = true
	}

	for i := 1; i < len(types); i++ {
		assert.GreaterOrEqual(t, types[i-1].Confidence, types[i].Confidence)
	}

	assert.LessOrEqual(t, len(types), 6)
}

func TestClassifyCleanMessage(t *testing.T) {
	c := NewAttackTypeClassifier()
	types := c.Classify(models.KindText, &SignalReport{Triggered: map[string]bool{}})

	assert.Empty(t, types)
}

func findTag(types []models.AttackType, tag string) (int, bool) {
	for _, at := range types {
		if at.Tag == tag {
			return at.Confidence, true
		}
	}
	return 0, false
}
