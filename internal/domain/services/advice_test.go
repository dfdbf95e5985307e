package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redflag-lab/internal/domain/models"
)

func TestDetectKindMismatch(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		text     string
		expected bool
	}{
		{
			name:     "viral text labeled email",
			kind:     models.KindEmail,
			text:     "They don't want you to know this. Share before it's deleted!",
			expected: true,
		},
		{
			name:     "header line makes it email-like",
			kind:     models.KindEmail,
			text:     "Subject: hi\nShare before it's deleted!",
			expected: false,
		},
		{
			name:     "at-sign makes it email-like",
			kind:     models.KindEmail,
			text:     "contact me at me@here.com, link in bio",
			expected: false,
		},
		{
			name:     "no viral bait",
			kind:     models.KindEmail,
			text:     "plain message with nothing social about it",
			expected: false,
		},
		{
			name:     "other kinds never mismatch",
			kind:     models.KindSocial,
			text:     "Share before it's deleted!",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectKindMismatch(tt.kind, tt.text))
		})
	}
}

func TestNextStepsMismatchPrependsTabSwitch(t *testing.T) {
	c := NewAdviceComposer()
	steps := c.NextSteps(models.KindEmail, models.EmailModePersonal, true, 80)

	require.NotEmpty(t, steps)
	assert.Contains(t, steps[0], "Switch to the social-post tab")
}

func TestNextStepsWorkModeScalesWithSeverity(t *testing.T) {
	c := NewAdviceComposer()

	low := c.NextSteps(models.KindEmail, models.EmailModeWork, false, 20)
	mid := c.NextSteps(models.KindEmail, models.EmailModeWork, false, 50)
	high := c.NextSteps(models.KindEmail, models.EmailModeWork, false, 85)

	assert.Less(t, len(low), len(mid))
	assert.Less(t, len(mid), len(high))
	assert.True(t, containsStepWith(mid, "IT or security team"))
	assert.True(t, containsStepWith(high, "Change your password"))
}

func TestNextStepsCapped(t *testing.T) {
	c := NewAdviceComposer()
	steps := c.NextSteps(models.KindEmail, models.EmailModeWork, true, 95)

	assert.LessOrEqual(t, len(steps), maxNextSteps)
}

func TestSafeReplyPrefersKnowledgeBaseTemplate(t *testing.T) {
	c := NewAdviceComposer()

	kb := c.SafeReply(models.KindText, "", "Canned KB reply.")
	assert.Equal(t, "Canned KB reply.", kb)

	fallback := c.SafeReply(models.KindText, "", "")
	assert.NotEmpty(t, fallback)
}

func TestSafeReplyNeverInstructsRiskyActions(t *testing.T) {
	c := NewAdviceComposer()

	kinds := []struct{ kind, mode string }{
		{models.KindText, ""},
		{models.KindEmail, models.EmailModePersonal},
		{models.KindEmail, models.EmailModeWork},
		{models.KindSocial, ""},
	}

	for _, k := range kinds {
		reply := strings.ToLower(c.SafeReply(k.kind, k.mode, ""))
		assert.NotContains(t, reply, "click")
		assert.NotContains(t, reply, "share the code")
	}
}

func TestSummaryStatesMismatch(t *testing.T) {
	c := NewAdviceComposer()
	summary := c.Summary(models.VerdictDangerous, nil, true)

	assert.Contains(t, summary, "Format mismatch")
}

func TestEnsureMismatchStated(t *testing.T) {
	already := "There is a format mismatch in this submission."
	assert.Equal(t, already, EnsureMismatchStated(already))

	fixed := EnsureMismatchStated("Looks like a viral post.")
	assert.True(t, strings.HasPrefix(fixed, "Format mismatch:"))
}

func containsStepWith(steps []string, substr string) bool {
	for _, s := range steps {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
