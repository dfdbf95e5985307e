package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSenderReplyToMismatch(t *testing.T) {
	s := NewSenderAnalyzer()
	text := "From: Alice <alice@company.com>\nReply-To: attacker@evil.net\nSubject: Hello\n\nbody"

	result := s.Analyze(text, "", nil)

	assert.Equal(t, "alice@company.com", result.SenderEmail)
	assert.Equal(t, "company.com", result.Domain)
	require.NotEmpty(t, result.Flags)
	assert.Contains(t, result.Flags[0], "Reply-To mismatch")
}

func TestSenderReturnPathMismatch(t *testing.T) {
	s := NewSenderAnalyzer()
	text := "From: billing@shop.com\nReturn-Path: <bounce@relay.xyz>\n\nbody"

	result := s.Analyze(text, "", nil)

	assert.True(t, hasFlagContaining(result.Flags, "Return-Path mismatch"))
}

func TestSenderFreeMailWithRoleClaim(t *testing.T) {
	s := NewSenderAnalyzer()
	text := "From: The CEO <bigboss@gmail.com>\n\nThis is your CEO, I need a favor."

	result := s.Analyze(text, "", nil)

	assert.True(t, hasFlagContaining(result.Flags, "Free mail domain"))
}

func TestSenderLookalikeDomain(t *testing.T) {
	s := NewSenderAnalyzer()

	tests := []struct {
		name string
		from string
	}{
		{"punycode", "From: help@xn--paypa-xyz.com"},
		{"many hyphens", "From: help@my-secure-bank-login.com"},
		{"suspicious word", "From: help@account-verify.net"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Analyze(tt.from+"\n\nbody", "", nil)
			assert.True(t, hasFlagContaining(result.Flags, "Lookalike domain"))
		})
	}
}

func TestSenderUnrelatedLinks(t *testing.T) {
	s := NewSenderAnalyzer()
	text := "From: news@shop.com\n\nCheck this out"

	unrelated := s.Analyze(text, "", []string{"https://totally-different.biz/deal"})
	assert.True(t, hasFlagContaining(unrelated.Flags, "unrelated to the sender"))

	related := s.Analyze(text, "", []string{"https://www.shop.com/deal", "https://cdn.shop.com/img"})
	assert.False(t, hasFlagContaining(related.Flags, "unrelated to the sender"))
}

func TestSenderNoHeaders(t *testing.T) {
	s := NewSenderAnalyzer()
	result := s.Analyze("just a plain message with no headers at all", "", nil)

	assert.Empty(t, result.SenderEmail)
	assert.Empty(t, result.FromHeader)
	assert.Empty(t, result.ReplyTo)
	assert.Empty(t, result.ReturnPath)
	assert.Empty(t, result.Domain)
	assert.Empty(t, result.Flags)
}

func TestSenderHintFallback(t *testing.T) {
	s := NewSenderAnalyzer()
	result := s.Analyze("no headers here", "Claimed@Example.com", nil)

	assert.Equal(t, "claimed@example.com", result.SenderEmail)
	assert.Equal(t, "example.com", result.Domain)
}

func hasFlagContaining(flags []string, substr string) bool {
	for _, f := range flags {
		if strings.Contains(f, substr) {
			return true
		}
	}
	return false
}
