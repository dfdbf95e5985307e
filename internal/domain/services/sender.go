package services

import (
	"strings"

	"redflag-lab/internal/domain/models"
)

const maxHeaderLines = 70

// SenderAnalyzer parses RFC-822-style header lines out of raw email text and
// flags sender inconsistencies. It runs only for email-kind input.
type SenderAnalyzer struct{}

// NewSenderAnalyzer creates a sender analyzer.
func NewSenderAnalyzer() *SenderAnalyzer {
	return &SenderAnalyzer{}
}

// Analyze extracts From, Reply-To and Return-Path from the first header lines
// of text and raises mismatch flags. Missing headers produce empty fields, not
// an error; downstream consumers must tolerate a blank result.
func (s *SenderAnalyzer) Analyze(text, senderHint string, bodyURLs []string) *models.SenderAnalysis {
	result := &models.SenderAnalysis{Flags: []string{}}

	lines := strings.Split(text, "\n")
	if len(lines) > maxHeaderLines {
		lines = lines[:maxHeaderLines]
	}

	for _, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(lower, "from:") && result.FromHeader == "":
			result.FromHeader = strings.TrimSpace(line[strings.Index(line, ":")+1:])
		case strings.HasPrefix(lower, "reply-to:") && result.ReplyTo == "":
			result.ReplyTo = strings.TrimSpace(line[strings.Index(line, ":")+1:])
		case strings.HasPrefix(lower, "return-path:") && result.ReturnPath == "":
			result.ReturnPath = strings.TrimSpace(line[strings.Index(line, ":")+1:])
		}
	}

	fromAddr := firstEmail(result.FromHeader)
	replyAddr := firstEmail(result.ReplyTo)
	returnAddr := firstEmail(result.ReturnPath)

	result.SenderEmail = fromAddr
	if result.SenderEmail == "" {
		result.SenderEmail = strings.TrimSpace(strings.ToLower(senderHint))
	}
	result.Domain = emailDomain(result.SenderEmail)

	if replyAddr != "" && fromAddr != "" && !strings.EqualFold(replyAddr, fromAddr) {
		result.Flags = append(result.Flags, "Reply-To mismatch: replies go to a different address than the sender")
	}
	if returnAddr != "" && fromAddr != "" && !strings.EqualFold(returnAddr, fromAddr) {
		result.Flags = append(result.Flags, "Return-Path mismatch: message was relayed through a different address")
	}
	if freeMailProviders[result.Domain] && containsAnyPhrase(strings.ToLower(text), roleKeywords) {
		result.Flags = append(result.Flags, "Free mail domain used while claiming an organizational role")
	}
	if result.Domain != "" && looksLikeLookalike(result.Domain) {
		result.Flags = append(result.Flags, "Lookalike domain: sender domain imitates a legitimate service")
	}
	if result.Domain != "" && hasUnrelatedLink(bodyURLs, result.Domain) {
		result.Flags = append(result.Flags, "Links point to a domain unrelated to the sender")
	}

	return result
}

func firstEmail(header string) string {
	match := emailPattern.FindString(header)
	return strings.ToLower(match)
}

func emailDomain(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return ""
	}
	return strings.ToLower(addr[at+1:])
}

func looksLikeLookalike(domain string) bool {
	if strings.Contains(domain, "xn--") {
		return true
	}
	if strings.Count(domain, "-") >= 3 {
		return true
	}
	for _, w := range lookalikeDomainWords {
		if strings.Contains(domain, w) {
			return true
		}
	}
	return false
}

// hasUnrelatedLink reports whether any body URL resolves to a host that is
// neither the sender domain nor a subdomain of it.
func hasUnrelatedLink(urls []string, senderDomain string) bool {
	for _, raw := range urls {
		host := urlHost(raw)
		if host == "" {
			continue
		}
		if host != senderDomain && !strings.HasSuffix(host, "."+senderDomain) {
			return true
		}
	}
	return false
}

func urlHost(raw string) string {
	raw = strings.ToLower(raw)
	raw = strings.TrimPrefix(raw, "https://")
	raw = strings.TrimPrefix(raw, "http://")
	raw = strings.TrimPrefix(raw, "www.")
	for i := 0; i < len(raw); i++ {
		if raw[i] == '/' || raw[i] == '?' || raw[i] == '#' || raw[i] == ':' {
			return raw[:i]
		}
	}
	return raw
}

func containsAnyPhrase(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
