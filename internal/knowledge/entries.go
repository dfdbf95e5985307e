package knowledge

// Entry is one reference record describing a known scam pattern. The table is
// loaded once at startup and never mutated.
type Entry struct {
	ID                string
	Tags              []string
	Title             string
	RiskBoost         int
	MinRisk           int
	WhyRisky          string
	WhatToDo          []string
	SafeReplyTemplate string
}

// DefaultEntries returns the built-in knowledge base.
func DefaultEntries() []Entry {
	return []Entry{
		{
			ID:        "kb-otp-theft",
			Tags:      []string{"verification code", "one-time code", "otp", "security code", "2fa"},
			Title:     "One-time code theft",
			RiskBoost: 30,
			MinRisk:   60,
			WhyRisky:  "No legitimate service asks you to read back a code. A code request means someone is logging into your account right now.",
			WhatToDo: []string{
				"Never share the code with anyone, including people claiming to be support staff",
				"Change the account password from the official app or site",
				"Enable app-based two-factor authentication instead of SMS where possible",
			},
			SafeReplyTemplate: "I don't share verification codes. If this is a real request, I will contact support through the official app.",
		},
		{
			ID:        "kb-credential-phish",
			Tags:      []string{"verify your account", "password", "sign in", "confirm your identity", "suspended"},
			Title:     "Credential phishing page",
			RiskBoost: 22,
			MinRisk:   45,
			WhyRisky:  "Links in these messages lead to copied login pages that capture whatever you type.",
			WhatToDo: []string{
				"Do not click the link; open the service directly from a bookmark or the official app",
				"Check the account's real notification center for the claimed issue",
				"Report the message as phishing",
			},
			SafeReplyTemplate: "I will check my account directly through the official site rather than this link.",
		},
		{
			ID:        "kb-gift-card",
			Tags:      []string{"gift card", "gift cards", "itunes", "google play"},
			Title:     "Gift card payment scam",
			RiskBoost: 25,
			MinRisk:   55,
			WhyRisky:  "Gift card codes are untraceable cash. No employer, agency, or utility accepts them as payment.",
			WhatToDo: []string{
				"Stop before buying anything; verify the request by calling a known number",
				"If cards were already bought, keep the receipts and contact the card issuer",
			},
			SafeReplyTemplate: "I can't help with gift cards. Let's handle this through the normal process and I'll confirm by phone.",
		},
		{
			ID:        "kb-ceo-fraud",
			Tags:      []string{"wire transfer", "ceo", "urgent payment", "invoice", "confidential"},
			Title:     "Executive payment fraud",
			RiskBoost: 28,
			MinRisk:   55,
			WhyRisky:  "Attackers impersonate executives to rush finance staff into irreversible transfers outside normal controls.",
			WhatToDo: []string{
				"Verify the request with the named person via a directory-listed number, not by replying",
				"Follow the standard payment approval chain regardless of claimed urgency",
				"Report the attempt to your security team",
			},
			SafeReplyTemplate: "Before I can process this I need to verify it through our standard approval process. I'll call you at your listed number.",
		},
		{
			ID:        "kb-delivery-smish",
			Tags:      []string{"package", "delivery", "customs fee", "redelivery", "track your"},
			Title:     "Fake delivery notice",
			RiskBoost: 15,
			MinRisk:   35,
			WhyRisky:  "Fake carrier texts harvest card details through a small 'redelivery fee'.",
			WhatToDo: []string{
				"Track packages only through the carrier's own site or app",
				"Never pay fees through a texted link",
			},
			SafeReplyTemplate: "",
		},
		{
			ID:        "kb-prize-lure",
			Tags:      []string{"you won", "congratulations", "lottery", "claim your", "free gift"},
			Title:     "Prize and lottery lure",
			RiskBoost: 15,
			MinRisk:   35,
			WhyRisky:  "Unexpected winnings are a pretext to collect personal details or an advance fee.",
			WhatToDo: []string{
				"Do not pay anything to claim a prize",
				"Do not provide identity documents or bank details",
			},
			SafeReplyTemplate: "",
		},
		{
			ID:        "kb-investment",
			Tags:      []string{"guaranteed returns", "double your money", "passive income", "crypto", "investment opportunity"},
			Title:     "Get-rich investment scheme",
			RiskBoost: 20,
			MinRisk:   45,
			WhyRisky:  "Guaranteed high returns do not exist; these schemes collect deposits and vanish.",
			WhatToDo: []string{
				"Check the promoter against your financial regulator's register",
				"Never move the conversation to a private chat app to 'invest'",
			},
			SafeReplyTemplate: "I'm not interested. I only invest through regulated platforms.",
		},
		{
			ID:        "kb-malware-attachment",
			Tags:      []string{"enable macros", "attached file", "invoice attached", ".zip", ".exe"},
			Title:     "Malicious attachment",
			RiskBoost: 20,
			MinRisk:   45,
			WhyRisky:  "Unexpected attachments, especially ones asking to enable macros, are a standard malware delivery channel.",
			WhatToDo: []string{
				"Do not open the attachment or enable macros",
				"Confirm with the sender through a separate channel before opening anything",
				"If opened, disconnect from the network and contact IT",
			},
			SafeReplyTemplate: "I can't open unexpected attachments. Please send the details in plain text or through our usual system.",
		},
		{
			ID:        "kb-format-mismatch",
			Tags:      []string{"link in bio", "repost", "share before"},
			Title:     "Viral post disguised as email",
			RiskBoost: 20,
			MinRisk:   70,
			WhyRisky:  "Content written for viral resharing but presented as email is a strong manipulation marker.",
			WhatToDo: []string{
				"Re-check what channel this message actually arrived on",
				"Do not reshare or forward it",
			},
			SafeReplyTemplate: "",
		},
		{
			ID:        "kb-romance-advance",
			Tags:      []string{"never met", "stranded", "emergency money", "western union", "money order"},
			Title:     "Advance-fee and romance pressure",
			RiskBoost: 18,
			MinRisk:   40,
			WhyRisky:  "Requests for untraceable money transfers from someone you have not met in person follow a long-running fraud script.",
			WhatToDo: []string{
				"Never send money to someone you have only met online",
				"Reverse-image-search their photos",
			},
			SafeReplyTemplate: "I don't send money online. If this is a genuine emergency, contact your local consulate or family.",
		},
	}
}
