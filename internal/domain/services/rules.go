package services

// signalCategory is one row of the rule table: a named keyword group with a
// score weight, a fixed tactic confidence, and its trigger phrases. Each
// category contributes its weight at most once per message regardless of how
// many phrases matched.
type signalCategory struct {
	Key         string
	TacticName  string
	Weight      int
	Confidence  int
	Explanation string
	Phrases     []string
}

// ruleTable is the single canonical table shared by the extractor and the
// attack-type classifier. Weights are hand-tuned; one-time-code requests carry
// the highest weight because they correlate most strongly with account takeover.
var ruleTable = []signalCategory{
	{
		Key:         "urgency",
		TacticName:  "Urgency",
		Weight:      10,
		Confidence:  72,
		Explanation: "Pressure to act quickly so you skip verification",
		Phrases: []string{
			"urgent", "immediately", "right now", "act now", "expires",
			"within 24 hours", "in 30 minutes", "last chance", "final notice",
			"asap", "time sensitive", "don't delay",
		},
	},
	{
		Key:         "fear",
		TacticName:  "Fear",
		Weight:      10,
		Confidence:  74,
		Explanation: "Threats of loss or punishment to force compliance",
		Phrases: []string{
			"locked", "suspended", "unauthorized", "compromised", "deactivated",
			"legal action", "police", "arrest", "penalty", "your account will be",
			"permanently closed", "unusual activity",
		},
	},
	{
		Key:         "authority",
		TacticName:  "Authority Impersonation",
		Weight:      7,
		Confidence:  70,
		Explanation: "Claims to speak for an organization or official you trust",
		Phrases: []string{
			"ceo", "cfo", "it department", "helpdesk", "help desk", "hr department",
			"irs", "government", "bank security", "security team",
			"microsoft support", "apple support", "your manager", "payroll",
		},
	},
	{
		Key:         "money",
		TacticName:  "Money Lure",
		Weight:      16,
		Confidence:  78,
		Explanation: "Direct requests for payment or financial details",
		Phrases: []string{
			"wire transfer", "payment", "invoice", "gift card", "gift cards",
			"bitcoin", "crypto", "bank account", "refund", "transfer funds",
			"payment details", "billing information",
		},
	},
	{
		Key:         "otp",
		TacticName:  "Code Theft",
		Weight:      26,
		Confidence:  90,
		Explanation: "Requests for one-time codes, the strongest account-takeover signal",
		Phrases: []string{
			"verification code", "one-time code", "one time code", "otp",
			"2fa code", "security code", "passcode", "code we sent",
			"read me the code", "authentication code",
		},
	},
	{
		Key:         "credential",
		TacticName:  "Credential Harvest",
		Weight:      18,
		Confidence:  86,
		Explanation: "Attempts to capture passwords or identity details",
		Phrases: []string{
			"password", "login", "log in", "sign in", "verify your account",
			"confirm your identity", "update your credentials",
			"username and password", "ssn", "social security", "reactivate your account",
		},
	},
	{
		Key:         "reward",
		TacticName:  "Reward Bait",
		Weight:      10,
		Confidence:  73,
		Explanation: "Unexpected prizes used as a hook",
		Phrases: []string{
			"you won", "you've won", "winner", "congratulations", "free gift",
			"claim your", "voucher", "lottery", "selected to receive",
		},
	},
	{
		Key:         "attachment",
		TacticName:  "Attachment Lure",
		Weight:      10,
		Confidence:  75,
		Explanation: "Pushes you to open a file that may carry malware",
		Phrases: []string{
			"attachment", "attached file", "open the attached", "download the file",
			"enable macros", "invoice attached", ".zip", ".exe", "see attached",
		},
	},
	{
		Key:         "virality",
		TacticName:  "Virality Bait",
		Weight:      22,
		Confidence:  82,
		Explanation: "Engineered to be reshared before anyone checks it",
		Phrases: []string{
			"share before it's deleted", "link in bio", "they don't want you to know",
			"repost", "going viral", "share this with everyone",
			"before it gets taken down", "wake up people",
		},
	},
	{
		Key:         "getrich",
		TacticName:  "Get-Rich-Quick",
		Weight:      22,
		Confidence:  84,
		Explanation: "Promises of outsized returns with no risk",
		Phrases: []string{
			"get rich", "double your money", "guaranteed returns", "passive income",
			"financial freedom", "investment opportunity", "10x your",
			"risk free profit",
		},
	},
}

// Structural signals detected by pattern scan rather than phrase match
const (
	urlWeight       = 16
	shortenerWeight = 10

	urlConfidence       = 76
	shortenerConfidence = 80

	lowSignalConfidence = 60
)

// spanEntry is one row of the highlight dictionary. Every case-insensitive
// occurrence of Phrase is emitted as a span, not just the first.
type spanEntry struct {
	Label  string
	Phrase string
	Reason string
}

var spanDictionary = []spanEntry{
	{"urgency", "urgent", "Pressure phrase pushing immediate action"},
	{"urgency", "immediately", "Pressure phrase pushing immediate action"},
	{"urgency", "act now", "Pressure phrase pushing immediate action"},
	{"urgency", "last chance", "Artificial deadline"},
	{"fear", "locked", "Threat of account loss"},
	{"fear", "suspended", "Threat of account loss"},
	{"fear", "unauthorized", "Implied breach to create panic"},
	{"fear", "legal action", "Legal threat to force compliance"},
	{"credential", "password", "Asks about login secrets"},
	{"credential", "verify your account", "Credential-capture phrasing"},
	{"credential", "confirm your identity", "Credential-capture phrasing"},
	{"otp", "verification code", "One-time codes must never be shared"},
	{"otp", "one-time code", "One-time codes must never be shared"},
	{"otp", "security code", "One-time codes must never be shared"},
	{"money", "wire transfer", "Irreversible payment method"},
	{"money", "gift card", "Gift cards are a common scam payment channel"},
	{"money", "bitcoin", "Crypto payments cannot be recovered"},
	{"reward", "congratulations", "Prize hook for an unexpected win"},
	{"reward", "you won", "Prize hook for an unexpected win"},
	{"attachment", "enable macros", "Macro-enabled documents deliver malware"},
	{"attachment", "open the attached", "Pushes you toward a risky file"},
	{"virality", "share before it's deleted", "False scarcity to drive resharing"},
	{"virality", "link in bio", "Common engagement-bait redirect"},
	{"virality", "they don't want you to know", "Conspiracy framing to drive shares"},
	{"action", "click the link", "Directs you to an attacker-controlled page"},
	{"action", "click here", "Directs you to an attacker-controlled page"},
}

// viralBaitPhrases feed the kind-mismatch detector: text the user labeled as
// email but which reads like a viral social post.
var viralBaitPhrases = []string{
	"share before it's deleted",
	"link in bio",
	"they don't want you to know",
	"repost",
	"going viral",
	"share this with everyone",
	"before it gets taken down",
}

// shortenerDomains hide the real destination of a link.
var shortenerDomains = []string{
	"bit.ly", "tinyurl.com", "goo.gl", "t.co", "ow.ly", "is.gd",
	"buff.ly", "rebrand.ly", "cutt.ly", "shorturl.at", "rb.gy",
}

// freeMailProviders is used by the sender analyzer: a free-mail sender domain
// combined with corporate-role language in the body is a pretexting indicator.
var freeMailProviders = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"outlook.com":    true,
	"hotmail.com":    true,
	"aol.com":        true,
	"icloud.com":     true,
	"proton.me":      true,
	"protonmail.com": true,
	"mail.com":       true,
	"gmx.com":        true,
	"yandex.com":     true,
}

// roleKeywords indicate the sender claims an organizational role.
var roleKeywords = []string{
	"ceo", "cfo", "director", "manager", "it department", "helpdesk",
	"help desk", "hr department", "payroll", "accounts payable", "supervisor",
}

// lookalikeDomainWords commonly appear in domains registered to impersonate
// legitimate login pages.
var lookalikeDomainWords = []string{
	"secure", "verify", "login", "account", "support",
}
