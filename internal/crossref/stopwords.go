// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

// stopWords lists common English words excluded from salient-term
// extraction. Lookup happens after lowercasing.
var stopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"against": true, "all": true, "also": true, "among": true, "an": true,
	"and": true, "any": true, "are": true, "around": true, "as": true,
	"at": true, "based": true, "be": true, "because": true, "been": true,
	"before": true, "being": true, "below": true, "between": true,
	"both": true, "but": true, "by": true, "can": true, "could": true,
	"did": true, "do": true, "does": true, "doing": true, "down": true,
	"during": true, "each": true, "effect": true, "effects": true,
	"few": true, "first": true, "for": true, "from": true, "further": true,
	"had": true, "has": true, "have": true, "having": true, "here": true,
	"how": true, "however": true, "if": true, "in": true, "into": true,
	"is": true, "it": true, "its": true, "just": true, "large": true,
	"like": true, "made": true, "many": true, "may": true, "might": true,
	"more": true, "most": true, "much": true, "new": true, "no": true,
	"none": true, "not": true, "now": true, "of": true, "off": true,
	"often": true, "on": true, "once": true, "only": true, "or": true,
	"other": true, "our": true, "out": true, "over": true, "own": true,
	"paper": true, "report": true, "research": true, "results": true,
	"same": true, "should": true, "show": true, "shows": true, "since": true,
	"so": true, "some": true, "study": true, "such": true, "than": true,
	"that": true, "the": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "those": true,
	"three": true, "through": true, "to": true, "toward": true, "two": true,
	"under": true, "until": true, "up": true, "using": true, "very": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "who": true, "why": true,
	"will": true, "with": true, "within": true, "without": true,
	"would": true, "you": true, "your": true,
}
