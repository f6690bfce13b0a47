// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package credibility

// domainTier maps a domain suffix pattern to a base score and category.
// The table is static and ordered; lookup picks the longest matching
// pattern so that specific hosts beat broad TLD rules.
type domainTier struct {
	pattern  string
	base     float64
	category string
}

// domainTable is the tiered reputation table. Scores span generic
// user-generated content (0.25) to top-tier journals and government
// sources (0.85). Unmatched domains fall back to defaultBase.
var domainTable = []domainTier{
	// Top-tier journals.
	{"nature.com", 0.85, "top_tier_journal"},
	{"science.org", 0.85, "top_tier_journal"},
	{"cell.com", 0.85, "top_tier_journal"},
	{"nejm.org", 0.85, "top_tier_journal"},
	{"thelancet.com", 0.85, "top_tier_journal"},
	{"pnas.org", 0.85, "top_tier_journal"},

	// Government and intergovernmental sources.
	{"nih.gov", 0.85, "government"},
	{"cdc.gov", 0.85, "government"},
	{"who.int", 0.85, "government"},
	{"europa.eu", 0.85, "government"},
	{"gov", 0.85, "government"},

	// Academic publishers and institutions.
	{"acm.org", 0.75, "academic_publisher"},
	{"ieee.org", 0.75, "academic_publisher"},
	{"springer.com", 0.75, "academic_publisher"},
	{"sciencedirect.com", 0.75, "academic_publisher"},
	{"wiley.com", 0.75, "academic_publisher"},
	{"doi.org", 0.75, "academic_publisher"},
	{"edu", 0.75, "academic_institution"},

	// Established newsrooms.
	{"reuters.com", 0.65, "established_news"},
	{"apnews.com", 0.65, "established_news"},
	{"bbc.com", 0.65, "established_news"},
	{"bbc.co.uk", 0.65, "established_news"},
	{"nytimes.com", 0.65, "established_news"},
	{"economist.com", 0.65, "established_news"},
	{"ft.com", 0.65, "established_news"},

	// Reference works.
	{"wikipedia.org", 0.55, "reference_work"},

	// Preprint repositories. Unreviewed, same base as unknown domains.
	{"arxiv.org", 0.50, "preprint_repository"},
	{"biorxiv.org", 0.50, "preprint_repository"},
	{"medrxiv.org", 0.50, "preprint_repository"},
	{"ssrn.com", 0.50, "preprint_repository"},

	// User-generated content.
	{"medium.com", 0.25, "user_generated"},
	{"substack.com", 0.25, "user_generated"},
	{"blogspot.com", 0.25, "user_generated"},
	{"wordpress.com", 0.25, "user_generated"},
	{"reddit.com", 0.25, "user_generated"},
	{"quora.com", 0.25, "user_generated"},
	{"x.com", 0.25, "user_generated"},
	{"twitter.com", 0.25, "user_generated"},
	{"facebook.com", 0.25, "user_generated"},
	{"youtube.com", 0.25, "user_generated"},
}

const (
	defaultBase     = 0.50
	defaultCategory = "unverified"
)

// predatoryDomains lists known predatory-publisher domains. A match
// overrides every other signal.
var predatoryDomains = []string{
	"omicsonline.org",
	"waset.org",
	"sciencepublishinggroup.com",
	"scirp.org",
	"austinpublishinggroup.com",
	"juniperpublishers.com",
}

// retractedDOIs is the known-retraction registry, keyed by bare DOI.
var retractedDOIs = map[string]bool{
	"10.1016/s0140-6736(97)11096-0": true, // Wakefield et al., retracted 2010
	"10.1126/science.1078197":       true, // Hwang et al., retracted 2006
	"10.1016/s0140-6736(20)31180-6": true, // Mehra et al., retracted 2020
	"10.1038/nature04969":           true,
}
