package usecase

import (
	"fmt"
	"strings"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

// ScoringRules are the ICP heuristics. Matching is deliberately fuzzy:
// case-insensitive substring checks against keyword tables. The thresholds
// were tuned against this behavior, so the tables and the match semantics
// stay exactly as they are.
type ScoringRules struct {
	FreeEmailDomains      []string
	BlockedIndustries     []string
	TargetIndustries      []string
	TargetCountries       []string
	DecisionMakerKeywords []string
	QualifyThreshold      int
}

// DefaultScoringRules is the production rule set.
func DefaultScoringRules() ScoringRules {
	return ScoringRules{
		FreeEmailDomains: []string{
			"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "aol.com",
			"icloud.com", "live.com", "msn.com", "protonmail.com", "proton.me",
			"gmx.com", "mail.com", "yandex.com", "zoho.com", "comcast.net",
		},
		BlockedIndustries: []string{
			"retail", "hospitality", "consulting", "crypto", "restaurant",
			"real estate", "marketing", "advertising", "e-commerce", "gambling",
			"entertainment", "fitness",
		},
		TargetIndustries: []string{
			"healthcare", "hospital", "medical device", "pharmaceutical",
			"aerospace", "defense", "aviation", "manufacturing", "automotive",
			"energy", "utilities", "government", "biotech",
		},
		TargetCountries: []string{
			"united states", "usa", "us", "u.s.", "america",
			"mexico", "méxico", "estados unidos",
		},
		DecisionMakerKeywords: []string{
			"vp", "vice president", "director", "chief", "head of", "president",
			"owner", "founder", "procurement", "compliance", "quality",
			"regulatory", "supply chain", "sourcing", "contracts",
		},
		QualifyThreshold: 60,
	}
}

// LeadScore is the outcome of one scoring pass.
type LeadScore struct {
	Score     int
	Qualified bool
	Reasons   []string
}

// ScoreLead is the qualification engine: an additive point system over the
// submission and optional enrichment. Pure — identical input always yields
// identical score and reasons. Disqualifiers run before positive signals so
// the reasons list reads worst-first for sales review.
//
// Qualification is two-layered on purpose: a critical disqualifier (free
// email, blocked industry, under 200 employees, country outside the target
// list) vetoes the lead even when the additive score clears the threshold.
func ScoreLead(rules ScoringRules, name, email, company, title string, enrichment *entity.Enrichment) LeadScore {
	score := 0
	critical := false
	var reasons []string

	freeDomain := matchesEmailDomain(rules.FreeEmailDomains, email)
	if freeDomain {
		score -= 100
		critical = true
		reasons = append(reasons, "Disqualified: free/personal email domain (-100)")
	}

	if enrichment != nil {
		if kw, ok := containsAny(enrichment.Industry, rules.BlockedIndustries); ok {
			score -= 80
			critical = true
			reasons = append(reasons, fmt.Sprintf("Disqualified: blocked industry %q (-80)", kw))
		}
		if enrichment.EmployeeCount > 0 && enrichment.EmployeeCount < 200 {
			score -= 50
			critical = true
			reasons = append(reasons, fmt.Sprintf("Disqualified: company too small (%d employees) (-50)", enrichment.EmployeeCount))
		}
		if enrichment.Country != "" {
			if _, ok := containsAny(enrichment.Country, rules.TargetCountries); !ok {
				score -= 50
				critical = true
				reasons = append(reasons, fmt.Sprintf("Disqualified: country %q outside target markets (-50)", enrichment.Country))
			}
		}
	} else {
		score -= 30
		reasons = append(reasons, "No enrichment data available (-30)")
	}

	if enrichment != nil {
		if kw, ok := containsAny(enrichment.Industry, rules.TargetIndustries); ok {
			score += 50
			reasons = append(reasons, fmt.Sprintf("Target industry %q (+50)", kw))
		}
		if enrichment.EmployeeCount >= 1000 {
			score += 25
			reasons = append(reasons, fmt.Sprintf("Large enterprise (%d employees) (+25)", enrichment.EmployeeCount))
		} else if enrichment.EmployeeCount >= 200 {
			score += 15
			reasons = append(reasons, fmt.Sprintf("Mid-size company (%d employees) (+15)", enrichment.EmployeeCount))
		}
		if _, ok := containsAny(enrichment.Country, rules.TargetCountries); ok {
			score += 10
			reasons = append(reasons, fmt.Sprintf("Target country %q (+10)", enrichment.Country))
		}
	}

	if !freeDomain {
		score += 10
		reasons = append(reasons, "Corporate email domain (+10)")
	}

	if enrichment != nil && enrichment.RevenueBand != "" {
		band := strings.ToLower(enrichment.RevenueBand)
		if strings.Contains(band, "100") || strings.Contains(band, "200") || strings.Contains(band, "billion") {
			score += 20
			reasons = append(reasons, fmt.Sprintf("Revenue band %q (+20)", enrichment.RevenueBand))
		} else if strings.Contains(band, "50") {
			score += 10
			reasons = append(reasons, fmt.Sprintf("Revenue band %q (+10)", enrichment.RevenueBand))
		}
	}

	if kw, ok := containsAny(title, rules.DecisionMakerKeywords); ok {
		score += 30
		reasons = append(reasons, fmt.Sprintf("Decision-maker title %q (+30)", kw))
	}

	qualified := !critical && score >= rules.QualifyThreshold

	if len(reasons) == 0 && !qualified {
		reasons = append(reasons, "Score below qualification threshold")
	}

	return LeadScore{Score: score, Qualified: qualified, Reasons: reasons}
}

// containsAny reports whether value contains any keyword, case-insensitive,
// and returns the first keyword that matched.
func containsAny(value string, keywords []string) (string, bool) {
	v := strings.ToLower(value)
	if v == "" {
		return "", false
	}
	for _, kw := range keywords {
		if strings.Contains(v, kw) {
			return kw, true
		}
	}
	return "", false
}

func matchesEmailDomain(domains []string, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, d := range domains {
		if domain == d {
			return true
		}
	}
	return false
}
