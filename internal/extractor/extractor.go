package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/poolexpert/concierge/internal/models"
)

// fieldPattern pairs a regex with an optional normalizer. Patterns for a
// field are tried in order; the first one that yields a non-empty value
// wins. A nil normalizer stores the first capture group, falling back to
// the whole match.
type fieldPattern struct {
	re        *regexp.Regexp
	normalize func(whole string, groups []string) string
}

var emailPatterns = []fieldPattern{
	{re: regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)},
}

var phonePatterns = []fieldPattern{
	{re: regexp.MustCompile(`(?:\+1[-.\s]?)?(?:\(?\d{3}\)?[-.\s]?)?\d{3}[-.\s]?\d{4}`)},
}

// Name patterns keep the capitalized-token requirement even though the
// introducing phrase itself is matched case-insensitively.
var namePatterns = []fieldPattern{
	{re: regexp.MustCompile(`(?i:my name is|i'm|i am|call me)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)},
	{re: regexp.MustCompile(`(?i:this is)\s+([A-Z][a-z]+)`)},
}

var budgetPatterns = []fieldPattern{
	{re: regexp.MustCompile(`(?i)\$(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*(?:k|thousand)?`), normalize: normalizeBudget},
	{re: regexp.MustCompile(`(?i)(\d{1,3})\s*(?:k|thousand)\s*(?:dollars?)?`), normalize: normalizeBudget},
	{re: regexp.MustCompile(`(?i)budget\s*(?:(?:is|of|around|about)\s*)*\$?(\d{1,3}(?:,\d{3})*)`), normalize: normalizeBudget},
	{re: regexp.MustCompile(`(?i)spend\s*(?:(?:around|about|up to)\s*)*\$?(\d{1,3}(?:,\d{3})*)`), normalize: normalizeBudget},
}

var timelinePatterns = []fieldPattern{
	{re: regexp.MustCompile(`(?i)(?:start|begin|ready|want it)\s*(?:by|in|around|this)?\s*(spring|summer|fall|winter|january|february|march|april|may|june|july|august|september|october|november|december|next year|this year|\d+ months?)`)},
	{re: regexp.MustCompile(`(?i)(asap|as soon as possible|immediately|right away)`)},
	{re: regexp.MustCompile(`(?i)(?:in the next|within)\s*(\d+\s*(?:weeks?|months?|years?))`)},
}

var poolTypePatterns = []fieldPattern{
	{re: regexp.MustCompile(`(?i)(infinity pool|vanishing edge|negative edge)`)},
	{re: regexp.MustCompile(`(?i)(lap pool)`)},
	{re: regexp.MustCompile(`(?i)(natural pool|swimming pond)`)},
	{re: regexp.MustCompile(`(?i)(vinyl liner|vinyl pool)`)},
	{re: regexp.MustCompile(`(?i)(concrete pool|gunite|shotcrete)`)},
	{re: regexp.MustCompile(`(?i)(fiberglass pool)`)},
	{re: regexp.MustCompile(`(?i)(above ground|above-ground)`)},
	{re: regexp.MustCompile(`(?i)(inground|in-ground|in ground)`)},
	{re: regexp.MustCompile(`(?i)(plunge pool)`)},
	{re: regexp.MustCompile(`(?i)(cocktail pool|spool)`)},
}

var projectTypePatterns = []fieldPattern{
	{re: regexp.MustCompile(`(?i)(new construction|new build|building new|brand new)`)},
	{re: regexp.MustCompile(`(?i)(renovation|remodel|redo|upgrade|update)`)},
	{re: regexp.MustCompile(`(?i)(replacement|replace)`)},
}

var kidsPattern = regexp.MustCompile(`(?i)\b(kids?|children|child|family|toddler|teenager|son|daughter)\b`)

// Extract pulls structured qualification details out of free-form
// conversation text. It is pure and total: fields with no matching
// pattern stay empty, and no input can make it fail.
func Extract(text string) models.ExtractedLeadInfo {
	info := models.ExtractedLeadInfo{
		Email:    firstMatch(emailPatterns, text),
		Phone:    firstMatch(phonePatterns, text),
		Name:     firstMatch(namePatterns, text),
		Budget:   firstMatch(budgetPatterns, text),
		Timeline: firstMatch(timelinePatterns, text),
		PoolType: firstMatch(poolTypePatterns, text),
		HasKids:  kidsPattern.MatchString(text),
	}

	if raw := firstMatch(projectTypePatterns, text); raw != "" {
		info.ProjectType = normalizeProjectType(raw)
	}

	return info
}

func firstMatch(patterns []fieldPattern, text string) string {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		var value string
		if p.normalize != nil {
			value = p.normalize(m[0], m[1:])
		} else if len(m) > 1 && m[1] != "" {
			value = strings.TrimSpace(m[1])
		} else {
			value = strings.TrimSpace(m[0])
		}

		if value != "" {
			return value
		}
	}
	return ""
}

// normalizeBudget converts a matched amount into a "$<integer>" string.
// Amounts written with a k/thousand suffix are scaled by 1000; so are bare
// numbers under 500, which prospects almost always mean as thousands of
// dollars ("my budget is 80"). That heuristic misreads genuinely small
// amounts, but it matches how the chat widget has always behaved.
func normalizeBudget(whole string, groups []string) string {
	if len(groups) == 0 || groups[0] == "" {
		return ""
	}

	raw := strings.ReplaceAll(groups[0], ",", "")
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		raw = raw[:i]
	}

	num, err := strconv.Atoi(raw)
	if err != nil {
		return ""
	}

	lower := strings.ToLower(whole)
	if strings.Contains(lower, "k") || strings.Contains(lower, "thousand") {
		num *= 1000
	} else if num < 500 {
		num *= 1000
	}

	return "$" + strconv.Itoa(num)
}

func normalizeProjectType(matched string) models.ProjectType {
	lower := strings.ToLower(matched)
	if strings.Contains(lower, "renovation") || strings.Contains(lower, "remodel") {
		return models.ProjectRenovation
	}
	return models.ProjectNewConstruction
}
