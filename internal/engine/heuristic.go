package engine

import "strings"

// Rule-based fallbacks. These are deterministic, depend on nothing
// external, and never fail, so they terminate every strategy chain.

// categoryOrder fixes the output order of matched categories.
var categoryOrder = []string{
	"project-management",
	"meeting-notes",
	"planning",
	"research",
	"development",
	"marketing",
	"finance",
	"education",
	"documentation",
}

var categoryKeywords = map[string][]string{
	"project-management": {"project", "timeline", "milestone", "deadline", "scope", "deliverable"},
	"meeting-notes":      {"meeting", "agenda", "attendees", "action items", "notes", "discussion"},
	"planning":           {"plan", "strategy", "objective", "goal", "roadmap", "vision"},
	"research":           {"research", "analysis", "data", "study", "findings", "investigation"},
	"development":        {"development", "code", "programming", "technical", "software", "implementation"},
	"marketing":          {"marketing", "campaign", "promotion", "brand", "advertising", "customer"},
	"finance":            {"budget", "cost", "revenue", "financial", "expense", "profit"},
	"education":          {"learn", "tutorial", "course", "training", "education", "knowledge"},
	"documentation":      {"documentation", "manual", "guide", "instructions", "specification"},
}

var qualityIndicators = []string{
	"objective", "goal", "plan", "action", "timeline",
	"deliverable", "requirement", "milestone", "task",
	"strategy", "implementation", "analysis", "solution",
}

// extractCategories returns every category whose keyword set matches the
// lowercased text, in declaration order, or ["general"] when none match.
func extractCategories(text string) []string {
	lower := strings.ToLower(text)
	var categories []string
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lower, keyword) {
				categories = append(categories, category)
				break
			}
		}
	}
	if len(categories) == 0 {
		return []string{"general"}
	}
	return categories
}

// relevanceScore rates text quality in [0, 1] from indicator density
// (capped at 0.7) plus a length bonus (capped at 0.3).
func relevanceScore(text string) float64 {
	lower := strings.ToLower(text)
	matches := 0
	for _, indicator := range qualityIndicators {
		if strings.Contains(lower, indicator) {
			matches++
		}
	}

	base := min(float64(matches)/float64(len(qualityIndicators)), 0.7)
	bonus := min(float64(len(strings.Fields(text)))/500, 0.3)
	return min(base+bonus, 1.0)
}

// similarityScore is the Jaccard index over lowercased word sets.
func similarityScore(text1, text2 string) float64 {
	words1 := wordSet(text1)
	words2 := wordSet(text2)

	intersection := 0
	for w := range words1 {
		if _, ok := words2[w]; ok {
			intersection++
		}
	}
	union := len(words1) + len(words2) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// commonTopics returns the categories present in both lists, in the
// order of the first list.
func commonTopics(categories1, categories2 []string) []string {
	seen := make(map[string]bool, len(categories2))
	for _, c := range categories2 {
		seen[c] = true
	}
	common := []string{}
	for _, c := range categories1 {
		if seen[c] {
			common = append(common, c)
			seen[c] = false
		}
	}
	return common
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}
