package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/haroon0x/CognixAi/internal/model"
)

func buildCategorizePrompt(title, text string) string {
	return fmt.Sprintf(`Analyze the following content and categorize it into relevant categories.
Choose from these categories: project-management, meeting-notes, planning, research,
development, marketing, finance, education, documentation, general.

Title: %s
Content: %s

Return only the category names as a comma-separated list.
Example: project-management, planning`, title, truncateRunes(text, 1000))
}

func buildRelevancePrompt(text string) string {
	return fmt.Sprintf(`Analyze the following content and rate its relevance/quality on a scale of 0.0 to 1.0.
Consider factors like clarity, actionability, completeness, and usefulness.

Content: %s

Return only a number between 0.0 and 1.0.
Example: 0.85`, truncateRunes(text, 1000))
}

func buildSimilarityPrompt(text1, text2 string) string {
	return fmt.Sprintf(`Compare these two texts and rate their similarity on a scale of 0.0 to 1.0.
Consider semantic similarity, topic overlap, and content relevance.

Text 1: %s
Text 2: %s

Return only a number between 0.0 and 1.0.
Example: 0.72`, truncateRunes(text1, 500), truncateRunes(text2, 500))
}

func buildPlanPrompt(items []model.ContentItem, goals []string) string {
	return fmt.Sprintf(`Based on the following content and user goals, create a detailed action plan.

User Goals: %s

Content Summary:
%s

Output ONLY a JSON object matching this schema (no markdown, no explanation):
{
  "title": "Action Plan Title",
  "steps": [
    {
      "title": "Step Title",
      "description": "Detailed description of what to do",
      "resources": ["relevant content titles"],
      "estimated_time": "time estimate"
    }
  ],
  "priority": "low" | "medium" | "high",
  "estimatedDuration": "overall duration",
  "dependencies": ["any dependencies or prerequisites"]
}

Make the plan specific, actionable, and tailored to the content provided.`,
		strings.Join(goals, ", "), contentSummary(items))
}

func buildSuggestPrompt(items []model.ContentItem, completedSteps []string) string {
	completed := "None"
	if len(completedSteps) > 0 {
		completed = strings.Join(completedSteps, ", ")
	}
	return fmt.Sprintf(`Based on the following content and completed steps, suggest 3-5 intelligent next steps.

Content Summary:
%s

Completed Steps: %s

Provide specific, actionable next steps as a simple list.
Focus on what the user should do next to make progress.
Return each suggestion on a new line.`, contentSummary(items), completed)
}

func buildEnhancePrompt(text, contentType string) string {
	return fmt.Sprintf(`Clean up and enhance the following extracted text from a %s.
Fix any OCR errors, improve formatting, and make it more readable while preserving all original meaning and information.
Do not add new information, only clean up and structure what's already there.

Original text:
%s

Return the cleaned and enhanced version:`, contentType, truncateRunes(text, 2000))
}

// contentSummary renders a compact per-item digest for planner prompts.
func contentSummary(items []model.ContentItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("Title: %s\nType: %s\nCategories: %s\nContent Preview: %s",
			item.Title,
			item.Type,
			strings.Join(item.Categories, ", "),
			truncateRunes(item.ExtractedText, 200)))
	}
	return strings.Join(parts, "\n\n")
}

// truncateRunes truncates s to maxRunes runes (Unicode-safe).
func truncateRunes(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + "..."
}
