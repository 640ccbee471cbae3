package enhance

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

const fallbackAssessment = "Unable to parse the full analysis. Please try again."

// ParseRecommendation turns raw model output into a Recommendation. It is
// total: malformed output yields the fixed fallback document (with the raw
// text kept in RawResponse for diagnostics) instead of an error. The boolean
// reports whether the raw text parsed as the expected schema.
func ParseRecommendation(raw string) (Recommendation, bool) {
	payload := stripFences(raw)

	var rec Recommendation
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return fallbackRecommendation(raw), false
	}
	rec.RawResponse = ""
	rec.Normalize()
	return rec, true
}

// SplitCombined separates the combined-mode envelope
// {enhancedCv: ..., coverLetter: ...} into its parts. The recommendation
// half degrades like ParseRecommendation; a missing or blank cover letter is
// reported through the error-free boolean so the orchestrator can fail the
// run without a partial result.
func SplitCombined(raw string) (Recommendation, string, bool) {
	payload := stripFences(raw)
	if !gjson.Valid(payload) {
		return fallbackRecommendation(raw), "", false
	}

	envelope := gjson.Parse(payload)
	coverLetter := strings.TrimSpace(envelope.Get("coverLetter").String())
	enhanced := envelope.Get("enhancedCv")
	if !enhanced.Exists() || coverLetter == "" {
		return fallbackRecommendation(raw), coverLetter, false
	}

	rec, _ := ParseRecommendation(enhanced.Raw)
	return rec, coverLetter, true
}

// stripFences removes a markdown code fence around the payload, if any, and
// trims to the outermost JSON object. Models occasionally wrap JSON in
// ```json fences or lead with prose despite instructions.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

func fallbackRecommendation(raw string) Recommendation {
	return Recommendation{
		OverallAssessment:       fallbackAssessment,
		SectionsToUpdate:        []SectionUpdate{},
		SectionsToAdd:           []SectionAddition{},
		SectionsToRemove:        []SectionRemoval{},
		LearningRecommendations: []LearningRecommendation{},
		FieldCompatibility: FieldCompatibility{
			CurrentField:    "Unknown",
			TargetField:     "Unknown",
			Compatibility:   CompatibilityUnknown,
			Recommendations: []string{},
		},
		RawResponse: raw,
	}
}
