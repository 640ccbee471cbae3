package enhance

import (
	"strings"
	"testing"
)

const validAnalysisJSON = `{
  "overallAssessment": "Strong candidate for the role.",
  "sectionsToUpdate": [
    {"sectionName": "Summary", "currentContent": "Old", "recommendedContent": "New", "explanation": "Sharper focus"}
  ],
  "sectionsToAdd": [
    {"sectionName": "Projects", "recommendedContent": "Side projects", "explanation": "Shows initiative"}
  ],
  "sectionsToRemove": [],
  "learningRecommendations": [
    {"name": "Kubernetes", "value": "Required by the role", "howToAcquire": "CKA course"}
  ],
  "fieldCompatibility": {
    "currentField": "Backend Engineering",
    "targetField": "Platform Engineering",
    "compatibility": "high",
    "recommendations": ["Highlight infra work"]
  }
}`

func TestParseRecommendationValid(t *testing.T) {
	rec, ok := ParseRecommendation(validAnalysisJSON)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if rec.OverallAssessment != "Strong candidate for the role." {
		t.Fatalf("overallAssessment = %q", rec.OverallAssessment)
	}
	if len(rec.SectionsToUpdate) != 1 || rec.SectionsToUpdate[0].SectionName != "Summary" {
		t.Fatalf("sectionsToUpdate = %+v", rec.SectionsToUpdate)
	}
	if rec.FieldCompatibility.Compatibility != CompatibilityHigh {
		t.Fatalf("compatibility = %q", rec.FieldCompatibility.Compatibility)
	}
	if rec.RawResponse != "" {
		t.Fatal("RawResponse should be empty on success")
	}
	if rec.SectionsToRemove == nil {
		t.Fatal("empty slices should be non-nil after Normalize")
	}
}

func TestParseRecommendationMissingFieldsDefault(t *testing.T) {
	rec, ok := ParseRecommendation(`{"overallAssessment": "Fine"}`)
	if !ok {
		t.Fatal("partial but well-formed JSON should parse")
	}
	if rec.SectionsToUpdate == nil || rec.LearningRecommendations == nil {
		t.Fatal("missing arrays should normalize to empty slices")
	}
	if rec.FieldCompatibility.Compatibility != CompatibilityUnknown {
		t.Fatalf("missing compatibility should normalize to unknown, got %q", rec.FieldCompatibility.Compatibility)
	}
}

func TestParseRecommendationMalformedFallsBack(t *testing.T) {
	raw := "Sorry, I cannot produce JSON for this input."
	rec, ok := ParseRecommendation(raw)
	if ok {
		t.Fatal("expected parse failure")
	}
	if rec.OverallAssessment != fallbackAssessment {
		t.Fatalf("fallback assessment = %q", rec.OverallAssessment)
	}
	if rec.RawResponse != raw {
		t.Fatal("fallback should carry the raw response")
	}
	if rec.FieldCompatibility.CurrentField != "Unknown" || rec.FieldCompatibility.Compatibility != CompatibilityUnknown {
		t.Fatalf("fallback fieldCompatibility = %+v", rec.FieldCompatibility)
	}

	// Parsing the same garbage twice yields the same document.
	rec2, _ := ParseRecommendation(raw)
	if rec2.OverallAssessment != rec.OverallAssessment || rec2.RawResponse != rec.RawResponse {
		t.Fatal("fallback should be deterministic")
	}
}

func TestParseRecommendationStripsFences(t *testing.T) {
	fenced := "```json\n" + validAnalysisJSON + "\n```"
	rec, ok := ParseRecommendation(fenced)
	if !ok {
		t.Fatal("fenced JSON should parse")
	}
	if rec.OverallAssessment != "Strong candidate for the role." {
		t.Fatalf("overallAssessment = %q", rec.OverallAssessment)
	}
}

func TestParseRecommendationTrimsLeadingProse(t *testing.T) {
	raw := "Here is the analysis you asked for:\n" + validAnalysisJSON
	if _, ok := ParseRecommendation(raw); !ok {
		t.Fatal("leading prose before the JSON object should be tolerated")
	}
}

func TestSplitCombinedValid(t *testing.T) {
	raw := `{"enhancedCv": ` + validAnalysisJSON + `, "coverLetter": "Dear Hiring Manager,"}`
	rec, coverLetter, ok := SplitCombined(raw)
	if !ok {
		t.Fatal("expected combined split to succeed")
	}
	if coverLetter != "Dear Hiring Manager," {
		t.Fatalf("coverLetter = %q", coverLetter)
	}
	if rec.OverallAssessment != "Strong candidate for the role." {
		t.Fatalf("overallAssessment = %q", rec.OverallAssessment)
	}
}

func TestSplitCombinedMissingCoverLetter(t *testing.T) {
	raw := `{"enhancedCv": ` + validAnalysisJSON + `}`
	_, coverLetter, ok := SplitCombined(raw)
	if ok {
		t.Fatal("missing cover letter should not report success")
	}
	if coverLetter != "" {
		t.Fatalf("coverLetter = %q", coverLetter)
	}
}

func TestSplitCombinedMalformedInnerDocDegrades(t *testing.T) {
	raw := `{"enhancedCv": "not an object", "coverLetter": "Dear team,"}`
	rec, coverLetter, ok := SplitCombined(raw)
	if !ok {
		t.Fatal("a usable cover letter keeps the run alive")
	}
	if coverLetter != "Dear team," {
		t.Fatalf("coverLetter = %q", coverLetter)
	}
	if rec.OverallAssessment != fallbackAssessment {
		t.Fatalf("inner doc should degrade to fallback, got %q", rec.OverallAssessment)
	}
}

func TestSplitCombinedInvalidJSON(t *testing.T) {
	rec, _, ok := SplitCombined("total garbage")
	if ok {
		t.Fatal("invalid JSON should not report success")
	}
	if !strings.Contains(rec.RawResponse, "total garbage") {
		t.Fatal("fallback should carry the raw response")
	}
}
