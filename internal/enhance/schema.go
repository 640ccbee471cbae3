package enhance

import "strings"

// Compatibility is the coarse judgment of how well the candidate's current
// field matches the target job's field.
type Compatibility string

const (
	CompatibilityHigh    Compatibility = "high"
	CompatibilityMedium  Compatibility = "medium"
	CompatibilityLow     Compatibility = "low"
	CompatibilityUnknown Compatibility = "unknown"
)

// NormalizeCompatibility maps free-form model output onto the enum,
// defaulting to unknown.
func NormalizeCompatibility(raw string) Compatibility {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(CompatibilityHigh):
		return CompatibilityHigh
	case string(CompatibilityMedium):
		return CompatibilityMedium
	case string(CompatibilityLow):
		return CompatibilityLow
	default:
		return CompatibilityUnknown
	}
}

// SectionUpdate is one recommended replacement for an existing CV section.
type SectionUpdate struct {
	SectionName        string `json:"sectionName"`
	CurrentContent     string `json:"currentContent"`
	RecommendedContent string `json:"recommendedContent"`
	Explanation        string `json:"explanation"`
}

// SectionAddition is one recommended new CV section.
type SectionAddition struct {
	SectionName        string `json:"sectionName"`
	RecommendedContent string `json:"recommendedContent"`
	Explanation        string `json:"explanation"`
}

// SectionRemoval is one recommended CV section deletion.
type SectionRemoval struct {
	SectionName    string `json:"sectionName"`
	Explanation    string `json:"explanation"`
	CurrentContent string `json:"currentContent,omitempty"`
}

// LearningRecommendation is one skill, certification, or qualification the
// candidate should acquire for the target role.
type LearningRecommendation struct {
	Name         string `json:"name"`
	Value        string `json:"value"`
	HowToAcquire string `json:"howToAcquire"`
}

// FieldCompatibility assesses the match between the candidate's profession
// and the target job's profession.
type FieldCompatibility struct {
	CurrentField    string        `json:"currentField"`
	TargetField     string        `json:"targetField"`
	Compatibility   Compatibility `json:"compatibility"`
	Recommendations []string      `json:"recommendations"`
}

// Recommendation is the full analysis document returned by the model.
// After Normalize, every slice field is non-nil so consumers can iterate
// unconditionally.
type Recommendation struct {
	OverallAssessment       string                   `json:"overallAssessment"`
	SectionsToUpdate        []SectionUpdate          `json:"sectionsToUpdate"`
	SectionsToAdd           []SectionAddition        `json:"sectionsToAdd"`
	SectionsToRemove        []SectionRemoval         `json:"sectionsToRemove"`
	LearningRecommendations []LearningRecommendation `json:"learningRecommendations"`
	FieldCompatibility      FieldCompatibility       `json:"fieldCompatibility"`

	// RawResponse carries the unparseable model output on the fallback
	// path. Diagnostic only; never rendered as structured data.
	RawResponse string `json:"rawResponse,omitempty"`
}

// Normalize replaces nil slices with empty ones and coerces the
// compatibility value onto the enum.
func (r *Recommendation) Normalize() {
	if r.SectionsToUpdate == nil {
		r.SectionsToUpdate = []SectionUpdate{}
	}
	if r.SectionsToAdd == nil {
		r.SectionsToAdd = []SectionAddition{}
	}
	if r.SectionsToRemove == nil {
		r.SectionsToRemove = []SectionRemoval{}
	}
	if r.LearningRecommendations == nil {
		r.LearningRecommendations = []LearningRecommendation{}
	}
	if r.FieldCompatibility.Recommendations == nil {
		r.FieldCompatibility.Recommendations = []string{}
	}
	r.FieldCompatibility.Compatibility = NormalizeCompatibility(string(r.FieldCompatibility.Compatibility))
}
