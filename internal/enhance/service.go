package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cvenhancer-backend/internal/extract"
	"cvenhancer-backend/internal/llm"
)

// Shape selects the generation invocation pattern: two independent calls or
// one combined call returning both artifacts in a JSON envelope.
type Shape string

const (
	ShapeSplit    Shape = "split"
	ShapeCombined Shape = "combined"
)

// ParseShape normalizes a shape string, defaulting to split.
func ParseShape(raw string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ShapeSplit):
		return ShapeSplit, nil
	case string(ShapeCombined):
		return ShapeCombined, nil
	default:
		return "", errors.New("pipeline shape must be split or combined")
	}
}

var (
	// ErrInvalidInput means the caller omitted the PDF bytes or job text.
	ErrInvalidInput = errors.New("cv file and job description are required")
	// ErrExtractionFailed means neither extraction strategy produced
	// usable text.
	ErrExtractionFailed = errors.New("extraction failed")
)

// CompletionError wraps a text-generation failure with the pipeline stage
// that produced it. Either generation call failing voids the whole run; the
// orchestrator never returns a partial result.
type CompletionError struct {
	Stage string
	Err   error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed at %s: %v", e.Stage, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

const (
	generationTemperature = 0.7
	coverLetterMaxTokens  = 2000
)

// Service runs the CV-to-recommendation pipeline.
type Service struct {
	LLM          llm.Client
	EconomyModel string
	PremiumModel string
	Shape        Shape
}

// RunInput is one pipeline invocation. PDF bytes are owned for the duration
// of the run and never persisted.
type RunInput struct {
	PDF            []byte
	JobDescription string
	Tier           llm.Tier
	RequestID      string
}

// Result is the assembled pipeline output.
type Result struct {
	Recommendation Recommendation
	CoverLetter    string
	OriginalText   string
	// Parsed reports whether the analysis output matched the schema or
	// the parser degraded to the fallback document.
	Parsed bool
}

// Run executes extract, generate, and parse in order. Extraction must
// succeed before any generation call is issued, and both artifacts must be
// produced before anything is returned.
func (s *Service) Run(ctx context.Context, in RunInput) (Result, error) {
	if len(in.PDF) == 0 || strings.TrimSpace(in.JobDescription) == "" {
		return Result{}, ErrInvalidInput
	}
	if s.LLM == nil {
		return Result{}, errors.New("enhance service missing llm client")
	}

	text, err := extract.Text(ctx, in.PDF)
	if err != nil {
		if errors.Is(err, extract.ErrNoText) {
			return Result{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return Result{}, err
	}

	client := newRetryingClient(s.LLM, in.RequestID)
	model := s.modelFor(in.Tier)

	if s.Shape == ShapeCombined {
		return s.runCombined(ctx, client, model, text, in.JobDescription)
	}
	return s.runSplit(ctx, client, model, text, in.JobDescription)
}

func (s *Service) runSplit(ctx context.Context, client llm.Client, model, resumeText, jobText string) (Result, error) {
	analysisRaw, err := client.Complete(ctx, BuildAnalysisPrompt(resumeText, jobText), llm.Options{
		Model:       model,
		Temperature: generationTemperature,
		ForceJSON:   true,
		System:      analysisSystemMessage,
	})
	if err != nil {
		return Result{}, &CompletionError{Stage: "analysis", Err: err}
	}

	coverLetter, err := client.Complete(ctx, BuildCoverLetterPrompt(resumeText, jobText), llm.Options{
		Model:       model,
		Temperature: generationTemperature,
		MaxTokens:   coverLetterMaxTokens,
		System:      coverLetterSystemMessage,
	})
	if err != nil {
		return Result{}, &CompletionError{Stage: "cover_letter", Err: err}
	}

	rec, parsed := ParseRecommendation(analysisRaw)
	return Result{
		Recommendation: rec,
		CoverLetter:    strings.TrimSpace(coverLetter),
		OriginalText:   resumeText,
		Parsed:         parsed,
	}, nil
}

func (s *Service) runCombined(ctx context.Context, client llm.Client, model, resumeText, jobText string) (Result, error) {
	raw, err := client.Complete(ctx, BuildCombinedPrompt(resumeText, jobText), llm.Options{
		Model:       model,
		Temperature: generationTemperature,
		ForceJSON:   true,
		System:      combinedSystemMessage,
	})
	if err != nil {
		return Result{}, &CompletionError{Stage: "combined", Err: err}
	}

	rec, coverLetter, ok := SplitCombined(raw)
	if !ok && coverLetter == "" {
		// Without a cover letter there is nothing to degrade to; partial
		// results are never returned as success.
		return Result{}, &CompletionError{Stage: "combined", Err: errors.New("combined response missing cover letter")}
	}

	return Result{
		Recommendation: rec,
		CoverLetter:    coverLetter,
		OriginalText:   resumeText,
		Parsed:         ok,
	}, nil
}

func (s *Service) modelFor(tier llm.Tier) string {
	if tier == llm.TierPremium && strings.TrimSpace(s.PremiumModel) != "" {
		return s.PremiumModel
	}
	return s.EconomyModel
}
