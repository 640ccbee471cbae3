package enhance

import (
	_ "embed"
	"strings"
	"time"
)

var (
	//go:embed prompts/analysis_v1.txt
	analysisTemplate string
	//go:embed prompts/cover_letter_v1.txt
	coverLetterTemplate string
	//go:embed prompts/combined_v1.txt
	combinedTemplate string
)

const (
	analysisSystemMessage = "You are an expert resume analyst and professional resume writer. You provide detailed, actionable feedback to improve resumes for specific job applications."

	coverLetterSystemMessage = "You are a helpful assistant that writes fully personalized cover letters without using placeholders."

	combinedSystemMessage = "You are an expert resume analyst and professional cover letter writer. Respond with JSON only. Never omit keys. Output must match the requested shape exactly."
)

// BuildAnalysisPrompt renders the analysis template with the resume and job
// texts embedded verbatim. The template spells the exact JSON shape the
// parser expects; any drift between the two breaks parsing.
func BuildAnalysisPrompt(resumeText, jobText string) string {
	return renderTemplate(analysisTemplate, resumeText, jobText)
}

// BuildCoverLetterPrompt renders the cover letter template.
func BuildCoverLetterPrompt(resumeText, jobText string) string {
	return renderTemplate(coverLetterTemplate, resumeText, jobText)
}

// BuildCombinedPrompt renders the single-call template that requests the
// analysis and the cover letter in one JSON envelope.
func BuildCombinedPrompt(resumeText, jobText string) string {
	return renderTemplate(combinedTemplate, resumeText, jobText)
}

func renderTemplate(template, resumeText, jobText string) string {
	out := strings.ReplaceAll(template, "{{RESUME_TEXT}}", resumeText)
	out = strings.ReplaceAll(out, "{{JOB_DESCRIPTION}}", jobText)
	out = strings.ReplaceAll(out, "{{TODAY}}", time.Now().Format("January 2, 2006"))
	return out
}
