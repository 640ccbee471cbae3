package enhance

// EnhanceRequest is the JSON body of POST /api/v1/enhance. The PDF travels
// base64-encoded, optionally as a data URL.
type EnhanceRequest struct {
	CVBase64       string `json:"cvBase64"`
	FileName       string `json:"fileName"`
	FileType       string `json:"fileType"`
	JobDescription string `json:"jobDescription"`
	Mode           string `json:"mode"`
}

// EnhanceResponse mirrors what the UI consumes: the structured analysis, the
// cover letter, and the text the analysis was based on.
type EnhanceResponse struct {
	EnhancedCV     Recommendation `json:"enhancedCv"`
	CoverLetter    string         `json:"coverLetter"`
	OriginalCVText string         `json:"originalCvText"`
	Success        bool           `json:"success"`
	EnhancementID  string         `json:"enhancementId,omitempty"`
}
