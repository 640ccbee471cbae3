package history

import (
	"encoding/json"
	"time"
)

// Enhancement is one completed pipeline run kept for the user's history.
// Recommendation holds the structured analysis exactly as returned to the
// client, stored as JSONB.
type Enhancement struct {
	ID             string          `json:"id"`
	UserID         string          `json:"-"`
	FileName       string          `json:"fileName"`
	JobDescription string          `json:"jobDescription"`
	Recommendation json.RawMessage `json:"recommendation"`
	CoverLetter    string          `json:"coverLetter"`
	Provider       string          `json:"provider"`
	Model          string          `json:"model"`
	Tier           string          `json:"tier"`
	Shape          string          `json:"shape"`
	CreatedAt      time.Time       `json:"createdAt"`
}
