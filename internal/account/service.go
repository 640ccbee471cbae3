package account

import (
	"context"
	"errors"
	"strings"

	"cvenhancer-backend/internal/history"
)

type Service struct {
	HistoryRepo history.Repo
}

type ClaimResult struct {
	MigratedEnhancements int `json:"migratedEnhancements"`
}

func NewService(historyRepo history.Repo) *Service {
	return &Service{HistoryRepo: historyRepo}
}

// ClaimGuest reassigns a guest's enhancement history to the authenticated
// user. Claiming an unknown or already-claimed guest ID migrates nothing and
// is not an error.
func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	if strings.TrimSpace(guestUserID) == "" || strings.TrimSpace(authedUserID) == "" {
		return ClaimResult{}, errors.New("guestUserID and authedUserID are required")
	}
	if s.HistoryRepo == nil {
		return ClaimResult{}, errors.New("history repo not configured")
	}

	moved, err := s.HistoryRepo.ReassignUser(ctx, guestUserID, authedUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedEnhancements: moved}, nil
}
