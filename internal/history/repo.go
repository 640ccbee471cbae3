package history

import "context"

// Repo defines persistence operations for enhancement history.
type Repo interface {
	Create(ctx context.Context, enhancement Enhancement) error
	GetByID(ctx context.Context, userID, enhancementID string) (Enhancement, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Enhancement, error)
	ReassignUser(ctx context.Context, fromUserID, toUserID string) (int, error)
}
