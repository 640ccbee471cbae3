package history

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores enhancements in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Enhancement
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Enhancement)}
}

// Create stores the enhancement.
func (r *MemoryRepo) Create(ctx context.Context, enhancement Enhancement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[enhancement.ID] = enhancement
	return nil
}

// GetByID returns an enhancement by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, enhancementID string) (Enhancement, error) {
	if err := ctx.Err(); err != nil {
		return Enhancement{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	enhancement, ok := r.byID[enhancementID]
	if !ok {
		return Enhancement{}, ErrNotFound
	}
	if enhancement.UserID != userID {
		return Enhancement{}, ErrForbidden
	}
	return enhancement, nil
}

// ListByUser returns enhancements for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Enhancement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	var items []Enhancement
	for _, enhancement := range r.byID {
		if enhancement.UserID == userID {
			items = append(items, enhancement)
		}
	}
	r.mu.RUnlock()

	if len(items) == 0 || offset >= len(items) {
		return []Enhancement{}, nil
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end], nil
}

// ReassignUser moves all enhancements from one user to another and reports
// how many moved.
func (r *MemoryRepo) ReassignUser(ctx context.Context, fromUserID, toUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	moved := 0
	for id, enhancement := range r.byID {
		if enhancement.UserID == fromUserID {
			enhancement.UserID = toUserID
			r.byID[id] = enhancement
			moved++
		}
	}
	return moved, nil
}

var _ Repo = (*MemoryRepo)(nil)
