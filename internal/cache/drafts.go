package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"garment-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// DraftTTL is how long unsaved worksheet edits survive
const DraftTTL = 7 * 24 * time.Hour

// DraftStore keeps unsaved worksheet edits in Redis, one key per work date.
// Without a Redis connection it stores nothing.
type DraftStore struct {
	TTL time.Duration
}

func NewDraftStore() *DraftStore {
	return &DraftStore{TTL: DraftTTL}
}

func draftKey(date string) string {
	return DraftKeyPrefix + date
}

func (s *DraftStore) LoadDraft(ctx context.Context, date string) (*models.WorksheetDraft, error) {
	if client == nil {
		return nil, nil
	}
	data, err := client.Get(ctx, draftKey(date)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draft for %s: %w", date, err)
	}

	var draft models.WorksheetDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		// a corrupt draft is dropped rather than blocking the date
		InvalidateKeys(ctx, draftKey(date))
		return nil, fmt.Errorf("failed to decode draft for %s: %w", date, err)
	}
	return &draft, nil
}

func (s *DraftStore) SaveDraft(ctx context.Context, draft *models.WorksheetDraft) error {
	if client == nil {
		return nil
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := client.Set(ctx, draftKey(draft.Date), data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store draft for %s: %w", draft.Date, err)
	}
	return nil
}

func (s *DraftStore) DeleteDraft(ctx context.Context, date string) error {
	if client == nil {
		return nil
	}
	if err := client.Del(ctx, draftKey(date)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft for %s: %w", date, err)
	}
	return nil
}
