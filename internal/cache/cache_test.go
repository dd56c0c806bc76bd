package cache

import (
	"context"
	"testing"
	"time"

	"garment-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClient_DegradesToMiss(t *testing.T) {
	require.Nil(t, client)
	ctx := context.Background()

	SetCached(ctx, SettingsKeyPrefix+"all", []byte("x"), time.Minute)
	_, ok := GetCached(ctx, SettingsKeyPrefix+"all")
	assert.False(t, ok)

	InvalidateSettingCaches(ctx)
	InvalidateKeys(ctx, "a", "b")
	assert.False(t, IsHealthy())
}

func TestDraftStore_NilClientIsNoop(t *testing.T) {
	store := NewDraftStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, &models.WorksheetDraft{Date: "2024-01-15"}))
	draft, err := store.LoadDraft(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Nil(t, draft)
	assert.NoError(t, store.DeleteDraft(ctx, "2024-01-15"))
}

func TestInit_UnreachableLeavesClientNil(t *testing.T) {
	err := Init("127.0.0.1:1", "", 0)
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestDraftKey(t *testing.T) {
	assert.Equal(t, "worksheet:draft:2024-01-15", draftKey("2024-01-15"))
	assert.Equal(t, DraftTTL, NewDraftStore().TTL)
}
