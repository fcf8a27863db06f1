package service

import (
	"context"
	"strings"
	"testing"

	"deckvault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncProfile_Validation(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	_, err := svc.SyncProfile(context.Background(), "u-1", "  ")
	require.Error(t, err)

	_, err = svc.SyncProfile(context.Background(), "u-1", strings.Repeat("x", 101))
	require.Error(t, err)
}

func TestSyncProfile_UpsertsTrimmedName(t *testing.T) {
	var stored *models.User
	repo := noopUserRepo()
	repo.upsertFn = func(_ context.Context, u *models.User) error {
		stored = u
		return nil
	}
	svc := NewUserService(repo)

	_, err := svc.SyncProfile(context.Background(), "u-1", "  Alice  ")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "u-1", stored.UID)
	assert.Equal(t, "Alice", stored.DisplayName)
}
