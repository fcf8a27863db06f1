package repository

import (
	"context"
	"database/sql/driver"
	"testing"

	"deckvault/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserRepository_UpsertRefreshesDisplayName(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.User{UID: "u-1", DisplayName: "Alice"}))
	require.NoError(t, repo.Upsert(ctx, &models.User{UID: "u-1", DisplayName: "Alice Renamed"}))

	user, err := repo.GetByUID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", user.DisplayName)

	var rows int64
	require.NoError(t, db.Model(&models.User{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestUserRepository_GetByUID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByUID(context.Background(), "missing")
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepository_GetByUID_DatabaseErrorIsInternal(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnError(driver.ErrBadConn)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo := NewUserRepository(db)
	_, err = repo.GetByUID(context.Background(), "u-1")
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
}
