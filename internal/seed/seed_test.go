package seed

import (
	"context"
	"testing"

	"deckvault/internal/database"
	"deckvault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestSeederRun(t *testing.T) {
	db := newTestDB(t)
	s := NewSeeder(db, Options{NumUsers: 8, NumDecks: 20})

	require.NoError(t, s.Run(context.Background()))

	var userCount, deckCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.PublishedDeck{}).Count(&deckCount).Error)
	assert.Equal(t, int64(8), userCount)
	assert.Equal(t, int64(20), deckCount)

	// Counters must match their membership rows exactly.
	var decks []models.PublishedDeck
	require.NoError(t, db.Find(&decks).Error)
	for _, deck := range decks {
		var likeRows, viewRows int64
		require.NoError(t, db.Model(&models.DeckLike{}).Where("deck_id = ?", deck.ID).Count(&likeRows).Error)
		require.NoError(t, db.Model(&models.DeckView{}).Where("deck_id = ?", deck.ID).Count(&viewRows).Error)
		assert.Equal(t, likeRows, int64(deck.LikeCount), "deck %s like counter drift", deck.ID)
		assert.Equal(t, viewRows, int64(deck.ViewCount), "deck %s view counter drift", deck.ID)
	}
}

func TestSeederClearAll(t *testing.T) {
	db := newTestDB(t)
	s := NewSeeder(db, Options{NumUsers: 3, NumDecks: 5})

	require.NoError(t, s.Run(context.Background()))
	require.NoError(t, s.ClearAll())

	for _, model := range []interface{}{
		&models.User{}, &models.PublishedDeck{}, &models.DeckLike{},
		&models.DeckView{}, &models.DeckComment{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestSeedDecks_ValidPayloads(t *testing.T) {
	db := newTestDB(t)
	s := NewSeeder(db, Options{})

	users, err := s.SeedUsers(2)
	require.NoError(t, err)
	decks, err := s.SeedDecks(users, 10)
	require.NoError(t, err)

	for _, deck := range decks {
		assert.Len(t, deck.ID, 21)
		assert.Len(t, deck.Payload.Slots, 18)
		require.NotNil(t, deck.Payload.AceSlotID)
		assert.GreaterOrEqual(t, *deck.Payload.AceSlotID, 0)
		assert.Less(t, *deck.Payload.AceSlotID, 18)
		assert.LessOrEqual(t, len(deck.Hashtags), 3)
	}
}
