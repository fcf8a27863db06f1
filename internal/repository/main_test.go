package repository

import (
	"testing"
	"time"

	"deckvault/internal/database"
	"deckvault/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. The pool is limited to a
// single connection so concurrent test goroutines serialize instead of
// hitting sqlite lock errors.
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

func seedDeck(t *testing.T, db *gorm.DB, id, ownerUID string, mutate ...func(*models.PublishedDeck)) *models.PublishedDeck {
	t.Helper()

	deck := &models.PublishedDeck{
		ID:       id,
		UserID:   ownerUID,
		UserName: "player-" + ownerUID,
		Payload: models.DeckPayload{
			Name:  "Deck " + id,
			Slots: []models.DeckSlot{{SlotID: 0}},
		},
		Hashtags:    []string{"#test"},
		PublishedAt: time.Now().UTC(),
	}
	for _, m := range mutate {
		m(deck)
	}
	require.NoError(t, db.Create(deck).Error)
	return deck
}

func seedComment(t *testing.T, db *gorm.DB, id, deckID, authorUID string) *models.DeckComment {
	t.Helper()

	comment := &models.DeckComment{
		ID:       id,
		DeckID:   deckID,
		UserID:   authorUID,
		UserName: "player-" + authorUID,
		Text:     "nice deck",
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}
