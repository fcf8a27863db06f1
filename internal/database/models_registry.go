package database

import "deckvault/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.PublishedDeck{},
		&models.DeckLike{},
		&models.DeckView{},
		&models.DeckComment{},
		&models.DeckReport{},
		&models.PopularHashtagSummary{},
	}
}
