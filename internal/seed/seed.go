// Package seed provides database seeding utilities for development and
// testing. It goes through the repository layer for engagement so the
// denormalized counters stay consistent with their membership rows.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"deckvault/internal/models"
	"deckvault/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers int
	NumDecks int
	// MaxDays bounds how far back publication timestamps are spread.
	MaxDays int
}

var hashtagPool = []string{
	"#anniversary", "#event", "#freeplay", "#challenge", "#scoreattack",
	"#newcards", "#budget", "#meta", "#fullcombo", "#beginner",
}

var deckTypes = []string{"smile", "pure", "cool", "mixed"}

// Seeder populates the database with generated decks and engagement.
type Seeder struct {
	db       *gorm.DB
	deckRepo repository.DeckRepository
	rng      *rand.Rand
	opts     Options
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Seeder{
		db:       db,
		deckRepo: repository.NewDeckRepository(db),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		opts:     opts,
	}
}

// ClearAll removes all seeded data. Order matters for foreign-key-like
// relationships even though the schema does not enforce them.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.DeckReport{},
		&models.DeckComment{},
		&models.DeckLike{},
		&models.DeckView{},
		&models.PublishedDeck{},
		&models.PopularHashtagSummary{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	log.Println("database cleared")
	return nil
}

// SeedUsers creates n users with generated display names.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			UID:         gofakeit.UUID(),
			DisplayName: gofakeit.Username(),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))
	return users, nil
}

// SeedDecks creates n published decks spread over the past MaxDays days.
func (s *Seeder) SeedDecks(users []*models.User, n int) ([]*models.PublishedDeck, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to own decks")
	}

	decks := make([]*models.PublishedDeck, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.rng.Intn(len(users))]

		id, err := gonanoid.New(21)
		if err != nil {
			return nil, fmt.Errorf("generate deck id: %w", err)
		}

		deck := &models.PublishedDeck{
			ID:          id,
			UserID:      owner.UID,
			UserName:    owner.DisplayName,
			Payload:     s.buildPayload(),
			Comment:     gofakeit.Sentence(8),
			Hashtags:    s.pickHashtags(),
			IsUnlisted:  s.rng.Intn(10) == 0,
			PublishedAt: s.spreadTimestamp(),
		}
		deck.SongID = deck.Payload.SongID
		deck.DeckType = deck.Payload.DeckType

		if err := s.db.Create(deck).Error; err != nil {
			return nil, fmt.Errorf("seed deck: %w", err)
		}
		decks = append(decks, deck)
	}
	log.Printf("seeded %d decks", len(decks))
	return decks, nil
}

// SeedEngagement sprinkles likes, views, and comments across the decks.
// Likes and views go through the repository so the deck counters match
// their membership rows.
func (s *Seeder) SeedEngagement(ctx context.Context, users []*models.User, decks []*models.PublishedDeck) error {
	var likes, views, comments int
	for _, deck := range decks {
		for _, user := range users {
			if user.UID == deck.UserID {
				continue
			}
			if s.rng.Intn(3) == 0 {
				if _, _, err := s.deckRepo.RecordView(ctx, deck.ID, user.UID); err != nil {
					return fmt.Errorf("seed view: %w", err)
				}
				views++

				if s.rng.Intn(3) == 0 {
					if _, _, err := s.deckRepo.AddLike(ctx, deck.ID, user.UID); err != nil {
						return fmt.Errorf("seed like: %w", err)
					}
					likes++
				}
				if s.rng.Intn(5) == 0 {
					comment := &models.DeckComment{
						ID:       gofakeit.UUID(),
						DeckID:   deck.ID,
						UserID:   user.UID,
						UserName: user.DisplayName,
						Text:     gofakeit.Sentence(10),
					}
					if err := s.db.Create(comment).Error; err != nil {
						return fmt.Errorf("seed comment: %w", err)
					}
					comments++
				}
			}
		}
	}
	log.Printf("seeded %d views, %d likes, %d comments", views, likes, comments)
	return nil
}

// Run executes the full seeding pass.
func (s *Seeder) Run(ctx context.Context) error {
	users, err := s.SeedUsers(s.opts.NumUsers)
	if err != nil {
		return err
	}
	decks, err := s.SeedDecks(users, s.opts.NumDecks)
	if err != nil {
		return err
	}
	return s.SeedEngagement(ctx, users, decks)
}

func (s *Seeder) buildPayload() models.DeckPayload {
	slots := make([]models.DeckSlot, 18)
	for i := range slots {
		cardID := fmt.Sprintf("card-%04d", s.rng.Intn(2000))
		slots[i] = models.DeckSlot{
			SlotID:     i,
			CardID:     &cardID,
			LimitBreak: s.rng.Intn(5),
		}
	}
	ace := s.rng.Intn(18)
	return models.DeckPayload{
		Name:      gofakeit.AdjectiveDescriptive() + " " + gofakeit.NounConcrete(),
		Slots:     slots,
		AceSlotID: &ace,
		DeckType:  deckTypes[s.rng.Intn(len(deckTypes))],
		SongID:    fmt.Sprintf("song-%03d", s.rng.Intn(200)),
		Score:     100000 + s.rng.Intn(9000000),
		Memo:      gofakeit.Sentence(6),
	}
}

func (s *Seeder) pickHashtags() []string {
	count := s.rng.Intn(4)
	picked := make([]string, 0, count)
	seen := make(map[string]bool, count)
	for len(picked) < count {
		tag := hashtagPool[s.rng.Intn(len(hashtagPool))]
		if !seen[tag] {
			seen[tag] = true
			picked = append(picked, tag)
		}
	}
	return picked
}

func (s *Seeder) spreadTimestamp() time.Time {
	daysBack := s.rng.Intn(s.opts.MaxDays)
	return time.Now().UTC().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(s.rng.Intn(24)) * time.Hour).
		Add(-time.Duration(s.rng.Intn(60)) * time.Minute)
}
