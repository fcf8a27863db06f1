package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deckvault/internal/config"
	"deckvault/internal/database"
	"deckvault/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

// newTestApp builds a server on an isolated in-memory database with all
// routes registered, so tests exercise the real route table and auth
// middleware.
func newTestApp(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
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

	cfg := &config.Config{
		JWTSecret:    testJWTSecret,
		Env:          "test",
		AssetRoot:    t.TempDir(),
		AssetBaseURL: "http://localhost:8080/assets",
	}

	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s, db
}

func authToken(t *testing.T, uid string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uid,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func seedUser(t *testing.T, db *gorm.DB, uid, displayName string) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{UID: uid, DisplayName: displayName}).Error)
}

// doJSON performs an authenticated JSON request against the test app.
func doJSON(t *testing.T, app *fiber.App, method, path, uid string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if uid != "" {
		req.Header.Set("Authorization", "Bearer "+authToken(t, uid))
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// newDeckID returns a fresh 21-character publish ID.
func newDeckID(t *testing.T) string {
	t.Helper()
	id, err := gonanoid.New(21)
	require.NoError(t, err)
	return id
}

func validDeckBody(t *testing.T) map[string]any {
	slots := make([]map[string]any, 0, 18)
	for i := 0; i < 18; i++ {
		slots = append(slots, map[string]any{"slotId": i, "cardId": nil})
	}
	return map[string]any{
		"id": newDeckID(t),
		"deck": map[string]any{
			"name":  "Test Deck",
			"slots": slots,
		},
	}
}

// publishDeck publishes a deck for uid and returns its ID.
func publishDeck(t *testing.T, app *fiber.App, uid string, mutate ...func(map[string]any)) string {
	t.Helper()

	body := validDeckBody(t)
	for _, m := range mutate {
		m(body)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/decks/publish", uid, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var deck models.PublishedDeck
	decodeBody(t, resp, &deck)
	return deck.ID
}
