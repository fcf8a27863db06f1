package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *AssetStore {
	t.Helper()
	return NewAssetStore(t.TempDir(), "/assets")
}

func TestStageAndMove(t *testing.T) {
	s := newTestStore(t)

	token, err := s.Stage("image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(token, ".png"))

	urls, err := s.MoveStaged("deck-1", []string{token})
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.True(t, strings.HasPrefix(urls[0], "/assets/decks/deck-1/"))

	data, err := os.ReadFile(filepath.Join(s.root, "decks", "deck-1", token))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestStage_RejectsUnsupportedContentType(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Stage("application/pdf", strings.NewReader("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestMoveStaged_RollsBackOnFailure(t *testing.T) {
	s := newTestStore(t)

	token, err := s.Stage("image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	// Second token points at a file that does not exist, so the batch fails.
	_, err = s.MoveStaged("deck-1", []string{token, "missing.png"})
	require.Error(t, err)

	// The first file must be back in staging, not stranded in the deck dir.
	_, statErr := os.Stat(filepath.Join(s.root, "staging", token))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(s.root, "decks", "deck-1", token))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDelete_IsIdempotent(t *testing.T) {
	s := newTestStore(t)

	token, err := s.Stage("image/webp", strings.NewReader("webp-bytes"))
	require.NoError(t, err)
	urls, err := s.MoveStaged("deck-9", []string{token})
	require.NoError(t, err)

	require.NoError(t, s.Delete(urls[0]))
	require.NoError(t, s.Delete(urls[0]))
}

func TestDelete_RejectsForeignURL(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.Delete("https://elsewhere.example/x.png"))
	assert.Error(t, s.Delete("/assets/../etc/passwd"))
}

func TestDeleteAllForDeck(t *testing.T) {
	s := newTestStore(t)

	token, err := s.Stage("image/png", strings.NewReader("bytes"))
	require.NoError(t, err)
	_, err = s.MoveStaged("deck-2", []string{token})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAllForDeck("deck-2"))
	_, statErr := os.Stat(filepath.Join(s.root, "decks", "deck-2"))
	assert.True(t, os.IsNotExist(statErr))

	require.NoError(t, s.DeleteAllForDeck("deck-2"))
}

func TestDiscardStaged(t *testing.T) {
	s := newTestStore(t)

	token, err := s.Stage("image/png", strings.NewReader("bytes"))
	require.NoError(t, err)
	require.NoError(t, s.DiscardStaged(token))
	require.NoError(t, s.DiscardStaged(token))
}
