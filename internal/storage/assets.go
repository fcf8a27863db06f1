// Package storage persists deck images on the local filesystem.
//
// Uploads land in a staging area first; publishing a deck moves the staged
// files into the deck's permanent directory in one pass, rolling back any
// files already moved if a later move fails.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	stagingDir = "staging"
	decksDir   = "decks"

	// MaxImageSizeBytes caps a single uploaded image.
	MaxImageSizeBytes = 10 * 1024 * 1024
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// AssetStore stores deck images under a root directory and maps stored
// files to URLs beneath a base URL path.
type AssetStore struct {
	root    string
	baseURL string
}

// NewAssetStore creates an AssetStore rooted at root. Stored file URLs are
// formed by joining baseURL with the file's path relative to root.
func NewAssetStore(root, baseURL string) *AssetStore {
	return &AssetStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Stage writes an uploaded image into the staging area and returns its
// staging token. The token is opaque to callers; it is later exchanged for
// a permanent URL by MoveStaged.
func (s *AssetStore) Stage(contentType string, r io.Reader) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("parse content type: %w", err)
	}
	ext, ok := allowedContentTypes[mediaType]
	if !ok {
		return "", fmt.Errorf("unsupported content type %q", mediaType)
	}

	dir := filepath.Join(s.root, stagingDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	token := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, token))
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(r, MaxImageSizeBytes+1))
	if err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write staged file: %w", err)
	}
	if n > MaxImageSizeBytes {
		os.Remove(dst.Name())
		return "", fmt.Errorf("image exceeds %d bytes", MaxImageSizeBytes)
	}

	return token, nil
}

// MoveStaged moves staged files into the deck's directory and returns the
// resulting public URLs, in the same order as tokens. If any move fails,
// files already moved are returned to staging and the error is reported;
// the staging area is left as it was before the call.
func (s *AssetStore) MoveStaged(deckID string, tokens []string) ([]string, error) {
	deckPath := filepath.Join(s.root, decksDir, deckID)
	if err := os.MkdirAll(deckPath, 0o755); err != nil {
		return nil, fmt.Errorf("create deck dir: %w", err)
	}

	urls := make([]string, 0, len(tokens))
	moved := make([]string, 0, len(tokens))
	for _, token := range tokens {
		name := filepath.Base(token)
		src := filepath.Join(s.root, stagingDir, name)
		dst := filepath.Join(deckPath, name)
		if err := os.Rename(src, dst); err != nil {
			for _, m := range moved {
				_ = os.Rename(filepath.Join(deckPath, m), filepath.Join(s.root, stagingDir, m))
			}
			return nil, fmt.Errorf("move staged file %s: %w", name, err)
		}
		moved = append(moved, name)
		urls = append(urls, s.baseURL+path.Join("/", decksDir, deckID, name))
	}

	return urls, nil
}

// Delete removes a stored file by its public URL. Deleting a file that is
// already gone is not an error.
func (s *AssetStore) Delete(url string) error {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return fmt.Errorf("url %q is not under base %q", url, s.baseURL)
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("invalid asset path %q", rel)
	}

	err := os.Remove(filepath.Join(s.root, rel))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove asset: %w", err)
	}
	return nil
}

// DeleteAllForDeck removes the deck's entire asset directory. Missing
// directories are ignored so the call is safe to retry.
func (s *AssetStore) DeleteAllForDeck(deckID string) error {
	deckID = filepath.Base(deckID)
	if err := os.RemoveAll(filepath.Join(s.root, decksDir, deckID)); err != nil {
		return fmt.Errorf("remove deck assets: %w", err)
	}
	return nil
}

// DiscardStaged removes a staged file that will not be published.
func (s *AssetStore) DiscardStaged(token string) error {
	err := os.Remove(filepath.Join(s.root, stagingDir, filepath.Base(token)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("discard staged file: %w", err)
	}
	return nil
}
