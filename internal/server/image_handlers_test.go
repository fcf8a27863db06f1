package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"deckvault/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadImage(t *testing.T, app *fiber.App, uid, contentType string, content []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="image"; filename="card.png"`},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/images/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+authToken(t, uid))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestUploadImage_StageAndPublish(t *testing.T) {
	app, _, db := newTestApp(t)
	seedUser(t, db, "u-1", "Alice")

	resp := uploadImage(t, app, "u-1", "image/png", []byte("png-bytes"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var upload ImageUploadResponse
	decodeBody(t, resp, &upload)
	require.NotEmpty(t, upload.Token)

	deckID := publishDeck(t, app, "u-1", func(body map[string]any) {
		body["image_tokens"] = []string{upload.Token}
	})

	getResp := doJSON(t, app, http.MethodGet, "/api/decks/"+deckID, "u-1", nil)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var deck models.PublishedDeck
	decodeBody(t, getResp, &deck)
	require.Len(t, deck.ImageURLs, 1)
	assert.Contains(t, deck.ImageURLs[0], deckID)
}

func TestDiscardImage_RemovesStagedUpload(t *testing.T) {
	app, _, db := newTestApp(t)
	seedUser(t, db, "u-1", "Alice")

	resp := uploadImage(t, app, "u-1", "image/png", []byte("png-bytes"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var upload ImageUploadResponse
	decodeBody(t, resp, &upload)

	resp = doJSON(t, app, http.MethodDelete, "/api/images/"+upload.Token, "u-1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Discarding again still works; a discarded token can no longer be
	// exchanged at publish time.
	resp = doJSON(t, app, http.MethodDelete, "/api/images/"+upload.Token, "u-1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	body := validDeckBody(t)
	body["image_tokens"] = []string{upload.Token}
	resp = doJSON(t, app, http.MethodPost, "/api/decks/publish", "u-1", body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestUploadImage_RejectsUnsupportedType(t *testing.T) {
	app, _, db := newTestApp(t)
	seedUser(t, db, "u-1", "Alice")

	resp := uploadImage(t, app, "u-1", "application/pdf", []byte("%PDF"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
