package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func lastPathSegment(url string) string {
	return url[strings.LastIndex(url, "/")+1:]
}

func TestLocalStorage_UploadTokenRoundTrip(t *testing.T) {
	store, err := NewLocalStorage("http://localhost:8080", t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	url, err := store.GenerateUploadURL(ctx, "org-3/candidate-42/check.pdf", "application/pdf", 15*time.Minute)
	assert.NoError(t, err)
	assert.Contains(t, url, "/api/v1/upload/")
	// The key never appears in the URL; only the token does.
	assert.NotContains(t, url, "check.pdf")

	key, err := store.RedeemUploadToken(lastPathSegment(url))
	assert.NoError(t, err)
	assert.Equal(t, "org-3/candidate-42/check.pdf", key)
}

func TestLocalStorage_RedeemRejectsUnknownToken(t *testing.T) {
	store, err := NewLocalStorage("http://localhost:8080", t.TempDir())
	assert.NoError(t, err)

	_, err = store.RedeemUploadToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLocalStorage_RedeemRejectsWrongEndpoint(t *testing.T) {
	store, err := NewLocalStorage("http://localhost:8080", t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	url, err := store.GenerateDownloadURL(ctx, "org-3/candidate-42/check.pdf", 15*time.Minute)
	assert.NoError(t, err)
	token := lastPathSegment(url)

	// A download token must not authorize an upload of the same key.
	_, err = store.RedeemUploadToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	key, err := store.RedeemDownloadToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "org-3/candidate-42/check.pdf", key)
}

func TestLocalStorage_RedeemRejectsExpiredToken(t *testing.T) {
	store, err := NewLocalStorage("http://localhost:8080", t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	url, err := store.GenerateUploadURL(ctx, "org-3/candidate-42/check.pdf", "application/pdf", -time.Second)
	assert.NoError(t, err)

	_, err = store.RedeemUploadToken(lastPathSegment(url))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLocalStorage_SaveFileRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStorage("http://localhost:8080", t.TempDir())
	assert.NoError(t, err)

	err = store.SaveFile("../outside.txt", strings.NewReader("x"))
	assert.NoError(t, err) // cleaned to a path inside the documents dir

	err = store.SaveFile("", strings.NewReader("x"))
	assert.Error(t, err)
}
