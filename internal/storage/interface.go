package storage

import (
	"context"
	"io"
	"time"
)

// Storage abstracts the document blob store. The local backend serves
// files through the API server itself; a cloud backend would hand out
// real presigned URLs instead.
type Storage interface {
	// GenerateUploadURL returns a URL the client PUTs the file to.
	GenerateUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GenerateDownloadURL returns a URL the client GETs the file from.
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks whether a file exists and returns its size.
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage.
	DeleteFile(ctx context.Context, key string) error

	// RedeemUploadToken validates a token minted by GenerateUploadURL and
	// returns the storage key it is bound to. Only the local backend's
	// HTTP upload handler calls this.
	RedeemUploadToken(token string) (string, error)

	// RedeemDownloadToken validates a token minted by GenerateDownloadURL
	// and returns the storage key it is bound to.
	RedeemDownloadToken(token string) (string, error)

	// SaveFile persists an uploaded file. Only the local backend's HTTP
	// upload handler calls this.
	SaveFile(key string, reader io.Reader) error

	// ReadFile opens a stored file for reading. Only the local backend's
	// HTTP download handler calls this.
	ReadFile(key string) (io.ReadCloser, error)
}
