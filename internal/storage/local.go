package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidToken is returned when an upload or download URL token is
// unknown, expired, or presented to the wrong endpoint.
var ErrInvalidToken = errors.New("invalid or expired URL token")

type issuedToken struct {
	key       string
	method    string
	expiresAt time.Time
}

// LocalStorage keeps documents on the server's filesystem and serves
// them through the API's upload/download endpoints. Issued URLs carry a
// token that is validated and mapped back to a storage key on use, the
// local stand-in for a cloud backend's presigned URLs.
type LocalStorage struct {
	baseURL      string
	documentsDir string

	mu     sync.Mutex
	tokens map[string]issuedToken
}

func NewLocalStorage(baseURL, uploadDir string) (*LocalStorage, error) {
	documentsDir := filepath.Join(uploadDir, "documents")
	if err := os.MkdirAll(documentsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}
	return &LocalStorage{
		baseURL:      strings.TrimRight(baseURL, "/"),
		documentsDir: documentsDir,
		tokens:       make(map[string]issuedToken),
	}, nil
}

func (s *LocalStorage) GenerateUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	token := s.issueToken(key, "upload", expiresIn)
	return fmt.Sprintf("%s/api/v1/upload/%s", s.baseURL, token), nil
}

func (s *LocalStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	token := s.issueToken(key, "download", expiresIn)
	return fmt.Sprintf("%s/api/v1/download/%s", s.baseURL, token), nil
}

func (s *LocalStorage) RedeemUploadToken(token string) (string, error) {
	return s.redeem(token, "upload")
}

func (s *LocalStorage) RedeemDownloadToken(token string) (string, error) {
	return s.redeem(token, "download")
}

func (s *LocalStorage) issueToken(key, method string, expiresIn time.Duration) string {
	token := uuid.New().String()
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for t, issued := range s.tokens {
		if now.After(issued.expiresAt) {
			delete(s.tokens, t)
		}
	}
	s.tokens[token] = issuedToken{key: key, method: method, expiresAt: now.Add(expiresIn)}
	return token
}

// redeem looks up an issued token. Tokens stay valid for repeated use
// until they expire, matching presigned URL semantics.
func (s *LocalStorage) redeem(token, method string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	issued, ok := s.tokens[token]
	if !ok || issued.method != method || time.Now().After(issued.expiresAt) {
		return "", ErrInvalidToken
	}
	return issued.key, nil
}

func (s *LocalStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	path, err := s.resolve(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (s *LocalStorage) DeleteFile(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) SaveFile(key string, reader io.Reader) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStorage) ReadFile(key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// resolve maps a storage key to a filesystem path, rejecting keys that
// would escape the documents directory.
func (s *LocalStorage) resolve(key string) (string, error) {
	cleaned := filepath.Clean("/" + key)
	if cleaned == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.documentsDir, cleaned), nil
}
