package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"casahub-backend/internal/config"
	"casahub-backend/internal/domain"
	"casahub-backend/internal/repository"
	"casahub-backend/internal/storage"
)

const presignedURLTTL = 15 * time.Minute

type documentService struct {
	docRepo       repository.DocumentRepository
	volunteerRepo repository.VolunteerRepository
	store         storage.Storage
	maxFileSize   int64
	allowedTypes  map[string]bool
}

func NewDocumentService(docRepo repository.DocumentRepository, volunteerRepo repository.VolunteerRepository, store storage.Storage, cfg config.StorageConfig) DocumentService {
	allowed := make(map[string]bool, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &documentService{
		docRepo:       docRepo,
		volunteerRepo: volunteerRepo,
		store:         store,
		maxFileSize:   cfg.MaxFileSize * 1024 * 1024,
		allowedTypes:  allowed,
	}
}

func (s *documentService) RequestUpload(ctx context.Context, actor Actor, candidateID int32, fileName, contentType string) (*domain.CandidateDocument, string, error) {
	if !actor.SuperAdmin && !actor.Role.CanManagePipeline() {
		return nil, "", ErrForbidden
	}
	cand, err := s.volunteerRepo.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	if !actor.SuperAdmin && cand.OrgID != actor.OrgID {
		return nil, "", ErrForbidden
	}
	if len(s.allowedTypes) > 0 && !s.allowedTypes[strings.ToLower(contentType)] {
		return nil, "", fmt.Errorf("content type %s is not allowed", contentType)
	}

	key := fmt.Sprintf("org-%d/candidate-%d/%s%s",
		cand.OrgID, cand.ID, uuid.New().String(), strings.ToLower(filepath.Ext(fileName)))

	doc := &domain.CandidateDocument{
		CandidateID: cand.ID,
		OrgID:       cand.OrgID,
		UploadedBy:  actor.UserID,
		FileName:    fileName,
		ContentType: contentType,
		StorageKey:  key,
		Status:      domain.DocumentStatusPending,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, "", err
	}

	uploadURL, err := s.store.GenerateUploadURL(ctx, key, contentType, presignedURLTTL)
	if err != nil {
		return nil, "", err
	}
	return doc, uploadURL, nil
}

func (s *documentService) ConfirmUpload(ctx context.Context, actor Actor, documentID int32, fileSize int64) (*domain.CandidateDocument, error) {
	doc, err := s.getAuthorized(ctx, actor, documentID)
	if err != nil {
		return nil, err
	}

	exists, size, err := s.store.FileExists(ctx, doc.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("file for document %d was never uploaded", documentID)
	}
	if s.maxFileSize > 0 && size > s.maxFileSize {
		_ = s.store.DeleteFile(ctx, doc.StorageKey)
		return nil, fmt.Errorf("file exceeds the %d byte limit", s.maxFileSize)
	}
	if fileSize > 0 && fileSize != size {
		return nil, fmt.Errorf("stored file is %d bytes, client declared %d", size, fileSize)
	}

	if err := s.docRepo.Confirm(ctx, documentID, size); err != nil {
		return nil, err
	}
	doc.Status = domain.DocumentStatusConfirmed
	doc.FileSize = size
	return doc, nil
}

func (s *documentService) GetDownloadURL(ctx context.Context, actor Actor, documentID int32) (string, error) {
	doc, err := s.getAuthorized(ctx, actor, documentID)
	if err != nil {
		return "", err
	}
	if doc.Status != domain.DocumentStatusConfirmed {
		return "", ErrNotFound
	}
	return s.store.GenerateDownloadURL(ctx, doc.StorageKey, presignedURLTTL)
}

func (s *documentService) ListDocuments(ctx context.Context, actor Actor, candidateID int32) ([]domain.CandidateDocument, error) {
	if !actor.SuperAdmin && !actor.Role.CanManagePipeline() {
		return nil, ErrForbidden
	}
	cand, err := s.volunteerRepo.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.SuperAdmin && cand.OrgID != actor.OrgID {
		return nil, ErrForbidden
	}
	return s.docRepo.ListByCandidate(ctx, candidateID)
}

func (s *documentService) getAuthorized(ctx context.Context, actor Actor, documentID int32) (*domain.CandidateDocument, error) {
	if !actor.SuperAdmin && !actor.Role.CanManagePipeline() {
		return nil, ErrForbidden
	}
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.SuperAdmin && doc.OrgID != actor.OrgID {
		return nil, ErrForbidden
	}
	return doc, nil
}
