package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"casahub-backend/internal/service"
	"casahub-backend/internal/storage"
)

type DocumentHandler struct {
	docSvc service.DocumentService
	store  storage.Storage
}

func NewDocumentHandler(docSvc service.DocumentService, store storage.Storage) *DocumentHandler {
	return &DocumentHandler{docSvc: docSvc, store: store}
}

type requestUploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

func (h *DocumentHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	candidateID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req requestUploadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.FileName == "" || req.ContentType == "" {
		writeBadRequest(w, "file_name and content_type are required")
		return
	}

	doc, uploadURL, err := h.docSvc.RequestUpload(r.Context(), actor, candidateID, req.FileName, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"document":   doc,
		"upload_url": uploadURL,
	})
}

func (h *DocumentHandler) ConfirmUpload(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	docID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	// file_size is optional; when present it is cross-checked against the
	// stored file.
	var req struct {
		FileSize int64 `json:"file_size"`
	}
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}
	doc, err := h.docSvc.ConfirmUpload(r.Context(), actor, docID, req.FileSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) GetDownloadURL(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	docID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	url, err := h.docSvc.GetDownloadURL(r.Context(), actor, docID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"download_url": url})
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	candidateID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	docs, err := h.docSvc.ListDocuments(r.Context(), actor, candidateID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}

// UploadFile receives the body of a presigned-style upload URL issued by
// the local storage backend. The token in the path is redeemed for the
// storage key it was bound to; expired or unknown tokens are rejected.
func (h *DocumentHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	key, err := h.store.RedeemUploadToken(mux.Vars(r)["token"])
	if err != nil {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden", Message: "upload URL is invalid or expired"})
		return
	}
	defer r.Body.Close()
	if err := h.store.SaveFile(key, r.Body); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DownloadFile streams a stored file back for a download URL issued by
// the local storage backend.
func (h *DocumentHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	key, err := h.store.RedeemDownloadToken(mux.Vars(r)["token"])
	if err != nil {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden", Message: "download URL is invalid or expired"})
		return
	}
	file, err := h.store.ReadFile(key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "file does not exist"})
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, file); err != nil {
		// Response already started; nothing sensible to send.
		return
	}
}
