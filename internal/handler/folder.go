package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"hirebase/internal/config"
	"hirebase/internal/domain/services"
	"hirebase/internal/httputil"
)

// FolderHandler handles folder namespace HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// BatchDeleteRequest is the body for POST /api/v1/folders/batch-delete
type BatchDeleteRequest struct {
	FolderIDs []string `json:"folderIds"`
}

// CreateFolder creates a folder owned by the caller
// POST /api/v1/folders
// Returns 201 with the folder; a dedup hit returns the existing folder
// with the same 201 as a fresh insert
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.OwnerID = userID

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder retrieves a folder with its computed path and children count
// GET /api/v1/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	folderID, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)

	folder, err := h.folderService.GetFolder(r.Context(), userID, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// UpdateFolder applies a partial update (name, type, merged metadata)
// PATCH /api/v1/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	folderID, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)

	var req services.UpdateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.OwnerID = userID
	req.FolderID = folderID

	folder, err := h.folderService.UpdateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder soft-deletes a folder and its entire subtree
// DELETE /api/v1/folders/{id}
// Returns 200 with the deletion result, including any per-folder failures
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	folderID, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)

	result, err := h.folderService.DeleteFolder(r.Context(), userID, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// BatchDeleteFolders deletes many folders in one deepest-first pass
// POST /api/v1/folders/batch-delete
func (h *FolderHandler) BatchDeleteFolders(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req BatchDeleteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.folderService.DeleteFolders(r.Context(), userID, req.FolderIDs)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// ListChildren pages through a folder's active direct children
// GET /api/v1/folders/{id}/children?limit=50&cursor=...
func (h *FolderHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	folderID, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)

	page, err := h.folderService.ListChildren(r.Context(), &services.ListChildrenRequest{
		OwnerID:  userID,
		FolderID: folderID,
		Limit:    int32(QueryInt(r, "limit", 0, 0, config.MaxPageSize)),
		Cursor:   r.URL.Query().Get("cursor"),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// ListRoots pages through the caller's root folders
// GET /api/v1/folders/roots?limit=50&cursor=...
func (h *FolderHandler) ListRoots(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	page, err := h.folderService.ListRoots(r.Context(), &services.ListRootsRequest{
		OwnerID: userID,
		Limit:   int32(QueryInt(r, "limit", 0, 0, config.MaxPageSize)),
		Cursor:  r.URL.Query().Get("cursor"),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// QueryFolders enumerates the caller's folders under an open filter
// GET /api/v1/folders?parentId=X&type=Cargo&roots=true&limit=50&cursor=...
func (h *FolderHandler) QueryFolders(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	q := r.URL.Query()
	req := &services.QueryFoldersRequest{
		OwnerID: userID,
		Type:    q.Get("type"),
		Limit:   int32(QueryInt(r, "limit", 0, 0, config.MaxPageSize)),
		Cursor:  q.Get("cursor"),
	}
	if parentID := q.Get("parentId"); parentID != "" {
		req.ParentID = &parentID
	}
	if roots := q.Get("roots"); roots != "" {
		if parsed, err := strconv.ParseBool(roots); err == nil {
			req.RootsOnly = parsed
		}
	}

	page, err := h.folderService.QueryFolders(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *FolderHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now(),
	})
}
