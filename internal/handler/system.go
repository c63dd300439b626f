package handler

import (
	"log/slog"
	"net/http"

	"hirebase/internal/domain/services"
	"hirebase/internal/httputil"
)

// SystemFolderHandler handles service-to-service folder provisioning.
// Routes under /internal/ bypass user auth and are guarded by the service
// key middleware instead, so the owner comes from the request body.
type SystemFolderHandler struct {
	folderService services.FolderService
	logger        *slog.Logger
}

// NewSystemFolderHandler creates a new system folder handler
func NewSystemFolderHandler(folderService services.FolderService, logger *slog.Logger) *SystemFolderHandler {
	return &SystemFolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// CreateSystemFolder provisions a folder on behalf of another service.
// When the body omits the name but carries a subjectId, the folder is
// named after the subject's directory profile.
// POST /internal/v1/folders/system
func (h *SystemFolderHandler) CreateSystemFolder(w http.ResponseWriter, r *http.Request) {
	var req services.CreateSystemFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	folder, err := h.folderService.CreateSystemFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}
