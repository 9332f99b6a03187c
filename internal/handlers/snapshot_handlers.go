package handlers

import (
	"errors"
	"net/http"

	"xero_backend/internal/services"
	"xero_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SnapshotHandler exposes the persistence gateway over HTTP so operators can
// force a snapshot or restore outside the normal shutdown/startup path.
type SnapshotHandler struct {
	snapshotService services.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(ss services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: ss}
}

// TakeSnapshot serializes the full store state to the snapshot store.
func (h *SnapshotHandler) TakeSnapshot(c *gin.Context) {
	if err := h.snapshotService.TakeSnapshot(c.Request.Context()); err != nil {
		utils.LogError(err, "TakeSnapshot: Error from snapshotService.TakeSnapshot")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to take snapshot.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Snapshot taken."})
}

// RestoreSnapshot replaces the in-memory store with the stored snapshot.
func (h *SnapshotHandler) RestoreSnapshot(c *gin.Context) {
	err := h.snapshotService.RestoreLatest(c.Request.Context())
	if err != nil {
		utils.LogError(err, "RestoreSnapshot: Error from snapshotService.RestoreLatest")
		if errors.Is(err, services.ErrSnapshotMissing) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No snapshot available.", err.Error()))
		} else if errors.Is(err, services.ErrSnapshotIntegrity) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Snapshot failed integrity check.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to restore snapshot.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Snapshot restored."})
}
