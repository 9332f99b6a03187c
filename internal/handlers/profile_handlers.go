package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"xero_backend/internal/middleware"
	"xero_backend/internal/services"
	"xero_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the business-profile service.
type ProfileHandler struct {
	profileService services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(ps services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: ps}
}

func respondProfileError(c *gin.Context, err error, action string) {
	utils.LogError(err, action+": Error from profileService")
	if errors.Is(err, services.ErrNotAuthorized) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Caller is not the profile owner.", err.Error()))
	} else if errors.Is(err, services.ErrProfileExists) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Profile already exists for this owner.", err.Error()))
	} else if errors.Is(err, services.ErrProfileNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Business profile not found.", err.Error()))
	} else if errors.Is(err, services.ErrProfileValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Profile operation failed.", "Internal error"))
	}
}

// CreateProfile registers a business profile for the calling owner.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req services.BusinessProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	profile, err := h.profileService.CreateProfile(req, middleware.ActorID(c))
	if err != nil {
		respondProfileError(c, err, "CreateProfile")
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetProfile fetches a profile by owner ID.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Param("owner_id"))
	if err != nil {
		respondProfileError(c, err, "GetProfile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile overwrites the calling owner's profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req services.BusinessProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	profile, err := h.profileService.UpdateProfile(req, middleware.ActorID(c))
	if err != nil {
		respondProfileError(c, err, "UpdateProfile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveCompletedStep records an onboarding step for the calling owner.
func (h *ProfileHandler) SaveCompletedStep(c *gin.Context) {
	stepID, err := strconv.ParseInt(c.Param("step_id"), 10, 64)
	if err != nil {
		utils.RespondValidationFailed(c, "Invalid step ID format.")
		return
	}

	if err := h.profileService.SaveCompletedStep(middleware.ActorID(c), stepID); err != nil {
		respondProfileError(c, err, "SaveCompletedStep")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Step saved."})
}

// GetCompletedSteps lists the recorded onboarding steps for an owner.
func (h *ProfileHandler) GetCompletedSteps(c *gin.Context) {
	steps, err := h.profileService.GetCompletedSteps(c.Param("owner_id"))
	if err != nil {
		respondProfileError(c, err, "GetCompletedSteps")
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed_steps": steps})
}
