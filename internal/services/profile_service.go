package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"xero_backend/internal/models"
	"xero_backend/internal/repositories"
	"xero_backend/pkg/utils"
)

// --- Custom Service Errors for Business Profiles ---
var (
	ErrProfileNotFound   = errors.New("business profile not found")
	ErrProfileExists     = errors.New("business profile already exists")
	ErrNotAuthorized     = errors.New("caller is not the profile owner")
	ErrProfileValidation = errors.New("validation error")
)

// --- DTOs ---
type BusinessProfileRequest struct {
	OwnerID            string                  `json:"owner_id" validate:"required"`
	BusinessName       string                  `json:"business_name" validate:"required"`
	BusinessType       models.BusinessType     `json:"business_type" validate:"required"`
	BusinessCategory   models.BusinessCategory `json:"business_category" validate:"required"`
	Country            string                  `json:"country"`
	Address            string                  `json:"address"`
	RegistrationNumber string                  `json:"registration_number" validate:"registration_number"`
	PhoneNumber        string                  `json:"phone_number" validate:"phone_number"`
	Email              string                  `json:"email" validate:"omitempty,email"`
	WebsiteURL         string                  `json:"website_url" validate:"omitempty,http_url_scheme"`
}

// --- ProfileService Interface ---
type ProfileService interface {
	CreateProfile(req BusinessProfileRequest, caller string) (*models.BusinessProfile, error)
	GetProfile(ownerID string) (*models.BusinessProfile, error)
	UpdateProfile(req BusinessProfileRequest, caller string) (*models.BusinessProfile, error)
	SaveCompletedStep(caller string, stepID int64) error
	GetCompletedSteps(ownerID string) ([]int64, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: repo}
}

func validateProfileRequest(req BusinessProfileRequest) error {
	if err := utils.Validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: field '%s' failed rule '%s'", ErrProfileValidation, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrProfileValidation, err)
	}
	if !req.BusinessType.IsValid() {
		return fmt.Errorf("%w: unknown business type '%s'", ErrProfileValidation, req.BusinessType)
	}
	if !req.BusinessCategory.IsValid() {
		return fmt.Errorf("%w: unknown business category '%s'", ErrProfileValidation, req.BusinessCategory)
	}
	return nil
}

func profileFromRequest(req BusinessProfileRequest) *models.BusinessProfile {
	return &models.BusinessProfile{
		OwnerID:            req.OwnerID,
		BusinessName:       req.BusinessName,
		BusinessType:       req.BusinessType,
		BusinessCategory:   req.BusinessCategory,
		Country:            req.Country,
		Address:            req.Address,
		RegistrationNumber: req.RegistrationNumber,
		PhoneNumber:        req.PhoneNumber,
		Email:              req.Email,
		WebsiteURL:         req.WebsiteURL,
		CompletedSteps:     []int64{},
	}
}

func (s *profileService) CreateProfile(req BusinessProfileRequest, caller string) (*models.BusinessProfile, error) {
	if req.OwnerID != caller {
		return nil, ErrNotAuthorized
	}
	if err := validateProfileRequest(req); err != nil {
		return nil, err
	}

	profile := profileFromRequest(req)
	if err := s.profileRepo.Create(profile); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: owner '%s'", ErrProfileExists, req.OwnerID)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) GetProfile(ownerID string) (*models.BusinessProfile, error) {
	profile, err := s.profileRepo.GetByOwnerID(ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: owner '%s'", ErrProfileNotFound, ownerID)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(req BusinessProfileRequest, caller string) (*models.BusinessProfile, error) {
	if req.OwnerID != caller {
		return nil, ErrNotAuthorized
	}
	if err := validateProfileRequest(req); err != nil {
		return nil, err
	}

	profile := profileFromRequest(req)
	if err := s.profileRepo.Update(profile); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: owner '%s'", ErrProfileNotFound, req.OwnerID)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(req.OwnerID)
}

func (s *profileService) SaveCompletedStep(caller string, stepID int64) error {
	if err := s.profileRepo.AddCompletedStep(caller, stepID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: owner '%s'", ErrProfileNotFound, caller)
		}
		return fmt.Errorf("failed to save completed step: %w", err)
	}
	return nil
}

func (s *profileService) GetCompletedSteps(ownerID string) ([]int64, error) {
	profile, err := s.GetProfile(ownerID)
	if err != nil {
		return nil, err
	}
	return profile.CompletedSteps, nil
}
