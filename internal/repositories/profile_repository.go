package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"xero_backend/internal/models"
)

// ProfileRepository defines the interface for business-profile database
// operations. Profiles are keyed by the owning caller's identity.
type ProfileRepository interface {
	Create(profile *models.BusinessProfile) error
	GetByOwnerID(ownerID string) (*models.BusinessProfile, error)
	Update(profile *models.BusinessProfile) error
	AddCompletedStep(ownerID string, stepID int64) error
}

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *models.BusinessProfile) error {
	query := `INSERT INTO business_profiles
	          (owner_id, business_name, business_type, business_category, country, address,
	           registration_number, phone_number, email, website_url, completed_steps, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	currentTime := time.Now()
	profile.CreatedAt = currentTime
	profile.UpdatedAt = currentTime
	_, err := r.db.Exec(query,
		profile.OwnerID, profile.BusinessName, profile.BusinessType, profile.BusinessCategory,
		profile.Country, profile.Address, profile.RegistrationNumber, profile.PhoneNumber,
		profile.Email, profile.WebsiteURL, pq.Array(profile.CompletedSteps),
		profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: profile for owner '%s' already exists", ErrDuplicateKey, profile.OwnerID)
		}
		return fmt.Errorf("%w: creating profile for owner '%s': %v", ErrDatabaseError, profile.OwnerID, err)
	}
	return nil
}

func (r *profileRepository) GetByOwnerID(ownerID string) (*models.BusinessProfile, error) {
	profile := &models.BusinessProfile{}
	query := `SELECT owner_id, business_name, business_type, business_category, country, address,
	                 registration_number, phone_number, email, website_url, completed_steps, created_at, updated_at
	          FROM business_profiles WHERE owner_id = $1`
	err := r.db.QueryRow(query, ownerID).Scan(
		&profile.OwnerID, &profile.BusinessName, &profile.BusinessType, &profile.BusinessCategory,
		&profile.Country, &profile.Address, &profile.RegistrationNumber, &profile.PhoneNumber,
		&profile.Email, &profile.WebsiteURL, pq.Array(&profile.CompletedSteps),
		&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting profile for owner '%s': %v", ErrDatabaseError, ownerID, err)
	}
	return profile, nil
}

func (r *profileRepository) Update(profile *models.BusinessProfile) error {
	query := `UPDATE business_profiles
	          SET business_name = $1, business_type = $2, business_category = $3, country = $4,
	              address = $5, registration_number = $6, phone_number = $7, email = $8,
	              website_url = $9, updated_at = $10
	          WHERE owner_id = $11`
	result, err := r.db.Exec(query,
		profile.BusinessName, profile.BusinessType, profile.BusinessCategory, profile.Country,
		profile.Address, profile.RegistrationNumber, profile.PhoneNumber, profile.Email,
		profile.WebsiteURL, time.Now(), profile.OwnerID)
	if err != nil {
		return fmt.Errorf("%w: updating profile for owner '%s': %v", ErrDatabaseError, profile.OwnerID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *profileRepository) AddCompletedStep(ownerID string, stepID int64) error {
	// array_append only when the step is not already recorded, so repeated
	// saves of the same step stay idempotent.
	query := `UPDATE business_profiles
	          SET completed_steps = array_append(completed_steps, $1), updated_at = $2
	          WHERE owner_id = $3 AND NOT ($1 = ANY(completed_steps))`
	result, err := r.db.Exec(query, stepID, time.Now(), ownerID)
	if err != nil {
		return fmt.Errorf("%w: saving completed step for owner '%s': %v", ErrDatabaseError, ownerID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		// Either the owner has no profile or the step was already saved;
		// distinguish by looking the profile up.
		if _, err := r.GetByOwnerID(ownerID); err != nil {
			return err
		}
	}
	return nil
}
