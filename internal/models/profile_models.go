package models

import "time"

// BusinessType classifies the registering business.
type BusinessType string

const (
	BusinessTypeSmallBusiness BusinessType = "SmallBusiness"
	BusinessTypeStartup       BusinessType = "Startup"
	BusinessTypeEnterprise    BusinessType = "Enterprise"
	BusinessTypeFranchise     BusinessType = "Franchise"
)

func (t BusinessType) IsValid() bool {
	switch t {
	case BusinessTypeSmallBusiness, BusinessTypeStartup, BusinessTypeEnterprise, BusinessTypeFranchise:
		return true
	}
	return false
}

// BusinessCategory classifies what the business sells.
type BusinessCategory string

const (
	BusinessCategorySupermarket  BusinessCategory = "Supermarket"
	BusinessCategoryGroceryStore BusinessCategory = "GroceryStore"
	BusinessCategoryRestaurant   BusinessCategory = "Restaurant"
	BusinessCategoryFoodChain    BusinessCategory = "FoodChain"
)

func (c BusinessCategory) IsValid() bool {
	switch c {
	case BusinessCategorySupermarket, BusinessCategoryGroceryStore, BusinessCategoryRestaurant, BusinessCategoryFoodChain:
		return true
	}
	return false
}

// BusinessProfile is one registration record, keyed by the owning caller's
// identity. Exactly one profile may exist per owner.
type BusinessProfile struct {
	OwnerID            string           `json:"owner_id" db:"owner_id"`
	BusinessName       string           `json:"business_name" db:"business_name"`
	BusinessType       BusinessType     `json:"business_type" db:"business_type"`
	BusinessCategory   BusinessCategory `json:"business_category" db:"business_category"`
	Country            string           `json:"country" db:"country"`
	Address            string           `json:"address" db:"address"`
	RegistrationNumber string           `json:"registration_number" db:"registration_number"`
	PhoneNumber        string           `json:"phone_number" db:"phone_number"`
	Email              string           `json:"email" db:"email"`
	WebsiteURL         string           `json:"website_url" db:"website_url"`
	CompletedSteps     []int64          `json:"completed_steps" db:"completed_steps"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at" db:"updated_at"`
}
