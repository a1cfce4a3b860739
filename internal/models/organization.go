package models

import (
	"time"

	"github.com/google/uuid"
)

// Категории организаций.
const (
	OrgCategoryBank            = "bank"
	OrgCategoryMunicipality    = "municipality"
	OrgCategoryPrivateBusiness = "private_business"
	OrgCategoryNonprofit       = "nonprofit"
	OrgCategoryOther           = "other"
)

// Organization описывает организацию, владеющую филиалами и убежищами.
// У организации ровно один владелец — пользователь, который её создал.
type Organization struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Category         string    `db:"category" json:"category"`
	WebsiteURL       *string   `db:"website_url" json:"website_url,omitempty"`
	AccessibilityURL *string   `db:"accessibility_url" json:"accessibility_url,omitempty"`
	OwnerID          uuid.UUID `db:"owner_id" json:"owner_id"`
	VerificationFile *string   `db:"verification_file" json:"verification_file,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Branch описывает филиал организации.
type Branch struct {
	ID               uuid.UUID `db:"id" json:"id"`
	OrganizationID   uuid.UUID `db:"organization_id" json:"organization_id"`
	Name             string    `db:"name" json:"name"`
	Address          string    `db:"address" json:"address"`
	CoordinatorName  *string   `db:"coordinator_name" json:"coordinator_name,omitempty"`
	CoordinatorEmail *string   `db:"coordinator_email" json:"coordinator_email,omitempty"`
	CoordinatorPhone *string   `db:"coordinator_phone" json:"coordinator_phone,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// ValidOrgCategory проверяет допустимость категории организации.
func ValidOrgCategory(c string) bool {
	switch c {
	case OrgCategoryBank, OrgCategoryMunicipality, OrgCategoryPrivateBusiness,
		OrgCategoryNonprofit, OrgCategoryOther:
		return true
	}
	return false
}
