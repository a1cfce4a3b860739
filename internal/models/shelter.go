package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы убежища. Статус — единственный источник истины о жизненном цикле
// записи: черновик, ожидание модерации или публикация.
const (
	ShelterStatusDraft         = "draft"
	ShelterStatusPendingReview = "pending_review"
	ShelterStatusPublished     = "published"
)

// Типы убежищ.
const (
	ShelterTypeMamak         = "mamak"          // מרחב מוגן קומתי
	ShelterTypeUnderground   = "underground"    // מקלט תת קרקעי
	ShelterTypeStairwell     = "stairwell"      // חדר מדרגות
	ShelterTypeShelteredArea = "sheltered_area" // אזור מחסה
	ShelterTypeInnerRoom     = "inner_room"     // חדר פנימי
	ShelterTypeMiguonit      = "miguonit"       // מיגונית
	ShelterTypeOther         = "other"
)

// Системы навигации внутри убежища.
const (
	NavigationSystemStepHear  = "step_hear"
	NavigationSystemRightHear = "right_hear"
	NavigationSystemOther     = "other"
	NavigationSystemNone      = "none"
)

// Shelter описывает запись убежища со сведениями о доступности.
type Shelter struct {
	ID                    uuid.UUID  `db:"id" json:"id"`
	Address               string     `db:"address" json:"address"`
	Lat                   *float64   `db:"lat" json:"lat,omitempty"`
	Lng                   *float64   `db:"lng" json:"lng,omitempty"`
	ShelterType           string     `db:"shelter_type" json:"shelter_type"`
	ShelterTypeOther      *string    `db:"shelter_type_other" json:"shelter_type_other,omitempty"`
	FloorNumber           *int       `db:"floor_number" json:"floor_number,omitempty"`
	AreaDescription       *string    `db:"area_description" json:"area_description,omitempty"`
	Directions            *string    `db:"directions" json:"directions,omitempty"`
	StepFreeAccess        bool       `db:"step_free_access" json:"step_free_access"`
	PathWidth             *float64   `db:"path_width" json:"path_width,omitempty"`
	DoorWidth             *float64   `db:"door_width" json:"door_width,omitempty"`
	StairsCount           *int       `db:"stairs_count" json:"stairs_count,omitempty"`
	HandrailsPresent      bool       `db:"handrails_present" json:"handrails_present"`
	ManeuveringSpace      bool       `db:"maneuvering_space" json:"maneuvering_space"`
	ThresholdHeight       *float64   `db:"threshold_height" json:"threshold_height,omitempty"`
	RampPresent           bool       `db:"ramp_present" json:"ramp_present"`
	NavigationSystem      string     `db:"navigation_system" json:"navigation_system"`
	NavigationSystemOther *string    `db:"navigation_system_other" json:"navigation_system_other,omitempty"`
	AccessibilityAids     []string   `db:"accessibility_aids" json:"accessibility_aids"`
	Photos                []string   `db:"photos" json:"photos"`
	BranchID              *uuid.UUID `db:"branch_id" json:"branch_id,omitempty"`
	OrganizationID        *uuid.UUID `db:"organization_id" json:"organization_id,omitempty"`
	Status                string     `db:"status" json:"status"`
	Verified              bool       `db:"verified" json:"verified"`
	SubmittedBy           *string    `db:"submitted_by" json:"submitted_by,omitempty"`
	ReviewedBy            *uuid.UUID `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt            *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	Rating                *float64   `db:"rating" json:"rating,omitempty"`
	RatingCount           int        `db:"rating_count" json:"rating_count"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}

// ShelterWithDistance дополняет убежище расстоянием до точки поиска в км.
type ShelterWithDistance struct {
	Shelter
	DistanceKm float64 `json:"distance_km"`
}

// ShelterReview описывает опубликованный (прошедший модерацию) отзыв.
type ShelterReview struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ShelterID     uuid.UUID `db:"shelter_id" json:"shelter_id"`
	Rating        int       `db:"rating" json:"rating"`
	Comment       *string   `db:"comment" json:"comment,omitempty"`
	ReporterEmail *string   `db:"reporter_email" json:"reporter_email,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ShelterReport описывает подтверждённую проблему с убежищем.
type ShelterReport struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ShelterID  uuid.UUID `db:"shelter_id" json:"shelter_id"`
	ReportType string    `db:"report_type" json:"report_type"`
	Details    string    `db:"details" json:"details"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ValidShelterType проверяет допустимость типа убежища.
func ValidShelterType(t string) bool {
	switch t {
	case ShelterTypeMamak, ShelterTypeUnderground, ShelterTypeStairwell,
		ShelterTypeShelteredArea, ShelterTypeInnerRoom, ShelterTypeMiguonit, ShelterTypeOther:
		return true
	}
	return false
}

// ValidNavigationSystem проверяет допустимость системы навигации.
func ValidNavigationSystem(s string) bool {
	switch s {
	case NavigationSystemStepHear, NavigationSystemRightHear, NavigationSystemOther, NavigationSystemNone:
		return true
	}
	return false
}
