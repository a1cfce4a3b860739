package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы записей модерации.
const (
	ModerationStatusPending  = "pending"
	ModerationStatusApproved = "approved"
	ModerationStatusRejected = "rejected"
)

// Типы жалоб на убежище.
const (
	ReportTypeIncorrectInfo = "incorrect_info"
	ReportTypeAccessIssue   = "access_issue"
	ReportTypeClosed        = "closed"
	ReportTypeOther         = "other"
)

// CoordinatorVerification — заявка пользователя на статус координатора.
// Создаётся пользователем, переводится из pending только администратором.
type CoordinatorVerification struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	UserID              uuid.UUID  `db:"user_id" json:"user_id"`
	Email               string     `db:"email" json:"email"`
	FullName            string     `db:"full_name" json:"full_name"`
	VerificationFileURL string     `db:"verification_file_url" json:"verification_file_url"`
	Status              string     `db:"status" json:"status"`
	RejectionReason     *string    `db:"rejection_reason" json:"rejection_reason,omitempty"`
	ReviewedBy          *uuid.UUID `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt          *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
}

// ReviewModeration — ожидающий модерации отзыв с оценкой убежища.
type ReviewModeration struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	ShelterID       uuid.UUID  `db:"shelter_id" json:"shelter_id"`
	Rating          int        `db:"rating" json:"rating"`
	Comment         *string    `db:"comment" json:"comment,omitempty"`
	ReporterEmail   *string    `db:"reporter_email" json:"reporter_email,omitempty"`
	Status          string     `db:"status" json:"status"`
	RejectionReason *string    `db:"rejection_reason" json:"rejection_reason,omitempty"`
	ReviewedBy      *uuid.UUID `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// ReportModeration — ожидающее модерации сообщение о проблеме с убежищем.
type ReportModeration struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	ShelterID       uuid.UUID  `db:"shelter_id" json:"shelter_id"`
	ReportType      string     `db:"report_type" json:"report_type"`
	Details         string     `db:"details" json:"details"`
	ContactInfo     *string    `db:"contact_info" json:"contact_info,omitempty"`
	Status          string     `db:"status" json:"status"`
	RejectionReason *string    `db:"rejection_reason" json:"rejection_reason,omitempty"`
	ReviewedBy      *uuid.UUID `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// ValidReportType проверяет допустимость типа жалобы.
func ValidReportType(t string) bool {
	switch t {
	case ReportTypeIncorrectInfo, ReportTypeAccessIssue, ReportTypeClosed, ReportTypeOther:
		return true
	}
	return false
}
