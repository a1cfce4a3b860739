package models

import (
	"time"

	"github.com/google/uuid"
)

// Виды загружаемых файлов.
const (
	MediaKindPhoto    = "photo"
	MediaKindDocument = "document"
)

// MediaFile описывает загруженный файл: фотографию убежища или
// документ для верификации координатора.
type MediaFile struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Kind      string     `db:"kind" json:"kind"`
	FilePath  string     `db:"file_path" json:"file_path"`
	FileType  string     `db:"file_type" json:"file_type"`
	FileSize  int64      `db:"file_size" json:"file_size"`
	IsPublic  bool       `db:"is_public" json:"is_public"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
