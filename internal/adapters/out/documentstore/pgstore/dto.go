package pgstore

import "time"

// DocumentDTO is one row of the documents table: a JSON document keyed by
// collection and id.
type DocumentDTO struct {
	Collection string    `gorm:"primaryKey;size:64"`
	ID         string    `gorm:"primaryKey;size:64"`
	Data       string    `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for documents.
func (DocumentDTO) TableName() string {
	return "documents"
}
