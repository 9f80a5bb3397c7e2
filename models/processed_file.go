package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FileStatus is the processing outcome of a source file. The column is plain
// text; the closed set is guarded by the store, not the schema.
type FileStatus string

const (
	FileStatusPending FileStatus = "pending"
	FileStatusSuccess FileStatus = "success"
	FileStatusFailed  FileStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s FileStatus) Valid() bool {
	switch s {
	case FileStatusPending, FileStatusSuccess, FileStatusFailed:
		return true
	}
	return false
}

// ProcessedFile is the ledger entry for one source file. file_name is
// globally unique: a second insert for the same file must fail, so loaders
// either check first or upsert.
type ProcessedFile struct {
	FileID       uint           `json:"file_id" gorm:"primaryKey;column:file_id"`
	FileName     string         `json:"file_name" gorm:"size:255;not null;uniqueIndex:idx_processed_files_file_name"`
	FilePath     string         `json:"file_path" gorm:"size:1024"`
	RecordsCount int            `json:"records_count"`
	ProcessedAt  time.Time      `json:"processed_at" gorm:"autoCreateTime"`
	Status       FileStatus     `json:"status" gorm:"size:20;not null;default:'pending'"`
	ErrorMessage string         `json:"error_message" gorm:"type:text"`
	IngestID     string         `json:"ingest_id" gorm:"size:36"`
	Details      datatypes.JSON `json:"details"`
}

func (ProcessedFile) TableName() string {
	return "processed_files"
}

func (pf *ProcessedFile) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4; correlates log lines to this ledger row.
	if pf.IngestID == "" {
		pf.IngestID = uuid.NewString()
	}
	if pf.Status == "" {
		pf.Status = FileStatusPending
	}
	return
}
