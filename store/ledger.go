package store

import (
	"fmt"
	"time"

	"receipts-backend/models"
	"receipts-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordPending creates the ledger entry for a file at the start of
// ingestion. A second call for the same file_name fails with a
// UniquenessViolation; callers re-processing a file should check
// IsFileProcessed or rely on SaveFileData's upsert instead.
func (s *Store) RecordPending(fileName, filePath string) (*models.ProcessedFile, error) {
	pf := models.ProcessedFile{
		FileName: fileName,
		FilePath: filePath,
		Status:   models.FileStatusPending,
	}
	if err := s.db.Create(&pf).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &pf, nil
}

// IsFileProcessed reports whether the file already has a successful ledger
// entry. Pending and failed entries do not count: those files are expected
// to be retried.
func (s *Store) IsFileProcessed(fileName string) (bool, error) {
	var count int64
	err := s.db.Model(&models.ProcessedFile{}).
		Where("file_name = ? AND status = ?", fileName, models.FileStatusSuccess).
		Count(&count).Error
	if err != nil {
		return false, translateDBError(err)
	}
	return count > 0, nil
}

// LedgerPatch is a partial update of a ledger row; nil fields stay untouched.
type LedgerPatch struct {
	Status       *models.FileStatus `json:"status"`
	RecordsCount *int               `json:"records_count"`
	ErrorMessage *string            `json:"error_message"`
	FilePath     *string            `json:"file_path"`
}

// UpdateLedger applies a patch to the file's ledger entry and bumps
// processed_at. The status column is free text in the schema; the closed set
// {pending, success, failed} is enforced here.
func (s *Store) UpdateLedger(fileName string, patch LedgerPatch) error {
	if patch.Status != nil && !patch.Status.Valid() {
		return &Violation{Kind: ConstraintViolation, Field: "status", Detail: fmt.Sprintf("unknown status %q", *patch.Status)}
	}

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return nil
	}
	updates["processed_at"] = time.Now().UTC()

	res := s.db.Model(&models.ProcessedFile{}).
		Where("file_name = ?", fileName).
		Updates(updates)
	if res.Error != nil {
		return translateDBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// upsertLedger inserts the ledger row or, when the file was seen before,
// overwrites its outcome fields in place.
func upsertLedger(db *gorm.DB, pf *models.ProcessedFile) error {
	assignments := map[string]interface{}{
		"status":        pf.Status,
		"records_count": pf.RecordsCount,
		"error_message": pf.ErrorMessage,
		"processed_at":  time.Now().UTC(),
	}
	if pf.Details != nil {
		assignments["details"] = pf.Details
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "file_name"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(pf).Error
	return translateDBError(err)
}
