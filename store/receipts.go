package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"receipts-backend/models"
	"receipts-backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LineItem is the caller-facing shape of one parsed receipt line. There is
// deliberately no total field: total_price is derived at write time and can
// never be supplied.
type LineItem struct {
	DocID          string    `json:"doc_id" validate:"required"`
	StoreID        int       `json:"store_id" validate:"gt=0"`
	CashID         int       `json:"cash_id" validate:"gt=0"`
	Item           string    `json:"item" validate:"required"`
	Category       string    `json:"category" validate:"required"`
	Quantity       int       `json:"quantity" validate:"gt=0"`
	UnitPrice      float64   `json:"unit_price" validate:"gte=0"`
	DiscountAmount float64   `json:"discount_amount" validate:"gte=0"`
	ReceiptDate    time.Time `json:"receipt_date" validate:"required"`
}

// InsertLine validates and inserts a single line item. Money fields are
// rounded to 2 decimal places and strings trimmed before validation.
func (s *Store) InsertLine(line LineItem) (*models.Receipt, error) {
	return insertLine(s.db, "", line)
}

func insertLine(db *gorm.DB, fileName string, line LineItem) (*models.Receipt, error) {
	utils.NormalizeDTO(&line)

	if err := validate.Struct(&line); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return nil, violationFromValidation(ve)
		}
		return nil, err
	}

	rec := models.Receipt{
		DocID:          line.DocID,
		StoreID:        line.StoreID,
		CashID:         line.CashID,
		Item:           line.Item,
		Category:       line.Category,
		Quantity:       line.Quantity,
		UnitPrice:      line.UnitPrice,
		DiscountAmount: line.DiscountAmount,
		ReceiptDate:    line.ReceiptDate,
		FileName:       fileName,
	}
	if err := db.Create(&rec).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &rec, nil
}

// loadReport is stored on the ledger row as JSON detail.
type loadReport struct {
	Records    int   `json:"records"`
	DurationMS int64 `json:"duration_ms"`
}

// SaveFileData loads one source file's line items in a single transaction:
// previous rows for the same file_name are replaced, every line is inserted,
// and the ledger row is upserted to success. A failure on any line rolls the
// whole file back and records a failed ledger entry instead.
func (s *Store) SaveFileData(fileName string, lines []LineItem) error {
	started := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Re-ingestion of a corrected file replaces its previous rows.
		if err := tx.Where("file_name = ?", fileName).Delete(&models.Receipt{}).Error; err != nil {
			return translateDBError(err)
		}

		for i := range lines {
			if _, err := insertLine(tx, fileName, lines[i]); err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
		}

		report, _ := json.Marshal(loadReport{
			Records:    len(lines),
			DurationMS: time.Since(started).Milliseconds(),
		})
		return upsertLedger(tx, &models.ProcessedFile{
			FileName:     fileName,
			RecordsCount: len(lines),
			Status:       models.FileStatusSuccess,
			Details:      datatypes.JSON(report),
		})
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{"file": fileName, "error": err}).Error("file load failed, rolled back")
		if markErr := s.markFailed(fileName, err); markErr != nil {
			logrus.WithFields(logrus.Fields{"file": fileName, "error": markErr}).Error("could not record failure in ledger")
		}
		return err
	}

	logrus.WithFields(logrus.Fields{"file": fileName, "records": len(lines)}).Info("file loaded")
	return nil
}

func (s *Store) markFailed(fileName string, cause error) error {
	return upsertLedger(s.db, &models.ProcessedFile{
		FileName:     fileName,
		Status:       models.FileStatusFailed,
		ErrorMessage: truncateError(cause),
	})
}
