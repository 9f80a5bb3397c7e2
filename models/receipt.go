package models

import (
	"time"

	"receipts-backend/utils"

	"gorm.io/gorm"
)

// Receipt is one purchased line item within one receipt document.
// A document (doc_id) spans multiple rows, one per item.
type Receipt struct {
	ReceiptID      uint      `json:"receipt_id" gorm:"primaryKey;column:receipt_id"`
	DocID          string    `json:"doc_id" gorm:"column:doc_id;size:64;not null;index:idx_receipts_doc_id"`
	StoreID        int       `json:"store_id" gorm:"not null;index:idx_receipts_store_id;index:idx_receipts_store_cash,priority:1"`
	CashID         int       `json:"cash_id" gorm:"not null;index:idx_receipts_store_cash,priority:2"`
	Item           string    `json:"item" gorm:"size:255;not null"`
	Category       string    `json:"category" gorm:"size:100;not null;index:idx_receipts_category"`
	Quantity       int       `json:"quantity" gorm:"not null;check:chk_receipts_quantity_pos,quantity > 0"`
	UnitPrice      float64   `json:"unit_price" gorm:"type:numeric(10,2);not null;check:chk_receipts_unit_price_nonneg,unit_price >= 0"`
	DiscountAmount float64   `json:"discount_amount" gorm:"type:numeric(10,2);not null;default:0;check:chk_receipts_discount_nonneg,discount_amount >= 0"`
	TotalPrice     float64   `json:"total_price" gorm:"type:numeric(12,2);not null"`
	ReceiptDate    time.Time `json:"receipt_date" gorm:"type:date;not null;index:idx_receipts_receipt_date"`
	FileName       string    `json:"file_name" gorm:"size:255;index:idx_receipts_file_name"`
	LoadedAt       time.Time `json:"loaded_at" gorm:"autoCreateTime"`
}

func (Receipt) TableName() string {
	return "receipts"
}

// BeforeSave keeps total_price a pure function of its inputs. Whatever the
// caller put in TotalPrice is discarded on every insert and save.
func (r *Receipt) BeforeSave(tx *gorm.DB) error {
	r.TotalPrice = utils.LineTotal(r.Quantity, r.UnitPrice, r.DiscountAmount)
	return nil
}
