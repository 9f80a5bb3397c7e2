package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SummaryDate scans the view's date column. Postgres returns it typed;
// SQLite returns text, because aggregate views drop the declared column
// type.
type SummaryDate time.Time

func (d *SummaryDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = SummaryDate(time.Time{})
		return nil
	case time.Time:
		*d = SummaryDate(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	}
	return fmt.Errorf("cannot scan %T into SummaryDate", value)
}

func (d *SummaryDate) parse(s string) error {
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = SummaryDate(t)
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

func (d SummaryDate) Time() time.Time {
	return time.Time(d)
}

func (d SummaryDate) String() string {
	return time.Time(d).Format("2006-01-02")
}

// SalesSummaryRow is one group of the sales_summary view.
type SalesSummaryRow struct {
	ReceiptDate   SummaryDate `json:"receipt_date"`
	StoreID       int         `json:"store_id"`
	CashID        int         `json:"cash_id"`
	ReceiptsCount int64       `json:"receipts_count"`
	ItemsCount    int64       `json:"items_count"`
	TotalSales    float64     `json:"total_sales"`
	TotalDiscount float64     `json:"total_discount"`
	NetSales      float64     `json:"net_sales"`
}

// SalesSummary reads the whole view: one row per (receipt_date, store_id,
// cash_id) present in receipts, recomputed on every call. Ordering is
// re-asserted here since not every engine honors a view's ORDER BY.
func (s *Store) SalesSummary() ([]SalesSummaryRow, error) {
	var rows []SalesSummaryRow
	err := s.db.Table("sales_summary").
		Order("receipt_date desc, store_id asc, cash_id asc").
		Find(&rows).Error
	if err != nil {
		return nil, translateDBError(err)
	}
	return rows, nil
}

// SalesSummaryFor reads a single group, or gorm.ErrRecordNotFound when no
// receipt lines exist for that key.
func (s *Store) SalesSummaryFor(date time.Time, storeID, cashID int) (*SalesSummaryRow, error) {
	var row SalesSummaryRow
	err := s.db.Table("sales_summary").
		Where("receipt_date = ? AND store_id = ? AND cash_id = ?", date, storeID, cashID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, translateDBError(err)
	}
	return &row, nil
}
