package database

import "gorm.io/gorm"

// View is a derived, non-materialized relation. Reads always recompute from
// the base tables; there is no refresh step.
type View interface {
	Sql() string
	TableName() string
}

// CreateView (re)creates the view. Drop-then-create so a changed definition
// replaces the old one on migration.
func CreateView(db *gorm.DB, view View) error {
	if err := DropView(db, view); err != nil {
		return err
	}

	createSQL := "CREATE VIEW " + view.TableName() + " AS " + view.Sql()
	return db.Exec(createSQL).Error
}

// DropView removes the view if present.
func DropView(db *gorm.DB, view View) error {
	return db.Exec("DROP VIEW IF EXISTS " + view.TableName()).Error
}

// SalesSummaryView aggregates receipt lines per (receipt_date, store_id,
// cash_id). Gross sales ignore discounts; net sales subtract them.
type SalesSummaryView struct{}

func (v *SalesSummaryView) Sql() string {
	return `
select
    receipt_date,
    store_id,
    cash_id,

    count(distinct doc_id) as receipts_count,
    count(*) as items_count,
    sum(quantity * unit_price) as total_sales,
    sum(discount_amount) as total_discount,
    sum(quantity * unit_price - discount_amount) as net_sales

from receipts
group by receipt_date, store_id, cash_id
order by receipt_date desc, store_id asc, cash_id asc
`
}

func (v *SalesSummaryView) TableName() string {
	return "sales_summary"
}
