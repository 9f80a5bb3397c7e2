package store

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ViolationKind classifies write-time failures.
type ViolationKind string

const (
	// ConstraintViolation: a check constraint failed (quantity <= 0,
	// unit_price < 0, discount_amount < 0).
	ConstraintViolation ViolationKind = "constraint_violation"
	// UniquenessViolation: a second ledger row for an already-present
	// file_name.
	UniquenessViolation ViolationKind = "uniqueness_violation"
	// NotNullViolation: a required field was omitted.
	NotNullViolation ViolationKind = "not_null_violation"
)

// Violation is a write-time contract failure. The offending row is never
// persisted; failures are local to the single statement.
type Violation struct {
	Kind   ViolationKind
	Field  string
	Detail string
	cause  error
}

func (v *Violation) Error() string {
	msg := string(v.Kind)
	if v.Detail != "" {
		msg += ": " + v.Detail
	}
	if v.Field != "" {
		msg += " (" + v.Field + ")"
	}
	return msg
}

func (v *Violation) Unwrap() error {
	return v.cause
}

// IsConstraintViolation reports whether err is a check-constraint failure.
func IsConstraintViolation(err error) bool {
	return isKind(err, ConstraintViolation)
}

// IsUniquenessViolation reports whether err is a duplicate-key failure.
func IsUniquenessViolation(err error) bool {
	return isKind(err, UniquenessViolation)
}

// IsNotNullViolation reports whether err is a missing-required-field failure.
func IsNotNullViolation(err error) bool {
	return isKind(err, NotNullViolation)
}

func isKind(err error, kind ViolationKind) bool {
	var v *Violation
	return errors.As(err, &v) && v.Kind == kind
}

// violationFromValidation maps validator failures onto the taxonomy:
// gt/gte tags on numeric fields are check constraints, required tags are
// not-null violations.
func violationFromValidation(ve validator.ValidationErrors) error {
	for _, fe := range ve {
		switch fe.Field() {
		case "StoreID":
			return &Violation{Kind: ConstraintViolation, Field: "store_id", Detail: "invalid store id", cause: ve}
		case "CashID":
			return &Violation{Kind: ConstraintViolation, Field: "cash_id", Detail: "invalid cash id", cause: ve}
		case "Quantity":
			return &Violation{Kind: ConstraintViolation, Field: "quantity", Detail: "invalid quantity", cause: ve}
		case "UnitPrice":
			return &Violation{Kind: ConstraintViolation, Field: "unit_price", Detail: "invalid price", cause: ve}
		case "DiscountAmount":
			return &Violation{Kind: ConstraintViolation, Field: "discount_amount", Detail: "invalid price", cause: ve}
		default:
			if fe.Tag() == "required" {
				return &Violation{Kind: NotNullViolation, Field: strings.ToLower(fe.Field()), Detail: "required field missing", cause: ve}
			}
		}
	}
	return &Violation{Kind: ConstraintViolation, Detail: "validation failed", cause: ve}
}

// translateDBError maps storage-engine errors onto the taxonomy. It
// understands gorm's translated sentinels, Postgres SQLSTATE codes and
// SQLite constraint messages; anything else passes through untouched.
func translateDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Violation{Kind: UniquenessViolation, Detail: "duplicate key", cause: err}
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return &Violation{Kind: ConstraintViolation, Detail: "check constraint failed", cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &Violation{Kind: UniquenessViolation, Field: pgErr.ColumnName, Detail: pgErr.ConstraintName, cause: err}
		case "23514":
			return &Violation{Kind: ConstraintViolation, Field: pgErr.ColumnName, Detail: pgErr.ConstraintName, cause: err}
		case "23502":
			return &Violation{Kind: NotNullViolation, Field: pgErr.ColumnName, Detail: "required field missing", cause: err}
		}
		return err
	}

	// SQLite reports constraint failures by message only.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &Violation{Kind: UniquenessViolation, Detail: "duplicate key", cause: err}
	case strings.Contains(msg, "CHECK constraint failed"):
		return &Violation{Kind: ConstraintViolation, Detail: "check constraint failed", cause: err}
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return &Violation{Kind: NotNullViolation, Detail: "required field missing", cause: err}
	}

	return err
}

// truncateError keeps stored error messages bounded (ledger column is text,
// but loaders produce arbitrarily long driver messages). The cut point backs
// up to a rune boundary so non-ASCII messages stay valid UTF-8.
func truncateError(err error) string {
	const max = 200
	msg := fmt.Sprintf("%v", err)
	if len(msg) <= max {
		return msg
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}
