package repository

import (
	"strings"

	"daily-tiffin/internal/apperr"

	"gorm.io/gorm"
)

type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

// Filter is one declarative listing condition. Fields and operators are
// whitelisted per repository; nothing from the request reaches SQL as text.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

func applyFilters(db *gorm.DB, allowed map[string]struct{}, filters []Filter) (*gorm.DB, error) {
	for _, f := range filters {
		if _, ok := allowed[f.Field]; !ok {
			return nil, apperr.New(apperr.KindInvalidInput, "cannot filter on field %q", f.Field)
		}
		switch f.Op {
		case OpEq:
			db = db.Where(f.Field+" = ?", f.Value)
		case OpGt:
			db = db.Where(f.Field+" > ?", f.Value)
		case OpGte:
			db = db.Where(f.Field+" >= ?", f.Value)
		case OpLt:
			db = db.Where(f.Field+" < ?", f.Value)
		case OpLte:
			db = db.Where(f.Field+" <= ?", f.Value)
		case OpIn:
			db = db.Where(f.Field+" IN ?", f.Value)
		default:
			return nil, apperr.New(apperr.KindInvalidInput, "unknown filter operator %q", f.Op)
		}
	}
	return db, nil
}

// applySort translates a comma-separated sort expression ("-price,name") into
// ORDER BY clauses against whitelisted columns.
func applySort(db *gorm.DB, allowed map[string]struct{}, sort string) (*gorm.DB, error) {
	if sort == "" {
		return db, nil
	}
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		desc := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		if _, ok := allowed[field]; !ok {
			return nil, apperr.New(apperr.KindInvalidInput, "cannot sort on field %q", field)
		}
		if desc {
			db = db.Order(field + " DESC")
		} else {
			db = db.Order(field)
		}
	}
	return db, nil
}
