package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aquaflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// listQuery describes how a shared.Filter maps onto one table
type listQuery struct {
	// searchColumns are matched case-insensitively against Filter.Search
	searchColumns []string
	// filterColumns maps Filter.Filters keys to columns; other keys are ignored
	filterColumns map[string]string
	sortFields    map[string]bool
	defaultSort   string
}

// where applies search and equality filters
func (q listQuery) where(db *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" && len(q.searchColumns) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		clauses := make([]string, len(q.searchColumns))
		args := make([]any, len(q.searchColumns))
		for i, col := range q.searchColumns {
			clauses[i] = fmt.Sprintf("LOWER(%s) LIKE ?", col)
			args[i] = pattern
		}
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}
	for key, value := range filter.Filters {
		if col, ok := q.filterColumns[key]; ok {
			db = db.Where(col+" = ?", value)
		}
	}
	return db
}

// list applies where, ordering and pagination. A non-positive page size
// returns every row.
func (q listQuery) list(db *gorm.DB, filter shared.Filter) *gorm.DB {
	db = q.where(db, filter)
	field := ValidateSortField(filter.OrderBy, q.sortFields, q.defaultSort)
	db = db.Order(fmt.Sprintf("%s %s, id", field, ValidateSortOrder(filter.OrderDir)))
	if filter.PageSize > 0 {
		db = db.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return db
}

// translateError maps GORM errors onto domain errors
func translateError(err error, entity string, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists.WithDetail("entity", entity)
	}
	return err
}

// updateVersioned writes columns to the row only if it still carries
// version, bumping the stored version. Zero rows affected means another
// transaction got there first.
func updateVersioned(db *gorm.DB, model any, entity string, id any, version int, columns map[string]any) error {
	columns["version"] = gorm.Expr("version + 1")
	result := db.Model(model).
		Where("id = ? AND version = ?", id, version).
		Updates(columns)
	if result.Error != nil {
		return translateError(result.Error, entity, id)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.
			WithDetail("entity", entity).
			WithDetail("id", fmt.Sprint(id))
	}
	return nil
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
