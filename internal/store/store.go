// Package store provides the generic persistence primitives shared by every
// catalog entity. Each entity kind contributes only its table name (via
// gorm's TableName convention) and its primary-key facts (via the Record
// interface); the repository supplies find-by-id, filtered find-all, save,
// and delete on top of a gorm connection.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// Record is implemented by every persisted entity kind. It exposes the two
// facts the repository needs beyond what gorm derives from the struct: the
// primary-key column and whether the value currently carries a key.
type Record interface {
	// PrimaryKeyColumn returns the column name of the primary key.
	PrimaryKeyColumn() string
	// HasKey reports whether the primary key is set to a non-zero value.
	HasKey() bool
}

// Sort describes one ORDER BY term. Direction is "ASC" or "DESC";
// an empty direction means ascending.
type Sort struct {
	Field     string
	Direction string
}

// ErrMissingKey is returned by Delete when the record has no primary key set.
var ErrMissingKey = errors.New("store: record has no primary key")

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Repository provides CRUD primitives for one entity kind T.
// T must implement Record with value receivers so that both T and *T
// satisfy the interface.
type Repository[T Record] struct {
	db *gorm.DB
}

// NewRepository creates a repository bound to the given connection.
func NewRepository[T Record](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// WithTx returns a repository that runs against the given transaction handle
// instead of the connection the repository was created with.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx}
}

// FindByID loads the record with the given primary-key value.
// Absence is not an error: a missing row returns (nil, nil).
func (r *Repository[T]) FindByID(ctx context.Context, id any) (*T, error) {
	var rec T
	column := rec.PrimaryKeyColumn()
	err := r.db.WithContext(ctx).Where(fmt.Sprintf("%s = ?", column), id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindAll returns all records matching the equality conditions, optionally
// ordered and capped. Conditions combine with AND; there is no pagination
// cursor and no range or pattern matching.
func (r *Repository[T]) FindAll(ctx context.Context, conditions map[string]any, orderBy []Sort, limit int) ([]T, error) {
	var zero T
	tx := r.db.WithContext(ctx).Model(&zero)

	for field := range conditions {
		if !identifierPattern.MatchString(field) {
			return nil, fmt.Errorf("store: invalid condition field %q", field)
		}
	}
	if len(conditions) > 0 {
		tx = tx.Where(conditions)
	}

	for _, sort := range orderBy {
		clause, err := orderClause(sort)
		if err != nil {
			return nil, err
		}
		tx = tx.Order(clause)
	}

	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var results []T
	if err := tx.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Save persists the record. A record carrying its primary key is updated in
// place (all columns except the key and the created_at audit column); a
// record without a key is inserted, and an auto-increment key is read back
// onto the record by gorm.
func (r *Repository[T]) Save(ctx context.Context, rec *T) error {
	if (*rec).HasKey() {
		return r.db.WithContext(ctx).
			Model(rec).
			Select("*").
			Omit((*rec).PrimaryKeyColumn(), "created_at").
			Updates(rec).Error
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

// Insert persists the record unconditionally as a new row. This is the path
// for entities whose keys are assigned externally (products), where Save
// would misread the pre-set key as an existing row.
func (r *Repository[T]) Insert(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// Delete removes the record by primary key. Deleting a record that has no
// key set fails with ErrMissingKey rather than deleting nothing silently.
func (r *Repository[T]) Delete(ctx context.Context, rec *T) error {
	if !(*rec).HasKey() {
		return ErrMissingKey
	}
	return r.db.WithContext(ctx).Delete(rec).Error
}

func orderClause(sort Sort) (string, error) {
	if !identifierPattern.MatchString(sort.Field) {
		return "", fmt.Errorf("store: invalid sort field %q", sort.Field)
	}
	direction := strings.ToUpper(strings.TrimSpace(sort.Direction))
	switch direction {
	case "":
		direction = "ASC"
	case "ASC", "DESC":
	default:
		return "", fmt.Errorf("store: invalid sort direction %q", sort.Direction)
	}
	return sort.Field + " " + direction, nil
}
