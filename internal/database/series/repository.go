// Package series provides database operations for book series, including the
// find-or-create resolver used by book create/update.
//
// Series names are unique case-insensitively (COLLATE NOCASE in the schema).
// Two concurrent resolutions of the same name race on the unique index; the
// loser re-queries and returns the winner's id, so callers never see the
// conflict.
package series

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/booknest/booknest/internal/apperr"
	"github.com/booknest/booknest/internal/entities"
)

// Repository handles all series database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new series repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// memberOrder sorts series members for display: explicit positions first in
// ascending order, unpositioned books last, ties broken by id.
func memberOrder(db *gorm.DB) *gorm.DB {
	return db.Order("series_position ASC NULLS LAST, id ASC")
}

// Resolve returns the id of the series with the given name, creating it if
// necessary. The lookup is case-insensitive. If a concurrent caller creates
// the same name between our lookup and insert, the unique index rejects the
// insert and we return the winner's id instead.
func (r *Repository) Resolve(name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, apperr.Validation("Series name is required")
	}

	if id, found, err := r.lookup(name); err != nil || found {
		return id, err
	}

	s := entities.Series{Name: name}
	err := r.db.Create(&s).Error
	if err == nil {
		return s.ID, nil
	}
	if !isUniqueViolation(err) {
		return 0, apperr.Storage(err)
	}

	// Lost the race. The winner's row exists now.
	id, found, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, apperr.Storage(errors.New("series vanished after unique conflict"))
	}
	return id, nil
}

func (r *Repository) lookup(name string) (int64, bool, error) {
	var s entities.Series
	err := r.db.Where("name = ? COLLATE NOCASE", name).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, apperr.Storage(err)
	}
	return s.ID, true, nil
}

// List returns all series ordered by name, each with its member books and
// derived counts.
func (r *Repository) List() ([]entities.Series, error) {
	var all []entities.Series
	err := r.db.Preload("Books", memberOrder).
		Order("name COLLATE NOCASE ASC").
		Find(&all).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	for i := range all {
		all[i].CountBooks()
	}
	return all, nil
}

// GetByID returns one series with its member books and derived counts.
func (r *Repository) GetByID(id int64) (*entities.Series, error) {
	var s entities.Series
	err := r.db.Preload("Books", memberOrder).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Series")
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	s.CountBooks()
	return &s, nil
}

// Create inserts a new series. A duplicate name (case-insensitive) is a
// conflict surfaced to the caller, unlike Resolve which absorbs it.
func (r *Repository) Create(draft entities.SeriesDraft) (*entities.Series, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return nil, apperr.Validation("Name is required")
	}

	s := entities.Series{
		Name:       name,
		TotalBooks: entities.IntOrNil(draft.TotalBooks),
	}
	if err := r.db.Create(&s).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("Series name already exists")
		}
		return nil, apperr.Storage(err)
	}
	return r.GetByID(s.ID)
}

// Update applies a partial update. An absent field keeps the stored value; an
// empty or null name also keeps the stored name since a series cannot be
// nameless; total_books follows the usual truthy coercion.
func (r *Repository) Update(id int64, p entities.SeriesPatch) (*entities.Series, error) {
	var existing entities.Series
	err := r.db.First(&existing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Series")
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}

	values := map[string]any{}
	if p.Name.Present {
		if name := strings.TrimSpace(p.Name.Value); p.Name.Valid && name != "" {
			values["name"] = name
		}
	}
	if p.TotalBooks.Present {
		if p.TotalBooks.Valid {
			values["total_books"] = entities.IntOrNil(p.TotalBooks.Value)
		} else {
			values["total_books"] = nil
		}
	}

	if len(values) > 0 {
		err = r.db.Model(&entities.Series{}).Where("id = ?", id).Updates(values).Error
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("Series name already exists")
		}
		if err != nil {
			return nil, apperr.Storage(err)
		}
	}
	return r.GetByID(id)
}

// Delete removes a series. Member books survive with their series reference
// cleared by the foreign key's SET NULL action.
func (r *Repository) Delete(id int64) error {
	res := r.db.Delete(&entities.Series{}, id)
	if res.Error != nil {
		return apperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Series")
	}
	return nil
}
