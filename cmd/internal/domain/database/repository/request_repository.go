package repository

import (
	"errors"

	"rfqengine/cmd/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestFilter narrows request listings. Zero values match everything.
type RequestFilter struct {
	Status   string
	ClientID int64
}

type DefaultRequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *DefaultRequestRepository {
	return &DefaultRequestRepository{db: db}
}

func (r *DefaultRequestRepository) FindAll(filter RequestFilter) ([]*entity.Request, error) {
	query := r.db.Order("id DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ClientID > 0 {
		query = query.Where("client_id = ?", filter.ClientID)
	}

	var requests []*entity.Request
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByID loads a request together with its lines.
func (r *DefaultRequestRepository) FindByID(id int64) (*entity.Request, error) {
	return r.find(r.db, id)
}

// FindByIDForUpdate is FindByID taking a row lock on the request, so it must
// run inside a transaction. SQLite has no row locks, its write transaction
// already excludes other writers.
func (r *DefaultRequestRepository) FindByIDForUpdate(id int64) (*entity.Request, error) {
	if r.db.Dialector.Name() == "sqlite" {
		return r.find(r.db, id)
	}
	return r.find(r.db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *DefaultRequestRepository) find(db *gorm.DB, id int64) (*entity.Request, error) {
	var req entity.Request
	err := db.
		Preload("Lines", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id ASC")
		}).
		First(&req, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &req, nil
}

// LatestNumber returns the number of the most recently created request, or "".
func (r *DefaultRequestRepository) LatestNumber() (string, error) {
	var numbers []string
	err := r.db.Model(&entity.Request{}).
		Order("id DESC").
		Limit(1).
		Pluck("number", &numbers).Error

	if err != nil || len(numbers) == 0 {
		return "", err
	}
	return numbers[0], nil
}

// Create inserts the request and its lines.
func (r *DefaultRequestRepository) Create(req *entity.Request) error {
	return r.db.Create(req).Error
}

// Save updates the request row only, lines are persisted separately.
func (r *DefaultRequestRepository) Save(req *entity.Request) error {
	return r.db.Omit(clause.Associations).Save(req).Error
}

func (r *DefaultRequestRepository) Delete(id int64) error {
	return r.db.Delete(&entity.Request{}, id).Error
}
