package repository

import (
	"rfqengine/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultRequestLineRepository struct {
	db *gorm.DB
}

func NewRequestLineRepository(db *gorm.DB) *DefaultRequestLineRepository {
	return &DefaultRequestLineRepository{db: db}
}

func (r *DefaultRequestLineRepository) FindByRequest(requestID int64) ([]*entity.RequestLine, error) {
	var lines []*entity.RequestLine
	err := r.db.
		Where("request_id = ?", requestID).
		Order("id ASC").
		Find(&lines).Error

	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *DefaultRequestLineRepository) Create(line *entity.RequestLine) error {
	return r.db.Create(line).Error
}

func (r *DefaultRequestLineRepository) Save(line *entity.RequestLine) error {
	return r.db.Save(line).Error
}

func (r *DefaultRequestLineRepository) DeleteByRequest(requestID int64) error {
	return r.db.
		Where("request_id = ?", requestID).
		Delete(&entity.RequestLine{}).Error
}
