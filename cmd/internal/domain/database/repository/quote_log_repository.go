package repository

import (
	"rfqengine/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// DefaultQuoteLogRepository never updates rows, entries are appended or
// removed together with their request.
type DefaultQuoteLogRepository struct {
	db *gorm.DB
}

func NewQuoteLogRepository(db *gorm.DB) *DefaultQuoteLogRepository {
	return &DefaultQuoteLogRepository{db: db}
}

func (r *DefaultQuoteLogRepository) Append(entries []*entity.QuoteLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

func (r *DefaultQuoteLogRepository) FindByRequest(requestID int64) ([]*entity.QuoteLogEntry, error) {
	var entries []*entity.QuoteLogEntry
	err := r.db.
		Where("request_id = ?", requestID).
		Order("id ASC").
		Find(&entries).Error

	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *DefaultQuoteLogRepository) DeleteByRequest(requestID int64) error {
	return r.db.
		Where("request_id = ?", requestID).
		Delete(&entity.QuoteLogEntry{}).Error
}
