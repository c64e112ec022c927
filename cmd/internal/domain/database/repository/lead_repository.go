package repository

import (
	"errors"

	"rfqengine/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultLeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *DefaultLeadRepository {
	return &DefaultLeadRepository{db: db}
}

// FindAll lists leads, newest first. An empty stage matches every stage.
func (r *DefaultLeadRepository) FindAll(stage entity.LeadStage) ([]*entity.Lead, error) {
	query := r.db.Order("id DESC")
	if stage != "" {
		query = query.Where("stage = ?", stage)
	}

	var leads []*entity.Lead
	if err := query.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *DefaultLeadRepository) FindByID(id int64) (*entity.Lead, error) {
	var lead entity.Lead
	err := r.db.First(&lead, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *DefaultLeadRepository) FindByRequest(requestID int64) ([]*entity.Lead, error) {
	var leads []*entity.Lead
	err := r.db.
		Where("request_id = ?", requestID).
		Order("id ASC").
		Find(&leads).Error

	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *DefaultLeadRepository) Save(lead *entity.Lead) error {
	return r.db.Save(lead).Error
}

func (r *DefaultLeadRepository) Delete(lead *entity.Lead) error {
	return r.db.Delete(lead).Error
}

func (r *DefaultLeadRepository) DeleteByRequest(requestID int64) error {
	return r.db.
		Where("request_id = ?", requestID).
		Delete(&entity.Lead{}).Error
}
