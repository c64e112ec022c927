package repository

import (
	"errors"

	"rfqengine/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// DefaultCatalogRepository reads the catalog tables (clients, suppliers,
// materials and settings). The catalog is maintained elsewhere, this service
// only reads it.
type DefaultCatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *DefaultCatalogRepository {
	return &DefaultCatalogRepository{db: db}
}

func (r *DefaultCatalogRepository) FindClient(id int64) (*entity.Client, error) {
	var client entity.Client
	err := r.db.First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *DefaultCatalogRepository) FindMaterial(id int64) (*entity.Material, error) {
	var material entity.Material
	err := r.db.First(&material, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &material, nil
}

// FindMaterialsInIDs loads all given materials in one query.
func (r *DefaultCatalogRepository) FindMaterialsInIDs(ids []int64) ([]*entity.Material, error) {
	if len(ids) == 0 {
		return []*entity.Material{}, nil
	}

	var materials []*entity.Material
	err := r.db.Where("id IN ?", ids).Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *DefaultCatalogRepository) FindSuppliersInIDs(ids []int64) ([]*entity.Supplier, error) {
	if len(ids) == 0 {
		return []*entity.Supplier{}, nil
	}

	var suppliers []*entity.Supplier
	err := r.db.Where("id IN ?", ids).Find(&suppliers).Error
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}

// FindOffers returns the standing supplier offers for a material with their suppliers loaded.
func (r *DefaultCatalogRepository) FindOffers(materialID int64) ([]*entity.MaterialSupplier, error) {
	var offers []*entity.MaterialSupplier
	err := r.db.
		Preload("Supplier").
		Where("material_id = ?", materialID).
		Order("position ASC, id ASC").
		Find(&offers).Error

	if err != nil {
		return nil, err
	}
	return offers, nil
}

// FindSettings returns the stored settings, or the defaults when none were saved yet.
func (r *DefaultCatalogRepository) FindSettings() (*entity.Settings, error) {
	var settings entity.Settings
	err := r.db.Order("id ASC").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.DefaultSettings(), nil
	}

	if err != nil {
		return nil, err
	}
	return &settings, nil
}
