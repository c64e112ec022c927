package repository

import (
	"rfqengine/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultSequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *DefaultSequenceRepository {
	return &DefaultSequenceRepository{db: db}
}

// Next increments the named counter and returns its new value. It must run
// inside the transaction that consumes the value: the increment holds the row
// lock until commit, so concurrent callers queue behind it.
//
// When the counter does not exist yet, seed is called for the value to start
// after. Two callers seeding at once collide on the primary key and one of
// them fails with gorm.ErrDuplicatedKey.
func (r *DefaultSequenceRepository) Next(name string, seed func() (int64, error)) (int64, error) {
	res := r.db.Model(&entity.Sequence{}).
		Where("name = ?", name).
		UpdateColumn("value", gorm.Expr("value + ?", 1))

	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		start, err := seed()
		if err != nil {
			return 0, err
		}

		seq := &entity.Sequence{Name: name, Value: start + 1}
		if err = r.db.Create(seq).Error; err != nil {
			return 0, err
		}
		return seq.Value, nil
	}

	var seq entity.Sequence
	if err := r.db.Where("name = ?", name).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}
