package implementation

import (
	"context"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/mapper"
	"ai-tutor-be/internal/model"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReflectionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecordMapper
}

func NewReflectionRepository(db *gorm.DB) contract.ReflectionRepository {
	return &ReflectionRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecordMapper(),
	}
}

func (r *ReflectionRepositoryImpl) Create(ctx context.Context, reflection *entity.Reflection) error {
	if reflection.Id == uuid.Nil {
		reflection.Id = uuid.New()
	}
	m := r.mapper.ReflectionToModel(reflection)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*reflection = *r.mapper.ReflectionToEntity(m)
	return nil
}

func (r *ReflectionRepositoryImpl) FindAllByUserId(ctx context.Context, userId string) ([]*entity.Reflection, error) {
	var models []*model.Reflection
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByUserId{UserId: userId},
		specification.OrderBySeq{},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Reflection, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ReflectionToEntity(m)
	}
	return entities, nil
}

func (r *ReflectionRepositoryImpl) FindRecentByUserId(ctx context.Context, userId string, n int) ([]*entity.Reflection, error) {
	var models []*model.Reflection
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByUserId{UserId: userId},
		specification.OrderBySeq{Desc: true},
		specification.Limit{N: n},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Reflection, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ReflectionToEntity(m)
	}
	return entities, nil
}

func (r *ReflectionRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.Reflection{}).Error
}
