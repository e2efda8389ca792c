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

type ConversationLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecordMapper
}

func NewConversationLogRepository(db *gorm.DB) contract.ConversationLogRepository {
	return &ConversationLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecordMapper(),
	}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationLogRepositoryImpl) Create(ctx context.Context, log *entity.ConversationLog) error {
	if log.Id == uuid.Nil {
		log.Id = uuid.New()
	}
	m := r.mapper.ConversationLogToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ConversationLogToEntity(m)
	return nil
}

func (r *ConversationLogRepositoryImpl) FindAllByUserId(ctx context.Context, userId string) ([]*entity.ConversationLog, error) {
	var models []*model.ConversationLog
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByUserId{UserId: userId},
		specification.OrderBySeq{},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ConversationLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ConversationLogToEntity(m)
	}
	return entities, nil
}

// FindRecentByUserId returns the last n entries in chronological order, so
// callers can feed them to a prompt oldest-first.
func (r *ConversationLogRepositoryImpl) FindRecentByUserId(ctx context.Context, userId string, n int) ([]*entity.ConversationLog, error) {
	var models []*model.ConversationLog
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByUserId{UserId: userId},
		specification.OrderBySeq{Desc: true},
		specification.Limit{N: n},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	// Reverse back to chronological order.
	entities := make([]*entity.ConversationLog, len(models))
	for i, m := range models {
		entities[len(models)-1-i] = r.mapper.ConversationLogToEntity(m)
	}
	return entities, nil
}

func (r *ConversationLogRepositoryImpl) CountByUserId(ctx context.Context, userId string) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ConversationLog{}),
		specification.ByUserId{UserId: userId},
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ConversationLogRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.ConversationLog{}).Error
}
