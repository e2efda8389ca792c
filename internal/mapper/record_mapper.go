package mapper

import (
	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/model"
)

// RecordMapper converts between domain entities and DB models for the three
// record kinds.
type RecordMapper struct{}

func NewRecordMapper() *RecordMapper {
	return &RecordMapper{}
}

func (m *RecordMapper) ConversationLogToModel(e *entity.ConversationLog) *model.ConversationLog {
	return &model.ConversationLog{
		Seq:       e.Seq,
		Id:        e.Id,
		UserId:    e.UserId,
		Log:       e.Log,
		CreatedAt: e.CreatedAt,
	}
}

func (m *RecordMapper) ConversationLogToEntity(mo *model.ConversationLog) *entity.ConversationLog {
	return &entity.ConversationLog{
		Seq:       mo.Seq,
		Id:        mo.Id,
		UserId:    mo.UserId,
		Log:       mo.Log,
		CreatedAt: mo.CreatedAt,
	}
}

func (m *RecordMapper) ReflectionToModel(e *entity.Reflection) *model.Reflection {
	return &model.Reflection{
		Seq:       e.Seq,
		Id:        e.Id,
		UserId:    e.UserId,
		Reflect:   e.Reflect,
		CreatedAt: e.CreatedAt,
	}
}

func (m *RecordMapper) ReflectionToEntity(mo *model.Reflection) *entity.Reflection {
	return &entity.Reflection{
		Seq:       mo.Seq,
		Id:        mo.Id,
		UserId:    mo.UserId,
		Reflect:   mo.Reflect,
		CreatedAt: mo.CreatedAt,
	}
}

func (m *RecordMapper) ProfileToModel(e *entity.Profile) *model.Profile {
	return &model.Profile{
		Seq:        e.Seq,
		Id:         e.Id,
		UserId:     e.UserId,
		State:      e.State,
		Occupation: e.Occupation,
		Age:        e.Age,
		Need:       e.Need,
		Completed:  e.Completed,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (m *RecordMapper) ProfileToEntity(mo *model.Profile) *entity.Profile {
	return &entity.Profile{
		Seq:        mo.Seq,
		Id:         mo.Id,
		UserId:     mo.UserId,
		State:      mo.State,
		Occupation: mo.Occupation,
		Age:        mo.Age,
		Need:       mo.Need,
		Completed:  mo.Completed,
		CreatedAt:  mo.CreatedAt,
		UpdatedAt:  mo.UpdatedAt,
	}
}
