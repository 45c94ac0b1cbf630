package mapper

import (
	"postcare-ai-be/internal/entity"
	"postcare-ai-be/internal/model"
)

type InteractionMapper struct{}

func NewInteractionMapper() *InteractionMapper {
	return &InteractionMapper{}
}

func (m *InteractionMapper) ToModel(e *entity.Interaction) *model.Interaction {
	if e == nil {
		return nil
	}

	return &model.Interaction{
		Id:          e.Id,
		SessionId:   e.SessionId,
		PatientName: e.PatientName,
		Agent:       e.Agent,
		MessageType: e.MessageType,
		Message:     e.Message,
		Metadata:    e.Metadata,
		Timestamp:   e.Timestamp,
	}
}

func (m *InteractionMapper) ToEntity(e *model.Interaction) *entity.Interaction {
	if e == nil {
		return nil
	}

	return &entity.Interaction{
		Id:          e.Id,
		SessionId:   e.SessionId,
		PatientName: e.PatientName,
		Agent:       e.Agent,
		MessageType: e.MessageType,
		Message:     e.Message,
		Metadata:    e.Metadata,
		Timestamp:   e.Timestamp,
	}
}

func (m *InteractionMapper) ToEntities(rows []*model.Interaction) []*entity.Interaction {
	entities := make([]*entity.Interaction, len(rows))
	for i, e := range rows {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
