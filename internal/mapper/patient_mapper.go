package mapper

import (
	"postcare-ai-be/internal/entity"
	"postcare-ai-be/internal/model"
)

type PatientMapper struct{}

func NewPatientMapper() *PatientMapper {
	return &PatientMapper{}
}

func (m *PatientMapper) ToEntity(e *model.Patient) *entity.Patient {
	if e == nil {
		return nil
	}

	return &entity.Patient{
		Id:                    e.Id,
		PatientName:           e.PatientName,
		DischargeDate:         e.DischargeDate,
		PrimaryDiagnosis:      e.PrimaryDiagnosis,
		Medications:           e.Medications,
		DietaryRestrictions:   e.DietaryRestrictions,
		FollowUp:              e.FollowUp,
		WarningSigns:          e.WarningSigns,
		DischargeInstructions: e.DischargeInstructions,
		CreatedAt:             e.CreatedAt,
	}
}

func (m *PatientMapper) ToModel(e *entity.Patient) *model.Patient {
	if e == nil {
		return nil
	}

	return &model.Patient{
		Id:                    e.Id,
		PatientName:           e.PatientName,
		DischargeDate:         e.DischargeDate,
		PrimaryDiagnosis:      e.PrimaryDiagnosis,
		Medications:           e.Medications,
		DietaryRestrictions:   e.DietaryRestrictions,
		FollowUp:              e.FollowUp,
		WarningSigns:          e.WarningSigns,
		DischargeInstructions: e.DischargeInstructions,
		CreatedAt:             e.CreatedAt,
	}
}

func (m *PatientMapper) ToEntities(patients []*model.Patient) []*entity.Patient {
	entities := make([]*entity.Patient, len(patients))
	for i, e := range patients {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
