package implementation

import (
	"context"
	"errors"

	"postcare-ai-be/internal/entity"
	"postcare-ai-be/internal/mapper"
	"postcare-ai-be/internal/model"
	"postcare-ai-be/internal/repository/contract"
	"postcare-ai-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PatientRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PatientMapper
}

func NewPatientRepository(db *gorm.DB) contract.PatientRepository {
	return &PatientRepositoryImpl{
		db:     db,
		mapper: mapper.NewPatientMapper(),
	}
}

func (r *PatientRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PatientRepositoryImpl) Create(ctx context.Context, patient *entity.Patient) error {
	m := r.mapper.ToModel(patient)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*patient = *r.mapper.ToEntity(m)
	return nil
}

func (r *PatientRepositoryImpl) FindByNameExact(ctx context.Context, name string) (*entity.Patient, error) {
	var m model.Patient
	err := r.db.WithContext(ctx).
		Where("LOWER(patient_name) = LOWER(?)", name).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PatientRepositoryImpl) SearchByName(ctx context.Context, fragment string) ([]*entity.Patient, error) {
	var models []*model.Patient
	err := r.db.WithContext(ctx).
		Where("patient_name ILIKE ?", "%"+fragment+"%").
		Order("patient_name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PatientRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Patient, error) {
	var models []*model.Patient
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PatientRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Patient{}).Count(&count).Error
	return count, err
}
