package contract

import (
	"context"

	"postcare-ai-be/internal/entity"
	"postcare-ai-be/internal/repository/specification"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByNameExact(ctx context.Context, name string) (*entity.Patient, error)
	// SearchByName returns all patients whose name contains the given fragment,
	// case-insensitive, ordered by name.
	SearchByName(ctx context.Context, fragment string) ([]*entity.Patient, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Patient, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
