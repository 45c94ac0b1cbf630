package contract

import (
	"context"

	"postcare-ai-be/internal/entity"
	"postcare-ai-be/internal/repository/specification"
)

type InteractionRepository interface {
	Create(ctx context.Context, interaction *entity.Interaction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
