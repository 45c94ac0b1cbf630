package controller

import (
	"postcare-ai-be/internal/dto"
	"postcare-ai-be/internal/pkg/serverutils"
	"postcare-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICorpusController interface {
	RegisterRoutes(r fiber.Router)
	Reingest(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type corpusController struct {
	ingestionService service.IIngestionService
	corpusDir        string
}

func NewCorpusController(ingestionService service.IIngestionService, corpusDir string) ICorpusController {
	return &corpusController{
		ingestionService: ingestionService,
		corpusDir:        corpusDir,
	}
}

func (c *corpusController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/corpus/v1")
	h.Post("reingest", c.Reingest)
	h.Get("status", c.Status)
}

// Reingest queues every corpus document for background re-indexing and
// returns immediately.
func (c *corpusController) Reingest(ctx *fiber.Ctx) error {
	queued, err := c.ingestionService.QueueDirectory(ctx.Context(), c.corpusDir)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Reingestion queued", dto.ReingestResponse{
		QueuedDocuments: queued,
	}))
}

func (c *corpusController) Status(ctx *fiber.Ctx) error {
	count, err := c.ingestionService.CorpusSize(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get corpus status", dto.CorpusStatusResponse{
		ChunkCount: count,
	}))
}
