package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/voxscribe/voxscribe-server/pkg/config"
	"github.com/voxscribe/voxscribe-server/pkg/models"
)

type TranscriptionController struct {
	app                *config.AppConfig
	transcriptionModel *models.TranscriptionModel
	logger             *logrus.Entry
}

func NewTranscriptionController(app *config.AppConfig, m *models.TranscriptionModel, logger *logrus.Logger) *TranscriptionController {
	return &TranscriptionController{
		app:                app,
		transcriptionModel: m,
		logger:             logger.WithField("controller", "transcription"),
	}
}

// HandleCreateTranscription accepts {audioUrl, locale}, runs the pipeline
// and echoes the persisted record. Pipeline failures never surface as
// panics or stack traces, only as the uniform failure envelope.
func (c *TranscriptionController) HandleCreateTranscription(ctx *fiber.Ctx) error {
	req := new(models.TranscriptionReq)
	if err := ctx.BodyParser(req); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"info":    config.UnprocessableEntity,
			"error":   err.Error(),
		})
	}

	if req.AudioUrl == "" {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"info":    config.UnprocessableEntity,
			"error":   config.AudioUrlRequired,
		})
	}

	res := c.transcriptionModel.CreateTranscription(ctx.Context(), req)
	if !res.Result.Success {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"info":    config.InternalServerError,
			"error":   res.Result.Error,
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"info":    "Created",
		"message": config.TranscriptionCreatedMsg,
		"data":    res.Record,
	})
}

// sanitizePagination clamps the page/limit query values to their defaults;
// zero or negative input would otherwise wrap through the unsigned
// conversion into a huge offset.
func sanitizePagination(page, limit int) (uint64, uint64) {
	if page < 1 {
		page = config.DefaultFetchPage
	}
	if limit < 1 {
		limit = config.DefaultFetchLimit
	}
	return uint64(page), uint64(limit)
}

// HandleFetchTranscriptions returns records from the last 30 days, newest
// first, with offset pagination.
func (c *TranscriptionController) HandleFetchTranscriptions(ctx *fiber.Ctx) error {
	page, limit := sanitizePagination(
		ctx.QueryInt("page", config.DefaultFetchPage),
		ctx.QueryInt("limit", config.DefaultFetchLimit),
	)

	transcriptions, total, err := c.transcriptionModel.FetchTranscriptions(page, limit)
	if err != nil {
		c.logger.WithError(err).Errorln("failed to fetch transcriptions")
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"info":    config.InternalServerError,
			"error":   config.TranscriptionFetchFailed,
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"info":    "OK",
		"data":    transcriptions,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"totalCount": total,
		},
	})
}

// HandleGetTranscription returns one record by its id, cache first.
func (c *TranscriptionController) HandleGetTranscription(ctx *fiber.Ctx) error {
	transcriptionId := ctx.Params("transcriptionId")

	info, err := c.transcriptionModel.GetTranscription(ctx.Context(), transcriptionId)
	if err != nil {
		c.logger.WithError(err).Errorln("failed to look up transcription")
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"info":    config.InternalServerError,
			"error":   err.Error(),
		})
	}
	if info == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"info":    "Not Found",
			"error":   config.RequestedRecordNotExist,
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"info":    "OK",
		"data":    info,
	})
}

// HandleDeleteTranscription removes a stored record.
func (c *TranscriptionController) HandleDeleteTranscription(ctx *fiber.Ctx) error {
	transcriptionId := ctx.Params("transcriptionId")

	deleted, err := c.transcriptionModel.DeleteTranscription(ctx.Context(), transcriptionId)
	if err != nil {
		c.logger.WithError(err).Errorln("failed to delete transcription")
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"info":    config.InternalServerError,
			"error":   err.Error(),
		})
	}
	if !deleted {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"info":    "Not Found",
			"error":   config.RequestedRecordNotExist,
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"info":    "OK",
	})
}
