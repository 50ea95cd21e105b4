package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/haneulsoft/studio-scheduler/internal/model"
	"github.com/haneulsoft/studio-scheduler/internal/service"
)

// respondError переводит сентинелы сервисного слоя в HTTP-статусы
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrNoSourceData):
		status = fiber.StatusConflict
	case errors.Is(err, service.ErrBackupCaptureFailed):
		status = fiber.StatusInternalServerError
	}
	if status == fiber.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

func parseMonthParams(c *fiber.Ctx) (int, int, error) {
	year, err := c.ParamsInt("year")
	if err != nil || year < 2000 || year > 2200 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid year")
	}
	month, err := c.ParamsInt("month")
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid month")
	}
	return year, month, nil
}

func parseDateParam(c *fiber.Ctx) (time.Time, error) {
	date, err := time.ParseInLocation(model.DateLayout, c.Params("date"), time.UTC)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	return date, nil
}

// createdBy берёт автора операции из заголовка админки
func createdBy(c *fiber.Ctx) string {
	if who := c.Get("X-Admin-User"); who != "" {
		return who
	}
	return "admin"
}
