// Package httpapi содержит HTTP-интерфейс ядра для киоска и админки.
package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/haneulsoft/studio-scheduler/internal/service"
)

// Handler агрегирует сервисы ядра для HTTP-обработчиков
type Handler struct {
	schedules *service.ScheduleService
	backups   *service.BackupService
	checkin   *service.CheckinService
	logger    *zap.Logger
}

func NewHandler(
	schedules *service.ScheduleService,
	backups *service.BackupService,
	checkin *service.CheckinService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		schedules: schedules,
		backups:   backups,
		checkin:   checkin,
		logger:    logger,
	}
}

// Register навешивает маршруты ядра на приложение
func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	branch := api.Group("/branches/:branch")

	month := branch.Group("/months/:year/:month")
	month.Post("/generate", h.generateMonth)
	month.Post("/copy", h.copyMonth)
	month.Get("/status", h.monthStatus)
	month.Get("/", h.getMonth)
	month.Put("/weekdays/:weekday", h.setWeekday)
	month.Post("/reset", h.resetMonth)
	month.Get("/backups", h.listBackups)
	month.Post("/restore/:backupId", h.restoreMonth)

	branch.Get("/days/:date/board.png", h.dayBoard)
	branch.Get("/days/:date", h.getDay)
	branch.Put("/days/:date", h.setDay)

	branch.Get("/template", h.getTemplate)
	branch.Put("/template", h.setTemplate)

	branch.Get("/checkin/match", h.matchClass)
}
