package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/haneulsoft/studio-scheduler/internal/render"
)

// matchClass подбирает занятие для отметки посещения. Отсутствие
// совпадения не ошибка: киоск записывает самостоятельную практику.
func (h *Handler) matchClass(c *fiber.Ctx) error {
	minutes := c.QueryInt("minutes", -1)
	if minutes < 0 {
		minutes = h.checkin.NowMinutes()
	}
	match, err := h.checkin.MatchClass(c.Context(), c.Params("branch"), minutes, c.Query("instructor"))
	if err != nil {
		return h.respondError(c, err)
	}
	if match == nil {
		return c.JSON(fiber.Map{"matched": false})
	}
	return c.JSON(fiber.Map{
		"matched": true,
		"class":   match.Class,
		"reason":  match.Reason,
	})
}

// dayBoard отдаёт PNG-табло занятий дня для экрана филиала
func (h *Handler) dayBoard(c *fiber.Ctx) error {
	date, err := parseDateParam(c)
	if err != nil {
		return err
	}
	branchID := c.Params("branch")
	classes, err := h.schedules.GetDay(c.Context(), branchID, date)
	if err != nil {
		return h.respondError(c, err)
	}
	png, err := render.DayBoard(branchID, date, classes)
	if err != nil {
		return h.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
