package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

// generateMonth создаёт месячное расписание из недельного шаблона филиала
func (h *Handler) generateMonth(c *fiber.Ctx) error {
	year, month, err := parseMonthParams(c)
	if err != nil {
		return err
	}
	result, err := h.schedules.Generate(c.Context(), c.Params("branch"), year, month, createdBy(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"daysWritten": result.DaysWritten,
		"classCount":  result.ClassCount,
		"message":     result.Message,
	})
}

// copyMonth переносит расписание прошлого месяца по эталонной неделе
func (h *Handler) copyMonth(c *fiber.Ctx) error {
	year, month, err := parseMonthParams(c)
	if err != nil {
		return err
	}
	fromYear := c.QueryInt("fromYear")
	fromMonth := c.QueryInt("fromMonth")
	if fromYear == 0 && fromMonth == 0 {
		prev := model.MonthDate(year, month, 1).AddDate(0, -1, 0)
		fromYear, fromMonth = prev.Year(), int(prev.Month())
	}
	if fromYear < 2000 || fromYear > 2200 || fromMonth < 1 || fromMonth > 12 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid source month")
	}
	result, err := h.schedules.CopyFromPreviousMonth(c.Context(), c.Params("branch"),
		fromYear, fromMonth, year, month, createdBy(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"bestWeek":      result.BestWeek,
		"saturdayCount": result.SaturdayCount,
		"daysWritten":   result.DaysWritten,
		"message":       result.Message,
	})
}

func (h *Handler) monthStatus(c *fiber.Ctx) error {
	year, month, err := parseMonthParams(c)
	if err != nil {
		return err
	}
	status, err := h.schedules.GetMonthStatus(c.Context(), c.Params("branch"), year, month)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"exists":  status.Exists,
		"isSaved": status.IsSaved,
	})
}

func (h *Handler) getMonth(c *fiber.Ctx) error {
	year, month, err := parseMonthParams(c)
	if err != nil {
		return err
	}
	days, err := h.schedules.GetMonth(c.Context(), c.Params("branch"), year, month)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"days": days})
}

func (h *Handler) getDay(c *fiber.Ctx) error {
	date, err := parseDateParam(c)
	if err != nil {
		return err
	}
	classes, err := h.schedules.GetDay(c.Context(), c.Params("branch"), date)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"classes": classes})
}

type dayRequest struct {
	Classes []model.ClassInstance `json:"classes"`
}

func (h *Handler) setDay(c *fiber.Ctx) error {
	date, err := parseDateParam(c)
	if err != nil {
		return err
	}
	var req dayRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := h.schedules.SetDay(c.Context(), c.Params("branch"), date, req.Classes); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// setWeekday массово заменяет занятия одного дня недели на весь месяц
func (h *Handler) setWeekday(c *fiber.Ctx) error {
	year, month, err := parseMonthParams(c)
	if err != nil {
		return err
	}
	weekday, err := c.ParamsInt("weekday")
	if err != nil || weekday < 0 || weekday > 6 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid weekday, expected 0 (Sunday) to 6 (Saturday)")
	}
	var req dayRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	count, err := h.schedules.SetWeekdayForMonth(c.Context(), c.Params("branch"),
		year, month, time.Weekday(weekday), req.Classes)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"daysWritten": count,
	})
}

func (h *Handler) getTemplate(c *fiber.Ctx) error {
	template, err := h.schedules.GetTemplate(c.Context(), c.Params("branch"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(template)
}

type templateRequest struct {
	Entries []model.TemplateEntry `json:"entries"`
}

func (h *Handler) setTemplate(c *fiber.Ctx) error {
	var req templateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	tmpl := &model.WeeklyTemplate{
		BranchID: c.Params("branch"),
		Entries:  req.Entries,
	}
	if err := h.schedules.ReplaceTemplate(c.Context(), tmpl); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
