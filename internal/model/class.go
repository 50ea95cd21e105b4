package model

import (
	"fmt"
	"strconv"
	"strings"
)

type ClassStatus string

const (
	ClassStatusNormal    ClassStatus = "normal"
	ClassStatusCancelled ClassStatus = "cancelled"
	ClassStatusChanged   ClassStatus = "changed"
)

// DefaultClassDuration длительность занятия по умолчанию, в минутах
const DefaultClassDuration = 60

// ClassInstance представляет одно занятие внутри дневного расписания.
// Не имеет собственной идентичности — существует только внутри DailySchedule.
type ClassInstance struct {
	Time       string      `json:"time"` // время начала, "HH:MM"
	Title      string      `json:"title"`
	Instructor string      `json:"instructor"`
	Duration   int         `json:"duration"` // длительность в минутах
	Level      string      `json:"level,omitempty"`
	Status     ClassStatus `json:"status"`
}

// Validate проверяет корректность занятия
func (c *ClassInstance) Validate() error {
	if _, err := ParseClassTime(c.Time); err != nil {
		return err
	}

	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("class title is required")
	}

	if c.Duration < 0 {
		return fmt.Errorf("class duration must not be negative, got %d", c.Duration)
	}

	switch c.Status {
	case ClassStatusNormal, ClassStatusCancelled, ClassStatusChanged:
	default:
		return fmt.Errorf("unknown class status %q", c.Status)
	}

	return nil
}

// StartMinutes возвращает время начала занятия в минутах от полуночи.
// Занятие должно быть предварительно провалидировано.
func (c *ClassInstance) StartMinutes() int {
	minutes, err := ParseClassTime(c.Time)
	if err != nil {
		return 0
	}
	return minutes
}

// DurationOrDefault возвращает длительность занятия или значение по умолчанию
func (c *ClassInstance) DurationOrDefault() int {
	if c.Duration <= 0 {
		return DefaultClassDuration
	}
	return c.Duration
}

// EndMinutes возвращает время окончания занятия в минутах от полуночи
func (c *ClassInstance) EndMinutes() int {
	return c.StartMinutes() + c.DurationOrDefault()
}

// ParseClassTime разбирает время вида "HH:MM" в минуты от полуночи
func ParseClassTime(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid class time %q, expected HH:MM", value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid class time %q: %w", value, err)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid class time %q: %w", value, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("class time %q is out of range", value)
	}

	return hour*60 + minute, nil
}
