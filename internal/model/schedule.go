package model

import "time"

// DateLayout формат даты в ключах расписаний и снапшотов
const DateLayout = "2006-01-02"

// DailySchedule представляет полный список занятий одного филиала
// на одну календарную дату. Инвариант: не более одного DailySchedule
// на пару (branch_id, date).
type DailySchedule struct {
	BranchID  string          `json:"branch_id"`
	Date      time.Time       `json:"date"`
	Classes   []ClassInstance `json:"classes"` // отсортированы по времени начала
	UpdatedAt time.Time       `json:"updated_at"`
}

// DateString возвращает дату расписания в формате DateLayout
func (d *DailySchedule) DateString() string {
	return d.Date.Format(DateLayout)
}

// MonthlyStatus фиксирует, сформирован ли месяц расписания филиала
type MonthlyStatus struct {
	BranchID  string    `json:"branch_id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	IsSaved   bool      `json:"is_saved"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// DaysInMonth возвращает число дней в месяце
func DaysInMonth(year, month int) int {
	// день 0 следующего месяца нормализуется в последний день текущего
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDate возвращает дату d-го числа месяца
func MonthDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
