// Package render рисует дневное табло занятий для экрана киоска.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

// Константы размеров и отступов
const (
	boardWidth       = 600
	headerHeight     = 72
	cardHeight       = 64
	cardSpacing      = 12
	cardPaddingX     = 20
	boardPaddingX    = 24
	boardPaddingY    = 20
	cardBorderRadius = 8.0
	emptyBoardHeight = 240
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	headerColor    = color.RGBA{40, 44, 52, 255}
	headerText     = color.RGBA{240, 242, 245, 255}
	cardText       = color.RGBA{20, 24, 28, 230}
	cardSubText    = color.RGBA{90, 95, 100, 220}
	emptyTextColor = color.RGBA{110, 115, 120, 200}

	cardNormalColor    = color.RGBA{133, 193, 85, 60}
	cardChangedColor   = color.RGBA{255, 193, 7, 70}
	cardCancelledColor = color.RGBA{158, 158, 158, 70}
)

// DayBoard рисует табло занятий филиала на дату и возвращает PNG.
// Занятия рисуются в переданном порядке; отменённые остаются на
// табло с пометкой, чтобы киоск показывал отмену, а не пропажу.
func DayBoard(branchID string, date time.Time, classes []model.ClassInstance) ([]byte, error) {
	height := headerHeight + boardPaddingY*2 + len(classes)*(cardHeight+cardSpacing)
	if len(classes) == 0 {
		height = emptyBoardHeight
	}

	dc := gg.NewContext(boardWidth, height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	drawHeader(dc, branchID, date)

	if len(classes) == 0 {
		dc.SetColor(emptyTextColor)
		dc.DrawStringAnchored("no classes scheduled", boardWidth/2, float64(headerHeight)+(float64(height-headerHeight))/2, 0.5, 0.5)
	}

	y := float64(headerHeight + boardPaddingY)
	for i := range classes {
		drawClassCard(dc, &classes[i], y)
		y += cardHeight + cardSpacing
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode board png: %w", err)
	}

	return buf.Bytes(), nil
}

func drawHeader(dc *gg.Context, branchID string, date time.Time) {
	dc.SetColor(headerColor)
	dc.DrawRectangle(0, 0, boardWidth, headerHeight)
	dc.Fill()

	dc.SetColor(headerText)
	title := fmt.Sprintf("%s / %s (%s)", branchID, date.Format(model.DateLayout), date.Weekday().String())
	dc.DrawStringAnchored(title, boardWidth/2, headerHeight/2, 0.5, 0.5)
}

func drawClassCard(dc *gg.Context, cls *model.ClassInstance, y float64) {
	cardColor := cardNormalColor
	switch cls.Status {
	case model.ClassStatusCancelled:
		cardColor = cardCancelledColor
	case model.ClassStatusChanged:
		cardColor = cardChangedColor
	}

	dc.SetColor(cardColor)
	dc.DrawRoundedRectangle(boardPaddingX, y, boardWidth-2*boardPaddingX, cardHeight, cardBorderRadius)
	dc.Fill()

	endMinutes := cls.EndMinutes()
	timeRange := fmt.Sprintf("%s - %02d:%02d", cls.Time, (endMinutes/60)%24, endMinutes%60)

	line := cls.Title
	if cls.Level != "" {
		line = fmt.Sprintf("%s (Lv %s)", cls.Title, cls.Level)
	}
	if cls.Status == model.ClassStatusCancelled {
		line += " - CANCELLED"
	}

	dc.SetColor(cardText)
	dc.DrawString(line, boardPaddingX+cardPaddingX, y+26)

	dc.SetColor(cardSubText)
	dc.DrawString(fmt.Sprintf("%s / %s", timeRange, cls.Instructor), boardPaddingX+cardPaddingX, y+46)
}
