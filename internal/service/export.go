package service

import (
	"fmt"
	"io"

	"github.com/DanRulev/flashbot.git/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	cardsSheet    = "Картки"
	forecastSheet = "Прогноз"
)

func cardsWorkbook(cards []models.Flashcard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cardsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Термін", "Переклад", "Категорія", "Додано"}
	if err := f.SetSheetRow(cardsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, card := range cards {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{card.Term, card.Translation, card.Category, card.CreatedAt.Format("2006-01-02 15:04")}
		if err := f.SetSheetRow(cardsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return writeWorkbook(f)
}

// forecastWorkbook puts the forecast into a table and draws a temperature
// line chart next to it.
func forecastWorkbook(forecast models.Forecast) ([]byte, error) {
	if len(forecast.Points) == 0 {
		return nil, fmt.Errorf("empty forecast for %s", forecast.City)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", forecastSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Час", "Температура, °C", "Вологість, %", "Вітер, м/с", "Опис"}
	if err := f.SetSheetRow(forecastSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range forecast.Points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{p.Time.Format("02.01 15:04"), p.Temp, p.Humidity, p.WindSpeed, p.Description}
		if err := f.SetSheetRow(forecastSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	last := len(forecast.Points) + 1
	sheetRef := "'" + forecastSheet + "'"
	err := f.AddChart(forecastSheet, "G2", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", sheetRef),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetRef, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheetRef, last),
			},
		},
		Title: []excelize.RichTextRun{{Text: "Прогноз температури: " + forecast.City}},
		Legend: excelize.ChartLegend{
			Position: "bottom",
		},
		Dimension: excelize.ChartDimension{
			Width:  720,
			Height: 360,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add chart: %w", err)
	}

	return writeWorkbook(f)
}

// cardDrafts reads term, translation and category from the first three
// columns of the first sheet. The first row is a header.
func cardDrafts(r io.Reader) ([]models.CardDraft, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBadWorkbook, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: no sheets", models.ErrBadWorkbook)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheet, err)
	}

	drafts := make([]models.CardDraft, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		for len(row) < 3 {
			row = append(row, "")
		}
		drafts = append(drafts, models.CardDraft{Term: row[0], Translation: row[1], Category: row[2]})
	}
	return drafts, nil
}

func writeWorkbook(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
