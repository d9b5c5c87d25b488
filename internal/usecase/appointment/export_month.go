package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	domain "github.com/calmharbor/counsel-api/internal/domain/appointment"
	"github.com/calmharbor/counsel-api/internal/timezone"
)

// Exporta a agenda de um mês do conselheiro como planilha xlsx
type ExportMonth struct {
	repo domain.Repository
}

func NewExportMonth(repo domain.Repository) *ExportMonth {
	return &ExportMonth{repo: repo}
}

var exportHeaders = []string{
	"Data", "Início", "Fim", "Estudante", "Tipo", "Meio", "Prioridade", "Status", "Motivo",
}

func (uc *ExportMonth) Execute(
	ctx context.Context,
	counselorID uint,
	centerID uint,
	year int,
	month int,
) (*excelize.File, error) {

	center, err := uc.repo.GetCenterByID(ctx, centerID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(center.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListForPeriod(ctx, counselorID, start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Agenda"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, ap := range appointments {
		values := []any{
			ap.StartTime.In(loc).Format("2006-01-02"),
			ap.StartTime.In(loc).Format("15:04"),
			ap.EndTime.In(loc).Format("15:04"),
			ap.Student.Name,
			ap.SessionType,
			ap.Medium,
			ap.Priority,
			ap.Status,
			ap.Reason,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", len(appointments)+3),
		fmt.Sprintf("Total: %d atendimentos", len(appointments)))

	return f, nil
}
