package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	ExportSheetName = "Sayfa1"
	ExportFileName  = "tum_talepler.xlsx"
)

var RequestColumns = []string{
	"id",
	"employee_full_name",
	"department",
	"job_title",
	"leave_type",
	"start_date",
	"end_date",
	"reason",
	"status",
	"approval_note",
}

type RequestRow struct {
	ID               int64
	EmployeeFullName string
	Department       string
	JobTitle         string
	LeaveType        string
	StartDate        string
	EndDate          string
	Reason           string
	Status           string
	ApprovalNote     string
}

func (r RequestRow) values() []any {
	return []any{
		r.ID,
		r.EmployeeFullName,
		r.Department,
		r.JobTitle,
		r.LeaveType,
		r.StartDate,
		r.EndDate,
		r.Reason,
		r.Status,
		r.ApprovalNote,
	}
}

// WriteRequests renders every request as one row of a single-sheet workbook.
func WriteRequests(rows []RequestRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(RequestColumns))
	for i, col := range RequestColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(RequestColumns))
		_ = f.SetCellStyle(ExportSheetName, "A1", lastCol+"1", boldStyle)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row.values()
		if err := f.SetSheetRow(ExportSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
