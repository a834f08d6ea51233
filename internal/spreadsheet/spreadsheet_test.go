package spreadsheet_test

import (
	"bytes"
	"errors"
	"testing"

	"go-leave/internal/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		r := row
		assert.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf
}

func rosterHeader() []any {
	header := make([]any, len(spreadsheet.RosterColumns))
	for i, c := range spreadsheet.RosterColumns {
		header[i] = c
	}
	return header
}

func TestParseRoster(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		buf := buildWorkbook(t, [][]any{
			rosterHeader(),
			{"1001", "Ayşe Kaya", "1234", "Mühendis", "AR-GE", "ayse@example.com", "mehmet@example.com", "Personel", "05550000000"},
			{},
			{"1002", "Mehmet Demir", "abcd", "Müdür", "AR-GE", "mehmet@example.com", "ik@example.com", "Yönetici", ""},
		})

		rows, err := spreadsheet.ParseRoster(buf)

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "1001", rows[0].RegistryNo)
		assert.Equal(t, "Ayşe Kaya", rows[0].FullName)
		assert.Equal(t, "mehmet@example.com", rows[0].ApproverEmail)
		assert.Equal(t, 2, rows[0].Row)
		assert.Equal(t, "Yönetici", rows[1].Role)
		assert.Equal(t, 4, rows[1].Row)
	})

	t.Run("columns in any order", func(t *testing.T) {
		header := rosterHeader()
		header[0], header[8] = header[8], header[0]
		buf := buildWorkbook(t, [][]any{
			header,
			{"0555", "Ayşe Kaya", "1234", "Mühendis", "AR-GE", "ayse@example.com", "m@example.com", "Personel", "1001"},
		})

		rows, err := spreadsheet.ParseRoster(buf)

		assert.NoError(t, err)
		assert.Equal(t, "1001", rows[0].RegistryNo)
		assert.Equal(t, "0555", rows[0].Phone)
	})

	t.Run("negative missing role column", func(t *testing.T) {
		header := rosterHeader()[:7]
		header = append(header, "Cep_Telefonu")
		buf := buildWorkbook(t, [][]any{header, {"1001", "Ayşe Kaya"}})

		_, err := spreadsheet.ParseRoster(buf)

		var missing *spreadsheet.MissingColumnsError
		assert.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{"Rol"}, missing.Columns)
	})

	t.Run("negative not a workbook", func(t *testing.T) {
		_, err := spreadsheet.ParseRoster(bytes.NewBufferString("Sicil,Ad Soyad"))
		assert.ErrorIs(t, err, spreadsheet.ErrUnreadableWorkbook)
	})
}

func TestWriteRequests(t *testing.T) {
	data, err := spreadsheet.WriteRequests([]spreadsheet.RequestRow{
		{ID: 7, EmployeeFullName: "Ayşe Kaya", LeaveType: "Yıllık İzin", StartDate: "2026-07-01", EndDate: "2026-07-05", Status: "APPROVED", ApprovalNote: "Mehmet Demir (Müdür) tarafından 2026-06-20 tarihinde onaylandı."},
		{ID: 8, EmployeeFullName: "Ali Veli", LeaveType: "Mazeret İzni", StartDate: "2026-08-01", EndDate: "2026-08-01", Status: "PENDING"},
	})
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	assert.Equal(t, spreadsheet.ExportSheetName, f.GetSheetName(0))
	rows, err := f.GetRows(spreadsheet.ExportSheetName)
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, spreadsheet.RequestColumns, rows[0])
	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, "Ayşe Kaya", rows[1][1])
	assert.Equal(t, "PENDING", rows[2][8])
}
