// Package spreadsheet reads roster workbooks and writes request exports.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Header names expected in a roster workbook, matched exactly.
const (
	ColRegistryNo    = "Sicil"
	ColFullName      = "Ad Soyad"
	ColSecret        = "Sifre"
	ColJobTitle      = "Meslek"
	ColDepartment    = "Departman"
	ColEmail         = "Email"
	ColApproverEmail = "Onayci_Email"
	ColRole          = "Rol"
	ColPhone         = "Cep_Telefonu"
)

var RosterColumns = []string{
	ColRegistryNo,
	ColFullName,
	ColSecret,
	ColJobTitle,
	ColDepartment,
	ColEmail,
	ColApproverEmail,
	ColRole,
	ColPhone,
}

var ErrUnreadableWorkbook = errors.New("workbook cannot be read")

type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

type RosterRow struct {
	Row           int
	RegistryNo    string
	FullName      string
	Secret        string
	JobTitle      string
	Department    string
	Email         string
	ApproverEmail string
	Role          string
	Phone         string
}

// ParseRoster reads the first sheet of an xlsx roster. Column order is free
// but every name in RosterColumns must be present; blank rows are skipped.
func ParseRoster(r io.Reader) ([]RosterRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	index, missing := headerIndex(header)
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	out := make([]RosterRow, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		cell := func(col string) string {
			idx := index[col]
			if idx >= len(rows[i]) {
				return ""
			}
			return strings.TrimSpace(rows[i][idx])
		}

		item := RosterRow{
			Row:           i + 1,
			RegistryNo:    cell(ColRegistryNo),
			FullName:      cell(ColFullName),
			Secret:        cell(ColSecret),
			JobTitle:      cell(ColJobTitle),
			Department:    cell(ColDepartment),
			Email:         cell(ColEmail),
			ApproverEmail: cell(ColApproverEmail),
			Role:          cell(ColRole),
			Phone:         cell(ColPhone),
		}
		if item == (RosterRow{Row: item.Row}) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func headerIndex(header []string) (map[string]int, []string) {
	index := make(map[string]int, len(RosterColumns))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range RosterColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return index, missing
}
