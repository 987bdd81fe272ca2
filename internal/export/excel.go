package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vuongnm/staffdesk/internal/domain"
)

const sheetName = "Employees"

var columns = []struct {
	header string
	width  float64
	value  func(e domain.Employee) interface{}
}{
	{"First Name", 18, func(e domain.Employee) interface{} { return e.FirstName }},
	{"Last Name", 18, func(e domain.Employee) interface{} { return e.LastName }},
	{"Email", 30, func(e domain.Employee) interface{} { return e.Email }},
	{"Employee Type", 15, func(e domain.Employee) interface{} { return e.EmployeeType }},
	{"Position", 20, func(e domain.Employee) interface{} { return e.Position }},
	{"Department", 20, func(e domain.Employee) interface{} { return e.Department }},
	{"Status", 12, func(e domain.Employee) interface{} { return e.Status }},
	{"Joining Date", 15, func(e domain.Employee) interface{} { return e.JoiningDate }},
	{"Salary", 12, func(e domain.Employee) interface{} { return e.Salary }},
	{"Created At", 22, func(e domain.Employee) interface{} { return e.CreatedAt.Format("2006-01-02 15:04:05") }},
}

// WriteRoster streams the employee roster as an xlsx workbook.
func WriteRoster(w io.Writer, employees []domain.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col.header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, col.width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for row, e := range employees {
		for i, col := range columns {
			cell, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, col.value(e)); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	return f.Write(w)
}
