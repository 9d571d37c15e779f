package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportService renders work-order shortage reports as xlsx workbooks.
type ExportService struct {
	woSvc *WorkOrderService
}

func NewExportService(woSvc *WorkOrderService) *ExportService {
	return &ExportService{woSvc: woSvc}
}

// ShortageReport builds a workbook for one work order: every netted line
// plus a summary block. The caller owns closing the file.
func (s *ExportService) ShortageReport(ctx context.Context, woID string) (*excelize.File, string, error) {
	report, err := s.woSvc.BOM(ctx, woID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	const sheet = "Shortage"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"IPN", "Description", "Required", "On Hand", "Shortage", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, line := range report.BOM {
		values := []interface{}{
			line.IPN,
			line.Description,
			line.QtyRequired,
			line.QtyOnHand,
			line.Shortage,
			line.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	base := len(report.BOM) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", base), "Work Order")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", base), report.WOCode)
	f.SetCellValue(sheet, fmt.Sprintf("A%d", base+1), "Assembly")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", base+1), report.AssemblyIPN)
	f.SetCellValue(sheet, fmt.Sprintf("A%d", base+2), "Build Qty")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", base+2), report.Qty)
	f.SetCellValue(sheet, fmt.Sprintf("A%d", base+3), "Short Lines")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", base+3), report.Summary.LowCount+report.Summary.ShortageCount)

	filename := fmt.Sprintf("%s-shortage.xlsx", report.WOCode)
	return f, filename, nil
}
