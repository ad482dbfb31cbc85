package reporting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/hoangnd25/glidepath/internal/evaluation"
	"github.com/xuri/excelize/v2"
)

// DefaultExcelReporter implements Excel output functionality.
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter.
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteSurfaceXLSX writes the sweep surface as a workbook: a shortfall
// probability matrix (spending rows x allocation columns) plus a summary
// sheet with the safe-withdrawal readout per allocation.
func (r *DefaultExcelReporter) WriteSurfaceXLSX(surface *evaluation.Surface, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const surfaceSheet = "Shortfall Surface"
	const summarySheet = "Summary"

	fx.SetSheetName(fx.GetSheetName(0), surfaceSheet)
	fx.NewSheet(summarySheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeSurfaceSheet(fx, surfaceSheet, surface, styles); err != nil {
		return err
	}
	if err := r.writeSummarySheet(fx, summarySheet, surface, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

// createExcelStyles creates the workbook styles.
func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF", Family: "Calibri"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2F4F4F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return styles, err
	}

	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 10, // 0.00%
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles, err
	}

	styles.NumberStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2, // 0.00
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles, err
	}

	styles.SafeStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 10,
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles, err
	}

	styles.RiskStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 10,
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return styles, err
}

// writeSurfaceSheet writes the shortfall probability matrix. Cells at or
// under 5% shortfall are shaded safe, over 25% shaded risky.
func (r *DefaultExcelReporter) writeSurfaceSheet(fx *excelize.File, sheet string, surface *evaluation.Surface, styles ExcelStyles) error {
	fx.SetCellValue(sheet, "A1", "Spending \\ Equity")
	fx.SetCellStyle(sheet, "A1", "A1", styles.HeaderStyle)

	for col, alloc := range surface.Allocations {
		cell, err := excelize.CoordinatesToCellName(col+2, 1)
		if err != nil {
			return err
		}
		fx.SetCellValue(sheet, cell, fmt.Sprintf("%.0f%%", alloc*100))
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	probs := make(map[[2]float64]float64, len(surface.Cells))
	for _, c := range surface.Cells {
		probs[[2]float64{c.SpendingRate, c.TargetEquity}] = c.Report.ProbabilityOfShortfall
	}

	for row, spending := range surface.SpendingRates {
		labelCell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		fx.SetCellValue(sheet, labelCell, fmt.Sprintf("%.1f%%", spending*100))
		fx.SetCellStyle(sheet, labelCell, labelCell, styles.HeaderStyle)

		for col, alloc := range surface.Allocations {
			cell, err := excelize.CoordinatesToCellName(col+2, row+2)
			if err != nil {
				return err
			}
			p := probs[[2]float64{spending, alloc}]
			fx.SetCellValue(sheet, cell, p)
			style := styles.PercentStyle
			if p <= 0.05 {
				style = styles.SafeStyle
			} else if p > 0.25 {
				style = styles.RiskStyle
			}
			fx.SetCellStyle(sheet, cell, cell, style)
		}
	}

	fx.SetColWidth(sheet, "A", "A", 18)
	return nil
}

// writeSummarySheet writes per-allocation safe withdrawal rates at a 5%
// shortfall tolerance.
func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, surface *evaluation.Surface, styles ExcelStyles) error {
	headers := []string{"Target Equity", "Max Safe Spending (5% tolerance)", "P(shortfall) at 4%"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	for row, alloc := range surface.Allocations {
		base := row + 2
		cellA, _ := excelize.CoordinatesToCellName(1, base)
		cellB, _ := excelize.CoordinatesToCellName(2, base)
		cellC, _ := excelize.CoordinatesToCellName(3, base)

		fx.SetCellValue(sheet, cellA, alloc)
		fx.SetCellStyle(sheet, cellA, cellA, styles.PercentStyle)

		if safe := surface.MaxSafeSpendingRate(alloc, 0.05); !math.IsNaN(safe) {
			fx.SetCellValue(sheet, cellB, safe)
			fx.SetCellStyle(sheet, cellB, cellB, styles.PercentStyle)
		} else {
			fx.SetCellValue(sheet, cellB, "none")
		}

		for _, c := range surface.Cells {
			if c.TargetEquity == alloc && c.SpendingRate == 0.04 {
				fx.SetCellValue(sheet, cellC, c.Report.ProbabilityOfShortfall)
				fx.SetCellStyle(sheet, cellC, cellC, styles.PercentStyle)
				break
			}
		}
	}

	fx.SetColWidth(sheet, "A", "C", 28)
	return nil
}
