package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"garment-backend/internal/models"
	"garment-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"
)

// ReportService renders the worksheet of one date as PDF, CSV and XLSX
type ReportService struct {
	FactoryName string
}

// NewReportService creates a new report service
func NewReportService(factoryName string) *ReportService {
	if factoryName == "" {
		factoryName = "Garment Factory"
	}
	return &ReportService{FactoryName: factoryName}
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func hours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *ReportService) pdfHeader(pdf *gofpdf.Fpdf, title, date string) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, s.FactoryName+" - "+title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, "Work date: "+timeutil.FormatDisplayDate(date), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)
}

func pdfBytes(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateSalaryPDF renders the daily salary sheet
func (s *ReportService) GenerateSalaryPDF(ws models.Worksheet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	s.pdfHeader(pdf, "Daily Salary Sheet", ws.Date)

	widths := []float64{40, 20, 25, 25, 25, 27, 28}
	headers := []string{"Section", "Workers", "Rate", "OT Hours", "OT Rate", "OT Amount", "Total"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, rec := range ws.Salary {
		pdf.CellFormat(widths[0], 6, rec.Section, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, strconv.Itoa(rec.WorkerCount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, money(rec.RegularRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, hours(rec.OvertimeHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, money(rec.OvertimeRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, money(rec.OvertimeAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, money(rec.TotalAmount), "1", 1, "R", false, 0, "")
	}

	sum := ws.SalarySummary
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(widths[0], 7, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(widths[1], 7, strconv.Itoa(sum.TotalWorkers), "1", 0, "C", true, 0, "")
	pdf.CellFormat(widths[2]+widths[3]+widths[4], 7, "Regular: "+money(sum.TotalRegularAmount), "1", 0, "R", true, 0, "")
	pdf.CellFormat(widths[5], 7, money(sum.TotalOvertimeAmount), "1", 0, "R", true, 0, "")
	pdf.CellFormat(widths[6], 7, money(sum.GrandTotal), "1", 1, "R", true, 0, "")

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(200, 255, 200)
	pdf.CellFormat(190, 10, "Grand Total: "+money(sum.GrandTotal), "1", 1, "C", true, 0, "")

	return pdfBytes(pdf)
}

// GenerateOvertimePDF renders the overtime sheet with one line per detail row
func (s *ReportService) GenerateOvertimePDF(ws models.Worksheet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	s.pdfHeader(pdf, "Overtime Sheet", ws.Date)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(50, 7, "Section", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Present", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Total", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 7, "Hours x Workers", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "OT Hours", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, rec := range ws.Overtime {
		rows := len(rec.OvertimeDetails)
		if rows == 0 {
			rows = 1
		}
		for i := 0; i < rows; i++ {
			section, present, total, otHours := "", "", "", ""
			border := "LR"
			if i == 0 {
				section = rec.Section
				present = strconv.Itoa(rec.PresentWorkers)
				total = strconv.Itoa(rec.TotalWorkers)
				otHours = hours(rec.TotalOtHours)
				border = "LRT"
			}
			if i == rows-1 {
				border += "B"
			}
			detail := "-"
			if i < len(rec.OvertimeDetails) {
				d := rec.OvertimeDetails[i]
				detail = fmt.Sprintf("%s h x %d", hours(d.Hours), d.WorkerCount)
			}
			pdf.CellFormat(50, 6, section, border, 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, present, border, 0, "C", false, 0, "")
			pdf.CellFormat(25, 6, total, border, 0, "C", false, 0, "")
			pdf.CellFormat(60, 6, detail, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, otHours, border, 1, "R", false, 0, "")
		}
	}

	sum := ws.OvertimeSummary
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(50, 7, fmt.Sprintf("%d sections", sum.TotalSections), "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, strconv.Itoa(sum.TotalPresentWorkers), "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, strconv.Itoa(sum.TotalWorkers), "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 7, "", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, hours(sum.TotalOtHours), "1", 1, "R", true, 0, "")

	return pdfBytes(pdf)
}

// GenerateSalaryCSV exports the salary rows followed by a totals line
func (s *ReportService) GenerateSalaryCSV(ws models.Worksheet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Date", "Section", "Workers", "Regular Rate", "Regular Amount", "OT Hours", "OT Rate", "OT Amount", "Total"})
	for _, rec := range ws.Salary {
		w.Write([]string{
			ws.Date,
			rec.Section,
			strconv.Itoa(rec.WorkerCount),
			money(rec.RegularRate),
			money(rec.RegularAmount),
			hours(rec.OvertimeHours),
			money(rec.OvertimeRate),
			money(rec.OvertimeAmount),
			money(rec.TotalAmount),
		})
	}
	sum := ws.SalarySummary
	w.Write([]string{
		ws.Date, "TOTAL", strconv.Itoa(sum.TotalWorkers), "",
		money(sum.TotalRegularAmount), "", "",
		money(sum.TotalOvertimeAmount), money(sum.GrandTotal),
	})

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateWorkbook exports overtime and salary as two sheets of one XLSX file
func (s *ReportService) GenerateWorkbook(ws models.Worksheet) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	const overtimeSheet, salarySheet = "Overtime", "Salary"
	if err := wb.SetSheetName("Sheet1", overtimeSheet); err != nil {
		return nil, err
	}
	if _, err := wb.NewSheet(salarySheet); err != nil {
		return nil, err
	}

	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	overtimeRows := [][]interface{}{
		{"Section", "Present", "Total", "Hours", "Workers", "OT Hours"},
	}
	for _, rec := range ws.Overtime {
		if len(rec.OvertimeDetails) == 0 {
			overtimeRows = append(overtimeRows, []interface{}{rec.Section, rec.PresentWorkers, rec.TotalWorkers, nil, nil, rec.TotalOtHours})
			continue
		}
		for i, d := range rec.OvertimeDetails {
			row := []interface{}{nil, nil, nil, d.Hours, d.WorkerCount, nil}
			if i == 0 {
				row[0], row[1], row[2], row[5] = rec.Section, rec.PresentWorkers, rec.TotalWorkers, rec.TotalOtHours
			}
			overtimeRows = append(overtimeRows, row)
		}
	}
	ot := ws.OvertimeSummary
	overtimeRows = append(overtimeRows, []interface{}{"Total", ot.TotalPresentWorkers, ot.TotalWorkers, nil, nil, ot.TotalOtHours})

	salaryRows := [][]interface{}{
		{"Section", "Workers", "Regular Rate", "Regular Amount", "OT Hours", "OT Rate", "OT Amount", "Total"},
	}
	for _, rec := range ws.Salary {
		salaryRows = append(salaryRows, []interface{}{
			rec.Section, rec.WorkerCount, rec.RegularRate, rec.RegularAmount,
			rec.OvertimeHours, rec.OvertimeRate, rec.OvertimeAmount, rec.TotalAmount,
		})
	}
	sal := ws.SalarySummary
	salaryRows = append(salaryRows, []interface{}{
		"Total", sal.TotalWorkers, nil, sal.TotalRegularAmount, nil, nil, sal.TotalOvertimeAmount, sal.GrandTotal,
	})

	for sheet, rows := range map[string][][]interface{}{overtimeSheet: overtimeRows, salarySheet: salaryRows} {
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return nil, err
			}
			if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
			}
		}
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return nil, err
		}
		if err := wb.SetColWidth(sheet, "A", "A", 22); err != nil {
			return nil, err
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
