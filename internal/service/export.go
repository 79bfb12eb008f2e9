package service

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/logger"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportDateLayout = "2006-01-02 15:04"

var (
	hrContactHeaders   = []string{"ID", "HR Name", "Emails", "Company", "Job Title", "Job URL", "Advertised On", "Email Subject", "Times Sent", "Created At", "Last Sent At"}
	leaderboardHeaders = []string{"Rank", "Name", "Score", "Total Questions", "Submitted At"}
)

func writeCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
		return err
	}
	for i, h := range headers {
		if err := writeCell(f, sheet, i+1, 1, h); err != nil {
			return err
		}
	}
	return nil
}

func writeRows(sheetName string, headers []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Get().Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	const sheet = "Sheet1"
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for r, row := range rows {
		for c, value := range row {
			if err := writeCell(f, sheet, c+1, r+2, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", r+2, err)
			}
		}
	}
	if err := f.SetSheetName(sheet, sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func hrContactsXLSX(contacts []*domain.HRContact) ([]byte, error) {
	rows := make([][]interface{}, 0, len(contacts))
	for _, c := range contacts {
		lastSent := ""
		if c.LastSentAt != nil {
			lastSent = c.LastSentAt.Format(exportDateLayout)
		}
		rows = append(rows, []interface{}{
			c.ID, c.Name, strings.Join(c.Emails, ", "), c.Company, c.JobTitle, c.JobURL,
			c.AdvertisedOn, c.EmailSubject, c.TimesSent, c.CreatedAt.Format(exportDateLayout), lastSent,
		})
	}
	return writeRows("HR Contacts", hrContactHeaders, rows)
}

func leaderboardXLSX(entries []dto.LeaderboardEntry) ([]byte, error) {
	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []interface{}{e.Rank, e.Name, e.Score, e.TotalQuestions, e.SubmittedAt.Format(exportDateLayout)})
	}
	return writeRows("Leaderboard", leaderboardHeaders, rows)
}

func leaderboardPDF(entries []dto.LeaderboardEntry) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("leaderboard pdf panic recover: %v", r)
		}
	}()

	widths := []float64{15, 70, 25, 35, 45}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, "Leaderboard", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range leaderboardHeaders {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, e := range entries {
		cells := []string{
			strconv.Itoa(e.Rank),
			tr(e.Name),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.TotalQuestions),
			e.SubmittedAt.Format(exportDateLayout),
		}
		for i, v := range cells {
			align := "C"
			if i == 1 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, v, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
