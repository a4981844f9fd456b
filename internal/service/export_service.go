package service

import (
	"fmt"
	"io"

	"reading_edu_backend/internal/repository"

	"github.com/xuri/excelize/v2"
)

type ExportService struct {
	ResultRepo *repository.ResultRepository
}

func NewExportService(resultRepo *repository.ResultRepository) *ExportService {
	return &ExportService{ResultRepo: resultRepo}
}

var exportHeader = []string{"Grade", "Class", "Number", "Name", "Exam", "Score", "Completed At"}

// WriteResultsXLSX streams an xlsx workbook of exam results, optionally
// limited to one exam.
func (s *ExportService) WriteResultsXLSX(w io.Writer, examID *uint) error {
	rows, err := s.ResultRepo.ExportRows(examID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for i, row := range rows {
		values := []interface{}{
			row.Grade,
			row.Class,
			row.Number,
			row.StudentName,
			row.ExamTitle,
			row.Score,
			row.CompletedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
