package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	resultsSheet = "Results"
)

var exportHeader = []string{"question", "alternative", "number_of_answers", "percentage", "total_number_of_answers"}

// ExportFile là nội dung file xuất, trả thẳng về client dạng attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportSurveyResults xuất kết quả của GetSurveyResults ra CSV hoặc XLSX.
func (s *ResultsService) ExportSurveyResults(ctx context.Context, userID, surveyID uint, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return nil, ErrUnsupportedFormat
	}

	survey, results, err := s.surveyResults(ctx, userID, surveyID)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("survey_%d_results.%s", survey.ID, format)
	if format == FormatXLSX {
		data, err := writeResultsXLSX(survey.Name, results)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    filename,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	}

	data, err := writeResultsCSV(results)
	if err != nil {
		return nil, err
	}
	return &ExportFile{Filename: filename, ContentType: "text/csv", Data: data}, nil
}

func resultRows(results []QuestionResult) [][]string {
	var rows [][]string
	for _, q := range results {
		for _, a := range q.Alternatives {
			rows = append(rows, []string{
				q.QuestionText,
				a.AlternativeText,
				strconv.FormatInt(a.NumberOfAnswers, 10),
				strconv.FormatFloat(a.Percentage, 'f', 2, 64),
				strconv.FormatInt(q.TotalNumberOfAnswers, 10),
			})
		}
	}
	return rows
}

func writeResultsCSV(results []QuestionResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(resultRows(results)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeResultsXLSX(title string, results []QuestionResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, err
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: title}); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(resultsSheet, "A1", "E1", bold); err != nil {
		return nil, err
	}

	row := 2
	for _, q := range results {
		for _, a := range q.Alternatives {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, err
			}
			values := []interface{}{q.QuestionText, a.AlternativeText, a.NumberOfAnswers, a.Percentage, q.TotalNumberOfAnswers}
			if err := f.SetSheetRow(resultsSheet, cell, &values); err != nil {
				return nil, err
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
