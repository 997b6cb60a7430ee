package eval

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes the report to an Excel workbook: a Summary sheet with
// the headline numbers and a Failures sheet with the per-category error
// table.
func WriteXLSX(path string, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total processed", r.TotalProcessed},
		{"API errors", r.APIErrors},
		{"Successful", r.Successful},
		{"Correct", r.Correct},
		{"Incorrect", r.Incorrect},
		{"Accuracy", fmt.Sprintf("%.2f%%", r.Accuracy*100)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}

	const failures = "Failures"
	if _, err := f.NewSheet(failures); err != nil {
		return fmt.Errorf("creating failures sheet: %w", err)
	}
	head := []interface{}{"Category", "Failed"}
	if err := f.SetSheetRow(failures, "A1", &head); err != nil {
		return err
	}
	for i, fc := range r.Failures {
		row := []interface{}{string(fc.Category), fc.Count}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(failures, cell, &row); err != nil {
			return fmt.Errorf("writing failure row: %w", err)
		}
	}

	return f.SaveAs(path)
}

// WriteOutcomesCSV writes one row per outcome record, categorized, in
// the order given. This is the flat interchange format for downstream
// tooling.
func WriteOutcomesCSV(w io.Writer, records []OutcomeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"problem_id", "category", "predicted", "ground_truth", "correct", "api_error"}); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.ProblemID,
			string(Categorize(rec.QuestionRaw)),
			rec.Predicted,
			rec.GroundTruth,
			strconv.FormatBool(rec.Correct()),
			strconv.FormatBool(rec.APIError),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
