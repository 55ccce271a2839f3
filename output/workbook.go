package output

import (
	"call-distributions/pipeline"

	"github.com/xuri/excelize/v2"
)

// WorkbookFile is the name of the optional Excel summary.
const WorkbookFile = "call_distributions.xlsx"

const (
	rankingSheet = "Ranking"
	tallySheet   = "Tally"
)

// WriteWorkbook saves the hour ranking and the rejection tally as two sheets
// of an Excel workbook.
func WriteWorkbook(path string, res *pipeline.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(rankingSheet, "A1", &[]any{"Hour", "Calls"}); err != nil {
		return err
	}
	for i, hv := range res.Ranking {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(rankingSheet, cell, &[]any{hv.Hour, hv.Calls}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(tallySheet); err != nil {
		return err
	}
	rows := [][]any{
		{"Counter", "Value"},
		{"Rows", res.Tally.Rows},
		{"Calls in domain", res.Tally.InDomain},
		{"Rejected for empty field", res.Tally.RejectedEmpty},
		{"Rejected for malformed timestamp", res.Tally.RejectedMalformed},
		{"Rejected for anomalous duration", res.Tally.RejectedAnomalous},
		{"Outside year filter", res.Tally.OutOfDomain},
		{"Admitted", res.Tally.Admitted},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(tallySheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
