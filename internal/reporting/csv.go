package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/swe363/gradehtml/internal/models"
)

// CSVHeader returns the gradebook header, e.g.
// repo,auto_score_75,submission_25,final_100.
func CSVHeader(r *models.GradeReport) []string {
	return []string{
		"repo",
		"auto_score_" + num(r.AutoScoreMax),
		"submission_" + num(r.SubmissionMax),
		"final_" + num(r.FinalMax),
	}
}

// CSVRecord returns the single gradebook row for r.
func CSVRecord(r *models.GradeReport) []string {
	return []string{
		r.Repo,
		strconv.FormatFloat(r.AutoScoreTotal, 'f', 2, 64),
		num(r.SubmissionPoints),
		strconv.FormatFloat(r.FinalScore, 'f', 2, 64),
	}
}

// WriteCSV writes the header and exactly one data row.
func WriteCSV(w io.Writer, r *models.GradeReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader(r)); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := cw.Write(CSVRecord(r)); err != nil {
		return fmt.Errorf("csv: write row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}
