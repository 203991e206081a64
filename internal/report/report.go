// Package report renders processing results for terminal output.
package report

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"srtpost/internal/config"
	"srtpost/internal/pipeline"
	"srtpost/internal/worker"
)

// Summary renders one row per processed file.
func Summary(results []worker.Result) string {
	headers := []string{"File", "Language", "In", "Out", "Merged", "Split", "Warnings", "Status"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{filepath.Base(r.Input), "", "", "", "", "", "", status(r)}
		if rep := r.Report; rep != nil {
			row[1] = languageLabel(rep)
			row[2] = strconv.Itoa(rep.Parsed)
			row[3] = strconv.Itoa(rep.Output)
			row[4] = strconv.Itoa(rep.Merged)
			row[5] = strconv.Itoa(rep.Split)
			row[6] = strconv.Itoa(countActionable(rep))
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, aligns)
}

// Details renders the counters and every warning of a single report.
func Details(rep *pipeline.Report) string {
	if rep == nil {
		return ""
	}

	var sb strings.Builder
	counters := [][]string{
		{"Blocks", strconv.Itoa(rep.Blocks)},
		{"Parsed", strconv.Itoa(rep.Parsed)},
		{"Skipped", strconv.Itoa(rep.Skipped)},
		{"Dropped", strconv.Itoa(rep.Dropped)},
		{"Merged", strconv.Itoa(rep.Merged)},
		{"Split", strconv.Itoa(rep.Split)},
		{"Relieved", strconv.Itoa(rep.Relieved)},
		{"Output", strconv.Itoa(rep.Output)},
		{"Language", languageLabel(rep)},
	}
	sb.WriteString(renderTable([]string{"Counter", "Value"}, counters, []columnAlignment{alignLeft, alignRight}))

	if len(rep.Warnings) == 0 {
		return sb.String()
	}

	rows := make([][]string, 0, len(rep.Warnings))
	for _, w := range rep.Warnings {
		rows = append(rows, []string{string(w.Stage), string(w.Kind), strconv.Itoa(w.Cue + 1), w.Detail})
	}
	sb.WriteString("\n")
	sb.WriteString(renderTable([]string{"Stage", "Kind", "Cue", "Detail"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
	return sb.String()
}

func status(r worker.Result) string {
	switch {
	case r.Err != nil:
		return "error: " + r.Err.Error()
	case r.Skipped:
		return "skipped"
	case r.Report != nil && !r.Report.Clean():
		return "warnings"
	case r.Written:
		return "written"
	}
	return "ok"
}

func countActionable(rep *pipeline.Report) int {
	n := 0
	for _, w := range rep.Warnings {
		if !w.Kind.Informational() {
			n++
		}
	}
	return n
}

func languageLabel(rep *pipeline.Report) string {
	code := rep.Language.String()
	if code == "und" {
		return "-"
	}
	if config.IsCJK(code) {
		return fmt.Sprintf("%s (dense)", code)
	}
	return code
}
