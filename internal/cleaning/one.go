package cleaning

import (
	"fmt"
	"strings"

	"capitas-dashboard/internal/model"
	"capitas-dashboard/pkg/utils"
)

// ONEStrategy cleans exports from the Oficina Nacional de Estadística.
//
// ONE publishes transposed matrices: a marker row whose first cell reads
// "años" (or "año") starts the data and carries the year values in its
// remaining cells; the next row holds quarter labels; every following row
// is one series, titled by a first-column header that carries forward over
// blank cells plus a second-column subtitle ("Afiliados" + "Subsidiado").
// The last three rows are footnotes. Only fourth-quarter observations are
// kept, matching how the institution reports annual figures.
type ONEStrategy struct {
	Coercer Coercer
}

func (s *ONEStrategy) Institution() string { return model.InstitutionONE }

// footnoteRows is the number of trailing note rows on every ONE export.
const footnoteRows = 3

// Clean reshapes a ONE matrix into the canonical long format.
func (s *ONEStrategy) Clean(raw *model.RawTable) (*model.ProcessedTable, model.CleanStats, error) {
	var stats model.CleanStats

	data, err := trimToMarker(raw)
	if err != nil {
		return nil, stats, err
	}

	yearRow := data[0]
	quarterRow, seriesStart := quarterRowOf(data)

	// Effective header per series row: carried-forward title + subtitle.
	type series struct {
		row  []string
		dims dims
	}
	var (
		seriesRows []series
		title      string
	)
	for _, row := range data[seriesStart:] {
		if c := strings.TrimSpace(cellAt(row, 0)); c != "" {
			title = c
		}
		subtitle := strings.TrimSpace(cellAt(row, 1))
		header := fmt.Sprintf("%s (%s)", title, subtitle)
		d, ok := parseHeader(header, model.MetricCapitasDispersadas)
		if !ok {
			continue // unmapped column family is dropped
		}
		seriesRows = append(seriesRows, series{row: row, dims: d})
	}
	if len(seriesRows) == 0 {
		return nil, stats, &SchemaError{
			Institution: raw.Institution,
			Column:      "series",
			Path:        raw.SourcePath,
		}
	}

	// Each matrix column from index 2 on is one observation.
	table := &model.ProcessedTable{Institution: raw.Institution}
	width := gridWidth(data)
	lastYear := ""
	for col := 2; col < width; col++ {
		yearCell := strings.TrimSpace(cellAt(yearRow, col))
		if yearCell == "" {
			yearCell = lastYear // years forward-fill across quarters
		} else {
			lastYear = yearCell
		}

		if quarterRow != nil {
			quarter := utils.NormalizeHeader(cellAt(quarterRow, col))
			if quarter != "" && quarter != "cuarto trimestre" {
				continue
			}
		}

		year, yearOK := s.Coercer.Year(yearCell)
		for _, sr := range seriesRows {
			cell := strings.TrimSpace(cellAt(sr.row, col))
			if cell == "" {
				continue
			}
			stats.RowsIn++
			amount, ok := ParseAmount(cell)
			if !yearOK || !ok {
				stats.RowsDropped++
				continue
			}
			table.Records = append(table.Records, model.ProcessedRecord{
				Institution: raw.Institution,
				Year:        year,
				Metric:      sr.dims.metric,
				Regime:      sr.dims.regime,
				Gender:      sr.dims.gender,
				ClientType:  sr.dims.clientType,
				Amount:      amount,
			})
			stats.RowsKept++
		}
	}

	return table, stats, nil
}

// trimToMarker slices the grid from the "años" marker row to the start of
// the trailing footnotes.
func trimToMarker(raw *model.RawTable) ([][]string, error) {
	marker := -1
	for i, row := range raw.Rows {
		switch utils.NormalizeHeader(cellAt(row, 0)) {
		case "años", "año":
			marker = i
		}
		if marker >= 0 {
			break
		}
	}
	if marker < 0 {
		return nil, &SchemaError{
			Institution: raw.Institution,
			Column:      "año",
			Path:        raw.SourcePath,
		}
	}

	data := raw.Rows[marker:]
	if len(data) > footnoteRows+2 {
		data = data[: len(data)-footnoteRows : len(data)-footnoteRows]
	}
	if len(data) < 2 {
		return nil, &SchemaError{
			Institution: raw.Institution,
			Column:      "series",
			Path:        raw.SourcePath,
		}
	}
	return data, nil
}

// quarterRowOf finds the quarter-label row: the row right after the years
// row when both its title cells are blank. Exports without quarter labels
// report annual figures directly.
func quarterRowOf(data [][]string) (row []string, seriesStart int) {
	if len(data) > 1 &&
		strings.TrimSpace(cellAt(data[1], 0)) == "" &&
		strings.TrimSpace(cellAt(data[1], 1)) == "" {
		return data[1], 2
	}
	return nil, 1
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func gridWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}
