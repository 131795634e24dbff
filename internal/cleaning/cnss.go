package cleaning

import (
	"strings"

	"capitas-dashboard/internal/model"
	"capitas-dashboard/pkg/utils"
)

// CNSSStrategy cleans exports from the Consejo Nacional de Seguridad
// Social: month-by-year tables with a header row, an "año" and a "mes"
// column ("meses" in some files), and one value column per series.
type CNSSStrategy struct {
	Coercer Coercer
}

func (s *CNSSStrategy) Institution() string { return model.InstitutionCNSS }

// Clean melts a CNSS month table into the canonical long format.
func (s *CNSSStrategy) Clean(raw *model.RawTable) (*model.ProcessedTable, model.CleanStats, error) {
	var stats model.CleanStats
	if len(raw.Rows) < 2 {
		return nil, stats, &SchemaError{
			Institution: raw.Institution,
			Column:      "año",
			Path:        raw.SourcePath,
		}
	}

	yearCol, monthCol := -1, -1
	type valueCol struct {
		idx  int
		dims dims
	}
	var valueCols []valueCol

	for i, rawHeader := range raw.Rows[0] {
		header := utils.NormalizeHeader(rawHeader)
		switch header {
		case "año", "años", "anio":
			yearCol = i
		case "mes", "meses":
			monthCol = i
		default:
			if d, ok := parseHeader(header, model.MetricMontoDispersado); ok {
				valueCols = append(valueCols, valueCol{idx: i, dims: d})
			}
		}
	}

	if yearCol < 0 {
		return nil, stats, &SchemaError{Institution: raw.Institution, Column: "año", Path: raw.SourcePath}
	}
	if monthCol < 0 {
		return nil, stats, &SchemaError{Institution: raw.Institution, Column: "mes", Path: raw.SourcePath}
	}
	if len(valueCols) == 0 {
		return nil, stats, &SchemaError{Institution: raw.Institution, Column: "series", Path: raw.SourcePath}
	}

	table := &model.ProcessedTable{Institution: raw.Institution}
	for _, row := range raw.Rows[1:] {
		year, yearOK := s.Coercer.Year(cellAt(row, yearCol))
		month := NormalizeMonth(cellAt(row, monthCol))

		for _, vc := range valueCols {
			cell := strings.TrimSpace(cellAt(row, vc.idx))
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
				Month:       month,
				Metric:      vc.dims.metric,
				Regime:      vc.dims.regime,
				Gender:      vc.dims.gender,
				ClientType:  vc.dims.clientType,
				Amount:      amount,
			})
			stats.RowsKept++
		}
	}

	return table, stats, nil
}
