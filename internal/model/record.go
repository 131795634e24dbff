package model

// Institution tags for the supported data sources.
const (
	InstitutionONE  = "one"  // Oficina Nacional de Estadística
	InstitutionCNSS = "cnss" // Consejo Nacional de Seguridad Social
)

// Institutions lists every supported institution tag.
var Institutions = []string{InstitutionONE, InstitutionCNSS}

// Canonical metric codes. Column headers that resolve to none of these are
// dropped during cleaning.
const (
	MetricAfiliados          = "afiliados"
	MetricCapitasPagadas     = "capitas_pagadas"
	MetricCapitasDispersadas = "capitas_dispersadas"
	MetricMontoDispersado    = "monto_dispersado"
	MetricRecaudos           = "recaudos"
	MetricPagos              = "pagos"
)

// Canonical category codes shared by regime, gender and client type.
// Unrecognized raw codes map to Unknown so aggregate totals stay
// reconcilable with the source files.
const (
	RegimeSubsidiado   = "subsidiado"
	RegimeContributivo = "contributivo"
	CategoryTotal      = "total"
	CategoryUnknown    = "unknown"

	GenderHombres = "hombres"
	GenderMujeres = "mujeres"

	ClientTitular              = "titular"
	ClientDependienteDirecto   = "dependiente_directo"
	ClientDependienteAdicional = "dependiente_adicional"
)

// ProcessedRecord is one observation in the canonical long format: a single
// (year, metric, category) cell of an institutional export after cleaning.
// Dimensions that do not apply to the source column are empty strings.
type ProcessedRecord struct {
	Institution string  `json:"institution"`
	Year        int     `json:"year"`
	Month       string  `json:"month,omitempty"`
	Metric      string  `json:"metric"`
	Regime      string  `json:"regime,omitempty"`
	Gender      string  `json:"gender,omitempty"`
	ClientType  string  `json:"client_type,omitempty"`
	Amount      float64 `json:"amount"`
}

// ProcessedTable is the ordered set of processed records for one
// institution. It is immutable once written to disk; a rerun of cleaning
// replaces the artifact atomically.
type ProcessedTable struct {
	Institution string            `json:"institution"`
	Records     []ProcessedRecord `json:"records"`
}

// Years returns the distinct years present in the table, ascending.
func (t *ProcessedTable) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, rec := range t.Records {
		if !seen[rec.Year] {
			seen[rec.Year] = true
			years = append(years, rec.Year)
		}
	}
	for i := 1; i < len(years); i++ {
		for j := i; j > 0 && years[j] < years[j-1]; j-- {
			years[j], years[j-1] = years[j-1], years[j]
		}
	}
	return years
}

// FilterYears returns a table containing only records whose year is in the
// given set. An empty set returns the table unchanged.
func (t *ProcessedTable) FilterYears(years []int) *ProcessedTable {
	if len(years) == 0 {
		return t
	}
	want := make(map[int]bool, len(years))
	for _, y := range years {
		want[y] = true
	}
	out := &ProcessedTable{Institution: t.Institution}
	for _, rec := range t.Records {
		if want[rec.Year] {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

// FilterMetric returns a table containing only records with the given
// metric code. An empty metric returns the table unchanged.
func (t *ProcessedTable) FilterMetric(metric string) *ProcessedTable {
	if metric == "" {
		return t
	}
	out := &ProcessedTable{Institution: t.Institution}
	for _, rec := range t.Records {
		if rec.Metric == metric {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

// FilterRegime returns a table containing only records with the given
// regime code. An empty regime returns the table unchanged.
func (t *ProcessedTable) FilterRegime(regime string) *ProcessedTable {
	if regime == "" {
		return t
	}
	out := &ProcessedTable{Institution: t.Institution}
	for _, rec := range t.Records {
		if rec.Regime == regime {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}
