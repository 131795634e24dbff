package cleaning

import (
	"strings"

	"capitas-dashboard/internal/model"
	"capitas-dashboard/pkg/utils"
)

// dims is the canonical dimension tuple a raw column header resolves to.
// Empty fields mean the dimension does not apply to the column.
type dims struct {
	metric     string
	regime     string
	gender     string
	clientType string
}

// Dimensions a parenthesized qualifier can refine.
const (
	dimRegime = "regime"
	dimGender = "gender"
	dimClient = "client_type"
)

// headerPrefix describes one recognized column family: the dimensions the
// bare prefix fixes, plus which dimension its qualifier refines. An empty
// metric falls back to the strategy's default metric.
type headerPrefix struct {
	base         dims
	qualifierDim string
}

// prefixTable is the closed set of recognized header prefixes across both
// institutions, keyed by normalized prefix text. Headers whose prefix is
// not listed here are dropped entirely.
var prefixTable = map[string]headerPrefix{
	"afiliados": {
		base:         dims{metric: model.MetricAfiliados},
		qualifierDim: dimRegime,
	},
	"numero de cápitas pagadas": {
		base:         dims{metric: model.MetricCapitasPagadas},
		qualifierDim: dimRegime,
	},
	"número de cápitas pagadas": {
		base:         dims{metric: model.MetricCapitasPagadas},
		qualifierDim: dimRegime,
	},
	"numero de cápitas dispersadas": {
		base:         dims{metric: model.MetricCapitasDispersadas},
		qualifierDim: dimClient,
	},
	"número de cápitas dispersadas": {
		base:         dims{metric: model.MetricCapitasDispersadas},
		qualifierDim: dimClient,
	},
	"total de monto dispersado rd$": {
		base:         dims{metric: model.MetricMontoDispersado},
		qualifierDim: dimClient,
	},
	"régimen subsidiado": {
		base:         dims{regime: model.RegimeSubsidiado},
		qualifierDim: dimGender,
	},
	"regimen subsidiado": {
		base:         dims{regime: model.RegimeSubsidiado},
		qualifierDim: dimGender,
	},
	"régimen contributivo": {
		base:         dims{regime: model.RegimeContributivo},
		qualifierDim: dimGender,
	},
	"regimen contributivo": {
		base:         dims{regime: model.RegimeContributivo},
		qualifierDim: dimGender,
	},
	"total": {
		base:         dims{regime: model.CategoryTotal},
		qualifierDim: dimGender,
	},
	"titulares": {
		base: dims{clientType: model.ClientTitular},
	},
	"dependientes directos": {
		base: dims{clientType: model.ClientDependienteDirecto},
	},
	"dependientes adicionales": {
		base: dims{clientType: model.ClientDependienteAdicional},
	},
	"recaudos": {
		base: dims{metric: model.MetricRecaudos},
	},
	"aportes": {
		base: dims{metric: model.MetricRecaudos},
	},
	"pagos": {
		base: dims{metric: model.MetricPagos},
	},
}

// Qualifier vocabularies per dimension. A recognized qualifier maps to its
// canonical code; an unrecognized one maps to the explicit unknown bucket
// of the prefix's qualifier dimension so aggregate totals still reconcile.
var (
	regimeQualifiers = map[string]string{
		"subsidiado":           model.RegimeSubsidiado,
		"régimen subsidiado":   model.RegimeSubsidiado,
		"regimen subsidiado":   model.RegimeSubsidiado,
		"contributivo":         model.RegimeContributivo,
		"régimen contributivo": model.RegimeContributivo,
		"regimen contributivo": model.RegimeContributivo,
		"total":                model.CategoryTotal,
		"todos":                model.CategoryTotal,
	}
	genderQualifiers = map[string]string{
		"hombres":   model.GenderHombres,
		"mujeres":   model.GenderMujeres,
		"masculino": model.GenderHombres,
		"femenino":  model.GenderMujeres,
		"total":     model.CategoryTotal,
	}
	clientQualifiers = map[string]string{
		"titular":                  model.ClientTitular,
		"titulares":                model.ClientTitular,
		"dependiente directo":      model.ClientDependienteDirecto,
		"dependientes directos":    model.ClientDependienteDirecto,
		"dependiente adicional":    model.ClientDependienteAdicional,
		"dependientes adicionales": model.ClientDependienteAdicional,
		"total":                    model.CategoryTotal,
	}
)

// parseHeader resolves a raw column header to its canonical dimensions.
// The header splits into a prefix and an optional parenthesized qualifier:
// "afiliados (subsidiado)" has prefix "afiliados" and qualifier
// "subsidiado". Unrecognized prefixes drop the column (ok=false);
// unrecognized qualifiers keep it under the unknown bucket.
func parseHeader(header, defaultMetric string) (dims, bool) {
	prefix, qualifier := splitQualifier(utils.NormalizeHeader(header))

	entry, ok := prefixTable[prefix]
	if !ok {
		return dims{}, false
	}

	d := entry.base
	if d.metric == "" {
		d.metric = defaultMetric
	}
	if qualifier != "" && entry.qualifierDim != "" {
		applyQualifier(&d, entry.qualifierDim, qualifier)
	}
	return d, true
}

// applyQualifier resolves a qualifier against its declared dimension first,
// then against the remaining vocabularies, and finally falls back to the
// unknown bucket of the declared dimension.
func applyQualifier(d *dims, declaredDim, qualifier string) {
	lookups := []struct {
		dim   string
		table map[string]string
	}{
		{dimGender, genderQualifiers},
		{dimClient, clientQualifiers},
		{dimRegime, regimeQualifiers},
	}

	// Declared dimension wins when it recognizes the qualifier.
	for _, l := range lookups {
		if l.dim != declaredDim {
			continue
		}
		if code, ok := l.table[qualifier]; ok {
			setDim(d, l.dim, code)
			return
		}
	}
	for _, l := range lookups {
		if code, ok := l.table[qualifier]; ok {
			setDim(d, l.dim, code)
			return
		}
	}
	setDim(d, declaredDim, model.CategoryUnknown)
}

func setDim(d *dims, dim, code string) {
	switch dim {
	case dimRegime:
		d.regime = code
	case dimGender:
		d.gender = code
	case dimClient:
		d.clientType = code
	}
}

// splitQualifier splits "prefix (qualifier)" on the last parenthesized
// group. Headers without parentheses return an empty qualifier. A
// placeholder qualifier such as "(nan)" or "()" counts as absent.
func splitQualifier(header string) (prefix, qualifier string) {
	open := strings.LastIndex(header, "(")
	if open < 0 {
		return strings.TrimSpace(header), ""
	}
	end := strings.Index(header[open:], ")")
	if end < 0 {
		return strings.TrimSpace(header), ""
	}
	prefix = strings.TrimSpace(header[:open])
	qualifier = strings.TrimSpace(header[open+1 : open+end])
	switch qualifier {
	case "nan", "null", "n/a", "":
		qualifier = ""
	}
	return prefix, qualifier
}
