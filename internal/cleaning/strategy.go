package cleaning

import (
	"capitas-dashboard/internal/model"
)

// Strategy is one institution's cleaning transformation: raw grid in,
// canonical long-format table plus row diagnostics out. Strategies are
// stateless and safe for concurrent use.
type Strategy interface {
	Institution() string
	Clean(raw *model.RawTable) (*model.ProcessedTable, model.CleanStats, error)
}

// Strategies builds the strategy registry, keyed by institution tag.
func Strategies(coercer Coercer) map[string]Strategy {
	return map[string]Strategy{
		model.InstitutionONE:  &ONEStrategy{Coercer: coercer},
		model.InstitutionCNSS: &CNSSStrategy{Coercer: coercer},
	}
}
