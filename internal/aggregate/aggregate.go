package aggregate

import (
	"sort"
	"strconv"

	"capitas-dashboard/internal/model"
)

// Group is one (key, value) pair of an AggregateView.
type Group struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// View is a grouped summary of a ProcessedTable, derived transiently for
// one chart request and never persisted. Groups carry their presentation
// order.
type View struct {
	Dimension string  `json:"dimension"`
	Groups    []Group `json:"groups"`
}

// Total returns the sum of all group values.
func (v View) Total() float64 {
	var total float64
	for _, g := range v.Groups {
		total += g.Value
	}
	return total
}

// CountByRegime counts records grouped by regime code, ordered by
// descending count with ties broken by regime code ascending.
func CountByRegime(table *model.ProcessedTable) View {
	counts := make(map[string]float64)
	for _, rec := range table.Records {
		regime := rec.Regime
		if regime == "" {
			regime = model.CategoryUnknown
		}
		counts[regime]++
	}

	view := View{Dimension: "regime"}
	for key, n := range counts {
		view.Groups = append(view.Groups, Group{Key: key, Value: n})
	}
	sort.Slice(view.Groups, func(i, j int) bool {
		if view.Groups[i].Value != view.Groups[j].Value {
			return view.Groups[i].Value > view.Groups[j].Value
		}
		return view.Groups[i].Key < view.Groups[j].Key
	})
	return view
}

// SumByYear sums the amount of records carrying the given metric, grouped
// by year in ascending order. An empty metric sums every record.
func SumByYear(table *model.ProcessedTable, metric string) View {
	sums := make(map[int]float64)
	for _, rec := range table.Records {
		if metric != "" && rec.Metric != metric {
			continue
		}
		sums[rec.Year] += rec.Amount
	}

	years := make([]int, 0, len(sums))
	for year := range sums {
		years = append(years, year)
	}
	sort.Ints(years)

	view := View{Dimension: "year"}
	for _, year := range years {
		view.Groups = append(view.Groups, Group{Key: strconv.Itoa(year), Value: sums[year]})
	}
	return view
}

// SumByGender sums amounts grouped by gender. Records with a missing or
// unrecognized gender code form their own "unknown" group rather than
// being excluded, so the view always reconciles with the table total.
func SumByGender(table *model.ProcessedTable) View {
	sums := make(map[string]float64)
	for _, rec := range table.Records {
		gender := rec.Gender
		switch gender {
		case model.GenderHombres, model.GenderMujeres, model.CategoryTotal:
		default:
			gender = model.CategoryUnknown
		}
		sums[gender] += rec.Amount
	}

	keys := make([]string, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	view := View{Dimension: "gender"}
	for _, key := range keys {
		view.Groups = append(view.Groups, Group{Key: key, Value: sums[key]})
	}
	return view
}

// ShareByClientType expresses each client type's summed amount as a
// fraction of the grand total, in [0, 1]. When the grand total is zero
// every share is zero by definition; there is no division-by-zero fault.
func ShareByClientType(table *model.ProcessedTable) View {
	sums := make(map[string]float64)
	var total float64
	for _, rec := range table.Records {
		clientType := rec.ClientType
		if clientType == "" {
			clientType = model.CategoryUnknown
		}
		sums[clientType] += rec.Amount
		total += rec.Amount
	}

	keys := make([]string, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	view := View{Dimension: "client_type"}
	for _, key := range keys {
		share := 0.0
		if total > 0 {
			share = sums[key] / total
		}
		view.Groups = append(view.Groups, Group{Key: key, Value: share})
	}
	return view
}
