package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capitas-dashboard/internal/model"
)

func rec(year int, metric, regime, gender, clientType string, amount float64) model.ProcessedRecord {
	return model.ProcessedRecord{
		Institution: model.InstitutionONE,
		Year:        year,
		Metric:      metric,
		Regime:      regime,
		Gender:      gender,
		ClientType:  clientType,
		Amount:      amount,
	}
}

func TestCountByRegime(t *testing.T) {
	table := &model.ProcessedTable{Records: []model.ProcessedRecord{
		rec(2020, model.MetricAfiliados, model.RegimeSubsidiado, "", "", 1),
		rec(2020, model.MetricAfiliados, model.RegimeSubsidiado, "", "", 2),
		rec(2020, model.MetricAfiliados, model.RegimeContributivo, "", "", 3),
	}}

	view := CountByRegime(table)
	assert.Equal(t, "regime", view.Dimension)
	assert.Equal(t, []Group{
		{Key: model.RegimeSubsidiado, Value: 2},
		{Key: model.RegimeContributivo, Value: 1},
	}, view.Groups)
}

func TestCountByRegimeTieBreaksByKey(t *testing.T) {
	table := &model.ProcessedTable{Records: []model.ProcessedRecord{
		rec(2020, model.MetricAfiliados, model.RegimeSubsidiado, "", "", 1),
		rec(2020, model.MetricAfiliados, model.RegimeContributivo, "", "", 1),
	}}

	view := CountByRegime(table)
	assert.Equal(t, []Group{
		{Key: model.RegimeContributivo, Value: 1},
		{Key: model.RegimeSubsidiado, Value: 1},
	}, view.Groups)
}

func TestCountByRegimeUnknownBucket(t *testing.T) {
	table := &model.ProcessedTable{Records: []model.ProcessedRecord{
		rec(2020, model.MetricRecaudos, "", "", "", 1),
		rec(2020, model.MetricRecaudos, "", "", "", 1),
	}}

	view := CountByRegime(table)
	require.Len(t, view.Groups, 1)
	assert.Equal(t, model.CategoryUnknown, view.Groups[0].Key)
	assert.Equal(t, 2.0, view.Groups[0].Value)
}

func TestSumByYear(t *testing.T) {
	table := &model.ProcessedTable{Records: []model.ProcessedRecord{
		rec(2021, model.MetricAfiliados, "", "", "", 10),
		rec(2019, model.MetricAfiliados, "", "", "", 5),
		rec(2019, model.MetricAfiliados, "", "", "", 7),
		rec(2020, model.MetricRecaudos, "", "", "", 999),
	}}

	view := SumByYear(table, model.MetricAfiliados)
	assert.Equal(t, "year", view.Dimension)
	assert.Equal(t, []Group{
		{Key: "2019", Value: 12},
		{Key: "2021", Value: 10},
	}, view.Groups)
	assert.Equal(t, 22.0, view.Total())
}

func TestSumByYearAllMetrics(t *testing.T) {
	table := &model.ProcessedTable{Records: []model.ProcessedRecord{
		rec(2020, model.MetricAfiliados, "", "", "", 1),
		rec(2020, model.MetricRecaudos, "", "", "", 2),
	}}

	view := SumByYear(table, "")
	require.Len(t, view.Groups, 1)
	assert.Equal(t, 3.0, view.Groups[0].Value)
}

func TestSumByGender(t *testing.T) {
	table := &model.ProcessedTable{Records: []model.ProcessedRecord{
		rec(2020, model.MetricCapitasDispersadas, "", model.GenderMujeres, "", 8),
		rec(2020, model.MetricCapitasDispersadas, "", model.GenderHombres, "", 5),
		rec(2020, model.MetricCapitasDispersadas, "", "X", "", 1),
		rec(2020, model.MetricCapitasDispersadas, "", "", "", 1),
	}}

	view := SumByGender(table)
	assert.Equal(t, []Group{
		{Key: model.GenderHombres, Value: 5},
		{Key: model.GenderMujeres, Value: 8},
		{Key: model.CategoryUnknown, Value: 2},
	}, view.Groups)
	assert.Equal(t, 15.0, view.Total(), "unknown bucket keeps the view reconcilable")
}

func TestShareByClientType(t *testing.T) {
	table := &model.ProcessedTable{Records: []model.ProcessedRecord{
		rec(2020, model.MetricMontoDispersado, "", "", model.ClientTitular, 60),
		rec(2020, model.MetricMontoDispersado, "", "", model.ClientDependienteDirecto, 30),
		rec(2020, model.MetricMontoDispersado, "", "", "", 10),
	}}

	view := ShareByClientType(table)
	require.Len(t, view.Groups, 3)
	var total float64
	for _, g := range view.Groups {
		assert.GreaterOrEqual(t, g.Value, 0.0)
		assert.LessOrEqual(t, g.Value, 1.0)
		total += g.Value
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	shares := map[string]float64{}
	for _, g := range view.Groups {
		shares[g.Key] = g.Value
	}
	assert.InDelta(t, 0.6, shares[model.ClientTitular], 1e-9)
	assert.InDelta(t, 0.1, shares[model.CategoryUnknown], 1e-9)
}

func TestShareByClientTypeZeroTotal(t *testing.T) {
	table := &model.ProcessedTable{Records: []model.ProcessedRecord{
		rec(2020, model.MetricMontoDispersado, "", "", model.ClientTitular, 0),
		rec(2020, model.MetricMontoDispersado, "", "", model.ClientDependienteDirecto, 0),
	}}

	view := ShareByClientType(table)
	require.Len(t, view.Groups, 2)
	for _, g := range view.Groups {
		assert.Zero(t, g.Value)
	}
}

func TestEmptyTableViews(t *testing.T) {
	table := &model.ProcessedTable{}
	assert.Empty(t, CountByRegime(table).Groups)
	assert.Empty(t, SumByYear(table, "").Groups)
	assert.Empty(t, SumByGender(table).Groups)
	assert.Empty(t, ShareByClientType(table).Groups)
}
