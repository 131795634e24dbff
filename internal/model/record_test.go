package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func table(records ...ProcessedRecord) *ProcessedTable {
	return &ProcessedTable{Institution: InstitutionONE, Records: records}
}

func TestYearsSortedDistinct(t *testing.T) {
	tbl := table(
		ProcessedRecord{Year: 2021},
		ProcessedRecord{Year: 2019},
		ProcessedRecord{Year: 2021},
		ProcessedRecord{Year: 2020},
	)
	assert.Equal(t, []int{2019, 2020, 2021}, tbl.Years())
	assert.Nil(t, table().Years())
}

func TestFilterYears(t *testing.T) {
	tbl := table(
		ProcessedRecord{Year: 2019, Amount: 1},
		ProcessedRecord{Year: 2020, Amount: 2},
		ProcessedRecord{Year: 2021, Amount: 3},
	)

	got := tbl.FilterYears([]int{2019, 2021})
	assert.Len(t, got.Records, 2)
	assert.Equal(t, InstitutionONE, got.Institution)

	// Empty filter means all years.
	assert.Same(t, tbl, tbl.FilterYears(nil))
}

func TestFilterMetricAndRegime(t *testing.T) {
	tbl := table(
		ProcessedRecord{Metric: MetricAfiliados, Regime: RegimeSubsidiado},
		ProcessedRecord{Metric: MetricAfiliados, Regime: RegimeContributivo},
		ProcessedRecord{Metric: MetricRecaudos},
	)

	assert.Len(t, tbl.FilterMetric(MetricAfiliados).Records, 2)
	assert.Len(t, tbl.FilterRegime(RegimeSubsidiado).Records, 1)
	assert.Same(t, tbl, tbl.FilterMetric(""))
	assert.Same(t, tbl, tbl.FilterRegime(""))
}

func TestRawTableEmpty(t *testing.T) {
	assert.True(t, (&RawTable{}).Empty())
	assert.True(t, (&RawTable{Rows: [][]string{{"", ""}}}).Empty())
	assert.False(t, (&RawTable{Rows: [][]string{{"", "x"}}}).Empty())
}
