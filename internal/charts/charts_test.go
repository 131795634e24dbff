package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"capitas-dashboard/internal/aggregate"
)

func testView() aggregate.View {
	return aggregate.View{
		Dimension: "year",
		Groups: []aggregate.Group{
			{Key: "2019", Value: 10},
			{Key: "2020", Value: 20},
		},
	}
}

func TestBuildPreservesViewOrder(t *testing.T) {
	spec := Build(testView(), TypeBar, Options{Title: "Prueba", XLabel: "Año"})

	assert.Equal(t, TypeBar, spec.Type)
	assert.Equal(t, "Prueba", spec.Title)
	assert.Equal(t, "Año", spec.XLabel)
	assert.Equal(t, []string{"2019", "2020"}, spec.Labels)
	assert.Equal(t, []Series{{Name: "year", Values: []float64{10, 20}}}, spec.Series)
}

func TestBuildDeterministic(t *testing.T) {
	a := Build(testView(), TypeLine, Options{Title: "Serie"})
	b := Build(testView(), TypeLine, Options{Title: "Serie"})
	assert.Equal(t, a, b)
}

func TestBuildEmptyView(t *testing.T) {
	spec := Build(aggregate.View{Dimension: "gender"}, TypePie, Options{})
	assert.Empty(t, spec.Labels)
	assert.Equal(t, []Series{{Name: "gender", Values: []float64{}}}, spec.Series)
}

func TestShorthandBuilders(t *testing.T) {
	assert.Equal(t, TypeBar, Bar(testView(), Options{}).Type)
	assert.Equal(t, TypePie, Pie(testView(), Options{}).Type)
	assert.Equal(t, TypeLine, Line(testView(), Options{}).Type)
}
