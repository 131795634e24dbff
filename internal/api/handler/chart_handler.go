package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"capitas-dashboard/internal/aggregate"
	"capitas-dashboard/internal/charts"
	"capitas-dashboard/internal/cleaning"
	"capitas-dashboard/internal/model"
	"capitas-dashboard/pkg/utils"
)

// ChartHandler serves chart specifications built from the processed
// artifacts. Every request reads a fresh immutable snapshot of the
// institution's table, so concurrent renders share no mutable state.
type ChartHandler struct {
	dirs   *utils.DataDirs
	logger *slog.Logger
}

// NewChartHandler creates a chart handler.
func NewChartHandler(dirs *utils.DataDirs, logger *slog.Logger) *ChartHandler {
	return &ChartHandler{
		dirs:   dirs,
		logger: logger.With(slog.String("component", "chart_handler")),
	}
}

// InstitutionStatus reports whether an institution has processed data to
// chart. Institutions whose cleaning failed simply report has_data=false,
// so the dashboard degrades to "no data" instead of crashing.
type InstitutionStatus struct {
	Tag     string `json:"tag"`
	HasData bool   `json:"has_data"`
}

// ListInstitutions lists institutions and artifact availability
// @Summary List institutions
// @Produce json
// @Success 200 {array} handler.InstitutionStatus
// @Router /institutions [get]
func (h *ChartHandler) ListInstitutions(w http.ResponseWriter, r *http.Request) {
	statuses := make([]InstitutionStatus, 0, len(model.Institutions))
	for _, tag := range model.Institutions {
		statuses = append(statuses, InstitutionStatus{
			Tag:     tag,
			HasData: h.dirs.HasProcessed(tag),
		})
	}
	render.JSON(w, r, statuses)
}

// GetYears lists the years available for an institution
// @Summary List available years
// @Produce json
// @Param tag path string true "Institution tag"
// @Success 200 {object} map[string]interface{} "Available years"
// @Failure 404 {object} map[string]interface{} "No processed data"
// @Router /institutions/{tag}/years [get]
func (h *ChartHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	table, ok := h.loadTable(w, r)
	if !ok {
		return
	}
	years := table.Years()
	if years == nil {
		years = []int{}
	}
	render.JSON(w, r, map[string]interface{}{
		"institution": table.Institution,
		"years":       years,
	})
}

// GetChart builds a chart specification
// @Summary Build a chart specification
// @Description Aggregate the institution's processed table and return a declarative chart spec
// @Produce json
// @Param tag path string true "Institution tag"
// @Param chart path string true "Chart name" Enums(afiliados, capitas-pagadas, capitas-genero, participacion-monto, regimenes)
// @Param years query string false "Comma-separated year filter"
// @Param regime query string false "Regime filter" Enums(subsidiado, contributivo, total)
// @Success 200 {object} charts.Spec
// @Failure 404 {object} map[string]interface{} "No processed data"
// @Failure 422 {object} map[string]interface{} "Unknown filter value"
// @Router /institutions/{tag}/charts/{chart} [get]
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	table, ok := h.loadTable(w, r)
	if !ok {
		return
	}

	years, err := utils.ParseYearList(r.URL.Query().Get("years"))
	if err != nil {
		unprocessable(w, r, err.Error())
		return
	}
	if len(years) > 0 {
		filtered := table.FilterYears(years)
		if len(filtered.Records) == 0 {
			unprocessable(w, r, "years not found in the data")
			return
		}
		table = filtered
	}

	if regime := r.URL.Query().Get("regime"); regime != "" {
		switch regime {
		case model.RegimeSubsidiado, model.RegimeContributivo, model.CategoryTotal:
			table = table.FilterRegime(regime)
		default:
			unprocessable(w, r, "unknown regime filter")
			return
		}
	}

	spec, ok := buildChart(chi.URLParam(r, "chart"), table)
	if !ok {
		notFound(w, r, "unknown chart")
		return
	}
	render.JSON(w, r, spec)
}

// buildChart maps a chart name to its aggregation and chart type. Builders
// perform no aggregation themselves; the view is computed here and handed
// over as-is.
func buildChart(name string, table *model.ProcessedTable) (charts.Spec, bool) {
	switch name {
	case "afiliados":
		view := aggregate.SumByYear(table, model.MetricAfiliados)
		return charts.Line(view, charts.Options{
			Title:  "Cantidad de Afiliados",
			XLabel: "Año",
		}), true
	case "capitas-pagadas":
		view := aggregate.SumByYear(table, model.MetricCapitasPagadas)
		return charts.Bar(view, charts.Options{
			Title:  "Número de cápitas pagadas",
			XLabel: "Año",
		}), true
	case "capitas-genero":
		view := aggregate.SumByGender(table.FilterMetric(model.MetricCapitasDispersadas))
		return charts.Bar(view, charts.Options{
			Title:  "Cápitas dispersadas por género",
			XLabel: "Género",
		}), true
	case "participacion-monto":
		view := aggregate.ShareByClientType(montoByClientType(table))
		return charts.Pie(view, charts.Options{
			Title: "Participación del monto dispersado por tipo de cliente",
		}), true
	case "regimenes":
		view := aggregate.CountByRegime(table)
		return charts.Bar(view, charts.Options{
			Title:  "Registros por régimen",
			XLabel: "Régimen",
		}), true
	}
	return charts.Spec{}, false
}

// montoByClientType keeps the disbursed-amount records that carry a real
// client type; the source's own "total" column would otherwise double the
// grand total and halve every share.
func montoByClientType(table *model.ProcessedTable) *model.ProcessedTable {
	out := &model.ProcessedTable{Institution: table.Institution}
	for _, rec := range table.FilterMetric(model.MetricMontoDispersado).Records {
		if rec.ClientType == model.CategoryTotal {
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

// loadTable reads the institution's processed artifact, responding with a
// "no data" 404 when it is missing or unreadable.
func (h *ChartHandler) loadTable(w http.ResponseWriter, r *http.Request) (*model.ProcessedTable, bool) {
	tag := chi.URLParam(r, "tag")
	path := h.dirs.ProcessedPath(tag)
	if !h.dirs.HasProcessed(tag) {
		notFound(w, r, "no processed data for institution")
		return nil, false
	}
	table, err := cleaning.ReadArtifact(path)
	if err != nil {
		h.logger.Error("failed to read artifact",
			slog.String("institution", tag),
			slog.String("error", err.Error()))
		notFound(w, r, "no processed data for institution")
		return nil, false
	}
	table.Institution = tag
	return table, true
}
