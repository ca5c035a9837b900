package http

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/text-insights/internal/domain/insights"
	apperrors "github.com/yanqian/text-insights/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageTemplate = "index.html"
	chartWidth   = 320.0
	barHeight    = 24
	barGap       = 8
)

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"score": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}).ParseFS(templateFS, "templates/*.html"))
}

type pageView struct {
	Options     insights.Options
	Form        insights.Request
	Warning     string
	Error       string
	Stage       string
	Result      *insights.Result
	Bars        []chartBar
	ChartHeight int
	DownloadURL template.URL
}

type chartBar struct {
	Label string
	Score float64
	Width float64
	Y     int
}

// Index renders the empty demo form.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, pageTemplate, h.newPageView(insights.Request{}))
}

// GenerateForm handles the demo form. Failures re-render the form with the
// submitted values so nothing the user entered is lost.
func (h *Handler) GenerateForm(c *gin.Context) {
	var req insights.Request
	if err := c.ShouldBind(&req); err != nil {
		view := h.newPageView(req)
		view.Error = "Invalid form submission: " + errMessage(err)
		c.HTML(http.StatusBadRequest, pageTemplate, view)
		return
	}

	view := h.newPageView(req)
	res, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		httpErr := fromPipelineError(err)
		if apperrors.IsCode(err, insights.CodeEmptyInput) {
			view.Warning = httpErr.Message
		} else {
			view.Error = httpErr.Message
			view.Stage = httpErr.Stage
			h.logger.Error("generate failed", "code", httpErr.Code, "stage", httpErr.Stage, "error", err)
		}
		c.HTML(httpErr.Status, pageTemplate, view)
		return
	}

	view.Result = &res
	if res.Chart != nil {
		view.Bars = buildBars(*res.Chart)
		view.ChartHeight = len(view.Bars)*(barHeight+barGap) + barGap
	}
	view.DownloadURL = template.URL("data:" + res.Export.MimeType + ";charset=utf-8;base64," +
		base64.StdEncoding.EncodeToString([]byte(res.Export.Content)))
	c.HTML(http.StatusOK, pageTemplate, view)
}

// newPageView fills unset form fields with the control defaults.
func (h *Handler) newPageView(req insights.Request) pageView {
	opts := h.svc.Options()
	if req.MinLength == 0 {
		req.MinLength = opts.MinLength.Default
	}
	if req.MaxLength == 0 {
		req.MaxLength = opts.MaxLength.Default
	}
	if req.NumKeywords == 0 {
		req.NumKeywords = opts.NumKeywords.Default
	}
	if req.NgramRange == "" {
		req.NgramRange = opts.DefaultNgram
	}
	if source, ok := insights.ParseSource(req.Source); ok {
		req.Source = string(source)
	} else {
		req.Source = string(opts.DefaultSource)
	}
	return pageView{Options: opts, Form: req}
}

// buildBars lays the bars out in chart order. The chart's category axis is
// inverted, so the first label is drawn at the top.
func buildBars(chart insights.Chart) []chartBar {
	var maxScore float64
	for _, s := range chart.Scores {
		if s > maxScore {
			maxScore = s
		}
	}
	bars := make([]chartBar, len(chart.Labels))
	for i, label := range chart.Labels {
		row := i
		if !chart.InvertCategoryAxis {
			row = len(chart.Labels) - 1 - i
		}
		width := 0.0
		if maxScore > 0 && chart.Scores[i] > 0 {
			width = chart.Scores[i] / maxScore * chartWidth
		}
		bars[i] = chartBar{
			Label: label,
			Score: chart.Scores[i],
			Width: width,
			Y:     barGap + row*(barHeight+barGap),
		}
	}
	return bars
}
