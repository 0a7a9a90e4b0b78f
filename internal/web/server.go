// Package web exposes the analysis over a small HTML form: a front
// page with ticker and timeframe inputs, a result page with the
// report text and embedded charts, and a liveness endpoint.
package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"stockscope/internal/analyzer"
	"stockscope/internal/chart"
	"stockscope/internal/model"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<title>StockScope</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; color: #1F2937; }
form { margin-bottom: 2em; }
input, select, button { font-size: 1em; padding: 0.3em; }
.error { background: #FEE2E2; color: #991B1B; padding: 1em; border-radius: 4px; margin-bottom: 1em; }
pre.report { background: #F3F4F6; padding: 1em; border-radius: 4px; white-space: pre-wrap; }
iframe { width: 100%; height: 640px; border: 1px solid #D1D5DB; border-radius: 4px; }
</style>
</head>
<body>
<h1>StockScope</h1>
<form method="POST" action="/analyze">
  <label>Ticker: <input type="text" name="ticker" value="{{.Ticker}}" placeholder="AAPL"></label>
  <label>Timeframe:
    <select name="timeframe">
      {{range .Timeframes}}<option value="{{.}}"{{if eq . $.Timeframe}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
  <button type="submit">Analyze</button>
</form>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
{{if .Report}}
<pre class="report">{{.Report}}</pre>
<iframe src="{{.ChartURL}}"></iframe>
{{end}}
</body>
</html>
`

// Server handles the web form. One analysis per request, no shared
// mutable state.
type Server struct {
	analyzer *analyzer.Analyzer
	log      logrus.FieldLogger
	tmpl     *template.Template
	mux      *http.ServeMux
}

func NewServer(a *analyzer.Analyzer, log logrus.FieldLogger) *Server {
	s := &Server{
		analyzer: a,
		log:      log,
		tmpl:     template.Must(template.New("page").Parse(pageTemplate)),
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/analyze", s.handleAnalyze)
	s.mux.HandleFunc("/charts", s.handleCharts)
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	return s
}

// Handler returns the routing handler for the server.
func (s *Server) Handler() http.Handler { return s.mux }

type pageData struct {
	Ticker     string
	Timeframe  model.Timeframe
	Timeframes []model.Timeframe
	Error      string
	Report     string
	ChartURL   string
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	data.Timeframes = model.Timeframes
	if data.Timeframe == "" {
		data.Timeframe = model.Timeframe1Y
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.Execute(w, data); err != nil {
		s.log.WithError(err).Error("failed to render page")
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.render(w, http.StatusOK, pageData{})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ticker := r.FormValue("ticker")
	timeframe := r.FormValue("timeframe")

	tf, err := model.ParseTimeframe(timeframe)
	if err != nil {
		s.render(w, http.StatusBadRequest, pageData{
			Ticker: ticker,
			Error:  fmt.Sprintf("Invalid input: Please provide a valid ticker and timeframe (%s).", model.TimeframeList()),
		})
		return
	}

	report, _, err := s.analyzer.Analyze(r.Context(), ticker, tf)
	if err != nil {
		s.render(w, statusFor(err), pageData{
			Ticker:    ticker,
			Timeframe: tf,
			Error:     err.Error(),
		})
		return
	}

	chartURL := "/charts?" + url.Values{
		"ticker":    {report.Ticker},
		"timeframe": {string(tf)},
	}.Encode()

	s.render(w, http.StatusOK, pageData{
		Ticker:    report.Ticker,
		Timeframe: tf,
		Report:    report.Summary(),
		ChartURL:  chartURL,
	})
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	timeframe := r.URL.Query().Get("timeframe")

	tf, err := model.ParseTimeframe(timeframe)
	if err != nil {
		http.Error(w, "invalid timeframe", http.StatusBadRequest)
		return
	}

	report, rows, err := s.analyzer.Analyze(r.Context(), ticker, tf)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.Render(w, rows, report.Ticker, tf); err != nil {
		s.log.WithError(err).Error("failed to render charts")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// statusFor maps analysis failures to HTTP statuses: bad user input is
// a 400, upstream data trouble a 502.
func statusFor(err error) int {
	var verr *analyzer.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	var derr *analyzer.DataError
	if errors.As(err, &derr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
