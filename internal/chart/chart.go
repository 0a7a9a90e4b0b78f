// Package chart builds the analysis visualizations: closing price with
// its SMA overlay, traded volume, RSI with overbought/oversold
// reference lines, the daily high-low/open-close range and the
// movement-category pie. Charts render to HTML for both the CLI
// (written to the results directory) and the web adapter.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"stockscope/internal/model"
)

func axisDates(rows []model.IndicatorRow) []string {
	dates := make([]string, len(rows))
	for i, row := range rows {
		dates[i] = row.Date.Format("2006-01-02")
	}
	return dates
}

// optionalValues maps an optional indicator column to line data, using
// the echarts null marker for undefined entries so the series starts
// where the history suffices.
func optionalValues(rows []model.IndicatorRow, pick func(model.IndicatorRow) *float64) []opts.LineData {
	data := make([]opts.LineData, len(rows))
	for i, row := range rows {
		if v := pick(row); v != nil {
			data[i] = opts.LineData{Value: *v}
		} else {
			data[i] = opts.LineData{Value: "-"}
		}
	}
	return data
}

// PriceChart plots the closing price and the 20-day SMA.
func PriceChart(rows []model.IndicatorRow, ticker string, tf model.Timeframe) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s Stock Price Analysis (%s)", ticker, tf),
		}),
	)

	closes := make([]opts.LineData, len(rows))
	for i, row := range rows {
		closes[i] = opts.LineData{Value: row.Close}
	}

	line.SetXAxis(axisDates(rows)).
		AddSeries(fmt.Sprintf("%s Closing Price", ticker), closes).
		AddSeries("20-Day SMA", optionalValues(rows, func(r model.IndicatorRow) *float64 { return r.SMA20 }))
	return line
}

// VolumeChart plots traded volume as bars.
func VolumeChart(rows []model.IndicatorRow) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Trading Volume"}),
	)

	volumes := make([]opts.BarData, len(rows))
	for i, row := range rows {
		volumes[i] = opts.BarData{Value: row.Volume}
	}

	bar.SetXAxis(axisDates(rows)).AddSeries("Volume", volumes)
	return bar
}

// RSIChart plots the 14-day RSI together with constant 70/30 reference
// series marking the overbought and oversold zones.
func RSIChart(rows []model.IndicatorRow) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Relative Strength Index (RSI)"}),
	)

	reference := func(v float64) []opts.LineData {
		data := make([]opts.LineData, len(rows))
		for i := range rows {
			data[i] = opts.LineData{Value: v}
		}
		return data
	}

	line.SetXAxis(axisDates(rows)).
		AddSeries("RSI (14-Day)", optionalValues(rows, func(r model.IndicatorRow) *float64 { return r.RSI14 })).
		AddSeries("Overbought (70)", reference(70)).
		AddSeries("Oversold (30)", reference(30))
	return line
}

// RangeChart plots the daily high-low range with open-close bodies.
func RangeChart(rows []model.IndicatorRow) *charts.Kline {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Daily Price Range"}),
	)

	bars := make([]opts.KlineData, len(rows))
	for i, row := range rows {
		// echarts kline order: open, close, low, high.
		bars[i] = opts.KlineData{Value: [4]float64{row.Open, row.Close, row.Low, row.High}}
	}

	kline.SetXAxis(axisDates(rows)).AddSeries("Daily Range", bars)
	return kline
}

// PieChart builds the movement-category pie over the whole series.
// Zero-count buckets are omitted; when every bucket is zero there is
// nothing to draw and PieChart returns nil.
func PieChart(rows []model.IndicatorRow, ticker string, tf model.Timeframe) *charts.Pie {
	buckets := CountBuckets(rows)
	if buckets.Total() == 0 {
		return nil
	}

	labels, counts := buckets.bucketSlices()
	data := make([]opts.PieData, 0, len(counts))
	for i, count := range counts {
		if count > 0 {
			data = append(data, opts.PieData{Name: labels[i], Value: count})
		}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s Price Movement Categories (%s)", ticker, tf),
		}),
	)
	pie.AddSeries("Categories", data)
	return pie
}

// NewPage assembles every chart for one analysis into a single
// renderable page. The pie is skipped when it has nothing to show.
func NewPage(rows []model.IndicatorRow, ticker string, tf model.Timeframe) *components.Page {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s (%s)", ticker, tf)
	page.AddCharts(
		PriceChart(rows, ticker, tf),
		VolumeChart(rows),
		RSIChart(rows),
		RangeChart(rows),
	)
	if pie := PieChart(rows, ticker, tf); pie != nil {
		page.AddCharts(pie)
	}
	return page
}

// Render writes the assembled page as a standalone HTML document.
func Render(w io.Writer, rows []model.IndicatorRow, ticker string, tf model.Timeframe) error {
	return NewPage(rows, ticker, tf).Render(w)
}
