package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"holidaze-server/availability"
)

// PlotOccupancy renders a stacked bar chart of booked and free days as an
// HTML page.
func PlotOccupancy(w io.Writer, venueName string, days []availability.DayOccupancy) error {
	labels := make([]string, 0, len(days))
	booked := make([]opts.BarData, 0, len(days))
	free := make([]opts.BarData, 0, len(days))
	nBooked := 0

	for _, d := range days {
		labels = append(labels, d.Day.Format(availability.DateLayout))
		if d.Booked {
			nBooked++
			booked = append(booked, opts.BarData{Value: 1, Name: fmt.Sprintf("%d guests", d.Guests)})
			free = append(free, opts.BarData{Value: 0})
		} else {
			booked = append(booked, opts.BarData{Value: 0})
			free = append(free, opts.BarData{Value: 1})
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Occupancy",
			Width:     "1000px",
			Height:    "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    venueName,
			Subtitle: fmt.Sprintf("%d of %d days booked", nBooked, len(days)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(labels).
		AddSeries("Booked", booked).
		AddSeries("Free", free).
		SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "days"}))

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render occupancy chart: %w", err)
	}
	return nil
}
