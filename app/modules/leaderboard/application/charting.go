package leaderboardservice

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// chartPalette is the club's scoreboard color scheme.
var chartPalette = struct {
	background drawing.Color
	bar        drawing.Color
	text       drawing.Color
}{
	background: drawing.ColorFromHex("f8f7f2"),
	bar:        drawing.ColorFromHex("2d6a4f"),
	text:       drawing.ColorFromHex("1b1b1b"),
}

// RenderStandingsPNG produces a PNG bar chart of the current standings, one
// bar per player in leaderboard order. Stroke play charts gross totals,
// everything else charts net.
func RenderStandingsPNG(lb Leaderboard) ([]byte, error) {
	if len(lb.Players) == 0 {
		return renderNoDataPlaceholder()
	}

	bars := make([]chart.Value, 0, len(lb.Players))
	for _, row := range lb.Players {
		total := row.NetTotal
		if lb.GameType == sharedtypes.GameTypeStrokePlay {
			total = row.GrossTotal
		}
		bars = append(bars, chart.Value{
			Label: row.Player.Name,
			Value: float64(total),
			Style: chart.Style{
				FillColor:   chartPalette.bar,
				StrokeColor: chartPalette.bar,
			},
		})
	}

	graph := chart.BarChart{
		Title:    "Standings",
		Width:    100 + 120*len(bars),
		Height:   400,
		BarWidth: 60,
		Background: chart.Style{
			FillColor: chartPalette.background,
		},
		Canvas: chart.Style{
			FillColor: chartPalette.background,
		},
		XAxis: chart.Style{
			FontColor: chartPalette.text,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: chartPalette.text,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No scores recorded yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: chartPalette.background,
		},
		Canvas: chart.Style{
			FillColor: chartPalette.background,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(chartPalette.text)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
