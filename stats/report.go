package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/internal/ui"
)

const (
	barChartChar  = "▇"
	dayLayout     = "Mon Jan 02"
	noSessionsMsg = "No sessions found for the specified time range"
)

// Report summarises the sessions of a reporting period.
type Report struct {
	Start      time.Time
	End        time.Time
	Categories []CategoryTotal
	Days       []DayTotal
	Total      time.Duration
	Sessions   int
}

// NewReport aggregates the sessions that started within [start, end].
func NewReport(
	sessions []models.Session,
	tasks []models.Task,
	start, end time.Time,
	loc *time.Location,
) *Report {
	sessions = Filter(sessions, start, end)
	done, _ := finished(sessions, tasks)

	r := &Report{
		Start:      start,
		End:        end,
		Categories: Categories(done, tasks),
		Days:       ByDay(done, loc),
		Sessions:   len(done),
	}

	for i := range done {
		r.Total += done[i].Duration
	}

	// all-time reports begin at the first session
	if r.Start.IsZero() && len(done) > 0 {
		r.Start = done[0].StartTime
	}

	return r
}

type jsonCategory struct {
	Category     string `json:"category"`
	TotalSeconds int64  `json:"total_seconds"`
	Sessions     int    `json:"sessions"`
}

type jsonDay struct {
	Day          string `json:"day"`
	TotalSeconds int64  `json:"total_seconds"`
}

type jsonReport struct {
	Start        time.Time      `json:"start"`
	End          time.Time      `json:"end"`
	Categories   []jsonCategory `json:"categories"`
	Days         []jsonDay      `json:"days"`
	TotalSeconds int64          `json:"total_seconds"`
	Sessions     int            `json:"sessions"`
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

// ToJSON encodes the report with durations in whole seconds.
func (r *Report) ToJSON() ([]byte, error) {
	out := jsonReport{
		Start:        r.Start,
		End:          r.End,
		Categories:   make([]jsonCategory, 0, len(r.Categories)),
		Days:         make([]jsonDay, 0, len(r.Days)),
		TotalSeconds: seconds(r.Total),
		Sessions:     r.Sessions,
	}

	for _, c := range r.Categories {
		out.Categories = append(out.Categories, jsonCategory{
			Category:     c.Category,
			TotalSeconds: seconds(c.Total),
			Sessions:     c.Sessions,
		})
	}

	for _, d := range r.Days {
		out.Days = append(out.Days, jsonDay{
			Day:          d.Day.Format(time.DateOnly),
			TotalSeconds: seconds(d.Total),
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

func humanize(d time.Duration) string {
	//nolint:gomnd // limit to first 2 units
	return durafmt.Parse(d.Truncate(time.Second)).
		LimitToUnit("hours").
		LimitFirstN(2).
		String()
}

func (r *Report) summary() string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	timeLogged := fmt.Sprintf("Time logged: %s\n", ui.Green(humanize(r.Total)))

	sessions := fmt.Sprintln("Sessions:", ui.Green(r.Sessions))

	return header + timeLogged + sessions
}

func (r *Report) categories() string {
	if len(r.Categories) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n%s\n", ui.Blue("Categories")))

	for _, c := range r.Categories {
		b.WriteString(fmt.Sprintf(
			"%s: %s (%d sessions)\n",
			c.Category,
			ui.Green(humanize(c.Total)),
			c.Sessions,
		))
	}

	return b.String()
}

func (r *Report) barChart() string {
	if len(r.Days) == 0 {
		return ""
	}

	header := ui.Blue("\nDaily breakdown (minutes)")

	bars := make(pterm.Bars, 0, len(r.Days))

	for _, d := range r.Days {
		bars = append(bars, pterm.Bar{
			Value: int(d.Total.Round(time.Minute) / time.Minute),
			Label: d.Day.Format(dayLayout),
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

// Render writes the report to w as styled terminal output.
func (r *Report) Render(w io.Writer) {
	if r.Sessions == 0 {
		fmt.Fprintln(w, noSessionsMsg)
		return
	}

	period := "Reporting period: " +
		r.Start.Format("January 02, 2006") +
		" - " +
		r.End.Format("January 02, 2006")

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln(period)

	output := fmt.Sprint(
		header,
		r.summary(),
		r.categories(),
		r.barChart(),
	)

	fmt.Fprintln(w, strings.TrimSpace(output))
}
