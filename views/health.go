package views

import (
	"context"
	"fmt"
	"sync"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/flowstate-health/flowstate-tui/health"
	"github.com/flowstate-health/flowstate-tui/widgets"
)

// Daily goals for the gauge row. The aggregator has no goal concept;
// these match the defaults the mobile rings use.
const (
	stepGoal    = 10000
	calorieGoal = 600
)

// HealthView is the wearable-data dashboard tab. It connects to the
// aggregator on demand and loads activity, daily and sleep payloads in
// parallel.
type HealthView struct {
	provider  health.Provider
	source    health.SourceType
	postEvent func(vaxis.Event)

	// Window is how far back the load reaches. Defaults to 7 days.
	Window time.Duration

	mu        sync.Mutex
	connected bool
	busy      bool // a connect or load is in flight
	loaded    bool
	loadErr   error
	activity  *health.ActivityPayload
	daily     *health.DailyPayload
	sleep     *health.SleepPayload
	hrSpark   widgets.Sparkline
}

// NewHealthView creates a HealthView backed by the given provider.
func NewHealthView(provider health.Provider, source health.SourceType, postEvent func(vaxis.Event)) *HealthView {
	return &HealthView{
		provider:  provider,
		source:    source,
		postEvent: postEvent,
		Window:    7 * 24 * time.Hour,
	}
}

// Connected reports whether the aggregator connection succeeded.
func (hv *HealthView) Connected() bool {
	hv.mu.Lock()
	defer hv.mu.Unlock()
	return hv.connected
}

// Loaded reports whether payloads are ready to render.
func (hv *HealthView) Loaded() bool {
	hv.mu.Lock()
	defer hv.mu.Unlock()
	return hv.loaded && hv.loadErr == nil
}

// Connect authenticates against the aggregator in the background. The
// outcome arrives as a HealthConnected event. Repeated calls while one
// attempt is in flight are ignored.
func (hv *HealthView) Connect() {
	hv.mu.Lock()
	if hv.busy || hv.connected {
		hv.mu.Unlock()
		return
	}
	hv.busy = true
	hv.loadErr = nil
	hv.mu.Unlock()

	go func() {
		err := hv.provider.Connect(context.Background(), hv.source)
		hv.post(HealthConnected{Err: err})
	}()
}

// HandleConnected applies the connection outcome. On success it kicks
// off the initial load.
func (hv *HealthView) HandleConnected(ev HealthConnected) {
	hv.mu.Lock()
	hv.busy = false
	if ev.Err != nil {
		hv.loadErr = ev.Err
		hv.mu.Unlock()
		return
	}
	hv.connected = true
	hv.mu.Unlock()
	hv.Load()
}

// Load fetches the three payloads in parallel. Completion arrives as a
// HealthLoaded event. Ignored before Connect or while a fetch is
// already running.
func (hv *HealthView) Load() {
	hv.mu.Lock()
	if hv.busy || !hv.connected {
		hv.mu.Unlock()
		return
	}
	hv.busy = true
	hv.loadErr = nil
	window := hv.Window
	hv.mu.Unlock()

	go func() {
		end := time.Now()
		start := end.Add(-window)
		g, gctx := errgroup.WithContext(context.Background())

		var activity *health.ActivityPayload
		var daily *health.DailyPayload
		var sleep *health.SleepPayload

		g.Go(func() error {
			p, err := hv.provider.Activity(gctx, hv.source, start, end)
			if err != nil {
				return fmt.Errorf("activity: %w", err)
			}
			activity = p
			return nil
		})
		g.Go(func() error {
			p, err := hv.provider.Daily(gctx, hv.source, start, end)
			if err != nil {
				return fmt.Errorf("daily: %w", err)
			}
			daily = p
			return nil
		})
		g.Go(func() error {
			p, err := hv.provider.Sleep(gctx, hv.source, start, end)
			if err != nil {
				return fmt.Errorf("sleep: %w", err)
			}
			sleep = p
			return nil
		})

		err := g.Wait()
		hv.mu.Lock()
		if err == nil {
			hv.activity = activity
			hv.daily = daily
			hv.sleep = sleep
			hv.hrSpark.SetValues(activity.HeartRate.Detailed.Samples)
		}
		hv.mu.Unlock()
		hv.post(HealthLoaded{Err: err})
	}()
}

// HandleLoaded applies the load outcome.
func (hv *HealthView) HandleLoaded(ev HealthLoaded) {
	hv.mu.Lock()
	defer hv.mu.Unlock()
	hv.busy = false
	if ev.Err != nil {
		hv.loadErr = ev.Err
		return
	}
	hv.loaded = true
}

func (hv *HealthView) post(ev vaxis.Event) {
	if hv.postEvent != nil {
		hv.postEvent(ev)
	}
}

// Draw renders the tab for its current state.
func (hv *HealthView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	hv.mu.Lock()
	connected := hv.connected
	busy := hv.busy
	loaded := hv.loaded
	loadErr := hv.loadErr
	hv.mu.Unlock()

	switch {
	case busy && !connected:
		return drawWaitingState(ctx, hv, "Connecting to "+string(hv.source)+"...")
	case busy:
		return drawWaitingState(ctx, hv, "Loading health data...")
	case loadErr != nil:
		return hv.drawMessage(ctx, "Health data unavailable: "+loadErr.Error(), vaxis.Style{Foreground: vaxis.IndexColor(1)})
	case loaded:
		return hv.drawData(ctx)
	}
	return hv.drawMessage(ctx, "Not connected. Press c to connect "+string(hv.source)+".", vaxis.Style{Attribute: vaxis.AttrDim})
}

func (hv *HealthView) drawMessage(ctx vxfw.DrawContext, msg string, style vaxis.Style) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, hv)
	label := richtext.New([]vaxis.Segment{{Text: msg, Style: style}})
	labelSurf, err := label.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, labelSurf)
	return s, nil
}

func (hv *HealthView) drawData(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	hv.mu.Lock()
	activity := hv.activity
	daily := hv.daily
	sleep := hv.sleep
	sparkCount := hv.hrSpark.Count()
	hv.mu.Unlock()

	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, hv)
	row := 0
	barWidth := 20

	stepsGauge := &widgets.Gauge{
		Label:    "STEPS",
		Value:    float64(daily.Steps),
		Max:      stepGoal,
		Suffix:   fmt.Sprintf("%s / %s", humanize.Comma(int64(daily.Steps)), humanize.Comma(stepGoal)),
		BarWidth: barWidth,
	}
	stepsSurf, err := stepsGauge.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, row, stepsSurf)
	row++

	calGauge := &widgets.Gauge{
		Label:    "CALS",
		Value:    activity.Calories.NetActivity,
		Max:      calorieGoal,
		Suffix:   fmt.Sprintf("%.0f / %d kcal", activity.Calories.NetActivity, calorieGoal),
		BarWidth: barWidth,
	}
	calSurf, err := calGauge.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, row, calSurf)
	row += 2

	if sparkCount > 0 {
		hrLabel := richtext.New([]vaxis.Segment{
			{Text: "HR", Style: vaxis.Style{Attribute: vaxis.AttrBold}},
			{Text: fmt.Sprintf("  avg %.0f bpm", activity.HeartRate.Summary.AvgBPM), Style: vaxis.Style{Attribute: vaxis.AttrDim}},
		})
		hrSurf, err := hrLabel.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, row, hrSurf)
		row++

		hv.mu.Lock()
		sparkSurf, sparkErr := hv.hrSpark.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
		hv.mu.Unlock()
		if sparkErr != nil {
			return vxfw.Surface{}, sparkErr
		}
		s.AddChild(0, row, sparkSurf)
		row += 2
	}

	sleepHours := sleep.DurationSeconds / 3600
	deepHours := sleep.DeepSeconds / 3600
	table := &widgets.MetricTable{Rows: []widgets.MetricRow{
		{Label: "Resting HR", Value: fmt.Sprintf("%.0f bpm", daily.RestingBPM)},
		{Label: "HRV", Value: fmt.Sprintf("%.0f ms", activity.HeartRate.Summary.AvgHRV), Note: "SDNN"},
		{Label: "Distance", Value: fmt.Sprintf("%.1f km", daily.DistanceMeters/1000)},
		{Label: "Active", Value: fmtActiveTime(daily.ActiveSeconds)},
		{Label: "Sleep", Value: fmt.Sprintf("%.1f h", sleepHours), Note: fmt.Sprintf("%.1f h deep · %.0f%% efficiency", deepHours, sleep.Efficiency)},
	}}
	tableSurf, err := table.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: uint16(len(table.Rows))}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, row, tableSurf)
	row += len(table.Rows) + 1

	hint := richtext.New([]vaxis.Segment{
		{Text: "r reload", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
	})
	hintSurf, err := hint.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, row, hintSurf)

	return s, nil
}

// fmtActiveTime renders active seconds as "1h 23m" or "45m".
func fmtActiveTime(seconds float64) string {
	d := time.Duration(seconds) * time.Second
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
