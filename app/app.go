package app

import (
	"fmt"
	"log"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"

	"github.com/flowstate-health/flowstate-tui/health"
	"github.com/flowstate-health/flowstate-tui/internal"
	"github.com/flowstate-health/flowstate-tui/scene"
	"github.com/flowstate-health/flowstate-tui/views"
	"github.com/flowstate-health/flowstate-tui/widgets"
)

// panelRows is the height of the feature panel area at the bottom of
// the home tab.
const panelRows = 8

// featurePanel is the surface every feature panel presents to the app.
type featurePanel interface {
	vxfw.Widget
	HandleKey(vaxis.Key) bool
	Open()
	CloseNow()
	Dismiss()
	State() views.PanelState
	Kind() scene.PanelKind
	SetFadeDuration(time.Duration)
}

// Params holds configuration for creating an App.
type Params struct {
	Services    *internal.Services
	Model       string
	StressScore int
	Activities  []string
	Source      health.SourceType

	// FadeDuration overrides the panel fade window. Zero uses the
	// default; tests set a small value.
	FadeDuration time.Duration
}

// App is the root vxfw widget for flowstate-tui.
type App struct {
	services *internal.Services
	score    int

	tabBar     *widgets.TabBar
	launcher   *widgets.Launcher
	model      *widgets.ModelView
	toasts     *widgets.ToastStack
	controller *scene.Controller

	schedule   *views.ScheduleView
	workout    *views.WorkoutView
	destressor *views.DestressorView
	voice      *views.VoiceView
	heartRisk  *views.HeartRiskView
	healthView *views.HealthView

	launchItems []widgets.LauncherItem
	postEvent   func(vaxis.Event)
}

// New creates the root App widget connected to the given services.
func New(p Params) *App {
	a := &App{
		services: p.Services,
		score:    p.StressScore,
		tabBar:   widgets.NewTabBar([]string{"Home", "Health"}),
		model:    widgets.NewModelView(p.Model),
		toasts:   widgets.NewToastStack(),
	}
	a.controller = scene.NewController(scene.Params{
		Sink: func(cmd scene.Command) { a.post(cmd) },
	})

	a.launchItems = []widgets.LauncherItem{
		{Key: 'd', Kind: scene.PanelDestressor},
		{Key: 'w', Kind: scene.PanelWorkout},
		{Key: 'h', Kind: scene.PanelHeartRisk},
		{Key: 's', Kind: scene.PanelSchedule},
		{Key: 'v', Kind: scene.PanelVoiceInput},
	}
	a.launcher = widgets.NewLauncher(a.launchItems)

	backend := p.Services.Backend
	a.schedule = views.NewScheduleView(backend, a.post)
	a.workout = views.NewWorkoutView(backend, a.post)
	a.destressor = views.NewDestressorView(backend, a.post, p.Activities, p.StressScore)
	a.voice = views.NewVoiceView(backend, p.Services.Transcribe, a.post)
	a.heartRisk = views.NewHeartRiskView(backend, a.post)
	a.heartRisk.Loading = func(on bool) {
		if on {
			a.controller.StartLoadingRotation()
		} else {
			a.controller.StopLoadingRotation()
		}
	}
	a.healthView = views.NewHealthView(p.Services.Health, p.Source, a.post)

	if p.FadeDuration != 0 {
		for _, panel := range a.panels() {
			panel.SetFadeDuration(p.FadeDuration)
		}
	}

	return a
}

// SetPostEvent sets the function used to post events to the vaxis event
// loop. Must be called before any panel is opened.
func (a *App) SetPostEvent(fn func(vaxis.Event)) {
	a.postEvent = fn
}

func (a *App) post(ev vaxis.Event) {
	if a.postEvent != nil {
		a.postEvent(ev)
	}
}

// Controller exposes the scene controller (main wires teardown to it).
func (a *App) Controller() *scene.Controller {
	return a.controller
}

// ActivePanel returns the currently active panel kind, or PanelNone.
func (a *App) ActivePanel() scene.PanelKind {
	return a.controller.Active()
}

// Toasts returns the currently visible toasts.
func (a *App) Toasts() []widgets.Toast {
	return a.toasts.Active()
}

// Model returns the model widget.
func (a *App) Model() *widgets.ModelView {
	return a.model
}

// PanelState returns the lifecycle state of the given panel.
func (a *App) PanelState(kind scene.PanelKind) views.PanelState {
	if p := a.panelFor(kind); p != nil {
		return p.State()
	}
	return views.PanelHidden
}

// Close tears down the controller and any open panel.
func (a *App) Close() {
	a.controller.Close()
	for _, p := range a.panels() {
		p.CloseNow()
	}
}

func (a *App) panels() []featurePanel {
	return []featurePanel{a.schedule, a.workout, a.destressor, a.voice, a.heartRisk}
}

func (a *App) panelFor(kind scene.PanelKind) featurePanel {
	for _, p := range a.panels() {
		if p.Kind() == kind {
			return p
		}
	}
	return nil
}

// activePanel returns the open panel, or nil. Exactly zero or one panel
// is open at any time: the controller's single active field drives it.
func (a *App) activePanel() featurePanel {
	kind := a.controller.Active()
	if kind == scene.PanelNone {
		return nil
	}
	return a.panelFor(kind)
}

// Launch opens the panel, replacing any other open panel. Launching the
// already-active panel dismisses it instead.
func (a *App) Launch(kind scene.PanelKind) {
	active := a.controller.Active()
	if active == kind {
		a.panelFor(kind).Dismiss()
		return
	}
	if active != scene.PanelNone {
		a.panelFor(active).CloseNow()
	}
	a.controller.Activate(kind)
	a.panelFor(kind).Open()
	a.launcher.SetActive(kind)
}

// CaptureEvent handles global keybindings before views process them.
func (a *App) CaptureEvent(ev vaxis.Event) (vxfw.Command, error) {
	key, ok := ev.(vaxis.Key)
	if !ok {
		return nil, nil
	}

	if panel := a.activePanel(); panel != nil {
		if key.Matches(vaxis.KeyEsc) {
			panel.Dismiss()
			return vxfw.ConsumeAndRedraw(), nil
		}
		if panel.HandleKey(key) {
			return vxfw.ConsumeAndRedraw(), nil
		}
		// Launch keys still work under panels without text input.
		for _, item := range a.launchItems {
			if key.Matches(item.Key) {
				a.Launch(item.Kind)
				return vxfw.ConsumeAndRedraw(), nil
			}
		}
		return nil, nil
	}

	switch {
	case key.Matches('q'):
		return vxfw.QuitCmd{}, nil
	case key.Matches('1'):
		a.tabBar.SetActive(0)
		return vxfw.ConsumeAndRedraw(), nil
	case key.Matches('2'):
		a.tabBar.SetActive(1)
		return vxfw.ConsumeAndRedraw(), nil
	case key.Matches(vaxis.KeyTab):
		a.tabBar.Next()
		return vxfw.ConsumeAndRedraw(), nil
	}

	if a.tabBar.Active() == 0 {
		for _, item := range a.launchItems {
			if key.Matches(item.Key) {
				a.Launch(item.Kind)
				return vxfw.ConsumeAndRedraw(), nil
			}
		}
		return nil, nil
	}

	// Health tab keys.
	switch {
	case key.Matches('c'):
		a.healthView.Connect()
		return vxfw.ConsumeAndRedraw(), nil
	case key.Matches('r'):
		a.healthView.Load()
		return vxfw.ConsumeAndRedraw(), nil
	}
	return nil, nil
}

// HandleEvent routes scene commands and view events posted from
// background goroutines.
func (a *App) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	switch ev := ev.(type) {
	case scene.RotateBy, scene.SetOpacity, scene.ResetOrientation:
		a.model.Apply(ev.(scene.Command))
		return vxfw.RedrawCmd{}, nil
	case views.PanelClosed:
		a.controller.Deactivate(ev.Kind)
		if a.launcher.Active() == ev.Kind {
			a.launcher.SetActive(scene.PanelNone)
		}
		return vxfw.RedrawCmd{}, nil
	case views.SubmissionDone:
		if ev.Outcome.OK {
			a.toasts.Push(fmt.Sprintf("%s: added to your calendar", ev.Op), false)
		} else {
			log.Printf("%s submission %s failed: %s", ev.Op, ev.ID, ev.Outcome.Message)
			a.toasts.Push(fmt.Sprintf("%s failed: %s", ev.Op, ev.Outcome.Message), true)
		}
		return vxfw.RedrawCmd{}, nil
	case views.HeartRiskResult:
		a.heartRisk.HandleResult(ev)
		return vxfw.RedrawCmd{}, nil
	case views.TranscriptReady:
		if ev.Err != nil {
			log.Printf("voice capture failed: %v", ev.Err)
		}
		a.voice.HandleTranscript(ev)
		return vxfw.RedrawCmd{}, nil
	case views.HealthConnected:
		if ev.Err != nil {
			log.Printf("health connect failed: %v", ev.Err)
		}
		a.healthView.HandleConnected(ev)
		return vxfw.RedrawCmd{}, nil
	case views.HealthLoaded:
		if ev.Err != nil {
			log.Printf("health load failed: %v", ev.Err)
		}
		a.healthView.HandleLoaded(ev)
		return vxfw.RedrawCmd{}, nil
	}
	return nil, nil
}

// Draw renders the tab bar, the active tab, and any toasts.
func (a *App) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, a)

	tabCtx := ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1})
	tabSurf, err := a.tabBar.Draw(tabCtx)
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, tabSurf)

	contentCtx := ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: ctx.Max.Height - 1})
	var contentSurf vxfw.Surface
	if a.tabBar.Active() == 0 {
		contentSurf, err = a.drawHome(contentCtx)
	} else {
		contentSurf, err = a.healthView.Draw(contentCtx)
	}
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 1, contentSurf)

	if len(a.toasts.Active()) > 0 {
		toastSurf, err := a.toasts.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: ctx.Max.Height}))
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, 1, toastSurf)
	}

	return s, nil
}

// drawHome renders the stress gauge, the model, the active panel (if
// any) and the launcher bar.
func (a *App) drawHome(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, a)
	height := int(ctx.Max.Height)

	gauge := &widgets.Gauge{
		Label:     "STRESS",
		Value:     float64(a.score),
		Max:       100,
		Suffix:    fmt.Sprintf("%d / 100", a.score),
		BarWidth:  20,
		HighIsBad: true,
	}
	gaugeSurf, err := gauge.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, gaugeSurf)

	panel := a.activePanel()
	modelRows := height - 3 // gauge, launcher, spacing
	if panel != nil {
		modelRows -= panelRows
	}
	if modelRows < 0 {
		modelRows = 0
	}

	if modelRows > 0 {
		modelSurf, err := a.model.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: uint16(modelRows)}))
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, 1, modelSurf)
	}

	if panel != nil {
		panelSurf, err := panel.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: panelRows}))
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(1, 1+modelRows, panelSurf)
	}

	if height >= 2 {
		launcherSurf, err := a.launcher.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, height-1, launcherSurf)
	}

	return s, nil
}
