package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/pawdeck/internal/gesture"
	"github.com/abelbrown/pawdeck/internal/logging"
	"github.com/abelbrown/pawdeck/internal/session"
)

// snapFPS is the frame rate of the snap-back animation.
const snapFPS = 60

// AppConfig carries the command functions the App depends on.
// The App does NOT hold the fetcher or the cache directly; it reaches
// them only through these functions, which keeps the model testable.
type AppConfig struct {
	// FetchBatch returns a Cmd that assembles a batch for the given
	// session generation and delivers it as a BatchReady message.
	FetchBatch func(gen uint64) tea.Cmd

	// ImageSize looks up the cached byte count for a slot. Optional;
	// zero means unknown (fallback slots have no cached bytes).
	ImageSize func(gen uint64, slot int) int64
}

// App is the root Bubble Tea model. It owns the session controller
// and the gesture tracker and routes every input event to one of them.
type App struct {
	cfg     AppConfig
	ctrl    *session.Controller
	tracker *gesture.Tracker

	keys keyMap
	help help.Model
	spin spinner.Model

	spring    harmonica.Spring
	springPos float64
	springVel float64
	snapping  bool

	width  int
	height int
	ready  bool
	err    error
}

// NewApp creates the root model around an existing controller and
// tracker.
func NewApp(ctrl *session.Controller, tracker *gesture.Tracker, cfg AppConfig) App {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(colorHighlight)),
	)

	return App{
		cfg:     cfg,
		ctrl:    ctrl,
		tracker: tracker,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spin:    s,
		spring:  harmonica.NewSpring(harmonica.FPS(snapFPS), 8.0, 0.6),
	}
}

// Init kicks off the first session load.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.startLoad())
}

// startLoad begins a new session generation and returns the fetch Cmd
// for it. Results for superseded generations are dropped by the
// controller when they arrive.
func (a *App) startLoad() tea.Cmd {
	gen := a.ctrl.BeginLoad()
	a.snapping = false
	if a.cfg.FetchBatch == nil {
		return nil
	}
	return a.cfg.FetchBatch(gen)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		return a.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case BatchReady:
		a.ctrl.CompleteLoad(msg.Gen, msg.Items)
		return a, nil

	case spinner.TickMsg:
		if a.ctrl.State() != session.StateLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case snapTickMsg:
		return a.stepSnap()
	}

	return a, nil
}

// handleKeyMsg processes the button-equivalent commands.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Like):
		if a.ctrl.State() == session.StateBrowsing {
			return a.decide(session.VerdictLiked)
		}
		return a, nil

	case key.Matches(msg, a.keys.Dismiss):
		if a.ctrl.State() == session.StateBrowsing {
			return a.decide(session.VerdictDismissed)
		}
		return a, nil

	case key.Matches(msg, a.keys.Restart):
		if a.ctrl.State() == session.StateLoading {
			return a, nil
		}
		return a, tea.Batch(a.spin.Tick, a.startLoad())
	}

	return a, nil
}

// handleMouseMsg feeds the terminal pointer stream into the gesture
// tracker. Press begins an interaction, motion updates it, release
// ends it and may yield a decision. Stray motion with no interaction
// in progress is ignored by the tracker itself.
func (a App) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.ctrl.State() != session.StateBrowsing {
		return a, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			a.snapping = false
			a.tracker.Begin(float64(msg.X))
		}
		return a, nil

	case tea.MouseActionMotion:
		a.tracker.Update(float64(msg.X))
		return a, nil

	case tea.MouseActionRelease:
		offset := a.tracker.Offset()
		switch a.tracker.End() {
		case gesture.VerdictLike:
			return a.decide(session.VerdictLiked)
		case gesture.VerdictDismiss:
			return a.decide(session.VerdictDismissed)
		default:
			return a.beginSnap(offset)
		}
	}

	return a, nil
}

// decide records a verdict for the current item. The UI never calls
// this outside Browsing, so an error here is a contract bug and ends
// the program rather than corrupting session state.
func (a App) decide(v session.Verdict) (tea.Model, tea.Cmd) {
	if err := a.ctrl.RecordDecision(v); err != nil {
		logging.Error("decision rejected", "verdict", v, "error", err)
		a.err = err
		return a, tea.Quit
	}
	return a, nil
}

// beginSnap starts the spring animation returning the card to center
// after an inconclusive gesture.
func (a App) beginSnap(fromOffset float64) (tea.Model, tea.Cmd) {
	if fromOffset == 0 {
		return a, nil
	}
	a.snapping = true
	a.springPos = fromOffset
	a.springVel = 0
	return a, snapTick()
}

func (a App) stepSnap() (tea.Model, tea.Cmd) {
	if !a.snapping {
		return a, nil
	}
	a.springPos, a.springVel = a.spring.Update(a.springPos, a.springVel, 0)
	if math.Abs(a.springPos) < 0.5 && math.Abs(a.springVel) < 0.5 {
		a.snapping = false
		a.springPos = 0
		return a, nil
	}
	return a, snapTick()
}

func snapTick() tea.Cmd {
	return tea.Tick(time.Second/snapFPS, func(time.Time) tea.Msg {
		return snapTickMsg{}
	})
}

// displayOffset is the card displacement to draw this frame: the live
// gesture offset while dragging, the spring position while snapping.
func (a App) displayOffset() float64 {
	if a.tracker.Active() {
		return a.tracker.Offset()
	}
	if a.snapping {
		return a.springPos
	}
	return 0
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.err != nil {
		return ErrorStyle.Render("Error: " + a.err.Error())
	}

	var body string
	switch a.ctrl.State() {
	case session.StateLoading:
		body = a.viewLoading()
	case session.StateBrowsing:
		body = a.viewBrowsing()
	case session.StateSummary:
		body = a.viewSummary()
	}

	statusBar := StatusBar.Width(a.width).Render(a.help.View(a.keys))
	return lipgloss.Place(a.width, a.height-1, lipgloss.Left, lipgloss.Top, body) + "\n" + statusBar
}

func (a App) viewLoading() string {
	return LoadingStyle.Render(a.spin.View() + " Fetching cats...")
}

func (a App) viewBrowsing() string {
	item, err := a.ctrl.CurrentItem()
	if err != nil {
		// Unreachable: Browsing always has a current item.
		return ErrorStyle.Render(err.Error())
	}

	var (
		offset   = a.displayOffset()
		rotation float64
		opacity  = 1.0
	)
	if a.tracker.Active() {
		rotation = a.tracker.Rotation()
		opacity = a.tracker.Opacity()
	} else if a.snapping {
		rotation = offset * 0.1
		opacity = math.Max(0, 1-math.Abs(offset)/300)
	}

	var size int64
	if a.cfg.ImageSize != nil && item.Source == session.SourceFetched {
		size = a.cfg.ImageSize(a.ctrl.Generation(), a.ctrl.Position())
	}

	return renderCard(item, a.ctrl.Position(), a.ctrl.BatchSize(), offset, rotation, opacity, size, a.width)
}

func (a App) viewSummary() string {
	liked := a.ctrl.Liked()

	header := SummaryHeader.Render(fmt.Sprintf("You liked %d of %d cats!", len(liked), a.ctrl.BatchSize()))
	if len(liked) == 0 {
		return header + "\n" + SummaryEmpty.Render("Tough crowd. Press r to try a fresh batch.")
	}

	body := header + "\n"
	for _, item := range liked {
		line := fmt.Sprintf("♥ cat #%d  %s", item.ID, shortRef(item.ImageRef))
		if item.Source == session.SourceFallback {
			line += " " + FallbackBadge.Render("[fallback]")
		}
		body += SummaryItem.Render(line) + "\n"
	}
	return body
}

// Err returns the fatal error, if any (for the caller after Run).
func (a App) Err() error {
	return a.err
}
