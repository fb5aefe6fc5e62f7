// Package tui is the terminal front end for editing one catalog product.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/catalogedit/internal/catalog"
	"github.com/jask/catalogedit/internal/editor"
	"github.com/jask/catalogedit/internal/session"
)

// Sessions is the session store the sign-in screen writes to.
type Sessions interface {
	session.Provider
	SignIn(actorID string) error
}

// Options configures an App.
type Options struct {
	ProductID string
	Store     editor.Store
	Session   Sessions
	Logger    *zap.Logger

	// ConfirmDelete requires a second ctrl+d within ConfirmWindow.
	ConfirmDelete bool
	// ConfirmWindow of zero keeps the confirmation armed until the next key.
	ConfirmWindow time.Duration
	// NoticeTimeout of zero keeps notices until dismissed.
	NoticeTimeout time.Duration
}

// Outcome is how the editing session ended.
type Outcome int

const (
	OutcomeCancelled Outcome = iota
	OutcomeUpdated
	OutcomeDeleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeDeleted:
		return "deleted"
	}
	return "cancelled"
}

type screen string

const (
	screenEditor screen = "editor"
	screenSignIn screen = "signin"
)

type (
	mountMsg          struct{}
	resultMsg         struct{ editor.Result }
	confirmExpiredMsg struct{}
	noticeExpiredMsg  struct{ seq int }
)

// App is the bubbletea model. It is also the controller's Navigator and
// Notifier; both are only invoked from inside Update.
type App struct {
	ctx  context.Context
	opts Options
	log  *zap.Logger
	ctl  *editor.Controller

	screen  screen
	inputs  map[catalog.Field]fieldInput
	locked  map[catalog.Field]bool
	focus   int
	signin  textinput.Model
	status  string
	notice  editor.Notice
	seq     int
	armed   bool
	lastOp  editor.Op
	outcome Outcome
	done    bool
	width   int

	pending []tea.Cmd
}

func New(ctx context.Context, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = zap.L()
	}
	a := &App{
		ctx:    ctx,
		opts:   opts,
		log:    log.Named("tui"),
		screen: screenEditor,
		inputs: make(map[catalog.Field]fieldInput),
		locked: make(map[catalog.Field]bool),
	}
	for _, f := range catalog.AllFields() {
		if f == catalog.FieldCategory {
			continue
		}
		a.inputs[f] = newFieldInput(f)
	}
	a.signin = textinput.New()
	a.signin.Prompt = "vendor id: "
	a.signin.CharLimit = 128
	a.ctl = a.newController()
	return a
}

func (a *App) newController() *editor.Controller {
	return editor.New(a.ctx, a.opts.ProductID, editor.Deps{
		Store:     a.opts.Store,
		Session:   a.opts.Session,
		Navigator: a,
		Notifier:  a,
		Logger:    a.log,
	})
}

// Outcome reports how the session ended. It is meaningful after the program
// exits.
func (a *App) Outcome() Outcome { return a.outcome }

// Notice returns the last notice raised. The program quits in the same update
// that reports a successful save or delete, so the caller prints it.
func (a *App) Notice() editor.Notice { return a.notice }

// Navigate implements editor.Navigator.
func (a *App) Navigate(r editor.Route) {
	switch r {
	case editor.RouteSignIn:
		a.log.Info("sign-in required")
		a.screen = screenSignIn
		a.signin.SetValue("")
		a.pending = append(a.pending, a.signin.Focus())
	case editor.RouteList:
		switch a.lastOp {
		case editor.OpDelete:
			a.outcome = OutcomeDeleted
		case editor.OpUpdate:
			a.outcome = OutcomeUpdated
		}
		a.done = true
	}
}

// Notify implements editor.Notifier.
func (a *App) Notify(n editor.Notice) {
	a.notice = n
	a.seq++
	if n.Visible && a.opts.NoticeTimeout > 0 {
		seq := a.seq
		a.pending = append(a.pending, tea.Tick(a.opts.NoticeTimeout, func(time.Time) tea.Msg {
			return noticeExpiredMsg{seq: seq}
		}))
	}
}

func (a *App) Init() tea.Cmd {
	return func() tea.Msg { return mountMsg{} }
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	if a.done {
		a.ctl.Teardown()
		return a, tea.Quit
	}
	cmds := a.pending
	a.pending = nil
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	switch len(cmds) {
	case 0:
		return a, nil
	case 1:
		return a, cmds[0]
	}
	return a, tea.Batch(cmds...)
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		for _, inp := range a.inputs {
			inp.setWidth(max(20, m.Width-20))
		}
		return nil
	case mountMsg:
		return a.start(a.ctl.BeginMount())
	case resultMsg:
		a.lastOp = m.Op
		err := a.ctl.Apply(m.Result)
		if m.Op == editor.OpFetch && err == nil {
			return a.fill()
		}
		return nil
	case confirmExpiredMsg:
		a.disarm()
		return nil
	case noticeExpiredMsg:
		if m.seq == a.seq {
			a.ctl.DismissNotice()
		}
		return nil
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a.quit()
		}
		if a.screen == screenSignIn {
			return a.updateSignIn(m)
		}
		return a.updateEditor(m)
	}
	return nil
}

// start turns a begun task into a command. Errors raised while beginning
// are shown in the status line.
func (a *App) start(task editor.Task, err error) tea.Cmd {
	if err != nil {
		if !errors.Is(err, editor.ErrNoSession) {
			a.status = err.Error()
		}
		a.log.Debug("action refused", zap.Error(err))
		return nil
	}
	a.status = ""
	return func() tea.Msg { return resultMsg{task()} }
}

func (a *App) quit() tea.Cmd {
	a.outcome = OutcomeCancelled
	a.done = true
	return nil
}

func (a *App) updateEditor(m tea.KeyMsg) tea.Cmd {
	key := m.String()
	if key != "ctrl+d" {
		a.disarm()
	}
	snap := a.ctl.Snapshot()

	switch key {
	case "esc":
		return a.quit()
	case "ctrl+n":
		a.ctl.DismissNotice()
		return nil
	}

	switch snap.Phase {
	case editor.PhaseLoadFailed:
		if key == "r" {
			return a.start(a.ctl.BeginReload())
		}
		return nil
	case editor.PhaseEditable:
	default:
		return nil
	}

	f := a.focused()
	switch key {
	case "down":
		if !multiline(f) {
			return a.move(1)
		}
	case "up":
		if !multiline(f) {
			return a.move(-1)
		}
	case "tab":
		return a.move(1)
	case "shift+tab":
		return a.move(-1)
	case "ctrl+s":
		return a.start(a.ctl.BeginUpdate())
	case "ctrl+d":
		if a.opts.ConfirmDelete && !a.armed {
			a.armed = true
			a.status = "press ctrl+d again to delete this product"
			if a.opts.ConfirmWindow > 0 {
				return tea.Tick(a.opts.ConfirmWindow, func(time.Time) tea.Msg { return confirmExpiredMsg{} })
			}
			return nil
		}
		a.disarm()
		return a.start(a.ctl.BeginDelete())
	}

	if f == catalog.FieldCategory {
		switch key {
		case "left", "h":
			return a.cycleCategory(snap.Edit.Category, -1)
		case "right", "l", " ":
			return a.cycleCategory(snap.Edit.Category, 1)
		}
		return nil
	}

	if a.locked[f] {
		a.status = lockedStatus(f)
		return nil
	}
	inp := a.inputs[f]
	before := inp.Value()
	cmd := inp.update(m)
	if v := inp.Value(); v != before {
		if err := a.setter(f)(v); err != nil {
			a.status = err.Error()
		}
	}
	return cmd
}

func (a *App) setter(f catalog.Field) func(string) error {
	switch f {
	case catalog.FieldTitle:
		return a.ctl.SetTitle
	case catalog.FieldPrice:
		return a.ctl.SetPrice
	case catalog.FieldImage:
		return a.ctl.SetImage
	case catalog.FieldDiscount:
		return a.ctl.SetDiscount
	case catalog.FieldBrand:
		return a.ctl.SetBrand
	case catalog.FieldInventory:
		return a.ctl.SetInventory
	case catalog.FieldKeywords:
		return a.ctl.SetKeywords
	case catalog.FieldDescription:
		return a.ctl.SetDescription
	}
	return func(v string) error { return a.ctl.SetCategory(catalog.Category(v)) }
}

func (a *App) cycleCategory(cur catalog.Category, dir int) tea.Cmd {
	cats := catalog.Categories()
	idx := 0
	for i, c := range cats {
		if c == cur {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(cats)) % len(cats)
	if err := a.ctl.SetCategory(cats[idx]); err != nil {
		a.status = err.Error()
	}
	return nil
}

func (a *App) focused() catalog.Field {
	return catalog.AllFields()[a.focus]
}

func (a *App) move(dir int) tea.Cmd {
	if inp, ok := a.inputs[a.focused()]; ok {
		inp.Blur()
	}
	n := len(catalog.AllFields())
	a.focus = (a.focus + dir + n) % n
	if inp, ok := a.inputs[a.focused()]; ok {
		return inp.Focus()
	}
	return nil
}

// fill copies the loaded values into the inputs. A value the widget would
// alter on display is locked so keystrokes never write the altered text back.
func (a *App) fill() tea.Cmd {
	edit := a.ctl.Snapshot().Edit
	a.locked = make(map[catalog.Field]bool)
	for _, f := range catalog.AllFields() {
		inp, ok := a.inputs[f]
		if !ok {
			continue
		}
		v := edit.Get(f)
		inp.SetValue(v)
		inp.Blur()
		if inp.Value() != v {
			a.locked[f] = true
			a.status = lockedStatus(f)
			a.log.Warn("field not editable here", zap.Stringer("field", f))
		}
	}
	a.focus = 0
	return a.inputs[a.focused()].Focus()
}

func lockedStatus(f catalog.Field) string {
	return f.Label() + " has characters this editor cannot show; it is read-only here"
}

func (a *App) disarm() {
	if a.armed {
		a.armed = false
		a.status = ""
	}
}

func (a *App) updateSignIn(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "esc":
		return a.quit()
	case "enter":
		vendor := a.signin.Value()
		if err := a.opts.Session.SignIn(vendor); err != nil {
			a.status = fmt.Sprintf("sign-in failed: %v", err)
			return nil
		}
		a.log.Info("signed in", zap.String("vendor_id", vendor))
		a.signin.Blur()
		a.status = ""
		a.screen = screenEditor
		a.ctl.Teardown()
		a.ctl = a.newController()
		return a.start(a.ctl.BeginMount())
	}
	var cmd tea.Cmd
	a.signin, cmd = a.signin.Update(m)
	return cmd
}
