// Package editor drives one product edit session: it checks that a vendor is
// signed in, loads the product, tracks field edits, and issues the update or
// delete request before navigating away.
//
// Requests are split in two halves. Begin* methods validate the transition,
// move the controller to its next phase and return a Task that performs only
// I/O. The caller runs the Task wherever it likes (a goroutine, a tea.Cmd)
// and hands its Result back to Apply. Edit state is therefore only ever
// written by Begin*, Apply and the setters, all serialized on one mutex.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jask/catalogedit/internal/catalog"
	"github.com/jask/catalogedit/internal/session"
)

var (
	ErrNoSession       = errors.New("editor: no signed-in vendor")
	ErrBusy            = errors.New("editor: request already in flight")
	ErrNotEditable     = errors.New("editor: product is not editable")
	ErrInvalidCategory = errors.New("editor: invalid category")
	ErrMissingID       = errors.New("editor: missing product id")
	ErrAlreadyMounted  = errors.New("editor: already mounted")
	ErrClosed          = errors.New("editor: controller closed")
	ErrStale           = errors.New("editor: stale result discarded")
)

// Route names a destination the controller can navigate to.
type Route string

const (
	RouteSignIn Route = "/signin"
	RouteList   Route = "/products"
)

// Phase is the lifecycle state of a controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseEditable
	PhaseLoadFailed
	PhaseSubmitting
	PhaseDone
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseEditable:
		return "editable"
	case PhaseLoadFailed:
		return "load_failed"
	case PhaseSubmitting:
		return "submitting"
	case PhaseDone:
		return "done"
	case PhaseClosed:
		return "closed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Level classifies a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Notice is one-shot feedback for the rendering layer.
type Notice struct {
	Visible bool
	Level   Level
	Message string
}

// Store is the persistence collaborator.
type Store interface {
	Lookup(ctx context.Context, id string) (catalog.Product, error)
	Update(ctx context.Context, req catalog.UpdateRequest) error
	Delete(ctx context.Context, req catalog.DeleteRequest) error
}

type Navigator interface {
	Navigate(route Route)
}

type Notifier interface {
	Notify(n Notice)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Route)

func (f NavigatorFunc) Navigate(r Route) { f(r) }

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Deps are the collaborators of a controller. Store and Session are required.
type Deps struct {
	Store     Store
	Session   session.Provider
	Navigator Navigator
	Notifier  Notifier
	Logger    *zap.Logger
}

// Op identifies the request a Result belongs to.
type Op int

const (
	OpFetch Op = iota
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpFetch:
		return "fetch"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Result is the outcome of a Task.
type Result struct {
	Op      Op
	Product catalog.Product
	Err     error

	gen uint64
}

// Task performs the I/O of one request. It never touches controller state.
type Task func() Result

// Snapshot is a detached copy of the controller state for rendering.
type Snapshot struct {
	ID     string
	Phase  Phase
	Edit   catalog.EditState
	Err    error
	Notice Notice
}

// Controller owns the edit state of one product for one editing session.
type Controller struct {
	mu     sync.Mutex
	id     string
	deps   Deps
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc

	phase   Phase
	mounted bool
	gen     uint64
	edit    catalog.EditState
	err     error
	notice  Notice
}

// New creates a controller for productID. Requests run under a context
// derived from ctx that is cancelled by Teardown.
func New(ctx context.Context, productID string, deps Deps) *Controller {
	if deps.Store == nil || deps.Session == nil {
		panic("editor: Store and Session are required")
	}
	log := deps.Logger
	if log == nil {
		log = zap.L()
	}
	cctx, cancel := context.WithCancel(ctx)
	return &Controller{
		id:     productID,
		deps:   deps,
		log:    log.Named("editor").With(zap.String("product_id", productID)),
		ctx:    cctx,
		cancel: cancel,
	}
}

// ID returns the product identifier supplied at construction.
func (c *Controller) ID() string { return c.id }

// BeginMount runs the session guard and, if a vendor is signed in, starts
// the fetch. It succeeds at most once per controller.
func (c *Controller) BeginMount() (Task, error) {
	var fx effects
	defer fx.run()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inactive() {
		return nil, ErrClosed
	}
	if c.mounted {
		return nil, ErrAlreadyMounted
	}
	c.mounted = true

	actor, ok := c.deps.Session.ActorID()
	if !ok {
		c.log.Info("no session, redirecting to sign-in")
		c.leave(&fx, RouteSignIn)
		return nil, ErrNoSession
	}
	c.edit.OwnerID = actor
	return c.beginFetch(&fx)
}

// BeginReload retries a failed fetch.
func (c *Controller) BeginReload() (Task, error) {
	var fx effects
	defer fx.run()
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(PhaseLoadFailed); err != nil {
		return nil, err
	}
	return c.beginFetch(&fx)
}

func (c *Controller) beginFetch(fx *effects) (Task, error) {
	if c.id == "" {
		c.phase = PhaseLoadFailed
		c.err = ErrMissingID
		c.show(fx, LevelError, "No product selected")
		return nil, ErrMissingID
	}
	c.phase = PhaseLoading
	c.err = nil
	gen := c.next()
	ctx, store, id := c.ctx, c.deps.Store, c.id
	c.log.Debug("fetch started")
	return func() Result {
		p, err := store.Lookup(ctx, id)
		return Result{Op: OpFetch, Product: p, Err: err, gen: gen}
	}, nil
}

// BeginUpdate snapshots the edit state into an update request. The owner is
// read from the session now, not from the value seen at mount.
func (c *Controller) BeginUpdate() (Task, error) {
	var fx effects
	defer fx.run()
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(PhaseEditable); err != nil {
		return nil, err
	}
	actor, ok := c.deps.Session.ActorID()
	if !ok {
		c.log.Info("session ended before update, redirecting to sign-in")
		c.leave(&fx, RouteSignIn)
		return nil, ErrNoSession
	}
	c.edit.OwnerID = actor
	req := c.edit.UpdateRequest(c.id, actor)
	c.phase = PhaseSubmitting
	c.err = nil
	gen := c.next()
	ctx, store := c.ctx, c.deps.Store
	c.log.Info("update submitted", zap.String("vendor_id", actor), zap.Int("changed_fields", len(c.edit.DirtyFields())))
	return func() Result {
		return Result{Op: OpUpdate, Err: store.Update(ctx, req), gen: gen}
	}, nil
}

// BeginDelete starts a delete carrying only the product identifier.
func (c *Controller) BeginDelete() (Task, error) {
	var fx effects
	defer fx.run()
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(PhaseEditable); err != nil {
		return nil, err
	}
	req := catalog.DeleteRequest{ProductID: c.id}
	c.phase = PhaseSubmitting
	c.err = nil
	gen := c.next()
	ctx, store := c.ctx, c.deps.Store
	c.log.Info("delete submitted")
	return func() Result {
		return Result{Op: OpDelete, Err: store.Delete(ctx, req), gen: gen}
	}, nil
}

// Apply folds a task result into the controller. It returns the request
// error, or ErrStale/ErrClosed when the result was discarded.
func (c *Controller) Apply(r Result) error {
	var fx effects
	defer fx.run()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseClosed {
		c.log.Debug("result after teardown discarded", zap.Stringer("op", r.Op))
		return ErrClosed
	}
	if r.gen != c.gen || (c.phase != PhaseLoading && c.phase != PhaseSubmitting) {
		c.log.Debug("stale result discarded", zap.Stringer("op", r.Op))
		return ErrStale
	}

	switch r.Op {
	case OpFetch:
		if r.Err != nil {
			c.phase = PhaseLoadFailed
			c.err = r.Err
			c.log.Warn("fetch failed", zap.Error(r.Err))
			c.show(&fx, LevelError, fmt.Sprintf("Could not load product: %v", r.Err))
			return r.Err
		}
		c.edit.Load(r.Product.Fields)
		c.phase = PhaseEditable
		c.log.Info("product loaded")
		c.clearNotice(&fx)
		return nil
	case OpUpdate, OpDelete:
		if r.Err != nil {
			c.phase = PhaseEditable
			c.err = r.Err
			c.log.Warn(r.Op.String()+" failed", zap.Error(r.Err))
			c.show(&fx, LevelError, fmt.Sprintf("%s failed: %v", opTitle(r.Op), r.Err))
			return r.Err
		}
		c.log.Info(r.Op.String() + " acknowledged")
		msg := "Product updated"
		if r.Op == OpDelete {
			msg = "Product deleted"
		}
		c.show(&fx, LevelInfo, msg)
		c.leave(&fx, RouteList)
		return nil
	}
	return fmt.Errorf("editor: unknown op %v", r.Op)
}

// Mount runs BeginMount and the fetch synchronously.
func (c *Controller) Mount() error { return c.run(c.BeginMount()) }

// Reload retries a failed fetch synchronously.
func (c *Controller) Reload() error { return c.run(c.BeginReload()) }

// Update submits the edit state synchronously.
func (c *Controller) Update() error { return c.run(c.BeginUpdate()) }

// Delete deletes the product synchronously.
func (c *Controller) Delete() error { return c.run(c.BeginDelete()) }

func (c *Controller) run(task Task, err error) error {
	if err != nil {
		return err
	}
	return c.Apply(task())
}

func (c *Controller) SetTitle(v string) error       { return c.set(catalog.FieldTitle, v) }
func (c *Controller) SetPrice(v string) error       { return c.set(catalog.FieldPrice, v) }
func (c *Controller) SetImage(v string) error       { return c.set(catalog.FieldImage, v) }
func (c *Controller) SetDiscount(v string) error    { return c.set(catalog.FieldDiscount, v) }
func (c *Controller) SetBrand(v string) error       { return c.set(catalog.FieldBrand, v) }
func (c *Controller) SetInventory(v string) error   { return c.set(catalog.FieldInventory, v) }
func (c *Controller) SetKeywords(v string) error    { return c.set(catalog.FieldKeywords, v) }
func (c *Controller) SetDescription(v string) error { return c.set(catalog.FieldDescription, v) }

// SetCategory only accepts members of the category set.
func (c *Controller) SetCategory(v catalog.Category) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(v))
	}
	return c.set(catalog.FieldCategory, string(v))
}

func (c *Controller) set(f catalog.Field, v string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(PhaseEditable); err != nil {
		return err
	}
	c.edit.Set(f, v)
	return nil
}

// DismissNotice hides the current notice.
func (c *Controller) DismissNotice() {
	var fx effects
	defer fx.run()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearNotice(&fx)
}

func (c *Controller) clearNotice(fx *effects) {
	if !c.notice.Visible {
		return
	}
	c.notice = Notice{}
	if n := c.deps.Notifier; n != nil {
		fx.add(func() { n.Notify(Notice{}) })
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		ID:     c.id,
		Phase:  c.phase,
		Edit:   c.edit.Clone(),
		Err:    c.err,
		Notice: c.notice,
	}
}

// Teardown cancels outstanding requests and discards the edit state. Results
// arriving afterwards are ignored.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseClosed {
		return
	}
	c.phase = PhaseClosed
	c.next()
	c.edit = catalog.EditState{}
	c.cancel()
	c.log.Debug("controller torn down")
}

func (c *Controller) next() uint64 {
	c.gen++
	return c.gen
}

func (c *Controller) inactive() bool {
	return c.phase == PhaseClosed || c.phase == PhaseDone
}

func (c *Controller) require(want Phase) error {
	switch {
	case c.phase == want:
		return nil
	case c.inactive():
		return ErrClosed
	case c.phase == PhaseLoading || c.phase == PhaseSubmitting:
		return ErrBusy
	}
	return fmt.Errorf("%w (phase %s)", ErrNotEditable, c.phase)
}

// leave navigates away and drops the edit state.
func (c *Controller) leave(fx *effects, route Route) {
	c.phase = PhaseDone
	c.edit = catalog.EditState{}
	if nav := c.deps.Navigator; nav != nil {
		fx.add(func() { nav.Navigate(route) })
	}
}

func (c *Controller) show(fx *effects, level Level, msg string) {
	c.notice = Notice{Visible: true, Level: level, Message: msg}
	if n, notice := c.deps.Notifier, c.notice; n != nil {
		fx.add(func() { n.Notify(notice) })
	}
}

func opTitle(op Op) string {
	if op == OpDelete {
		return "Delete"
	}
	return "Update"
}

// effects collects collaborator calls so they run after the lock is released.
type effects []func()

func (fx *effects) add(f func()) { *fx = append(*fx, f) }

func (fx *effects) run() {
	for _, f := range *fx {
		f()
	}
}
