package widget

import (
	"context"
	"log"
	"sync"

	"github.com/noli-ai/liz-widget/internal/search"
	"github.com/noli-ai/liz-widget/internal/session"
)

// Shell is one widget instance: it owns an isolated rendering boundary,
// resolves styles exactly once at mount, renders the trigger control, and
// manages the single live search session behind the overlay. Multiple
// shells on one page are fully independent.
type Shell struct {
	cfg      Config
	searcher session.Searcher
	styleRes StyleResources
	notify   func(session.Event)
	sessOpts []session.Option

	mu       sync.Mutex
	mounted  bool
	mountErr bool
	style    StyleOutcome
	ctrl     *session.Controller
	boundary string
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithSearcher overrides the search client built from the config's API URL.
func WithSearcher(s session.Searcher) ShellOption {
	return func(sh *Shell) { sh.searcher = s }
}

// WithStyleResources overrides the style resolution inputs.
func WithStyleResources(res StyleResources) ShellOption {
	return func(sh *Shell) { sh.styleRes = res }
}

// WithShellNotifier installs the host-page event hook passed to sessions.
func WithShellNotifier(fn func(session.Event)) ShellOption {
	return func(sh *Shell) { sh.notify = fn }
}

// WithSessionOptions appends options applied to every session the shell opens.
func WithSessionOptions(opts ...session.Option) ShellOption {
	return func(sh *Shell) { sh.sessOpts = append(sh.sessOpts, opts...) }
}

// NewShell creates a shell for the given immutable config.
func NewShell(cfg Config, opts ...ShellOption) *Shell {
	sh := &Shell{cfg: cfg}
	for _, opt := range opts {
		opt(sh)
	}
	if sh.searcher == nil {
		sh.searcher = search.NewClient(cfg.APIURL)
	}
	if sh.styleRes.BaseURL == "" {
		sh.styleRes.BaseURL = cfg.APIURL
	}
	return sh
}

// Config returns the shell's immutable configuration.
func (sh *Shell) Config() Config { return sh.cfg }

// Mount resolves styles and renders the trigger into the boundary. A
// render failure is absorbed: the boundary shows a single inline error
// and the host page stays unaffected. Mounting an already-mounted shell
// is a no-op.
func (sh *Shell) Mount(ctx context.Context) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if sh.mounted {
		return
	}

	// Style resolution runs exactly once per mount and never blocks rendering.
	sh.style = ResolveStyles(ctx, sh.styleRes)

	trigger, err := RenderTrigger(sh.cfg)
	if err != nil {
		log.Printf("widget: mount render failed for container %s: %v", sh.cfg.ContainerID, err)
		sh.boundary = RenderInlineError("The search widget could not be loaded.")
		sh.mountErr = true
		sh.mounted = true
		return
	}

	sh.boundary = trigger
	sh.mounted = true
}

// Unmount releases the live session and clears the boundary. Safe to call
// even if mounting partially failed, and idempotent.
func (sh *Shell) Unmount() {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if sh.ctrl != nil {
		sh.ctrl.Close()
		sh.ctrl = nil
	}
	sh.boundary = ""
	sh.mounted = false
	sh.mountErr = false
}

// Open surfaces the overlay with a fresh idle session. Opening while a
// session is already live is a no-op that returns the existing controller.
func (sh *Shell) Open() *session.Controller {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if !sh.mounted || sh.mountErr {
		return nil
	}
	if sh.ctrl != nil && !sh.ctrl.Closed() {
		return sh.ctrl
	}

	opts := []session.Option{session.WithUpdateHook(sh.rerender)}
	if sh.notify != nil {
		opts = append(opts, session.WithNotifier(sh.notify))
	}
	opts = append(opts, sh.sessOpts...)

	sh.ctrl = session.New(sh.searcher, sh.cfg.Variant, opts...)
	sh.renderLocked()
	return sh.ctrl
}

// Close discards the live session and collapses the overlay back to the
// trigger. Reopening starts a fresh idle session.
func (sh *Shell) Close() {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if sh.ctrl == nil {
		return
	}
	sh.ctrl.Close()
	sh.ctrl = nil
	sh.renderLocked()
}

// Session returns the live controller, or nil when the overlay is closed.
func (sh *Shell) Session() *session.Controller {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.ctrl != nil && sh.ctrl.Closed() {
		return nil
	}
	return sh.ctrl
}

// Style returns the outcome applied to the boundary at mount time.
func (sh *Shell) Style() StyleOutcome {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.style
}

// HTML returns the current contents of the isolated rendering boundary.
func (sh *Shell) HTML() string {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.boundary
}

// Mounted reports whether the shell is attached.
func (sh *Shell) Mounted() bool {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.mounted
}

// rerender refreshes the boundary after a session state transition.
func (sh *Shell) rerender() {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.renderLocked()
}

func (sh *Shell) renderLocked() {
	trigger, err := RenderTrigger(sh.cfg)
	if err != nil {
		log.Printf("widget: trigger render: %v", err)
		sh.boundary = RenderInlineError("The search widget could not be loaded.")
		return
	}

	if sh.ctrl == nil || sh.ctrl.Closed() {
		sh.boundary = trigger
		return
	}

	overlay, err := RenderOverlay(sh.ctrl)
	if err != nil {
		log.Printf("widget: overlay render: %v", err)
		sh.boundary = trigger + RenderInlineError("The search results could not be displayed.")
		return
	}
	sh.boundary = trigger + overlay
}
