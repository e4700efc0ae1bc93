package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/lifx-mcp/pkg/lifx"
	"github.com/urmzd/lifx-mcp/pkg/tools/schema"
)

// Client is the part of lifx.Client the dispatcher depends on.
type Client interface {
	CheckConfig() error
	Do(ctx context.Context, req lifx.Request) (*lifx.Response, error)
}

// Result is what every invocation produces, success or failure.
type Result struct {
	Text    string
	IsError bool
	Kind    Kind

	// Err is the underlying failure, nil on success
	Err error
}

// Invocation summarises a finished call for observers.
type Invocation struct {
	Tool      string
	Selector  string
	Kind      Kind
	StartedAt time.Time
	Duration  time.Duration
}

// Observer is notified once per invocation after the result is known.
// Observers must not block for long; they run on the caller's goroutine.
type Observer interface {
	ObserveInvocation(ctx context.Context, inv Invocation)
}

// Dispatcher maps tool invocations onto single LIFX API requests.
// It holds no per-call state, so one Dispatcher serves concurrent
// callers.
type Dispatcher struct {
	client    Client
	validator *schema.Validator
	tools     map[string]*Tool
	order     []*Tool
	location  *time.Location
	observers []Observer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLocation sets the timezone used to render dates.
func WithLocation(loc *time.Location) Option {
	return func(d *Dispatcher) {
		if loc != nil {
			d.location = loc
		}
	}
}

// WithObserver adds an invocation observer.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
}

// NewDispatcher creates a dispatcher over the full tool catalogue.
func NewDispatcher(client Client, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client:    client,
		validator: schema.NewValidator(),
		tools:     make(map[string]*Tool),
		location:  time.UTC,
	}

	for _, t := range Catalogue() {
		d.tools[t.Name] = t
		d.order = append(d.order, t)
		d.validator.Register(t.Name, t.InputSchema())
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Tools returns the catalogue in presentation order.
func (d *Dispatcher) Tools() []*Tool {
	out := make([]*Tool, len(d.order))
	copy(out, d.order)
	return out
}

// Tool looks up a tool by name.
func (d *Dispatcher) Tool(name string) (*Tool, bool) {
	t, ok := d.tools[name]
	return t, ok
}

// Invoke runs one tool. It never returns an error or panics: every
// failure is rendered into a Result with IsError set.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any) (res Result) {
	start := time.Now()
	selector := ""

	// Names outside the catalogue share one label so callers cannot
	// mint new metric series or activity rows
	label := name
	if _, ok := d.tools[name]; !ok {
		label = UnknownToolLabel
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("tool", name).Interface("panic", r).Msg("tool invocation panicked")
			res = errorResult(KindInvocation, fmt.Errorf("internal error: %v", r))
		}
		d.notify(ctx, Invocation{
			Tool:      label,
			Selector:  selector,
			Kind:      res.Kind,
			StartedAt: start,
			Duration:  time.Since(start),
		})
	}()

	text, sel, err := d.invoke(ctx, name, args)
	selector = sel
	if err != nil {
		kind := Classify(err)
		event := log.Debug()
		if kind == KindUpstream || kind == KindTransport {
			event = log.Warn()
		}
		event.Err(err).Str("tool", name).Str("kind", string(kind)).Msg("tool invocation failed")
		return errorResult(kind, err)
	}

	log.Debug().
		Str("tool", name).
		Str("selector", sel).
		Dur("latency", time.Since(start)).
		Msg("tool invoked")

	return Result{Text: text, Kind: KindOK}
}

func (d *Dispatcher) invoke(ctx context.Context, name string, raw map[string]any) (string, string, error) {
	t, ok := d.tools[name]
	if !ok {
		return "", "", &InvocationError{Name: name}
	}

	if err := d.client.CheckConfig(); err != nil {
		return "", "", err
	}

	args := pruned(raw)
	if err := d.validator.Validate(t.Name, args); err != nil {
		return "", "", &ValidationError{Tool: t.Name, Err: err}
	}

	c := &call{tool: t, args: args, d: d}
	if t.Targets() {
		c.selector = args.Selector()
	}

	resp, err := d.client.Do(ctx, c.request())
	if err != nil {
		return "", c.selector, err
	}

	text, err := t.format(c, resp)
	if err != nil {
		return "", c.selector, err
	}
	return text, c.selector, nil
}

func (d *Dispatcher) notify(ctx context.Context, inv Invocation) {
	for _, o := range d.observers {
		o.ObserveInvocation(ctx, inv)
	}
}

func errorResult(kind Kind, err error) Result {
	return Result{
		Text:    "Error: " + err.Error(),
		IsError: true,
		Kind:    kind,
		Err:     err,
	}
}
