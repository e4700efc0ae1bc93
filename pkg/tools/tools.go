package tools

import (
	"fmt"
	"net/http"

	"github.com/urmzd/lifx-mcp/pkg/lifx"
)

const (
	// DefaultSelector targets every light on the account
	DefaultSelector = "all"

	// SceneSelectorPrefix turns a scene UUID into a scene selector
	SceneSelectorPrefix = "scene_id:"

	FormatText = "text"
	FormatJSON = "json"

	// UnknownToolLabel stands in for names outside the catalogue when
	// invocations are reported to observers
	UnknownToolLabel = "unknown"
)

// Tool names
const (
	ListLights    = "list_lights"
	SetState      = "set_state"
	TogglePower   = "toggle_power"
	BreatheEffect = "breathe_effect"
	PulseEffect   = "pulse_effect"
	ListScenes    = "list_scenes"
	ActivateScene = "activate_scene"
	ValidateColor = "validate_color"
	EffectsOff    = "effects_off"
)

// Tool is one named operation mapped onto a LIFX endpoint.
type Tool struct {
	Name        string
	Description string
	Method      string
	Params      []Param

	// endpoint returns the escaped path and raw query for a call
	endpoint func(c *call) (path, query string)

	// format renders a successful response
	format func(c *call, resp *lifx.Response) (string, error)
}

// Targets reports whether the tool addresses lights through a selector.
func (t *Tool) Targets() bool {
	for _, p := range t.Params {
		if p.Name == "selector" {
			return true
		}
	}
	return false
}

// call carries the per-invocation values the endpoint and formatter need.
type call struct {
	tool     *Tool
	args     Args
	selector string
	d        *Dispatcher
}

// request builds the single outgoing request for c.
func (c *call) request() lifx.Request {
	path, query := c.tool.endpoint(c)
	req := lifx.Request{
		Method: c.tool.Method,
		Path:   path,
		Query:  query,
	}
	if c.tool.Method == http.MethodPost || c.tool.Method == http.MethodPut {
		req.Body = c.args.body(c.tool)
	}
	return req
}

// --- shared parameters ---

func selectorParam() Param {
	return Param{
		Name:        "selector",
		Type:        TypeString,
		Description: "LIFX selector for the target lights, e.g. 'all', 'label:Kitchen', 'group:Living Room', 'location:Home', 'id:d073d5000000' (default 'all')",
		Placement:   Local,
	}
}

func durationParam() Param {
	return Param{
		Name:        "duration",
		Type:        TypeNumber,
		Description: "Transition duration in seconds",
		Minimum:     bound(0),
	}
}

func fastParam() Param {
	return Param{
		Name:        "fast",
		Type:        TypeBoolean,
		Description: "Fast mode: apply without waiting for the bulbs to confirm",
	}
}

func formatParam() Param {
	return Param{
		Name:        "format",
		Type:        TypeString,
		Description: "Response shape: 'text' for a readable summary (default) or 'json' for structured data",
		Enum:        []string{FormatText, FormatJSON},
		Placement:   Local,
	}
}

func colorParam(description string, required bool) Param {
	return Param{
		Name:        "color",
		Type:        TypeString,
		Description: description,
		Required:    required,
	}
}

func effectParams() []Param {
	return []Param{
		selectorParam(),
		colorParam("Color for the effect, e.g. 'blue', 'rgb:255,0,0', 'hue:120 saturation:1.0', 'kelvin:3500'", true),
		{Name: "from_color", Type: TypeString, Description: "Color to start the effect from (defaults to the current color)"},
		{Name: "period", Type: TypeNumber, Description: "Duration of one cycle in seconds", ExclusiveMinimum: bound(0)},
		{Name: "cycles", Type: TypeInteger, Description: "Number of cycles to run", Minimum: bound(1)},
		{Name: "persist", Type: TypeBoolean, Description: "Keep the effect's final color when it ends"},
		{Name: "power_on", Type: TypeBoolean, Description: "Turn lights on first if they are off"},
		{Name: "peak", Type: TypeNumber, Description: "Where in the cycle the target color is at its maximum (0.0 to 1.0)", Minimum: bound(0), Maximum: bound(1)},
	}
}

// --- endpoints ---

func lightsPath(suffix string) func(c *call) (string, string) {
	return func(c *call) (string, string) {
		path := "lights/" + escapeSelector(c.selector)
		if suffix != "" {
			path += "/" + suffix
		}
		return path, ""
	}
}

func staticPath(path string) func(c *call) (string, string) {
	return func(*call) (string, string) { return path, "" }
}

func scenePath(c *call) (string, string) {
	uuid, _ := c.args.String("scene_uuid")
	return "scenes/" + escapeSelector(SceneSelectorPrefix+uuid) + "/activate", ""
}

func colorPath(c *call) (string, string) {
	color, _ := c.args.String("color")
	return "color", "color=" + encodeComponent(color)
}

// Catalogue returns the full, fixed set of tools in presentation order.
func Catalogue() []*Tool {
	return []*Tool{
		{
			Name:        ListLights,
			Description: "List lights on the LIFX account with power, brightness, color, connectivity, group and location",
			Method:      http.MethodGet,
			Params:      []Param{selectorParam(), formatParam()},
			endpoint:    lightsPath(""),
			format:      formatLights,
		},
		{
			Name:        SetState,
			Description: "Set power, color, brightness or infrared of lights. Only the fields you pass are changed.",
			Method:      http.MethodPut,
			Params: []Param{
				selectorParam(),
				{Name: "power", Type: TypeString, Description: "Power state", Enum: []string{"on", "off"}},
				colorParam("Color string, e.g. 'blue', 'rgb:255,0,0', 'hue:120 saturation:1.0', 'kelvin:3500'", false),
				{Name: "brightness", Type: TypeNumber, Description: "Brightness (0.0 to 1.0)", Minimum: bound(0), Maximum: bound(1)},
				durationParam(),
				{Name: "infrared", Type: TypeNumber, Description: "Maximum infrared brightness (0.0 to 1.0)", Minimum: bound(0), Maximum: bound(1)},
				fastParam(),
			},
			endpoint: lightsPath("state"),
			format:   confirmSelector("State updated successfully for selector %q."),
		},
		{
			Name:        TogglePower,
			Description: "Toggle lights on or off. If any light in the selector is on, all are turned off.",
			Method:      http.MethodPost,
			Params:      []Param{selectorParam(), durationParam()},
			endpoint:    lightsPath("toggle"),
			format:      confirmSelector("Power toggled successfully for selector %q."),
		},
		{
			Name:        BreatheEffect,
			Description: "Run a breathe effect, fading smoothly between two colors",
			Method:      http.MethodPost,
			Params:      effectParams(),
			endpoint:    lightsPath("effects/breathe"),
			format:      confirmSelector("Breathe effect started for selector %q."),
		},
		{
			Name:        PulseEffect,
			Description: "Run a pulse effect, switching abruptly between two colors",
			Method:      http.MethodPost,
			Params:      effectParams(),
			endpoint:    lightsPath("effects/pulse"),
			format:      confirmSelector("Pulse effect started for selector %q."),
		},
		{
			Name:        ListScenes,
			Description: "List scenes saved on the LIFX account",
			Method:      http.MethodGet,
			Params:      []Param{formatParam()},
			endpoint:    staticPath("scenes"),
			format:      formatScenes,
		},
		{
			Name:        ActivateScene,
			Description: "Activate a saved scene by UUID",
			Method:      http.MethodPut,
			Params: []Param{
				{Name: "scene_uuid", Type: TypeString, Description: "Scene UUID (from list_scenes)", Required: true, Placement: InPath},
				durationParam(),
				fastParam(),
			},
			endpoint: scenePath,
			format:   formatSceneActivated,
		},
		{
			Name:        ValidateColor,
			Description: "Check a color string and show how LIFX interprets it",
			Method:      http.MethodGet,
			Params: []Param{
				{Name: "color", Type: TypeString, Description: "Color string to validate", Required: true, Placement: InQuery},
			},
			endpoint: colorPath,
			format:   formatColor,
		},
		{
			Name:        EffectsOff,
			Description: "Stop any running effects",
			Method:      http.MethodPost,
			Params: []Param{
				selectorParam(),
				{Name: "power_off", Type: TypeBoolean, Description: "Also turn the lights off"},
			},
			endpoint: lightsPath("effects/off"),
			format:   confirmSelector("Effects turned off for selector %q."),
		},
	}
}

// confirmSelector renders a confirmation naming the selector followed by
// the raw response.
func confirmSelector(template string) func(c *call, resp *lifx.Response) (string, error) {
	return func(c *call, resp *lifx.Response) (string, error) {
		return withPayload(fmt.Sprintf(template, c.selector), resp), nil
	}
}
