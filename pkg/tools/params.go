package tools

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// ParamType is the JSON Schema type of a tool parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
)

// Placement says where a parameter ends up in the outgoing request.
type Placement int

const (
	// InBody parameters are copied into the JSON body when present
	InBody Placement = iota
	// InPath parameters are interpolated into the endpoint path
	InPath
	// InQuery parameters are encoded into the query string
	InQuery
	// Local parameters shape the response and are never sent
	Local
)

// Param describes one argument a tool accepts.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Enum        []string
	Placement   Placement

	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
}

func bound(v float64) *float64 { return &v }

// Property renders the parameter as a JSON Schema property.
func (p Param) Property() map[string]any {
	prop := map[string]any{
		"type":        string(p.Type),
		"description": p.Description,
	}
	if len(p.Enum) > 0 {
		prop["enum"] = p.Enum
	}
	if p.Minimum != nil {
		prop["minimum"] = *p.Minimum
	}
	if p.Maximum != nil {
		prop["maximum"] = *p.Maximum
	}
	if p.ExclusiveMinimum != nil {
		prop["exclusiveMinimum"] = *p.ExclusiveMinimum
	}
	return prop
}

// Args is the loosely typed argument bag a tool is invoked with.
type Args map[string]any

// pruned copies args without nil values; an explicit null is treated
// exactly like an omitted key.
func pruned(args map[string]any) Args {
	out := make(Args, len(args))
	for k, v := range args {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// String returns the string value for key and whether it was a
// non-empty string.
func (a Args) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Selector returns the selector argument, defaulting to "all".
func (a Args) Selector() string {
	if s, ok := a.String("selector"); ok {
		return s
	}
	return DefaultSelector
}

// Format returns the requested response shape, defaulting to text.
func (a Args) Format() string {
	if s, ok := a.String("format"); ok {
		return s
	}
	return FormatText
}

// body collects the present body parameters of t. Parameters that were
// not supplied are left out so LIFX applies its own defaults.
func (a Args) body(t *Tool) map[string]any {
	body := map[string]any{}
	for _, p := range t.Params {
		if p.Placement != InBody {
			continue
		}
		if v, ok := a[p.Name]; ok {
			body[p.Name] = v
		}
	}
	return body
}

// componentUnescaper restores what encodeURIComponent leaves alone but
// url.QueryEscape does not.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes s the way encodeURIComponent does.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// selectorEscaper escapes only the characters that would end or split a
// path segment, so selector lists like 'label:A,label:B' pass through.
var selectorEscaper = strings.NewReplacer(
	"%", "%25",
	" ", "%20",
	"?", "%3F",
	"#", "%23",
	"/", "%2F",
)

func escapeSelector(s string) string {
	return selectorEscaper.Replace(s)
}

// InputSchema returns the tool's argument schema as a JSON document.
func (t *Tool) InputSchema() json.RawMessage {
	props := make(map[string]any, len(t.Params))
	required := []string{}
	for _, p := range t.Params {
		props[p.Name] = p.Property()
		if p.Required {
			required = append(required, p.Name)
		}
	}
	doc, err := json.Marshal(map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"type":       "object",
		"properties": props,
		"required":   required,
	})
	if err != nil {
		// Only maps of strings, floats and slices go in; this cannot fail
		panic(fmt.Sprintf("tools: marshal schema for %s: %v", t.Name, err))
	}
	return doc
}
