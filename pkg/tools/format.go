package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urmzd/lifx-mcp/pkg/lifx"
)

// LightsOutput is the structured form of list_lights.
type LightsOutput struct {
	Count  int          `json:"count"`
	Lights []lifx.Light `json:"lights"`
}

// ScenesOutput is the structured form of list_scenes.
type ScenesOutput struct {
	Count  int          `json:"count"`
	Scenes []lifx.Scene `json:"scenes"`
}

func formatLights(c *call, resp *lifx.Response) (string, error) {
	var lights []lifx.Light
	if !resp.Empty() {
		if err := resp.Decode(&lights); err != nil {
			return "", err
		}
	}

	if c.args.Format() == FormatJSON {
		return formatJSON(LightsOutput{Count: len(lights), Lights: lights})
	}

	entries := make([]string, 0, len(lights))
	for i := range lights {
		entries = append(entries, lightEntry(&lights[i]))
	}
	return listing(len(lights), "lights", entries), nil
}

func lightEntry(l *lifx.Light) string {
	var b strings.Builder
	fmt.Fprintf(&b, "• %s (%s)\n", l.Label, l.ID)
	fmt.Fprintf(&b, "  Power: %s\n", l.Power)
	fmt.Fprintf(&b, "  Brightness: %s%%\n", percent(l.Brightness))
	fmt.Fprintf(&b, "  Color: H:%s° S:%s%% K:%s\n", number(l.Color.Hue), percent(l.Color.Saturation), number(l.Color.Kelvin))
	fmt.Fprintf(&b, "  Connected: %s\n", yesNo(l.Connected))
	fmt.Fprintf(&b, "  Group: %s\n", l.Group.Name)
	fmt.Fprintf(&b, "  Location: %s", l.Location.Name)
	return b.String()
}

func formatScenes(c *call, resp *lifx.Response) (string, error) {
	var scenes []lifx.Scene
	if !resp.Empty() {
		if err := resp.Decode(&scenes); err != nil {
			return "", err
		}
	}

	if c.args.Format() == FormatJSON {
		return formatJSON(ScenesOutput{Count: len(scenes), Scenes: scenes})
	}

	loc := time.UTC
	if c.d != nil && c.d.location != nil {
		loc = c.d.location
	}

	entries := make([]string, 0, len(scenes))
	for _, s := range scenes {
		created := time.Unix(s.CreatedAt, 0).In(loc).Format(time.DateOnly)
		entries = append(entries, fmt.Sprintf("• %s (%s)\n  States: %d lights\n  Created: %s",
			s.Name, s.UUID, len(s.States), created))
	}
	return listing(len(scenes), "scenes", entries), nil
}

func formatSceneActivated(c *call, resp *lifx.Response) (string, error) {
	uuid, _ := c.args.String("scene_uuid")
	return withPayload(fmt.Sprintf("Scene %q activated successfully.", uuid), resp), nil
}

func formatColor(_ *call, resp *lifx.Response) (string, error) {
	return "Color validation result:\n" + resp.Pretty(), nil
}

// withPayload appends the raw response to a confirmation sentence.
// An empty response leaves the sentence alone.
func withPayload(sentence string, resp *lifx.Response) string {
	payload := resp.Pretty()
	if payload == "" {
		return sentence
	}
	return sentence + " " + payload
}

func listing(n int, noun string, entries []string) string {
	header := fmt.Sprintf("Found %d %s:", n, noun)
	if len(entries) == 0 {
		return header
	}
	return header + "\n\n" + strings.Join(entries, "\n\n")
}

func percent(fraction float64) string {
	return strconv.FormatFloat(fraction*100, 'f', 1, 64)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(b), nil
}
