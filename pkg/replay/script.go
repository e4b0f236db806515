// Package replay drives a session from a scripted list of UI events and
// reports a digest of the published snapshot after each one.
package replay

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// Event types.
const (
	EventProgress       = "progress"
	EventBound          = "bound"
	EventBrush          = "brush"
	EventBrushEnd       = "brush_end"
	EventClear          = "clear"
	EventFocus          = "focus"
	EventScroll         = "scroll"
	EventResizeViewport = "resize_viewport"
	EventResizeChart    = "resize_chart"
)

// Sentinel errors.
var (
	ErrInvalidScript = errors.New("invalid replay script")
	ErrUnknownEvent  = errors.New("unknown event type")
)

//go:embed schema.json
var schemaJSON []byte

// Event is one scripted UI event. Only the fields of its type are read.
type Event struct {
	Type     string     `json:"type"`
	Progress float64    `json:"progress,omitempty"`
	Bound    time.Time  `json:"bound,omitzero"`
	Rect     [4]float64 `json:"rect,omitzero"`
	Index    int        `json:"index,omitempty"`
	Offset   float64    `json:"offset,omitempty"`
	Viewport float64    `json:"viewport,omitempty"`
	Heights  []float64  `json:"heights,omitempty"`
	Width    float64    `json:"width,omitempty"`
	Height   float64    `json:"height,omitempty"`
	Padding  float64    `json:"band_padding,omitempty"`
}

// Script is an ordered list of events.
type Script struct {
	Events []Event `json:"events"`
}

// Parse reads a JSON script, validates it against the embedded schema and
// decodes it.
func Parse(r io.Reader) (Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Script{}, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, verr := range result.Errors() {
			msgs = append(msgs, verr.Field()+": "+verr.Description())
		}

		return Script{}, fmt.Errorf("%w: %s", ErrInvalidScript, strings.Join(msgs, "; "))
	}

	var script Script

	err = json.Unmarshal(data, &script)
	if err != nil {
		return Script{}, fmt.Errorf("decode script: %w", err)
	}

	return script, nil
}
