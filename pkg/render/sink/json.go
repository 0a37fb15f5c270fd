package sink

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/cloud"
)

// RenderJSON returns the layout as indented JSON.
func RenderJSON(l cloud.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	return append(data, '\n'), nil
}

// ReadJSON parses a layout written by RenderJSON.
func ReadJSON(data []byte) (cloud.Layout, error) {
	var l cloud.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return cloud.Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	return l, nil
}
