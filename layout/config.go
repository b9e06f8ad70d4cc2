// ABOUTME: Display configuration for the pixel coordinate space, loadable from an optional YAML file.
// ABOUTME: Missing files and omitted fields fall back to struct defaults; month width is the zoom density knob.
package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixed paddings of the coordinate space. These are part of the layout
// contract (total width = PadLeft + months*monthWidth + PadRight) and are
// not configurable.
const (
	PadLeft  = 10
	PadRight = 20
	LaneTop  = 6
	BarInset = 2
)

// Config holds the tunable visual density parameters. Changing MonthWidth
// zooms the horizontal axis without re-running the stacking engine; row
// assignment is independent of pixel density.
type Config struct {
	MonthWidth int `yaml:"month_width"` // horizontal pixels per month
	BarHeight  int `yaml:"bar_height"`  // height of one bar
	RowGap     int `yaml:"row_gap"`     // vertical gap between rows

	TooltipGap int `yaml:"tooltip_gap"` // gap between anchor and tooltip
	TooltipPad int `yaml:"tooltip_pad"` // clamp margin inside the panel

	// Colors maps canonical category names to fill colors for SVG output.
	Colors map[string]string `yaml:"colors"`
}

// DefaultConfig returns the stock display configuration.
func DefaultConfig() Config {
	return Config{
		MonthWidth: 18,
		BarHeight:  20,
		RowGap:     6,
		TooltipGap: 8,
		TooltipPad: 8,
		Colors: map[string]string{
			"federal":   "#7b1e3c",
			"state":     "#1e5a7b",
			"municipal": "#2e7b1e",
			"partisan":  "#7b5e1e",
			"other":     "#5a5a5a",
		},
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults.
// A missing path (or empty string) yields the defaults without error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read display config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse display config: %w", err)
	}

	if file.MonthWidth > 0 {
		cfg.MonthWidth = file.MonthWidth
	}
	if file.BarHeight > 0 {
		cfg.BarHeight = file.BarHeight
	}
	if file.RowGap > 0 {
		cfg.RowGap = file.RowGap
	}
	if file.TooltipGap > 0 {
		cfg.TooltipGap = file.TooltipGap
	}
	if file.TooltipPad > 0 {
		cfg.TooltipPad = file.TooltipPad
	}
	for name, color := range file.Colors {
		cfg.Colors[name] = color
	}

	return cfg, nil
}

// Color returns the configured fill color for a category name, falling back
// to the "other" color.
func (c Config) Color(category string) string {
	if col, ok := c.Colors[category]; ok {
		return col
	}
	return c.Colors["other"]
}
