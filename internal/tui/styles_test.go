package tui

import (
	"testing"

	catppuccin "github.com/catppuccin/go"
)

func TestFlavorFromName(t *testing.T) {
	tests := []struct {
		name string
		want catppuccin.Flavor
	}{
		{"latte", catppuccin.Latte},
		{"frappe", catppuccin.Frappe},
		{"macchiato", catppuccin.Macchiato},
		{"mocha", catppuccin.Mocha},
		{"", catppuccin.Mocha},
		{"solarized", catppuccin.Mocha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := flavorFromName(tt.name)
			if got.Base().Hex != tt.want.Base().Hex {
				t.Errorf("flavorFromName(%q) base = %s, want %s", tt.name, got.Base().Hex, tt.want.Base().Hex)
			}
		})
	}
}

func TestStyles_SelectedAndHighlightDiffer(t *testing.T) {
	s := NewStyles("mocha")
	if s.SelectedStyle().GetForeground() == s.HighlightStyle().GetForeground() {
		t.Error("selected and highlighted entries should use different colors")
	}
}
