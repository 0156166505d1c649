package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyBinding_String(t *testing.T) {
	tests := []struct {
		binding KeyBinding
		want    string
	}{
		{KeyBinding{Key: tcell.KeyF2}, "F2"},
		{KeyBinding{Rune: '/'}, "/"},
		{KeyBinding{Key: tcell.KeyCtrlQ}, "Ctrl+Q"},
		{KeyBinding{Key: tcell.KeyF12}, "?"},
	}
	for _, tt := range tests {
		if got := tt.binding.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatHelp(t *testing.T) {
	text := FormatHelp(HelpSections())
	for _, want := range []string{"[::b]Subscribers[::-]", "F2/n  Create subscriber", "F1  Show this help"} {
		if !strings.Contains(text, want) {
			t.Errorf("help text missing %q:\n%s", want, text)
		}
	}
}
