package tui

import (
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestKeyMatches(t *testing.T) {
	tests := []struct {
		name    string
		binding string
		event   *tcell.EventKey
		want    bool
	}{
		{"rune", "a", runeKey('a'), true},
		{"other rune", "a", runeKey('b'), false},
		{"case sensitive", "R", runeKey('r'), false},
		{"space", "space", runeKey(' '), true},
		{"space name is case insensitive", "Space", runeKey(' '), true},
		{"enter", "enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), true},
		{"backspace", "backspace", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), true},
		{"backspace2", "backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), true},
		{"tab", "tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), true},
		{"esc", "esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"bracket", "]", runeKey(']'), true},
		{"unicode", "é", runeKey('é'), true},
		{"multi char binding never matches", "ab", runeKey('a'), false},
		{"empty binding", "", runeKey('a'), false},
		{"nil event", "a", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyMatches(tt.binding, tt.event))
		})
	}
}

func TestKeyLabelAndHint(t *testing.T) {
	assert.Equal(t, "x", keyLabel("x", "y"))
	assert.Equal(t, "y", keyLabel("  ", "y"))
	assert.Equal(t, "<d>", keyHint("d", "download"))
	assert.Equal(t, "<download>", keyHint("", "download"))
}
