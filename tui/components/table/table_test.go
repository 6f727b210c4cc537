package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grovetools/onair/tui/theme"
)

func TestSimpleTableContainsCells(t *testing.T) {
	out := SimpleTable([]string{"Channel", "Vol"}, [][]string{{"Mic 1", "90"}, {"Media", "60"}})
	assert.Contains(t, out, "Channel")
	assert.Contains(t, out, "Mic 1")
	assert.Contains(t, out, "60")
}

func TestSelectableTableMarksRow(t *testing.T) {
	out := SelectableTable([]string{"Channel"}, [][]string{{"first"}, {"second"}}, 1)
	lines := strings.Split(out, "\n")
	var marked []string
	for _, l := range lines {
		if strings.Contains(l, theme.IconArrow) {
			marked = append(marked, l)
		}
	}
	if assert.Len(t, marked, 1) {
		assert.Contains(t, marked[0], "second")
	}
}
