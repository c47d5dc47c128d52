package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type MenuItem struct {
	Title   string
	HotKeys []string
	Action  func()
}

type menuBar struct {
	*tview.TextView
	items []MenuItem
}

func newMenuBar(items []MenuItem) *menuBar {
	m := &menuBar{
		items: items,
		TextView: tview.NewTextView().
			SetDynamicColors(true).
			SetRegions(true).
			SetTextColor(tcell.ColorSlateGray),
	}
	m.SetHighlightedFunc(m.highlighted)
	m.SetText(renderMenuItems(m.items))
	return m
}

func renderMenuItems(items []MenuItem) string {
	const separator = "┊"
	texts := make([]string, 0, len(items))
	for _, mi := range items {
		title := mi.Title
		for _, key := range mi.HotKeys {
			title = strings.Replace(title, key, fmt.Sprintf("[%s]%s[-]", Style.HotkeyColor, key), 1)
		}
		texts = append(texts, fmt.Sprintf(`["%s"]%s[""]`, mi.HotKeys[0], title))
	}
	return strings.Join(texts, separator)
}

// highlighted runs the action of a clicked menu region.
func (m *menuBar) highlighted(added, _, _ []string) {
	if len(added) == 0 {
		return
	}
	for _, mi := range m.items {
		if mi.HotKeys[0] == added[0] && mi.Action != nil {
			mi.Action()
			return
		}
	}
}
