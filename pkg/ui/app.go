package ui

import "github.com/rivo/tview"

// App is the part of *tview.Application the explorer view drives.
type App interface {
	QueueUpdateDraw(f func())
	SetFocus(p tview.Primitive)
	Stop()
}

const updateQueueSize = 256

// tviewApp forwards updates to the event loop from its own goroutine:
// tview's QueueUpdateDraw waits for the loop, and engine events may be
// emitted from the loop itself.
type tviewApp struct {
	*tview.Application
	updates chan func()
}

// WrapApp adapts a tview application to App.
func WrapApp(app *tview.Application) App {
	a := &tviewApp{
		Application: app,
		updates:     make(chan func(), updateQueueSize),
	}
	go a.forward()
	return a
}

func (a *tviewApp) forward() {
	for f := range a.updates {
		_ = a.Application.QueueUpdateDraw(f)
	}
}

func (a *tviewApp) QueueUpdateDraw(f func()) {
	a.updates <- f
}

func (a *tviewApp) SetFocus(p tview.Primitive) {
	_ = a.Application.SetFocus(p)
}
