package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/datatug/netexplorer/pkg/catalog"
	"github.com/datatug/netexplorer/pkg/explorer"
	"github.com/datatug/netexplorer/pkg/files"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	pageMain   = "main"
	pageReport = "report"
	pageExport = "export"
)

var closeWait = 2 * time.Second

var errNoCategories = errors.New("no file types selected")

type options struct {
	ctx        context.Context
	logger     *zap.Logger
	engineOpts []explorer.Option
}

type Option func(o *options)

func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEngineOptions passes options through to the engine the view creates.
func WithEngineOptions(engineOpts ...explorer.Option) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, engineOpts...)
	}
}

// Explorer is the interactive front end: a folder browser, category
// filters, a search box and the scan results, driven by one engine.
type Explorer struct {
	*tview.Pages
	app    App
	o      options
	engine *explorer.Engine
	cat    *catalog.Catalog

	layout     *tview.Flex
	pathInput  *tview.InputField
	folders    *tview.Table
	categories *tview.Form
	search     *tview.InputField
	files      *tview.Table
	status     *tview.TextView
	menu       *menuBar

	currentPath string
	sessionID   uuid.UUID
	folderList  []explorer.FolderSummary
	records     []explorer.FileRecord
	displayed   []explorer.FileRecord
	filter      explorer.FilterSpec
	lastReport  *explorer.DiagnosisReport

	progressMu      sync.Mutex
	pendingProgress *explorer.Event
}

// New builds the view over store. Engine events are applied on the UI
// goroutine through app.QueueUpdateDraw.
func New(app App, store files.Store, o ...Option) *Explorer {
	x := &Explorer{
		app:   app,
		Pages: tview.NewPages(),
		o: options{
			ctx:    context.Background(),
			logger: zap.NewNop(),
		},
	}
	for _, opt := range o {
		opt(&x.o)
	}
	engineOpts := append([]explorer.Option{explorer.WithLogger(x.o.logger)}, x.o.engineOpts...)
	engineOpts = append(engineOpts, explorer.WithListener(x.onEvent))
	x.engine = explorer.New(store, engineOpts...)
	x.cat = x.engine.Catalog()
	x.filter = explorer.FilterSpec{Enabled: explorer.AllCategories(x.cat)}

	x.createLayout(store)
	x.AddPage(pageMain, x.layout, true, true)
	x.SetInputCapture(x.inputCapture)
	return x
}

func (x *Explorer) Engine() *explorer.Engine {
	return x.engine
}

func (x *Explorer) CurrentPath() string {
	return x.currentPath
}

// Displayed returns the scan results that pass the current filter.
func (x *Explorer) Displayed() []explorer.FileRecord {
	return x.displayed
}

func (x *Explorer) Focus(delegate func(p tview.Primitive)) {
	if name, _ := x.GetFrontPage(); name != pageMain {
		x.Pages.Focus(delegate)
		return
	}
	delegate(x.folders)
}

func isCtrl(event *tcell.EventKey, key tcell.Key, r rune) bool {
	if event.Key() == key {
		return true
	}
	return event.Key() == tcell.KeyRune && event.Modifiers()&tcell.ModCtrl != 0 && (event.Rune() == r || event.Rune() == r-'a'+'A')
}

func (x *Explorer) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	if name, _ := x.GetFrontPage(); name != pageMain {
		return event
	}
	switch {
	case event.Key() == tcell.KeyF5:
		_ = x.Scan()
	case event.Key() == tcell.KeyF6:
		_ = x.Diagnose()
	case event.Key() == tcell.KeyEscape:
		x.Cancel()
	case isCtrl(event, tcell.KeyCtrlE, 'e'):
		x.showExport()
	case isCtrl(event, tcell.KeyCtrlA, 'a'):
		x.SelectAll()
	case isCtrl(event, tcell.KeyCtrlN, 'n'):
		x.SelectNone()
	default:
		return event
	}
	return nil
}

func (x *Explorer) setStatus(text string) {
	x.status.SetText(text)
}

func (x *Explorer) setStatusColor(color, text string) {
	x.status.SetText(fmt.Sprintf("[%s]%s[-]", color, tview.Escape(text)))
}

// LoadFolders browses dir: the path field is updated and its subfolders listed.
func (x *Explorer) LoadFolders(dir string) error {
	x.pathInput.SetText(dir)
	s, err := x.engine.StartListing(x.o.ctx, dir)
	if err != nil {
		x.setStatusColor(Style.ErrorColor, err.Error())
		return err
	}
	x.currentPath = dir
	x.sessionID = s.ID
	return nil
}

// Scan collects every classifiable file under the current path. The
// category checkboxes filter what is shown, so they can change afterwards
// without rescanning.
func (x *Explorer) Scan() error {
	if len(x.filter.Enabled) == 0 {
		x.setStatusColor(Style.WarningColor, "Please select at least one file type")
		return errNoCategories
	}
	root := x.pathInput.GetText()
	s, err := x.engine.StartScan(x.o.ctx, root, x.cat.Index())
	if err != nil {
		x.setStatusColor(Style.ErrorColor, err.Error())
		return err
	}
	x.currentPath = root
	x.sessionID = s.ID
	x.records = nil
	x.refilter()
	return nil
}

func (x *Explorer) Diagnose() error {
	root := x.pathInput.GetText()
	s, err := x.engine.StartDiagnosis(x.o.ctx, root)
	if err != nil {
		x.setStatusColor(Style.ErrorColor, err.Error())
		return err
	}
	x.currentPath = root
	x.sessionID = s.ID
	return nil
}

func (x *Explorer) Cancel() {
	if x.engine.Active() == nil {
		return
	}
	x.engine.CancelActive()
	x.setStatus("Stopping...")
}

func (x *Explorer) SelectAll() {
	x.setAllCategories(true)
}

func (x *Explorer) SelectNone() {
	x.setAllCategories(false)
}

func (x *Explorer) setAllCategories(checked bool) {
	x.filter.Enabled = explorer.NoCategories()
	for _, name := range x.cat.Categories() {
		if checked {
			x.filter.Enabled[name] = struct{}{}
		}
		if cb, ok := x.categories.GetFormItemByLabel(name).(*tview.Checkbox); ok {
			cb.SetChecked(checked)
		}
	}
	x.refilter()
}

func (x *Explorer) toggleCategory(name string, checked bool) {
	if checked {
		x.filter.Enabled[name] = struct{}{}
	} else {
		delete(x.filter.Enabled, name)
	}
	x.refilter()
}

// SetSearch updates the name filter and the search field.
func (x *Explorer) SetSearch(text string) {
	if x.search.GetText() != text {
		x.search.SetText(text)
	}
	x.onSearchChanged(text)
}

func (x *Explorer) onSearchChanged(text string) {
	x.filter.Search = text
	x.refilter()
}

func (x *Explorer) refilter() {
	x.displayed = x.filter.Apply(x.records)
	x.renderFiles()
}

// onEvent runs on engine worker goroutines. Progress events are coalesced
// so a fast walk cannot flood the update queue.
func (x *Explorer) onEvent(event explorer.Event) {
	if event.Kind != explorer.EventProgress {
		x.app.QueueUpdateDraw(func() {
			x.applyEvent(event)
		})
		return
	}
	x.progressMu.Lock()
	queued := x.pendingProgress != nil
	x.pendingProgress = &event
	x.progressMu.Unlock()
	if queued {
		return
	}
	x.app.QueueUpdateDraw(func() {
		x.progressMu.Lock()
		latest := x.pendingProgress
		x.pendingProgress = nil
		x.progressMu.Unlock()
		x.applyEvent(*latest)
	})
}

func (x *Explorer) applyEvent(event explorer.Event) {
	if event.SessionID != x.sessionID {
		x.o.logger.Debug("ignoring event of a stale session", zap.Stringer("session", event.SessionID))
		return
	}
	switch event.Kind {
	case explorer.EventStarted:
		x.setStatus(startedMessage(event.Op))
	case explorer.EventProgress:
		x.applyProgress(event)
	case explorer.EventCompleted:
		x.applyResult(*event.Result)
	}
}

func startedMessage(op explorer.Op) string {
	switch op {
	case explorer.OpScan:
		return "Scanning files..."
	case explorer.OpDiagnosis:
		return "Diagnosing folder structure..."
	default:
		return "Loading folders..."
	}
}

func (x *Explorer) applyProgress(event explorer.Event) {
	p := event.Progress
	if event.Op == explorer.OpScan {
		x.setStatus(fmt.Sprintf("%s [gray](%d folders, %d matches)[-]", tview.Escape(p.Message), p.FoldersVisited, p.Matched))
		return
	}
	x.setStatus(tview.Escape(p.Message))
}

func (x *Explorer) applyResult(res explorer.Result) {
	switch res.Op {
	case explorer.OpListing:
		x.folderList = res.Folders
		x.renderFolders()
	case explorer.OpScan:
		x.records = res.Records
		x.refilter()
	case explorer.OpDiagnosis:
		x.lastReport = res.Report
		if res.Report != nil && res.Status != explorer.StatusCancelled {
			x.showReport(*res.Report)
		}
	}
	if res.Status == explorer.StatusError {
		x.setStatusColor(Style.ErrorColor, res.Summary())
		return
	}
	summary := tview.Escape(res.Summary())
	if len(res.Errors) > 0 {
		summary += fmt.Sprintf(" [%s](%d folders skipped)[-]", Style.WarningColor, len(res.Errors))
	}
	x.setStatus(summary)
}

// Export writes the displayed results to filePath.
func (x *Explorer) Export(filePath string) error {
	if err := exportToFile(filePath, x.displayed); err != nil {
		x.setStatusColor(Style.ErrorColor, err.Error())
		return err
	}
	x.setStatus(fmt.Sprintf("Results exported to %s", tview.Escape(filePath)))
	return nil
}

// Close cancels the running session and waits a bounded time for it to end.
func (x *Explorer) Close() {
	s := x.engine.Active()
	if s == nil {
		return
	}
	s.Cancel()
	select {
	case <-s.Done():
	case <-time.After(closeWait):
		x.o.logger.Warn("session still running at shutdown", zap.Stringer("session", s.ID))
	}
}
