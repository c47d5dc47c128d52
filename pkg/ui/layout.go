package ui

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/datatug/netexplorer/pkg/explorer"
	"github.com/datatug/netexplorer/pkg/export"
	"github.com/datatug/netexplorer/pkg/files"
	"github.com/datatug/netexplorer/pkg/report"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const parentRow = ".."

var exportToFile = export.ToFile

func (x *Explorer) createLayout(store files.Store) {
	x.pathInput = tview.NewInputField().
		SetLabel(store.RootTitle() + ": ").
		SetFieldBackgroundColor(tcell.ColorDarkSlateGray)
	x.pathInput.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			_ = x.LoadFolders(x.pathInput.GetText())
		}
	})

	x.folders = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	x.folders.SetSelectedFunc(func(row, _ int) {
		x.openFolder(row)
	})
	x.folders.SetBorder(true).SetTitle(" Folders ")

	x.categories = tview.NewForm()
	for _, name := range x.cat.Categories() {
		x.categories.AddCheckbox(name, x.filter.Enabled.Has(name), func(checked bool) {
			x.toggleCategory(name, checked)
		})
	}
	x.categories.SetBorder(true).SetTitle(" File types ")

	x.search = tview.NewInputField().
		SetLabel("Search: ").
		SetFieldBackgroundColor(tcell.ColorDarkSlateGray)
	x.search.SetChangedFunc(x.onSearchChanged)

	x.files = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	x.files.SetBorder(true).SetTitle(" Files ")
	highlightOnFocus(x.folders.Box, x.files.Box)

	x.status = tview.NewTextView().SetDynamicColors(true)
	x.setStatus("Ready - select a folder or enter a path")

	x.menu = newMenuBar([]MenuItem{
		{Title: "F5 Scan", HotKeys: []string{"F5"}, Action: func() { _ = x.Scan() }},
		{Title: "F6 Diagnose", HotKeys: []string{"F6"}, Action: func() { _ = x.Diagnose() }},
		{Title: "Esc Stop", HotKeys: []string{"Esc"}, Action: x.Cancel},
		{Title: "^E Export", HotKeys: []string{"^E"}, Action: x.showExport},
		{Title: "^A All", HotKeys: []string{"^A"}, Action: x.SelectAll},
		{Title: "^N None", HotKeys: []string{"^N"}, Action: x.SelectNone},
	})

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(x.folders, 0, 3, true).
		AddItem(x.categories, len(x.cat.Categories())*2+2, 0, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(x.search, 1, 0, false).
		AddItem(x.files, 0, 1, false)

	columns := tview.NewFlex().
		AddItem(left, 0, 2, true).
		AddItem(right, 0, 5, false)

	x.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(x.pathInput, 1, 0, false).
		AddItem(columns, 0, 1, true).
		AddItem(x.status, 1, 0, false).
		AddItem(x.menu, 1, 0, false)

	x.renderFolders()
	x.renderFiles()
}

// highlightOnFocus colors the border of the focused panel.
func highlightOnFocus(boxes ...*tview.Box) {
	for _, b := range boxes {
		b.SetBorderColor(Style.BlurBorderColor)
		b.SetFocusFunc(func() {
			b.SetBorderColor(Style.FocusedBorderColor)
		})
		b.SetBlurFunc(func() {
			b.SetBorderColor(Style.BlurBorderColor)
		})
	}
}

func headerCell(text string) *tview.TableCell {
	return tview.NewTableCell(text).
		SetTextColor(Style.TableHeaderColor).
		SetAttributes(tcell.AttrBold).
		SetSelectable(false)
}

func (x *Explorer) renderFolders() {
	x.folders.Clear()
	for col, title := range []string{"Name", "Folders", "Files", "Modified"} {
		x.folders.SetCell(0, col, headerCell(title))
	}
	row := 1
	if x.currentPath != "" && x.parentDir() != x.currentPath {
		x.folders.SetCell(row, 0, tview.NewTableCell(parentRow).SetReference(parentRow))
		row++
	}
	for _, f := range x.folderList {
		nameCell := tview.NewTableCell(tview.Escape(f.Name)).SetReference(f.Path).SetExpansion(1)
		x.folders.SetCell(row, 0, nameCell)
		switch desc := f.Describe(); desc {
		case "Access denied", "Access limited":
			x.folders.SetCell(row, 1, tview.NewTableCell(desc).SetTextColor(tcell.ColorOrange))
		default:
			x.folders.SetCell(row, 1, tview.NewTableCell(f.Dirs.String()).SetAlign(tview.AlignRight))
			x.folders.SetCell(row, 2, tview.NewTableCell(f.Files.String()).SetAlign(tview.AlignRight))
		}
		x.folders.SetCell(row, 3, tview.NewTableCell(f.Modified.Format(export.TimeLayout)))
		row++
	}
	x.folders.SetTitle(" Folders: " + tview.Escape(x.currentPath) + " ")
}

func (x *Explorer) renderFiles() {
	x.files.Clear()
	for col, title := range export.Header {
		x.files.SetCell(0, col, headerCell(title))
	}
	for i, r := range x.displayed {
		for col, value := range export.Row(r) {
			cell := tview.NewTableCell(tview.Escape(value))
			switch col {
			case 0:
				cell.SetExpansion(1)
			case 2:
				cell.SetAlign(tview.AlignRight)
			}
			x.files.SetCell(i+1, col, cell)
		}
	}
	x.files.SetTitle(" Files ")
	if x.records != nil {
		x.files.SetTitle(fmtCount(len(x.displayed), len(x.records)))
	}
}

func fmtCount(shown, total int) string {
	if shown == total {
		return fmt.Sprintf(" Files: %d ", shown)
	}
	return fmt.Sprintf(" Files: %d of %d ", shown, total)
}

func (x *Explorer) parentDir() string {
	if x.engine.Store().RootURL().Scheme == "file" {
		return filepath.Dir(x.currentPath)
	}
	return path.Dir(x.currentPath)
}

// openFolder navigates into the folder shown on row.
func (x *Explorer) openFolder(row int) {
	ref, ok := x.folders.GetCell(row, 0).GetReference().(string)
	if !ok {
		return
	}
	if ref == parentRow {
		ref = x.parentDir()
	}
	_ = x.LoadFolders(ref)
}

func modal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

func (x *Explorer) closePage(name string) {
	x.RemovePage(name)
	x.app.SetFocus(x.folders)
}

// showReport opens the diagnosis report. F5 starts a full scan from it.
func (x *Explorer) showReport(r explorer.DiagnosisReport) {
	text := tview.NewTextView().
		SetText(report.Text(r, x.cat)).
		SetScrollable(true)
	text.SetBorder(true).SetTitle(" Diagnosis: Esc close, F5 full scan ")
	text.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyEnter:
			x.closePage(pageReport)
			return nil
		case tcell.KeyF5:
			x.closePage(pageReport)
			_ = x.Scan()
			return nil
		}
		return event
	})
	x.AddPage(pageReport, modal(text, 80, 30), true, true)
	x.app.SetFocus(text)
}

func (x *Explorer) showExport() {
	if len(x.displayed) == 0 {
		x.setStatusColor(Style.WarningColor, "No results to export.")
		return
	}
	form := tview.NewForm().
		AddInputField("File", "netexplorer-results.csv", 50, nil, nil)
	form.AddButton("Export", func() {
		filePath := form.GetFormItemByLabel("File").(*tview.InputField).GetText()
		x.closePage(pageExport)
		_ = x.Export(filePath)
	})
	form.AddButton("Cancel", func() {
		x.closePage(pageExport)
	})
	form.SetCancelFunc(func() {
		x.closePage(pageExport)
	})
	form.SetBorder(true).SetTitle(" Export results (.csv or tab-separated) ")
	x.AddPage(pageExport, modal(form, 64, 7), true, true)
	x.app.SetFocus(form)
}
