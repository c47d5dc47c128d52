package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/datatug/netexplorer/pkg/explorer"
	"github.com/datatug/netexplorer/pkg/export"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

const progressWidth = 100

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s %v\n", red("Error:"), err)
}

func printSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, green(msg))
}

// printStatus prints the one-line outcome of a session.
func printStatus(w io.Writer, res explorer.Result, extra string) {
	msg := res.Summary()
	if extra != "" {
		msg += " (" + extra + ")"
	}
	msg += gray(fmt.Sprintf(" [%s]", res.Duration.Round(time.Millisecond)))
	switch res.Status {
	case explorer.StatusCompleted:
		_, _ = fmt.Fprintln(w, green(msg))
	case explorer.StatusCancelled:
		_, _ = fmt.Fprintln(w, yellow(msg))
	default:
		_, _ = fmt.Fprintln(w, red(msg))
	}
}

func printErrors(w io.Writer, errs []string) {
	if len(errs) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "%s\n", yellow(fmt.Sprintf("%s folders could not be read:", humanize.Comma(int64(len(errs))))))
	for _, e := range errs {
		_, _ = fmt.Fprintf(w, "  • %s\n", e)
	}
}

func printRecords(w io.Writer, records []explorer.FileRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := export.Header
	_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", bold(header[0]), bold(header[1]), bold(header[2]), bold(header[3]), bold(header[4]))
	for _, r := range records {
		row := export.Row(r)
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row[0], row[1], row[2], row[3], row[4])
	}
	_ = tw.Flush()
}

func printFolders(w io.Writer, folders []explorer.FolderSummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", bold("Name"), bold("Contents"), bold("Modified"))
	for _, f := range folders {
		desc := f.Describe()
		if f.Dirs.State == explorer.CountUnknown || f.Files.State == explorer.CountUnknown {
			desc = yellow(desc)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, desc, f.Modified.Format(export.TimeLayout))
	}
	_ = tw.Flush()
}

// progressPrinter rewrites a single status line on terminals and stays
// silent otherwise.
func progressPrinter(w io.Writer) explorer.Listener {
	return func(event explorer.Event) {
		if color.NoColor || event.Kind != explorer.EventProgress {
			return
		}
		msg := event.Progress.Message
		if len(msg) > progressWidth {
			msg = "..." + msg[len(msg)-progressWidth+3:]
		}
		_, _ = fmt.Fprintf(w, "\r\033[K%s", gray(msg))
	}
}

func clearProgress(w io.Writer) {
	if !color.NoColor {
		_, _ = fmt.Fprint(w, "\r\033[K")
	}
}
