package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/datatug/netexplorer/pkg/catalog"
	"github.com/datatug/netexplorer/pkg/explorer"
	"github.com/datatug/netexplorer/pkg/export"
	"github.com/datatug/netexplorer/pkg/report"
	"github.com/spf13/cobra"
)

// newEngine builds an engine printing progress to w.
func (e *env) newEngine(w io.Writer) *explorer.Engine {
	opts := append([]explorer.Option{explorer.WithLogger(e.logger)}, e.cfg.EngineOptions()...)
	opts = append(opts, explorer.WithListener(progressPrinter(w)))
	return explorer.New(e.store, opts...)
}

// runSession starts an operation and waits for it. Ctrl-C cancels it the
// same way Esc does in the explorer.
func runSession(ctx context.Context, stderr io.Writer, start func(ctx context.Context) (*explorer.Session, error)) (explorer.Result, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	s, err := start(ctx)
	if err != nil {
		return explorer.Result{}, err
	}
	res := s.Wait()
	clearProgress(stderr)
	return res, nil
}

// resultError turns a terminal error status into a command error.
func resultError(res explorer.Result) error {
	if res.Status == explorer.StatusError {
		return fmt.Errorf("%s", res.Summary())
	}
	return nil
}

// categoryNames resolves names case-insensitively against the catalog.
func categoryNames(cat *catalog.Catalog, names []string) ([]string, error) {
	var resolved []string
	for _, name := range names {
		found := ""
		for _, known := range cat.Categories() {
			if strings.EqualFold(known, strings.TrimSpace(name)) {
				found = known
				break
			}
		}
		if found == "" {
			return nil, fmt.Errorf("unknown category %q, expected one of: %s", name, strings.Join(cat.Categories(), ", "))
		}
		resolved = append(resolved, found)
	}
	return resolved, nil
}

func scanCmd(e *env) *cobra.Command {
	var (
		categories []string
		search     string
		exportFile string
	)
	cmd := &cobra.Command{
		Use:   "scan PATH",
		Short: "List every file of the selected types under PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer e.teardown()
			engine := e.newEngine(cmd.ErrOrStderr())
			cat := engine.Catalog()

			names, err := categoryNames(cat, categories)
			if err != nil {
				return err
			}
			allow, enabled := cat.Index(), explorer.AllCategories(cat)
			if len(names) > 0 {
				allow, enabled = cat.Extensions(names...), explorer.NewCategorySet(names...)
			}

			res, err := runSession(cmd.Context(), cmd.ErrOrStderr(), func(ctx context.Context) (*explorer.Session, error) {
				return engine.StartScan(ctx, args[0], allow)
			})
			if err != nil {
				return err
			}
			if err = resultError(res); err != nil {
				return err
			}

			records := explorer.FilterSpec{Enabled: enabled, Search: search}.Apply(res.Records)
			out := cmd.OutOrStdout()
			printRecords(out, records)
			printErrors(cmd.ErrOrStderr(), res.Errors)
			printStatus(out, res, fmt.Sprintf("%d shown", len(records)))

			if exportFile != "" {
				if err = export.ToFile(exportFile, records); err != nil {
					return err
				}
				printSuccess(out, "Results exported to "+exportFile)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "file categories to look for (default all)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "show only files whose name contains this text")
	cmd.Flags().StringVarP(&exportFile, "export", "o", "", "export results to `file` (.csv or tab-separated)")
	return cmd
}

func diagnoseCmd(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "diagnose PATH",
		Short: "Sample PATH and estimate how long a full scan would take",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer e.teardown()
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			engine := e.newEngine(cmd.ErrOrStderr())
			res, err := runSession(cmd.Context(), cmd.ErrOrStderr(), func(ctx context.Context) (*explorer.Session, error) {
				return engine.StartDiagnosis(ctx, args[0])
			})
			if err != nil {
				return err
			}
			if res.Report != nil {
				if err = report.Write(cmd.OutOrStdout(), f, *res.Report, engine.Catalog()); err != nil {
					return err
				}
			}
			if f == report.FormatText {
				printStatus(cmd.OutOrStdout(), res, "")
			}
			return resultError(res)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "report format: text, json or yaml")
	return cmd
}

func foldersCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "folders PATH",
		Short: "List the subfolders of PATH with their item counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer e.teardown()
			engine := e.newEngine(cmd.ErrOrStderr())
			res, err := runSession(cmd.Context(), cmd.ErrOrStderr(), func(ctx context.Context) (*explorer.Session, error) {
				return engine.StartListing(ctx, args[0])
			})
			if err != nil {
				return err
			}
			if err = resultError(res); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printFolders(out, res.Folders)
			printStatus(out, res, "")
			return nil
		},
	}
}
