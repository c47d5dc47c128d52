package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/datatug/netexplorer/pkg/config"
	"github.com/datatug/netexplorer/pkg/files"
	"github.com/datatug/netexplorer/pkg/ftstate"
	"github.com/datatug/netexplorer/pkg/logging"
	"github.com/datatug/netexplorer/pkg/profiling"
	"github.com/datatug/netexplorer/pkg/ui"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

var osExit = os.Exit

// globalFlags are shared by every command.
type globalFlags struct {
	configFile  string
	verbose     bool
	ftpHost     string
	ftpUser     string
	ftpPassword string
	ftpTLS      bool
	httpURL     string
	cpuProfile  string
	memProfile  string
}

// env is what PersistentPreRunE prepares for the command being run.
type env struct {
	flags  globalFlags
	cfg    *config.Config
	logger *zap.Logger
	store  files.Store

	stopProfiling []func()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		osExit(1)
	}
}

func newRootCmd() *cobra.Command {
	e := &env{}
	cmd := &cobra.Command{
		Use:   "netexplorer [path]",
		Short: "Browse, diagnose and scan local and network folders",
		Long: `Browse local folders, mounted network shares, FTP servers and HTTP
directory indexes; find files by type and name.

Without a subcommand an interactive explorer is started at path, or at the
last browsed location.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd == cmd.Root())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer e.teardown()
			return runTUI(e, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&e.flags.configFile, "config", "", "config file (default "+config.DefaultConfigFile+")")
	flags.BoolVarP(&e.flags.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&e.flags.ftpHost, "ftp", "", "browse an FTP server (host[:port])")
	flags.StringVar(&e.flags.ftpUser, "ftp-user", "", "FTP user name")
	flags.StringVar(&e.flags.ftpPassword, "ftp-password", "", "FTP password")
	flags.BoolVar(&e.flags.ftpTLS, "ftp-tls", false, "use explicit FTPS")
	flags.StringVar(&e.flags.httpURL, "http", "", "browse an HTTP directory index at `URL`")
	flags.StringVar(&e.flags.cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flags.StringVar(&e.flags.memProfile, "memprofile", "", "write memory profile to `file`")
	cmd.MarkFlagsMutuallyExclusive("ftp", "http")

	cmd.AddCommand(scanCmd(e))
	cmd.AddCommand(diagnoseCmd(e))
	cmd.AddCommand(foldersCmd(e))
	return cmd
}

// setup loads the configuration and builds the logger and the store. The
// interactive explorer owns the terminal, so it always logs to a file.
func (e *env) setup(interactive bool) (err error) {
	if e.cfg, err = config.LoadConfig(e.flags.configFile); err != nil {
		return err
	}
	level, logFile := e.cfg.LogLevel, e.cfg.LogFile
	if e.flags.verbose {
		level = "debug"
	}
	if interactive && logFile == "" {
		logFile = filepath.Join(e.cfg.StateDir, "netexplorer.log")
	}
	if e.logger, err = logging.New(level, logFile); err != nil {
		return err
	}
	ftstate.SetStateDir(e.cfg.StateDir)
	ftstate.SetLogger(e.logger)

	if e.flags.cpuProfile != "" {
		e.stopProfiling = append(e.stopProfiling, profiling.DoCPUProfiling(e.flags.cpuProfile, e.logger))
	}
	if e.flags.memProfile != "" {
		e.stopProfiling = append(e.stopProfiling, profiling.DoMemProfiling(e.flags.memProfile, e.logger))
	}

	e.store, err = newStore(e.flags)
	return err
}

// teardown runs after a command whose setup succeeded.
func (e *env) teardown() {
	for _, stop := range e.stopProfiling {
		stop()
	}
	if closer, ok := e.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			e.logger.Warn("failed to close store", zap.Error(err))
		}
	}
	_ = e.logger.Sync()
}

var runApp = func(app *tview.Application) error {
	return app.Run()
}

func runTUI(e *env, args []string) error {
	start := ""
	if len(args) > 0 {
		start = args[0]
	} else if files.IsNetworkStore(e.store) {
		start = defaultRoot(e.store)
	} else if start = ftstate.LastPath(); start == "" {
		start = defaultRoot(e.store)
	}

	app := tview.NewApplication()
	x := ui.New(ui.WrapApp(app), e.store,
		ui.WithLogger(e.logger),
		ui.WithEngineOptions(e.cfg.EngineOptions()...),
	)
	app.SetRoot(x, true).EnableMouse(true)
	if err := x.LoadFolders(start); err != nil {
		e.logger.Warn("failed to open start folder", zap.String("path", start), zap.Error(err))
	}

	err := runApp(app)
	x.Close()
	if p := x.CurrentPath(); p != "" && !files.IsNetworkStore(e.store) {
		ftstate.SaveLastPath(p)
	}
	if err != nil {
		return fmt.Errorf("explorer failed: %w", err)
	}
	return nil
}
