package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/docscout/internal/backend"
	"github.com/csheth/docscout/internal/config"
	"github.com/csheth/docscout/internal/logging"
	"github.com/csheth/docscout/internal/session"
	"github.com/csheth/docscout/internal/tui"
)

type rootOptions struct {
	configPath  string
	backendURL  string
	file        string
	logFile     string
	verbose     bool
	noAltScreen bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "docscout",
		Short: "Ask questions about a document from the terminal",
		Long: `DocScout uploads one document to a question-answering backend and shows
the answer.

Run without a subcommand to open the interactive view, or use "ask" for a
one-shot question.

Examples:
  docscout --file ./report.pdf
  docscout ask --file ./report.pdf "What is the total?"
  docscout health --backend http://localhost:7860`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config.yaml (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.backendURL, "backend", "", "backend base URL, overrides config and DOCSCOUT_BACKEND_URL")
	flags.StringVar(&opts.file, "file", "", "document to stage before asking")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	cmd.Flags().BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")

	cmd.AddCommand(newAskCmd(opts), newHealthCmd(opts))
	return cmd
}

type logTarget int

const (
	// logToFile keeps stdout free for the terminal UI.
	logToFile logTarget = iota
	logToStderr
)

type app struct {
	cfg     config.Config
	logger  *zap.Logger
	client  *backend.Client
	session *session.Session
}

// bootstrap resolves configuration (defaults, file, env, flags) and wires the
// logger, backend client and session.
func (o *rootOptions) bootstrap(target logTarget) (*app, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.backendURL != "" {
		cfg.Backend.BaseURL = o.backendURL
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logOpts := logging.Options{Level: cfg.Log.Level, Verbose: o.verbose}
	switch target {
	case logToFile:
		logOpts.File = cfg.Log.File
	case logToStderr:
		if o.logFile != "" {
			logOpts.File = o.logFile
		} else if !o.verbose {
			logOpts.Level = "error"
		}
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	client, err := backend.New(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Logger:  logger,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		session: session.New(client, logger),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	a, err := opts.bootstrap(logToFile)
	if err != nil {
		return err
	}
	defer a.close()

	if opts.file != "" {
		if _, err := a.session.StagePath(opts.file); err != nil {
			return fmt.Errorf("stage %s: %w", opts.file, err)
		}
	}

	a.logger.Info("starting terminal UI",
		zap.String("version", version),
		zap.String("backend", a.client.BaseURL()))

	model := tui.New(tui.Config{
		Session:      a.session,
		Health:       a.client,
		Clipboard:    session.SystemClipboard{},
		Logger:       a.logger,
		NoticeTTL:    a.cfg.UI.NoticeTTL,
		GlamourStyle: a.cfg.UI.GlamourStyle,
		StartDir:     a.cfg.UI.StartDir,
		BackendLabel: a.client.BaseURL(),
	})

	programOpts := []tea.ProgramOption{tea.WithContext(cmd.Context())}
	if !opts.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
