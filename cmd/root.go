// Package cmd implements the vdiff command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/kmacinski/vdiff/internal/app"
	"github.com/kmacinski/vdiff/internal/config"
	"github.com/kmacinski/vdiff/internal/diff"
	"github.com/kmacinski/vdiff/internal/editor"
	"github.com/kmacinski/vdiff/internal/git"
	"github.com/kmacinski/vdiff/internal/log"
	"github.com/kmacinski/vdiff/internal/source"
	"github.com/kmacinski/vdiff/internal/ui"
)

var version = "dev"

type options struct {
	configFile string
	staged     bool
	branch     bool
	base       string
	noMouse    bool
}

// NewRootCmd builds the vdiff command tree
func NewRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "vdiff [FILE | OLD NEW] [-- GIT_DIFF_ARGS...]",
		Short: "A terminal viewer for unified diffs",
		Long: `vdiff shows a unified diff in a scrollable, colored view and opens the
source line under the cursor in your editor.

With no arguments it reads the diff from stdin, or runs git diff when stdin
is a terminal. One argument names a diff file ("-" for stdin); two arguments
name an old and a new file to compare.`,
		Version:       version,
		Args:          fileArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		"config file (default: ./.vdiff.yaml or ~/.config/vdiff/config.yaml)")
	cmd.Flags().StringP("root", "r", "", "directory source paths are relative to")
	cmd.Flags().Bool("debug", false, "write a debug log")
	cmd.Flags().String("log-file", "", "debug log path (default: vdiff.log in the temp dir)")
	cmd.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse support")
	cmd.Flags().BoolVar(&opts.staged, "staged", false, "git mode: show staged changes")
	cmd.Flags().BoolVar(&opts.branch, "branch", false, "git mode: show changes against the base branch")
	cmd.Flags().StringVar(&opts.base, "base", "", "git mode: base branch (implies --branch)")
	cmd.MarkFlagsMutuallyExclusive("staged", "branch")

	cmd.AddCommand(newConfigCmd(&opts))
	return cmd
}

// fileArgs allows at most two files before "--".
func fileArgs(cmd *cobra.Command, args []string) error {
	files, _ := splitArgs(cmd, args)
	if len(files) > 2 {
		return fmt.Errorf("%w, got %d", source.ErrTooManyArgs, len(files))
	}
	return nil
}

// splitArgs separates file arguments from git diff arguments after "--".
func splitArgs(cmd *cobra.Command, args []string) (files, gitArgs []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

// loadConfig reads the config file and binds the flags that override it.
func loadConfig(cmd *cobra.Command, file string) (*viper.Viper, config.Config, error) {
	v := config.NewViper(file)
	if f := cmd.Flags().Lookup("root"); f != nil {
		_ = v.BindPFlag("root", f)
	}
	if f := cmd.Flags().Lookup("debug"); f != nil {
		_ = v.BindPFlag("logging.debug", f)
	}
	if f := cmd.Flags().Lookup("log-file"); f != nil {
		_ = v.BindPFlag("logging.file", f)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, config.Config{}, err
	}
	return v, cfg, nil
}

func setupLogging(cfg config.LoggingConfig) (func(), error) {
	if !log.Enabled(cfg.Debug) {
		return func() {}, nil
	}
	path := cfg.File
	if path == "" {
		path = filepath.Join(os.TempDir(), "vdiff.log")
	}
	return log.Init(path)
}

func gitRequest(opts options, gitArgs []string) git.DiffRequest {
	req := git.DiffRequest{Mode: git.DiffModeWorking, Base: opts.base, Args: gitArgs}
	switch {
	case opts.staged:
		req.Mode = git.DiffModeStaged
	case opts.branch || opts.base != "":
		req.Mode = git.DiffModeBranch
	}
	return req
}

func stdinIsTerminal(r io.Reader) func() bool {
	return func() bool {
		f, ok := r.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

// session is everything the viewer needs, resolved from flags, config and input.
type session struct {
	cfg  config.Config
	name string
	root string
	doc  *diff.Document
}

func prepare(ctx context.Context, cmd *cobra.Command, args []string, cfg config.Config, opts options) (*session, error) {
	files, gitArgs := splitArgs(cmd, args)

	loader := source.Loader{
		Stdin:           cmd.InOrStdin(),
		StdinIsTerminal: stdinIsTerminal(cmd.InOrStdin()),
		Git:             git.NewClient(""),
		GitRequest:      gitRequest(opts, gitArgs),
	}
	in, err := loader.Load(ctx, files)
	if err != nil {
		return nil, err
	}

	// --root wins over the repository root, which wins over the config
	root := cfg.Root
	if in.Root != "" && !cmd.Flags().Changed("root") {
		root = in.Root
	}

	doc, err := diff.Parse(in.Data, diff.WithProbe(diff.StatProbe(root)))
	if err != nil {
		return nil, err
	}
	added, removed := doc.Stats()
	log.Info(log.CatParse, "parsed diff", "input", in.Name, "lines", doc.Len(), "added", added, "removed", removed)

	return &session{cfg: cfg, name: in.Name, root: root, doc: doc}, nil
}

func run(cmd *cobra.Command, args []string, opts options) error {
	v, cfg, err := loadConfig(cmd, opts.configFile)
	if err != nil {
		return err
	}

	cleanup, err := setupLogging(cfg.Logging)
	if err != nil {
		return err
	}
	defer cleanup()

	s, err := prepare(cmd.Context(), cmd, args, cfg, opts)
	if err != nil {
		return err
	}
	if s.doc.Empty() {
		fmt.Fprintln(cmd.ErrOrStderr(), "no diff")
		return nil
	}

	styles, err := ui.FromTheme(cfg.Theme)
	if err != nil {
		return err
	}
	jumper, err := editor.Resolve(cfg.Editor, os.Getenv)
	if err != nil {
		return fmt.Errorf("resolving editor: %w", err)
	}
	log.Info(log.CatEditor, "editor", "jumper", editor.Describe(jumper))

	configFile := v.ConfigFileUsed()
	model := app.New(s.doc, app.Options{
		Name:        s.name,
		Root:        s.root,
		Layout:      cfg.Layout,
		Scroll:      cfg.Scroll,
		Styles:      styles,
		Jumper:      jumper,
		ConfigFile:  configFile,
		ReloadTheme: func() (ui.Styles, error) { return reloadTheme(configFile) },
	})

	// Bubble Tea opens the TTY for keys itself when stdin carried the diff.
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse && !opts.noMouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	_, err = p.Run()
	model.Cleanup()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func reloadTheme(path string) (ui.Styles, error) {
	cfg, err := config.Load(config.NewViper(path))
	if err != nil {
		return ui.Styles{}, err
	}
	return ui.FromTheme(cfg.Theme)
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}
