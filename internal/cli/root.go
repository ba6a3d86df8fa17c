package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/app"
	"github.com/idilsaglam/shoplist/internal/config"
	"github.com/idilsaglam/shoplist/internal/logging"
	"github.com/idilsaglam/shoplist/internal/resolver"
	"github.com/idilsaglam/shoplist/internal/store"
	"github.com/idilsaglam/shoplist/internal/store/jsonstore"
	"github.com/idilsaglam/shoplist/internal/store/memstore"
	"github.com/idilsaglam/shoplist/internal/ui"
)

// Streams are the process's standard streams, swappable in tests.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns os.Stdin/Stdout/Stderr.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Options tune output behavior from root flags.
type Options struct {
	ConfigPath string
	DataDir    string
	Theme      string
	Group      bool // list grouped by open/completed
	Quiet      bool // no list panel after mutations
	Verbose    bool
	NoColor    bool
}

// session is everything a subcommand needs, built once per invocation.
type session struct {
	streams Streams
	opt     Options
	version string

	cfg      *config.Config
	log      *zap.Logger
	store    *store.Store
	svc      *app.Service
	renderer *ui.ListRenderer
	term     *lineIO
}

// usageError marks errors caused by bad input; they exit with code 2.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error {
	return &usageError{msg: fmt.Sprintf(format, a...)}
}

// Run executes the CLI and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, streams Streams, version string) int {
	root := NewRootCmd(streams, version)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return exitCode(err, streams.Err)
}

func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	ui.Fail(w, err.Error())
	var ue *usageError
	var nf *resolver.NotFoundError
	var amb *resolver.AmbiguousError
	switch {
	case errors.As(err, &nf), errors.As(err, &amb):
		ui.Hint(w, "Hint: run `shoplist ls` (items) or `shoplist lists` (lists) to see ids")
		return 2
	case errors.As(err, &ue):
		return 2
	}
	return 1
}

// usageArgs turns argument validation failures into usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{msg: err.Error()}
		}
		return nil
	}
}

// unknownCommand rejects anything that did not match a subcommand.
func unknownCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	msg := fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath())
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		msg += "\n\nDid you mean this?\n\t" + strings.Join(suggestions, "\n\t")
	}
	return &usageError{msg: msg}
}

// NewRootCmd builds the command tree.
func NewRootCmd(streams Streams, version string) *cobra.Command {
	s := &session{streams: streams, version: version}

	root := &cobra.Command{
		Use:   "shoplist",
		Short: "shoplist - shopping lists in your terminal",
		Long: `shoplist keeps several named shopping lists. Items are added to the
active list, ticked off into the "Gekauft" section and cleared when done.

State is saved after every change, as one JSON document.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          unknownCommand,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd == cmd.Root() {
				return nil
			}
			return s.open(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if s.log != nil {
				_ = s.log.Sync()
			}
		},
	}
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	f := root.PersistentFlags()
	f.StringVar(&s.opt.ConfigPath, "config", "", "config file (default $SHOPLIST_CONFIG or <config dir>/shoplist/shoplist.yml)")
	f.StringVar(&s.opt.DataDir, "data-dir", "", "directory holding the saved lists")
	f.StringVar(&s.opt.Theme, "theme", "", "classic, neon or mono")
	f.BoolVar(&s.opt.Group, "group", false, "group output by open/completed")
	f.BoolVarP(&s.opt.Quiet, "quiet", "q", false, "do not print the list after changes")
	f.BoolVarP(&s.opt.Verbose, "verbose", "v", false, "debug logging on stderr")
	f.BoolVar(&s.opt.NoColor, "no-color", false, "disable colors")

	root.AddCommand(
		newListsCmd(s),
		newNewCmd(s),
		newUseCmd(s),
		newRenameCmd(s),
		newDropCmd(s),
		newAddCmd(s),
		newLsCmd(s),
		newCheckCmd(s),
		newEditCmd(s),
		newRmCmd(s),
		newClearDoneCmd(s),
		newClearCmd(s),
		newTUICmd(s),
	)
	return root
}

func (s *session) open(ctx context.Context) error {
	path, required := s.opt.ConfigPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}
	if s.opt.DataDir != "" {
		cfg.Storage.Dir = s.opt.DataDir
	}
	if s.opt.Theme != "" {
		cfg.Theme = s.opt.Theme
	}
	if s.opt.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return &usageError{msg: err.Error()}
	}
	s.cfg = cfg

	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(false, s.opt.NoColor)

	s.log, err = logging.New(cfg.LogLevel, s.streams.Err)
	if err != nil {
		return errors.Wrap(err, "logger")
	}

	var backend store.Storage
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		backend = memstore.New()
	default:
		backend = jsonstore.New(cfg.Storage.Dir)
	}
	s.store = store.New(backend,
		store.WithKey(cfg.Storage.Key),
		store.WithDefaultListName(cfg.DefaultListName),
		store.WithLogger(s.log.Named("store")),
	)
	s.store.Load(ctx)

	s.renderer = &ui.ListRenderer{
		W:       s.streams.Out,
		State:   s.store.State,
		Options: ui.ViewOptions{Group: s.opt.Group},
	}
	opts := []app.Option{
		app.WithLogger(s.log.Named("app")),
		app.WithNewListName(cfg.NewListName),
	}
	if !s.opt.Quiet {
		opts = append(opts, app.WithRenderer(s.renderer))
	}
	s.svc = app.New(s.store, opts...)
	s.term = newLineIO(s.streams.In, s.streams.Out)
	return nil
}
