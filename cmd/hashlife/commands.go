package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"

	"hashlife/internal/config"
	"hashlife/internal/core"
	"hashlife/internal/hashlife"
	"hashlife/internal/naive"
	"hashlife/internal/pattern"
)

// maxVerifyGenerations bounds verify; the reference engine costs
// generations × board area.
const maxVerifyGenerations = 4096

var errMismatch = errors.New("hashlife and reference disagree")

type options struct {
	configPath  string
	logLevel    string
	generations int64
	window      string
	margin      int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "hashlife",
		Short:         "Advance Game of Life patterns with hashlife",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML run configuration")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	runCmd := &cobra.Command{
		Use:   "run [pattern]",
		Short: "Advance a pattern and print a window of the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.resolve(cmd, args)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cfg, logger)
		},
	}
	runCmd.Flags().Int64VarP(&opts.generations, "generations", "n", 0, "generations to advance")
	runCmd.Flags().StringVar(&opts.window, "window", "", "printed window as x,y,w,h")

	verifyCmd := &cobra.Command{
		Use:   "verify [pattern]",
		Short: "Cross-check hashlife against the per-cell reference engine",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.resolve(cmd, args)
			if err != nil {
				return err
			}
			return verify(cmd.OutOrStdout(), cfg, logger)
		},
	}
	verifyCmd.Flags().Int64VarP(&opts.generations, "generations", "n", 0, "generations to advance")
	verifyCmd.Flags().IntVar(&opts.margin, "margin", 0, "extra dead padding around the reference board")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the built-in patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range pattern.Names() {
				g, err := pattern.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %3dx%-3d pop %d\n", name, g.W, g.H, g.Population())
			}
			return nil
		},
	}

	root.AddCommand(runCmd, verifyCmd, patternsCmd)
	return root
}

// resolve merges the config file, positional pattern and changed flags, in
// that order of increasing precedence.
func (o *options) resolve(cmd *cobra.Command, args []string) (config.Config, *slog.Logger, error) {
	cfg := config.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, nil, err
		}
	}

	overrides := map[string]string{}
	if len(args) == 1 {
		overrides["pattern"] = args[0]
		cfg.PatternText = ""
	}
	flags := cmd.Flags()
	if flags.Changed("generations") {
		overrides["generations"] = strconv.FormatInt(o.generations, 10)
	}
	if flags.Changed("window") {
		w, err := config.ParseWindow(o.window)
		if err != nil {
			return config.Config{}, nil, err
		}
		cfg.Window = w
	}
	if flags.Changed("margin") {
		overrides["verify_margin"] = strconv.Itoa(o.margin)
	}
	cfg = cfg.FromMap(overrides)
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("generations") && o.generations < 0 {
		return config.Config{}, nil, fmt.Errorf("generations %d: %w", o.generations, config.ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	return cfg, logger, nil
}

func run(out io.Writer, cfg config.Config, logger *slog.Logger) error {
	seed, err := cfg.Seed()
	if err != nil {
		return err
	}
	u, err := hashlife.LoadGrid(seed, hashlife.WithStore(hashlife.NewStore()), hashlife.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.Pattern, err)
	}
	if err := u.Rounds(cfg.Generations); err != nil {
		return err
	}

	st := u.Store().Stats()
	logger.Info("run complete",
		slog.String("pattern", cfg.Pattern),
		slog.Int64("generations", cfg.Generations),
		slog.Uint64("computations", st.Computations),
		slog.Uint64("cache_hits", st.CacheHits))

	w := cfg.Window
	fmt.Fprintf(out, "generation %s\n", u.Generation())
	fmt.Fprintf(out, "population %s\n", u.Population())
	fmt.Fprintf(out, "level      %d\n", u.Root().Level())
	fmt.Fprintf(out, "nodes      created=%d reclaimed=%d live=%d\n", st.NodesCreated, st.NodesReclaimed, st.Live)
	fmt.Fprintf(out, "forward    computed=%d cached=%d base=%d\n", st.Computations, st.CacheHits, st.BaseCases)
	fmt.Fprintf(out, "window     %d,%d %dx%d\n", w.X, w.Y, w.W, w.H)
	fmt.Fprintln(out, u.Window(w.X, w.Y, w.W, w.H))
	return nil
}

func verify(out io.Writer, cfg config.Config, logger *slog.Logger) error {
	if cfg.Generations > maxVerifyGenerations {
		return fmt.Errorf("verify %d generations exceeds %d: %w", cfg.Generations, maxVerifyGenerations, config.ErrInvalid)
	}
	seed, err := cfg.Seed()
	if err != nil {
		return err
	}
	u, err := hashlife.LoadGrid(seed, hashlife.WithStore(hashlife.NewStore()), hashlife.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.Pattern, err)
	}

	// Nothing travels faster than one cell per generation, so a margin of
	// n+1 keeps the fixed board's dead edge out of reach.
	m := int(cfg.Generations) + cfg.VerifyMargin + 1
	board := core.NewGrid(seed.W+2*m, seed.H+2*m)
	for y := 0; y < seed.H; y++ {
		for x := 0; x < seed.W; x++ {
			board.Set(x+m, y+m, seed.Alive(x, y))
		}
	}
	ref := naive.FromGrid(board)

	if err := u.Rounds(cfg.Generations); err != nil {
		return err
	}
	if err := ref.Rounds(int(cfg.Generations)); err != nil {
		return err
	}

	got := u.Window(-m, -m, board.W, board.H)
	want := ref.Grid()
	if !got.Equal(want) {
		logger.Error("verify mismatch", slog.String("pattern", cfg.Pattern), slog.Int64("generations", cfg.Generations))
		return fmt.Errorf("%s after %d generations: %w", cfg.Pattern, cfg.Generations, errMismatch)
	}
	if u.Population().Cmp(big.NewInt(int64(want.Population()))) != 0 {
		return fmt.Errorf("%s population %s, reference %d: %w", cfg.Pattern, u.Population(), want.Population(), errMismatch)
	}
	fmt.Fprintf(out, "ok %s generations=%d population=%d\n", cfg.Pattern, cfg.Generations, want.Population())
	return nil
}
