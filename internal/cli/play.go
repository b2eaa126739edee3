package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/rps/internal/game"
	"github.com/roach88/rps/internal/player"
	"github.com/roach88/rps/internal/rps"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions

	// Seed makes the opponent reproducible. Zero draws from the runtime source.
	Seed uint64

	// SessionIDs overrides the session ID generator (for testing).
	// If nil, defaults to game.UUIDv7Generator.
	SessionIDs game.SessionIDGenerator

	// Chooser overrides the opponent's chooser (for testing).
	Chooser player.Chooser
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start an interactive game",
		Long: `Start an interactive game on standard input.

Each line is one choice: 1, 2, 3 for Rock, Paper, Scissors;
R resets the history, S shows it, Q or C quits. The game also
ends at end of input.

Example:
  rps play
  rps play --seed 7 --format json < moves.txt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	bindPlayFlags(cmd, opts)
	return cmd
}

func bindPlayFlags(cmd *cobra.Command, opts *PlayOptions) {
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed the opponent for a reproducible game (0 = random)")
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd)
	slog.SetDefault(logger)

	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	rules, err := rps.DefaultRules()
	if err != nil {
		_ = formatter.Error(ErrCodeRules, "failed to load rules", err.Error())
		return WrapExitError(ExitFailure, "failed to load rules", err)
	}

	chooser := opts.Chooser
	if chooser == nil {
		chooser = player.NewRandomChooser(opts.Seed)
	}

	g, err := game.New(game.Options{
		Rules:      rules,
		Opponent:   player.NewAIPlayer(rules.Hands(), chooser),
		Reporter:   &formatterReporter{f: formatter},
		SessionIDs: opts.SessionIDs,
		Logger:     logger,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to start game", err)
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, shutting down", "session", g.SessionID(), "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	err = g.Run(ctx, cmd.InOrStdin())
	if err != nil && !errors.Is(err, context.Canceled) {
		_ = formatter.Error(ErrCodeGame, "game aborted", err.Error())
		return WrapExitError(ExitFailure, "game aborted", err)
	}
	return nil
}
