// Command scorekeeper is the Scorekeeper admin CLI.
//
// Usage:
//
//	scorekeeper migrate
//	scorekeeper matches list --status live
//	scorekeeper matches start --id 12
//	scorekeeper scorecard --id 12 --html > card.html
//	scorekeeper token --subject scorer-1 --ttl 12h
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vpsports/scorekeeper/internal/auth"
	"github.com/vpsports/scorekeeper/internal/config"
	"github.com/vpsports/scorekeeper/internal/cricket"
	"github.com/vpsports/scorekeeper/internal/db"
	"github.com/vpsports/scorekeeper/internal/fixture"
	"github.com/vpsports/scorekeeper/internal/livescore"
	"github.com/vpsports/scorekeeper/internal/scorecard"
	"github.com/vpsports/scorekeeper/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "scorekeeper",
		Short:        "Scorekeeper admin CLI",
		SilenceUsage: true,
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(matchesCmd())
	root.AddCommand(scorecardCmd())
	root.AddCommand(tokenCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// migrate command
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the match and live-score tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if printOnly {
				_, err := io.WriteString(cmd.OutOrStdout(), db.Schema())
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.StorageDriver != config.DriverPostgres {
				return fmt.Errorf("migrate needs STORAGE_DRIVER=%s", config.DriverPostgres)
			}
			start := time.Now()
			if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
				return err
			}
			logger.Info("Schema applied", "duration", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the schema instead of applying it")
	return cmd
}

// --------------------------------------------------------------------------
// matches commands
// --------------------------------------------------------------------------

func matchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Inspect and drive matches",
	}
	cmd.AddCommand(matchesListCmd())
	cmd.AddCommand(matchesStartCmd())
	return cmd
}

func matchesListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cricket matches by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, cfg *config.Config, reg *fixture.Registry, _ *livescore.Service) error {
				summaries, err := reg.List(ctx, cricket.Sport, status)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tMATCH\tVENUE\tDATE\tTIME\tSTATUS\tSCORE")
				for _, s := range summaries {
					fmt.Fprintf(tw, "%d\t%s vs %s\t%s\t%s\t%s\t%s\t%s %s | %s %s\n",
						s.ID, s.TeamA, s.TeamB, s.Venue, s.Date, s.Time, s.Status,
						s.TeamAScore, s.TeamAOvers, s.TeamBScore, s.TeamBOvers)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "upcoming", "upcoming, live, recent or finished")
	return cmd
}

func matchesStartCmd() *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Move an upcoming match to live",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, cfg *config.Config, reg *fixture.Registry, _ *livescore.Service) error {
				warnings, err := reg.Start(ctx, id)
				if err != nil {
					return err
				}
				for _, w := range warnings {
					logger.Warn("Start completed with warning", "match_id", id, "warning", w)
				}
				logger.Info("Match started", "match_id", id)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "Match ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// --------------------------------------------------------------------------
// scorecard command
// --------------------------------------------------------------------------

func scorecardCmd() *cobra.Command {
	var id int64
	var html bool
	cmd := &cobra.Command{
		Use:   "scorecard",
		Short: "Print a match scorecard as JSON or HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, cfg *config.Config, _ *fixture.Registry, scores *livescore.Service) error {
				f, ls, err := scores.GetWithFixture(ctx, id)
				if err != nil {
					return err
				}
				return writeScorecard(cmd.OutOrStdout(), scorecard.Compile(f, ls), html)
			})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "Match ID")
	cmd.Flags().BoolVar(&html, "html", false, "Render the printable HTML document")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func writeScorecard(w io.Writer, sc scorecard.Scorecard, html bool) error {
	if !html {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sc)
	}
	r, err := scorecard.NewHTMLRenderer()
	if err != nil {
		return err
	}
	return r.Render(w, sc)
}

// --------------------------------------------------------------------------
// token command
// --------------------------------------------------------------------------

func tokenCmd() *cobra.Command {
	var subject string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a scorer token signed with SCORER_JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cfg.ScorerAuthEnabled() {
				return fmt.Errorf("SCORER_JWT_SECRET is required")
			}
			if ttl <= 0 {
				ttl = cfg.ScorerTokenTTL
			}
			token, err := auth.Issue(cfg.ScorerJWTSecret, subject, ttl, time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "scorer", "Scorer identity")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default SCORER_TOKEN_TTL_HOURS)")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWith handles config loading, storage setup, and context cancellation.
func runWith(fn func(ctx context.Context, cfg *config.Config, reg *fixture.Registry, scores *livescore.Service) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	backend, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer backend.Close()

	reg := fixture.NewRegistry(backend, logger, nil).WithLocation(cfg.DisplayLocation)
	scores := livescore.NewService(backend, reg, logger, nil)
	return fn(ctx, cfg, reg, scores)
}
