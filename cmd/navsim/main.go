package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zeusync/navepisode/internal/core/observability/log"
	"github.com/zeusync/navepisode/internal/injector"
	"github.com/zeusync/navepisode/internal/nav/config"
	"github.com/zeusync/navepisode/internal/nav/stats"
	"github.com/zeusync/navepisode/internal/sim"
)

type runFlags struct {
	profile     string
	episodes    int
	agents      int
	policy      string
	tolerance   float64
	seed        uint64
	parallelism int
	logLevel    string
	feedback    bool
}

func main() {
	for _, envFile := range []string{".env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	rootCmd := &cobra.Command{
		Use:          "navsim",
		Short:        "navsim drives episodic navigation agents with scripted policies.",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newRunCmd(), newProfileCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	f := runFlags{
		logLevel: envOr("NAVSIM_LOG_LEVEL", "info"),
		seed:     envUint("NAVSIM_SEED", 1),
	}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run episodes for a batch of independent agents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.profile, "profile", "p", config.VariantTurtle, "preset name or path to a YAML profile")
	flags.IntVarP(&f.episodes, "episodes", "n", 100, "episodes per agent")
	flags.IntVarP(&f.agents, "agents", "a", 4, "number of independent agents")
	flags.StringVar(&f.policy, "policy", "greedy", "policy: greedy, random or idle")
	flags.Float64Var(&f.tolerance, "tolerance", 10, "greedy heading tolerance in degrees")
	flags.Uint64Var(&f.seed, "seed", f.seed, "base random seed")
	flags.IntVar(&f.parallelism, "parallelism", 0, "max agents running at once (0 = all)")
	flags.StringVar(&f.logLevel, "log-level", f.logLevel, "debug, info, warn, error or off")
	flags.BoolVar(&f.feedback, "feedback", false, "attach ground color feedback to every agent")
	return cmd
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "profile <name|path>",
		Short:     "Print a profile as YAML",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Presets(),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Resolve(args[0])
			if err != nil {
				return err
			}
			raw, err := p.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
}

func run(cmd *cobra.Command, f runFlags) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	profile, err := config.Resolve(f.profile)
	if err != nil {
		return err
	}

	logger := injector.ProvideLogger(log.ParseLevel(f.logLevel))
	defer func() { _ = logger.Sync() }()

	recorder := stats.NewRecorder()
	runner := injector.ProvideRunner(logger, recorder)

	summaries, err := runner.Run(ctx, sim.RunConfig{
		Profile:      profile,
		Agents:       f.agents,
		Episodes:     f.episodes,
		Policy:       f.policy,
		PolicyParams: map[string]any{"tolerance": f.tolerance},
		Seed:         f.seed,
		Parallelism:  f.parallelism,
		Feedback:     f.feedback,
	})
	if err != nil {
		logger.Error("run failed", log.Error(err))
		return err
	}

	printSummaries(cmd, summaries, recorder)
	return nil
}

func printSummaries(cmd *cobra.Command, summaries []sim.Summary, recorder *stats.Recorder) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "AGENT\tEPISODES\tGOAL\tWRONG\tTIMEOUT\tSUCCESS\tMEAN REWARD\tMEAN STEPS")
	for _, s := range append(summaries, sim.Summary{Name: "total", Analytics: sim.Totals(summaries)}) {
		a := s.Analytics
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%.2f\t%.3f\t%.1f\n",
			s.Name, a.Total, a.Successes, a.Failures, a.Timeouts, a.SuccessRate(), a.MeanReward, a.MeanSteps)
	}
	_ = w.Flush()

	fmt.Fprintln(cmd.OutOrStdout())
	for _, st := range recorder.Snapshot() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-12s %.3f\n", st.Key, st.Aggregation, st.Value)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	v, err := strconv.ParseUint(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
