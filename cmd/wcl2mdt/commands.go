package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/veyra/wcl2mdt/internal/adapters/sink"
	"github.com/veyra/wcl2mdt/internal/adapters/wcl"
	"github.com/veyra/wcl2mdt/internal/app"
	"github.com/veyra/wcl2mdt/internal/config"
	"github.com/veyra/wcl2mdt/internal/domain/catalog"
	"github.com/veyra/wcl2mdt/internal/simlog"
	"github.com/veyra/wcl2mdt/pkg/logger"
	"github.com/veyra/wcl2mdt/pkg/metrics"
)

// ConvertFlags holds flags for the convert command.
type ConvertFlags struct {
	URL          string
	Fight        string
	ClientID     string
	ClientSecret string
	GapMS        int
	OutDir       string
	NoFile       bool
}

// DemoFlags holds flags for the demo command.
type DemoFlags struct {
	Pulls   int
	PerPull int
	GapMS   int
	Seed    int64
}

// buildRoot creates the root command with its subcommands.
func buildRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "wcl2mdt",
		Short:         "Convert a Warcraft Logs dungeon run into an MDT import string",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(buildConvert(), buildDemo())
	return root
}

func buildConvert() *cobra.Command {
	var f ConvertFlags
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Fetch a report's fight and produce the import string",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.URL, "url", "", "full URL (or bare code) of the WCL report")
	cmd.Flags().StringVar(&f.Fight, "fight", "", `fight to convert: "last" or a fight id`)
	cmd.Flags().StringVar(&f.ClientID, "client-id", "", "WCL API v2 client id")
	cmd.Flags().StringVar(&f.ClientSecret, "client-secret", "", "WCL API v2 client secret")
	cmd.Flags().IntVar(&f.GapMS, "gap", 0, "pull gap threshold in milliseconds")
	cmd.Flags().StringVar(&f.OutDir, "out-dir", "", "directory for the export file")
	cmd.Flags().BoolVar(&f.NoFile, "no-file", false, "print the string without writing a file")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func buildDemo() *cobra.Command {
	var f DemoFlags
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Convert a synthetic run, no credentials needed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, f)
		},
	}
	cmd.Flags().IntVar(&f.Pulls, "pulls", 0, "number of pulls in the synthetic run")
	cmd.Flags().IntVar(&f.PerPull, "per-pull", 0, "enemies per pull")
	cmd.Flags().IntVar(&f.GapMS, "gap", 0, "pull gap threshold in milliseconds")
	cmd.Flags().Int64Var(&f.Seed, "seed", 0, "random seed for the synthetic run")
	return cmd
}

// loadConfig loads layered configuration and applies it to the logger.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}

// serveMetrics exposes the pipeline's Prometheus registry while the
// conversion runs. Best-effort: a conversion must not fail because the
// debug listener could not bind.
func serveMetrics(ctx context.Context, addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Get().Warn(ctx, "metrics listener failed", logger.Error(err))
		}
	}()
}

func runConvert(cmd *cobra.Command, f ConvertFlags) error {
	ctx := cmd.Context()
	log := logger.Named("convert")

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fight") {
		cfg.Fight = f.Fight
	}
	if cmd.Flags().Changed("client-id") {
		cfg.ClientID = f.ClientID
	}
	if cmd.Flags().Changed("client-secret") {
		cfg.ClientSecret = f.ClientSecret
	}
	if cmd.Flags().Changed("gap") {
		cfg.GapMS = f.GapMS
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutputDir = f.OutDir
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return fmt.Errorf("%w: client id and secret are required (flags or W2M_CLIENT_ID/W2M_CLIENT_SECRET)", config.ErrInvalidConfig)
	}
	serveMetrics(ctx, cfg.MetricsAddr)

	code, err := wcl.ParseReportURL(f.URL)
	if err != nil {
		return err
	}

	client := wcl.New(
		wcl.WithTokenURL(cfg.TokenURL),
		wcl.WithAPIURL(cfg.APIURL),
		wcl.WithPageLimit(cfg.PageLimit),
		wcl.WithDedupeSize(cfg.DedupeSize),
	)
	if err := client.Authenticate(ctx, cfg.ClientID, cfg.ClientSecret); err != nil {
		return err
	}

	overview, err := client.ReportOverview(ctx, code)
	if err != nil {
		return err
	}
	fight, err := client.SelectFight(overview.Fights, cfg.Fight)
	if err != nil {
		return err
	}
	log.Info(ctx, "fight selected",
		logger.Int("fight", fight.ID),
		logger.String("name", fight.Name),
	)

	events, err := client.FightEvents(ctx, code, fight.ID, overview.Actors)
	if err != nil {
		return err
	}

	cat := catalog.FromActors(overview.ZoneID, overview.Actors)
	svc := app.New(
		app.WithGapThreshold(time.Duration(cfg.GapMS)*time.Millisecond),
		app.WithWeek(cfg.Week),
		app.WithRouteName(cfg.RouteName),
	)
	result, err := svc.Convert(ctx, cat, events)
	if err != nil {
		return err
	}

	if err := sink.NewConsole(cmd.OutOrStdout()).Write(ctx, result.Export); err != nil {
		return err
	}
	if !f.NoFile {
		fileSink := sink.NewFile(cfg.OutputDir, code, fight.ID)
		if err := fileSink.Write(ctx, result.Export); err != nil {
			return err
		}
		log.Info(ctx, "export written", logger.String("path", fileSink.Path()))
	}
	return nil
}

func runDemo(cmd *cobra.Command, f DemoFlags) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("gap") {
		cfg.GapMS = f.GapMS
	}
	serveMetrics(ctx, cfg.MetricsAddr)

	var genOpts []simlog.Option
	if f.Pulls > 0 {
		genOpts = append(genOpts, simlog.WithPullCount(f.Pulls))
	}
	if f.PerPull > 0 {
		genOpts = append(genOpts, simlog.WithEnemiesPerPull(f.PerPull))
	}
	if f.Seed != 0 {
		genOpts = append(genOpts, simlog.WithSeed(f.Seed))
	}
	gen := simlog.New(genOpts...)

	svc := app.New(
		app.WithGapThreshold(time.Duration(cfg.GapMS)*time.Millisecond),
		app.WithWeek(cfg.Week),
		app.WithRouteName(cfg.RouteName),
	)
	result, err := svc.Convert(ctx, gen.Catalog(), gen.Events(ctx))
	if err != nil {
		return err
	}
	return sink.NewConsole(cmd.OutOrStdout()).Write(ctx, result.Export)
}
