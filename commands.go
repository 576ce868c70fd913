package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/server-screen/internal/alert"
	"github.com/iburimskiy/server-screen/internal/clock"
	"github.com/iburimskiy/server-screen/internal/config"
	"github.com/iburimskiy/server-screen/internal/dataset"
	"github.com/iburimskiy/server-screen/internal/game"
	"github.com/iburimskiy/server-screen/internal/metrics"
	"github.com/iburimskiy/server-screen/internal/motion"
	"github.com/iburimskiy/server-screen/internal/panel"
	"github.com/iburimskiy/server-screen/internal/store"
)

//nolint:gochecknoglobals // Cobra flag bindings.
var (
	configPath  string
	verbose     bool
	seed        int64
	threshold   float64
	tps         int
	metricsAddr string

	fastSim bool

	datasetRows int
	datasetOut  string

	rootCmd = &cobra.Command{
		Use:   "server-screen",
		Short: "Server/device panel with an animated fetch transfer and a temperature alert.",
		Long: `Opens a window showing a server panel and a device panel. "Fetch Data" sends a transfer
indicator from the server to the device and samples a simulated temperature; readings above the
threshold raise a modal "High Temperature Alert". "Store Data" runs the configured store command.`,
		SilenceUsage: true,
		RunE:         runPanel,
	}

	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Run one fetch headless and log the outcome",
		RunE:  runSimulate,
	}

	datasetCmd = &cobra.Command{
		Use:   "dataset",
		Short: "Generate the synthetic patient CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := setup(cmd); err != nil {
				return err
			}
			if err := dataset.WriteFile(datasetOut, datasetRows, seed); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"file": datasetOut, "rows": datasetRows}).Info("dataset generated")
			return nil
		},
	}

	storeCmd = &cobra.Command{
		Use:   "store",
		Short: "Run the configured store command once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			return store.NewRunner(cfg.StoreCommand).Run(cmd.Context())
		},
	}
)

//nolint:gochecknoinits // Cobra command wiring.
func init() {
	logrus.SetOutput(os.Stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.Int64Var(&seed, "seed", 0, "Random seed for simulated readings (0 uses the clock)")
	pf.Float64Var(&threshold, "threshold", config.Threshold, "Alert threshold in degrees")
	pf.IntVar(&tps, "tps", config.TPS, "Ticks per second")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. 127.0.0.1:9090")

	simulateCmd.Flags().BoolVar(&fastSim, "fast", false, "Tick without waiting")

	datasetCmd.Flags().IntVarP(&datasetRows, "rows", "n", dataset.DefaultRows, "Number of rows")
	datasetCmd.Flags().StringVarP(&datasetOut, "out", "o", dataset.DefaultFile, "Output CSV file")

	rootCmd.AddCommand(simulateCmd, datasetCmd, storeCmd)
}

// setup loads the config, applies flag overrides and configures logging.
func setup(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("threshold") {
		cfg.Threshold = threshold
	}
	if flags.Changed("tps") {
		cfg.TPS = tps
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, err
	}
	if verbose && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	return cfg, nil
}

func newPanel(cfg config.Config, notifier alert.Notifier, m *metrics.Collector) *panel.Panel {
	s := cfg.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	logrus.WithField("seed", s).Debug("sampler seeded")

	return panel.New(panel.Options{
		Layout:        panel.NewLayout(cfg.WindowWidth, cfg.WindowHeight),
		Speed:         cfg.Speed,
		IndicatorSize: cfg.IndicatorSize,
		Evaluator:     alert.NewEvaluator(alert.NewUniform(cfg.SampleMin, cfg.SampleMax, s), cfg.Threshold),
		Notifier:      notifier,
		Store:         store.NewRunner(cfg.StoreCommand),
		Metrics:       m,
		Logger:        logrus.StandardLogger(),
	})
}

// serveMetrics exposes m on addr until ctx is done. An empty addr disables it.
func serveMetrics(ctx context.Context, addr string, m *metrics.Collector) error {
	if addr == "" {
		return nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("metrics server stopped")
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logrus.WithField("addr", ln.Addr().String()).Info("serving metrics")
	return nil
}

func runPanel(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m, err := metrics.NewCollector(nil)
	if err != nil {
		return err
	}
	if err := serveMetrics(ctx, cfg.MetricsAddr, m); err != nil {
		return err
	}

	notifiers := alert.Chain{}
	if cfg.Chime {
		if chime, err := alert.NewChime(); err != nil {
			logrus.WithError(err).Warn("alert chime disabled")
		} else {
			notifiers = append(notifiers, chime)
		}
	}
	// The dialog goes last: it blocks until acknowledged.
	notifiers = append(notifiers, alert.NewDialog())

	p := newPanel(cfg, notifiers, m)
	return game.New(ctx, p, cfg, logrus.StandardLogger()).Run()
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	m, err := metrics.NewCollector(nil)
	if err != nil {
		return err
	}
	if err := serveMetrics(cmd.Context(), cfg.MetricsAddr, m); err != nil {
		return err
	}

	p := newPanel(cfg, alert.Log{Logger: logrus.StandardLogger()}, m)
	d, err := p.Fetch()
	if err != nil {
		return err
	}

	ticker := clock.New(cfg.TPS)
	ticker.Fast = fastSim
	var last motion.Step
	n, err := ticker.Run(cmd.Context(), func(uint64) bool {
		last = p.Tick()
		return last.Phase == motion.Moving
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"ticks":       n,
		"reason":      last.Reason,
		"pos":         last.Position,
		"temperature": d.Value,
		"decision":    d.Level,
	}).Info("simulation complete")
	return nil
}
