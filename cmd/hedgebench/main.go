package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hedgelab/hedgebench/internal/config"
	"github.com/hedgelab/hedgebench/internal/database"
	"github.com/hedgelab/hedgebench/internal/domain"
	"github.com/hedgelab/hedgebench/internal/modules/episodes"
	"github.com/hedgelab/hedgebench/internal/modules/evaluation"
	"github.com/hedgelab/hedgebench/internal/modules/metrics"
	"github.com/hedgelab/hedgebench/internal/modules/policy"
	"github.com/hedgelab/hedgebench/internal/modules/report"
	"github.com/hedgelab/hedgebench/internal/modules/results"
	"github.com/hedgelab/hedgebench/internal/modules/simulation"
	"github.com/hedgelab/hedgebench/internal/modules/trajectories"
	"github.com/hedgelab/hedgebench/internal/scheduler"
	"github.com/hedgelab/hedgebench/internal/server"
	"github.com/hedgelab/hedgebench/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New(logger.Config{
		Level:  "info",
		Pretty: true,
	})

	log.Info().Msg("Starting hedgebench")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Rebuild the logger with the configured level
	log = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.Pretty,
	})
	logger.SetGlobalLogger(log)

	app, cleanup, err := newApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize")
	}
	defer cleanup()

	if !cfg.Serve {
		rep, _, err := app.runOnce()
		if err != nil {
			log.Fatal().Err(err).Msg("Evaluation failed")
		}
		report.RenderConsole(os.Stdout, rep)
		return
	}

	if err := app.serve(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// app wires the evaluation collaborators together for one process.
type app struct {
	cfg *config.Config
	log zerolog.Logger

	env    domain.Environment
	policy domain.Policy

	reportSvc *report.Service
	repo      *results.Repository // nil disables persistence

	// serve-mode collaborators
	state *server.State
	hub   *server.ProgressHub

	// The environment is a single mutable instance; runs never overlap.
	runMu sync.Mutex
}

func newApp(cfg *config.Config, log zerolog.Logger) (*app, func(), error) {
	env := simulation.NewOptionEnv(simulation.Config{
		Tickers:       cfg.Env.Tickers,
		ExpiryChoices: cfg.Env.ExpiryChoices,
		ActionLevels:  cfg.Env.ActionLevels,
		Volatility:    cfg.Env.Volatility,
		Drift:         cfg.Env.Drift,
		RiskFreeRate:  cfg.Env.RiskFreeRate,
		Risk:          cfg.Env.Risk,
		Shares:        cfg.Env.Shares,
		StrikePrice:   cfg.Env.StrikePrice,
	}, cfg.Seed, log)

	pol, err := buildPolicy(cfg, env, log)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var repo *results.Repository
	if cfg.ResultsDBPath != "" {
		db, err := database.New(cfg.ResultsDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open results database: %w", err)
		}
		cleanup = func() { db.Close() }
		log.Info().Str("path", db.Path()).Msg("Results database ready")

		repo, err = results.NewRepository(db.Conn(), log)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	return &app{
		cfg:       cfg,
		log:       log,
		env:       env,
		policy:    pol,
		reportSvc: report.NewService(cfg.RollingWindow, log),
		repo:      repo,
	}, cleanup, nil
}

// buildPolicy selects the policy collaborator from configuration.
func buildPolicy(cfg *config.Config, env domain.Environment, log zerolog.Logger) (domain.Policy, error) {
	switch cfg.PolicyMode {
	case config.PolicyModeDelta:
		return policy.NewDeltaPolicy(env.ActionSpace(), cfg.Env.Volatility, cfg.Env.RiskFreeRate)
	case config.PolicyModeService:
		client := policy.NewClient(cfg.PolicyServiceURL, log)
		if err := client.Health(); err != nil {
			log.Warn().Err(err).Msg("Policy service not reachable yet")
		}
		return client, nil
	case config.PolicyModeFlat:
		return policy.FlatPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown policy mode %q", cfg.PolicyMode)
	}
}

// runOnce executes a full evaluation batch and builds its report.
func (a *app) runOnce() (*report.Report, *metrics.ResultSet, error) {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	runID := uuid.NewString()
	a.log.Info().Str("run_id", runID).Int("episodes", a.cfg.Episodes).Msg("Starting evaluation run")

	svc := evaluation.NewService(a.env, a.policy, a.log)

	if a.cfg.TrajectoryArchivePath != "" {
		archive, err := trajectories.NewArchive(a.cfg.TrajectoryArchivePath)
		if err != nil {
			return nil, nil, err
		}
		defer archive.Close()

		svc.OnEpisode(func(episode int, result episodes.Result, _ metrics.EpisodeRecord) error {
			return archive.Append(trajectories.Record{
				Episode: episode,
				Ticker:  result.Params.Ticker,
				Steps:   result.Trajectory,
			})
		})
	}

	if a.state != nil {
		svc.OnProgress(func(p evaluation.Progress) {
			a.state.SetProgress(p)
			a.hub.Broadcast(p)
		})
	}

	resultSet, err := svc.RunBatch(a.cfg.Episodes)
	if err != nil {
		return nil, nil, err
	}

	rep := a.reportSvc.Build(runID, resultSet)

	if a.repo != nil {
		if err := a.repo.SaveRun(runID, resultSet); err != nil {
			return nil, nil, err
		}
	}

	return rep, resultSet, nil
}

// serve runs the batch in the background, exposes it over HTTP and blocks
// until interrupted.
func (a *app) serve() error {
	a.state = server.NewState()
	a.hub = server.NewProgressHub()

	srv := server.New(server.Config{
		Log:     a.log,
		Port:    a.cfg.Port,
		State:   a.state,
		Hub:     a.hub,
		Results: a.repo,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	runBatch := func() error {
		a.state.SetRunning(true)
		defer a.state.SetRunning(false)

		rep, rs, err := a.runOnce()
		if err != nil {
			return err
		}
		a.state.SetResults(rep, rs.Records())
		return nil
	}

	go func() {
		if err := runBatch(); err != nil {
			a.log.Error().Err(err).Msg("Evaluation run failed")
		}
	}()

	if a.cfg.EvalCron != "" {
		sched := scheduler.New(a.log)
		if err := sched.AddJob(a.cfg.EvalCron, scheduler.FuncJob{
			JobName: "evaluation-batch",
			Fn:      runBatch,
		}); err != nil {
			return fmt.Errorf("failed to register evaluation job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	a.log.Info().Int("port", a.cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
