package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hbennett/revisio/internal/api"
	"github.com/hbennett/revisio/internal/config"
	"github.com/hbennett/revisio/internal/export"
	"github.com/hbennett/revisio/internal/jobs"
	"github.com/hbennett/revisio/internal/llm"
	"github.com/hbennett/revisio/internal/qgen"
	"github.com/hbennett/revisio/internal/report"
	"github.com/hbennett/revisio/internal/session"
	"github.com/hbennett/revisio/internal/stats"
	"github.com/hbennett/revisio/internal/store"
	"github.com/hbennett/revisio/internal/weekly"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if p, _ := cmd.Flags().GetString("db"); p != "" {
			if err := store.EnsureDir(p); err != nil {
				return err
			}
			cfg.DBPath = p
		}

		var log report.Logger
		if cfg.RollbarToken != "" {
			log = report.NewRollbarLogger(cfg.RollbarToken, cfg.Env, version, cfg.Debug)
		} else {
			log = report.NewConsoleLogger(cfg.Debug)
		}

		s, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		targets, err := cfg.Targets()
		if err != nil {
			return fmt.Errorf("parse plan targets: %w", err)
		}

		gen := weekly.NewGenerator(s)
		ctrl := &session.Controller{
			Weeks:     gen,
			Plans:     s.Plans(),
			Answers:   s.Answers(),
			Questions: s.Questions(),
			Targets:   targets,
			Now:       time.Now,
		}

		loc, err := time.LoadLocation(weekly.Zone)
		if err != nil {
			return fmt.Errorf("load timezone: %w", err)
		}
		statsSvc := stats.NewService(s.Answers(), loc)

		var qgenSvc *qgen.Service
		if llmCfg, ok := llm.DiscoverConfig(); ok {
			provider, err := llm.NewProvider(cmd.Context(), llmCfg, s.LLMEvents())
			if err != nil {
				return fmt.Errorf("init llm provider: %w", err)
			}
			qgenSvc = qgen.NewService(qgen.New(provider, qgen.DefaultConfig()), s.Questions(), qgen.DefaultConfig())
		} else {
			log.Warn("no LLM provider configured; question generation disabled")
		}

		sched, err := jobs.New(s, gen, targets, cfg.EventRetentionDays, log)
		if err != nil {
			return fmt.Errorf("init scheduler: %w", err)
		}
		sched.Start()
		defer sched.Stop()

		srv := api.NewServer(cfg.ServerAddr, api.Deps{
			Store:     s,
			Session:   ctrl,
			Stats:     statsSvc,
			Generator: qgenSvc,
			Exporter:  export.NewClassExporter(s, statsSvc),
			Log:       log,
			Debug:     cfg.Debug,
		})

		log.Info("listening", "addr", cfg.ServerAddr, "env", cfg.Env)
		return srv.Start()
	},
}
