// Package jobs runs the background schedule: warming the week's plans on
// Monday morning and pruning old LLM events.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/hbennett/revisio/internal/plan"
	"github.com/hbennett/revisio/internal/report"
	"github.com/hbennett/revisio/internal/store"
	"github.com/hbennett/revisio/internal/weekly"
)

// Scheduler owns the cron jobs. Jobs run in the school timezone so the
// Monday warm-up fires at the start of the school week.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     *store.Store
	generator *weekly.Generator
	targets   plan.TargetCounts
	retention time.Duration
	log       report.Logger
}

// New builds a scheduler. retentionDays bounds how long LLM events are
// kept.
func New(s *store.Store, gen *weekly.Generator, targets plan.TargetCounts, retentionDays int, log report.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(weekly.Zone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		store:     s,
		generator: gen,
		targets:   targets,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		log:       log,
	}, nil
}

// Start registers the jobs and begins running them without blocking.
func (s *Scheduler) Start() {
	// Warm the new week's plans before school starts.
	s.scheduler.Every(1).Monday().At("06:00").Do(s.warmWeeklyPlans)

	s.scheduler.Every(1).Day().At("03:00").Do(s.pruneLLMEvents)

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// warmWeeklyPlans pre-generates this week's plan for every enrolled
// student, so Monday's first login doesn't pay the generation cost.
func (s *Scheduler) warmWeeklyPlans() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	classes, err := s.store.Classes().All(ctx)
	if err != nil {
		s.log.Error("weekly warm-up: list classes", err)
		return
	}

	var generated, failed int
	for _, cls := range classes {
		roster, err := s.store.Classes().Roster(ctx, cls.ID)
		if err != nil {
			s.log.Error("weekly warm-up: roster", err)
			continue
		}
		for _, stu := range roster {
			_, _, err := s.generator.GetOrCreate(ctx, weekly.Request{
				StudentID: stu.ID,
				ClassID:   cls.ID,
				Targets:   s.targets,
			})
			if err != nil {
				failed++
				s.log.Error("weekly warm-up: generate", err)
				continue
			}
			generated++
		}
	}
	s.log.Info(fmt.Sprintf("weekly warm-up: %d plans ready, %d failed", generated, failed))
}

// pruneLLMEvents drops events past the retention window.
func (s *Scheduler) pruneLLMEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.store.LLMEvents().Prune(ctx, time.Now().Add(-s.retention))
	if err != nil {
		s.log.Error("llm event prune", err)
		return
	}
	if n > 0 {
		s.log.Info(fmt.Sprintf("llm event prune: removed %d", n))
	}
}
