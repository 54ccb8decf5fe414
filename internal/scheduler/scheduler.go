package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"StockToolkit/internal/analysis"
	"StockToolkit/internal/notifier"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner executes one analysis run.
type Runner interface {
	Run(ctx context.Context, req analysis.Request) (*analysis.Report, error)
}

// Scheduler runs a fixed analysis request on a cron schedule and
// delivers the formatted report.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   Runner
	Notifier notifier.Notifier
	Logger   *zap.Logger
	Ctx      context.Context

	// Request is the template of every run. Zero Start/End are resolved
	// per run against Lookback.
	Request  analysis.Request
	Lookback time.Duration
	Now      func() time.Time

	wg sync.WaitGroup
}

// NewScheduler creates a new Scheduler with second-level cron specs.
func NewScheduler(ctx context.Context, runner Runner, n notifier.Notifier, req analysis.Request, lookback time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lookback <= 0 {
		lookback = analysis.DefaultLookback
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   runner,
		Notifier: n,
		Logger:   logger,
		Ctx:      ctx,
		Request:  req,
		Lookback: lookback,
		Now:      time.Now,
	}
}

// Register adds the analysis task under spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.RunNow); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started", zap.Int("entries", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for running tasks, including those
// started by RunAsync.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.wg.Wait()
	s.Logger.Info("scheduler stopped")
}

// RunNow executes the analysis task immediately.
func (s *Scheduler) RunNow() {
	if err := s.run(); err != nil {
		s.Logger.Error("scheduled analysis failed", zap.Error(err))
		s.trySend("Scheduled analysis failed", err.Error())
	}
}

// RunAsync executes the analysis task in the background. Stop waits for it.
func (s *Scheduler) RunAsync() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.RunNow()
	}()
}

func (s *Scheduler) run() error {
	req := s.Request
	end := s.Now()
	req.End = end
	req.Start = end.Add(-s.Lookback)

	s.Logger.Info("running scheduled analysis",
		zap.Strings("tickers", req.Tickers), zap.String("mode", string(req.Mode)))
	rep, err := s.Runner.Run(s.Ctx, req)
	if err != nil {
		return err
	}
	s.trySend(notifier.Title(rep), notifier.FormatReport(rep))
	return nil
}

func (s *Scheduler) trySend(title, body string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(s.Ctx, title, body); err != nil {
		s.Logger.Error("send notification", zap.Error(err))
	}
}
