// Package app orchestrates one optimization run: load tables, build the
// model, solve, extract, evaluate economics, persist and publish.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aridgrid/solsite/config"
	"github.com/aridgrid/solsite/core/economics"
	coremetrics "github.com/aridgrid/solsite/core/metrics"
	"github.com/aridgrid/solsite/core/siting"
	"github.com/aridgrid/solsite/infra/logger"
	"github.com/aridgrid/solsite/infra/metrics"
	"github.com/aridgrid/solsite/infra/mqtt"
	"github.com/aridgrid/solsite/infra/tableio"
)

// Service wires the optimizer core to its collaborators.
type Service struct {
	cfg         *config.Config
	log         logger.Logger
	sink        coremetrics.Sink
	pub         *mqtt.Publisher
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken,
			cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	svc := &Service{
		cfg:         cfg,
		log:         logg,
		sink:        sink,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.pub = pub
	}
	return svc, nil
}

// Run executes one optimization end to end. The context gates the stages;
// the solve itself blocks until the backend's own time limit.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	runID := uuid.NewString()
	s.log.Infof("run %s: loading tables", runID)

	cands, err := tableio.LoadCandidates(s.cfg.Data.Candidates)
	if err != nil {
		return err
	}
	nodes, err := tableio.LoadDemandNodes(s.cfg.Data.DemandNodes)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dist := siting.DistanceMatrixKm(cands, nodes)
	s.log.Infof("run %s: building model for %d candidates, %d demand nodes", runID, len(cands), len(nodes))
	bm, err := siting.Build(siting.Inputs{
		Candidates: cands,
		Nodes:      nodes,
		DistKm:     dist,
		Rates:      s.cfg.Costs,
	}, s.cfg.Opt)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.log.Infof("run %s: solving with backend %s (limit %.0fs, gap %.4f)",
		runID, s.cfg.Solver.Name, s.cfg.Solver.TimeLimitS, s.cfg.Solver.MIPGap)
	res, solveErr := siting.Solve(bm, s.cfg.Solver)

	selection := siting.Extract(bm, res)
	ev := coremetrics.SolveEvent{
		RunID:       runID,
		Backend:     s.cfg.Solver.Name,
		Status:      res.Status.String(),
		Objective:   res.Objective,
		Bound:       res.Bound,
		Gap:         res.Gap,
		Nodes:       res.Nodes,
		Candidates:  len(cands),
		DemandNodes: len(nodes),
		SitesOpened: len(selection),
		Duration:    res.Runtime,
		Time:        time.Now(),
	}
	if err := s.sink.RecordSolve(ev); err != nil {
		s.log.Warnf("record solve: %v", err)
	}
	if solveErr != nil {
		return solveErr
	}

	s.log.Infof("run %s: %s in %s, objective %.2f (gap %.4f), %d sites",
		runID, res.Status, res.Runtime.Round(time.Millisecond), res.Objective, res.Gap, len(selection))

	portfolio := economics.EvaluatePortfolio(selection, s.cfg.Opt.PortPowerKW, economics.DefaultParameters())
	s.log.Debugw("portfolio economics", map[string]any{
		"num_sites":   portfolio.NumSites,
		"total_capex": portfolio.TotalCapex,
		"net_capex":   portfolio.TotalNetCapex,
		"npv":         portfolio.NPV,
	})

	if err := tableio.WriteSelection(s.cfg.Data.Output, selection); err != nil {
		return err
	}
	s.log.Infof("run %s: wrote %d sites to %s", runID, len(selection), s.cfg.Data.Output)

	if s.pub != nil {
		if err := s.pub.PublishSelection(runID, selection); err != nil {
			s.log.Errorf("publish selection: %v", err)
		}
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.pub != nil {
		s.pub.Close()
	}
	return nil
}
