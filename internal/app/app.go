package app

import (
	"context"

	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/critic/internal/agent"
	"github.com/maxbolgarin/critic/internal/model/interfaces"
	"github.com/maxbolgarin/critic/internal/provider"
	"github.com/maxbolgarin/critic/internal/reviewer"
	"github.com/maxbolgarin/critic/internal/server"
)

// Critic is the main service that orchestrates all components
type Critic struct {
	provider interfaces.CodeProvider
	agent    interfaces.ReviewAgent
	reviewer *reviewer.Reviewer
	server   *server.Server

	cfg Config
	log logze.Logger
}

// New creates a new critic service
func New(ctx contem.Context, cfg Config) (*Critic, error) {
	s := &Critic{
		cfg: cfg,
		log: logze.With("component", "app"),
	}

	if err := s.init(ctx, cfg); err != nil {
		return nil, errm.Wrap(err, "failed to initialize service")
	}

	return s, nil
}

// RunReview reviews the pull request addressed by the provider config once.
func (s *Critic) RunReview(ctx context.Context) error {
	if _, err := s.reviewer.Run(ctx, s.cfg.Provider.Locator()); err != nil {
		return errm.Wrap(err, "failed to run review")
	}
	return nil
}

// StartServer starts serve mode, where reviews are triggered over HTTP.
// The server is registered for shutdown in the contem chain.
func (s *Critic) StartServer(ctx contem.Context) error {
	srv, err := server.New(s.cfg.Server, s.reviewer)
	if err != nil {
		return errm.Wrap(err, "failed to create trigger server")
	}
	s.server = srv
	ctx.Add(srv.Stop)

	if err := srv.Start(ctx); err != nil {
		return errm.Wrap(err, "failed to start trigger server")
	}

	s.log.Info("trigger server started", "address", s.cfg.Server.Address, "endpoint", s.cfg.Server.Endpoint)

	return nil
}

func (s *Critic) init(ctx contem.Context, cfg Config) (err error) {
	// Create code host provider
	s.provider, err = provider.New(cfg.Provider)
	if err != nil {
		return errm.Wrap(err, "failed to create code provider")
	}

	// Create AI agent
	s.agent, err = agent.New(ctx, cfg.Agent)
	if err != nil {
		return errm.Wrap(err, "failed to create review agent")
	}

	// Create reviewer - this is the central orchestrator
	s.reviewer, err = reviewer.New(cfg.Review, s.provider, s.agent)
	if err != nil {
		return errm.Wrap(err, "failed to create reviewer")
	}

	return nil
}
