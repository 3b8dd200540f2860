package server

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"

	"github.com/maxbolgarin/critic/internal/model"
	"github.com/maxbolgarin/critic/internal/model/interfaces"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// triggerTokenHeader carries the shared secret that authorizes a trigger.
const triggerTokenHeader = "X-Trigger-Token"

// reviewTrigger is the POST body that starts a review.
type reviewTrigger struct {
	Project     string `json:"project"`
	Repository  string `json:"repository"`
	PullRequest int    `json:"pull_request"`
}

// Server handles review trigger requests
type Server struct {
	reviewer interfaces.ReviewRunner
	config   Config
	log      logze.Logger
	server   *servex.Server

	// inFlight tracks locators with a running review so duplicate
	// triggers do not start a second run.
	inFlight *abstract.SafeMap[string, struct{}]

	// ctx is the server lifetime context, reviews spawned by triggers
	// stop with the server.
	ctx context.Context
}

// New creates a new trigger handler
func New(cfg Config, reviewer interfaces.ReviewRunner) (*Server, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	log := logze.With("module", "server")

	server, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Timeout),
		servex.WithIdleTimeout(cfg.Timeout*2),
		servex.WithLogger(log),
		servex.WithHealthEndpoint(),
		servex.WithDefaultMetrics(),
		servex.WithCertificate(cfg.Certificate),
	)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create server")
	}

	h := &Server{
		reviewer: reviewer,
		config:   cfg,
		log:      log,
		server:   server,
		inFlight: abstract.NewSafeMap[string, struct{}](),
		ctx:      context.Background(),
	}

	server.HandleFunc(cfg.Endpoint, h.handleTrigger)

	return h, nil
}

// Start starts the trigger server
func (h *Server) Start(ctx context.Context) error {
	h.ctx = ctx
	if h.config.EnableHTTPS {
		return h.server.StartHTTPS(h.config.Address)
	}
	return h.server.StartHTTP(h.config.Address)
}

// Stop stops the trigger server
func (h *Server) Stop(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// handleTrigger handles incoming review trigger requests
func (h *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	if r.Method != http.MethodPost {
		ctx.Response(http.StatusMethodNotAllowed)
		return
	}

	if h.config.TriggerToken != "" {
		if r.Header.Get(triggerTokenHeader) != h.config.TriggerToken {
			ctx.Unauthorized(errm.New("invalid trigger token"), "invalid trigger token")
			return
		}
	}

	body, err := ctx.Read()
	if err != nil {
		ctx.BadRequest(err, "failed to read trigger body")
		return
	}

	var trigger reviewTrigger
	if err := json.Unmarshal(body, &trigger); err != nil {
		ctx.BadRequest(err, "failed to parse trigger body")
		return
	}

	loc := model.PullRequestLocator{
		Project:    trigger.Project,
		Repository: trigger.Repository,
		Number:     trigger.PullRequest,
	}
	if !loc.IsValid() {
		ctx.BadRequest(errm.New("invalid pull request locator"), "invalid pull request locator")
		return
	}

	key := loc.String()
	if _, ok := h.inFlight.Lookup(key); ok {
		h.log.Debug("review already in flight, ignoring trigger", "pull_request", key)
		ctx.Response(http.StatusAccepted)
		return
	}
	h.inFlight.Set(key, struct{}{})

	h.log.Info("review triggered", "pull_request", key)

	go func() {
		defer h.inFlight.Delete(key)
		if _, err := h.reviewer.Run(h.ctx, loc); err != nil {
			h.log.Err(err, "triggered review failed", "pull_request", key)
		}
	}()

	ctx.Response(http.StatusAccepted)
}
