package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/rpgo/networth-projector/internal/calculation"
	"github.com/rpgo/networth-projector/internal/config"
	"github.com/rpgo/networth-projector/internal/domain"
)

// MaxTrials caps the per-age trial count a single request may ask for.
const MaxTrials = 100000

// Request is the body accepted by every POST endpoint: the settings record
// (rates in percent) plus the optional Monte Carlo knobs.
type Request struct {
	config.Settings
	// Trials and Threshold are pointers so an explicit 0 is not mistaken
	// for an omitted key.
	Trials    *int     `json:"trials,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Seed      int64   `json:"seed,omitempty"`
}

// ErrorResponse is written for every non-2xx status.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ProjectionResponse is the body of POST /v1/projection.
type ProjectionResponse struct {
	Trajectory        domain.Trajectory `json:"trajectory"`
	FirstInsolventAge *int              `json:"first_insolvent_age"`
}

// DecadeSummaryResponse is the body of POST /v1/decade-summary.
type DecadeSummaryResponse struct {
	Decades []domain.DecadeSummary `json:"decades"`
}

// Server serves the engine over HTTP.
type Server struct {
	engine *calculation.Engine
	logger calculation.Logger
	// base is cancelled when ListenAndServe shuts down, aborting running curves.
	base context.Context
}

// NewServer wires an engine into HTTP handlers. A nil logger disables logging.
func NewServer(engine *calculation.Engine, logger calculation.Logger) *Server {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Server{engine: engine, logger: logger, base: context.Background()}
}

// Handler routes a request to its endpoint.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch path {
	case "/healthz":
		if s.requireMethod(ctx, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		}
	case "/v1/settings/defaults":
		if s.requireMethod(ctx, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, config.DefaultSettings())
		}
	case "/v1/projection":
		if s.requireMethod(ctx, fasthttp.MethodPost) {
			s.handleProjection(ctx)
		}
	case "/v1/decade-summary":
		if s.requireMethod(ctx, fasthttp.MethodPost) {
			s.handleDecadeSummary(ctx)
		}
	case "/v1/retirement-curve":
		if s.requireMethod(ctx, fasthttp.MethodPost) {
			s.handleRetirementCurve(ctx)
		}
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found: "+path)
	}

	s.logger.Debugf("%s %s -> %d in %s", ctx.Method(), path, ctx.Response.StatusCode(), time.Since(start))
}

func (s *Server) requireMethod(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	req, ok := decodeRequest(ctx)
	if !ok {
		return
	}
	trajectory, err := s.engine.Project(req.Context(), req.Parameters())
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	resp := ProjectionResponse{Trajectory: trajectory}
	if age, insolvent := trajectory.FirstInsolventAge(); insolvent {
		resp.FirstInsolventAge = &age
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleDecadeSummary(ctx *fasthttp.RequestCtx) {
	req, ok := decodeRequest(ctx)
	if !ok {
		return
	}
	trajectory, err := s.engine.Project(req.Context(), req.Parameters())
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, DecadeSummaryResponse{Decades: calculation.SummarizeByDecade(trajectory)})
}

func (s *Server) handleRetirementCurve(ctx *fasthttp.RequestCtx) {
	req, ok := decodeRequest(ctx)
	if !ok {
		return
	}
	cfg, err := req.curveConfig()
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	curve, err := s.engine.RetirementCurve(s.base, req.Context(), req.Parameters(), cfg)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, curve)
}

func (r Request) curveConfig() (calculation.CurveConfig, error) {
	cfg := calculation.DefaultCurveConfig()
	if r.Trials != nil {
		cfg.Trials = *r.Trials
	}
	if r.Threshold != nil {
		cfg.SuccessThreshold = *r.Threshold
	}
	cfg.Seed = r.Seed
	if cfg.Trials > MaxTrials {
		return cfg, fmt.Errorf("%w: trials must not exceed %d", domain.ErrInvalidParameter, MaxTrials)
	}
	return cfg, cfg.Validate()
}

// decodeRequest parses the body on top of the default settings, so omitted
// keys keep their defaults.
func decodeRequest(ctx *fasthttp.RequestCtx) (Request, bool) {
	req := Request{Settings: config.DefaultSettings()}
	body := ctx.PostBody()
	if len(body) == 0 {
		return req, true
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return req, false
	}
	return req, true
}

func (s *Server) writeEngineError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange), errors.Is(err, domain.ErrInvalidParameter):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	default:
		s.logger.Errorf("request %s failed: %v", ctx.Path(), err)
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "encoding response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.base = ctx
	srv := &fasthttp.Server{
		Handler:      s.Handler,
		Name:         "networth",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Infof("shutting down")
		return srv.Shutdown()
	}
}
