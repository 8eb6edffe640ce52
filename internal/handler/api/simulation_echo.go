package api

import (
	"net/http"
	"time"

	"ScenarioSim/internal/domain/models"
	"ScenarioSim/internal/service/ratelimit"
	"ScenarioSim/internal/usecase"
	xhttp "ScenarioSim/pkg/http"
	xlogger "ScenarioSim/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Run endpoints consume a CPU core per branch, so per-client throttling
// sits in front of them.
const (
	runBurst     = 5
	runPerSecond = 2
)

// SimulationEchoHandler exposes the simulation engine over HTTP.
type SimulationEchoHandler struct {
	logger   *xlogger.Logger
	sim      *usecase.Simulator
	recorder *usecase.ResultRecorder
	limiter  *ratelimit.Limiter
}

func NewSimulationEchoHandler(logger *xlogger.Logger, sim *usecase.Simulator, recorder *usecase.ResultRecorder) *SimulationEchoHandler {
	return &SimulationEchoHandler{logger: logger, sim: sim, recorder: recorder, limiter: ratelimit.New()}
}

func (h *SimulationEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/simulate", h.Simulate, h.throttle)
	g.POST("/montecarlo", h.MonteCarlo, h.throttle)
	g.GET("/snapshot", h.Snapshot)
}

func (h *SimulationEchoHandler) throttle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.limiter.Allow(c.RealIP(), runBurst, runPerSecond) {
			return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
		}
		return next(c)
	}
}

type simulateResponse struct {
	SimulationID string                    `json:"simulation_id"`
	Best         models.SimulationBranch   `json:"best"`
	Branches     []models.SimulationBranch `json:"branches"`
	Snapshot     models.MarketSnapshot     `json:"snapshot"`
	DurationMS   int64                     `json:"duration_ms"`
}

func (h *SimulationEchoHandler) Simulate(c echo.Context) error {
	start := time.Now()
	req := &models.SimulateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	var override *models.MarketSnapshot
	if req.UseFallback {
		snap := models.FallbackSnapshot(time.Now().UTC())
		override = &snap
	}

	branches, err := h.sim.RunSimulation(c.Request().Context(), req.Config(), override)
	if err != nil {
		h.logger.Error("simulate usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	best, err := h.sim.SelectBestBranch(branches)
	if err != nil {
		h.logger.Error("select best branch error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	simulationID := best.ParentID
	h.recorder.RecordBranches(simulationID, branches)

	snap, _ := h.sim.LastSnapshot()
	return xhttp.SuccessResponse(c, simulateResponse{
		SimulationID: simulationID,
		Best:         best,
		Branches:     branches,
		Snapshot:     snap,
		DurationMS:   time.Since(start).Milliseconds(),
	})
}

type monteCarloResponse struct {
	SimulationID string                  `json:"simulation_id"`
	Result       models.MonteCarloResult `json:"result"`
	DurationMS   int64                   `json:"duration_ms"`
}

func (h *SimulationEchoHandler) MonteCarlo(c echo.Context) error {
	start := time.Now()
	req := &models.MonteCarloRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.sim.RunMonteCarlo(c.Request().Context(), req.Config(), req.Iterations)
	if err != nil {
		h.logger.Error("monte carlo usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	simulationID := uuid.NewString()
	h.recorder.RecordMonteCarlo(simulationID, res)

	return xhttp.SuccessResponse(c, monteCarloResponse{
		SimulationID: simulationID,
		Result:       res,
		DurationMS:   time.Since(start).Milliseconds(),
	})
}

func (h *SimulationEchoHandler) Snapshot(c echo.Context) error {
	snap, ok := h.sim.LastSnapshot()
	if !ok {
		return xhttp.NotFoundResponse(c, "no snapshot yet, run a simulation first")
	}
	return xhttp.SuccessResponse(c, snap)
}
