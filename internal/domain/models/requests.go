package models

// Requests for simulation HTTP endpoints. Defined in domain for consistency and reuse.

type SimulateRequest struct {
	TimeHorizonMinutes        int  `json:"time_horizon_minutes" default:"60" validate:"gte=1,lte=10080"`
	BranchCount               int  `json:"branch_count" default:"5" validate:"gte=1,lte=100"`
	PredictionIntervalMinutes int  `json:"prediction_interval_minutes" default:"20" validate:"gte=1,lte=1440"`
	UseFallback               bool `json:"use_fallback"`
}

// Config converts the request into an engine config.
func (r SimulateRequest) Config() SimulationConfig {
	return SimulationConfig{
		TimeHorizonMinutes:        r.TimeHorizonMinutes,
		BranchCount:               r.BranchCount,
		PredictionIntervalMinutes: r.PredictionIntervalMinutes,
	}
}

type MonteCarloRequest struct {
	TimeHorizonMinutes        int `json:"time_horizon_minutes" default:"60" validate:"gte=1,lte=10080"`
	PredictionIntervalMinutes int `json:"prediction_interval_minutes" default:"20" validate:"gte=1,lte=1440"`
	Iterations                int `json:"iterations" default:"500" validate:"gte=10,lte=20000"`
}

// Config converts the request into a single-branch engine config.
func (r MonteCarloRequest) Config() SimulationConfig {
	return SimulationConfig{
		TimeHorizonMinutes:        r.TimeHorizonMinutes,
		BranchCount:               1,
		PredictionIntervalMinutes: r.PredictionIntervalMinutes,
	}
}
