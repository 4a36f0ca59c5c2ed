package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tuxkoh/rng-backend/internal/catalog"
	"github.com/tuxkoh/rng-backend/internal/drop"
	"github.com/tuxkoh/rng-backend/internal/logger"
	"github.com/tuxkoh/rng-backend/internal/metrics"
)

// SimulateRequest is the body of POST /api/v1/simulate. It runs Monte Carlo
// trials against the same distribution the calculate endpoint reports on,
// so the simulated figures can be compared with the analytic ones.
type SimulateRequest struct {
	Target      string    `json:"target" validate:"required"`
	Goal        string    `json:"goal" validate:"omitempty,oneof=first_drop fixed_budget"`
	Trials      int       `json:"trials" validate:"min=1,max=100000"`
	TimeSeconds FlexFloat `json:"time_seconds"`
	ServerLuck  FlexInt   `json:"server_luck"`
	Seed        uint64    `json:"seed"`

	CustomItems    FlexChances `json:"custom_items"`
	CustomRaw      FlexStrings `json:"custom_raw"`
	IncludeLimited FlexStrings `json:"include_limited"`
}

// SimulateResponse carries the summary statistics of the run.
type SimulateResponse struct {
	Success bool          `json:"success"`
	Target  string        `json:"target"`
	Goal    string        `json:"goal"`
	Trials  int           `json:"trials"`
	Stats   drop.SimStats `json:"stats"`
}

// HandleSimulate runs a seeded or crypto-random Monte Carlo simulation for
// one target item.
func HandleSimulate(loader *catalog.Loader, cad drop.Cadence) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SimulateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode simulate request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid simulate request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"error":   "Validation failed",
				"details": FormatValidationError(err),
			})
			return
		}

		snap, err := loader.Snapshot()
		if err != nil {
			log.Error("Failed to load catalog", "error", err)
			respondError(w, http.StatusInternalServerError, "Catalog unavailable")
			return
		}

		luck := req.ServerLuck.Or(DefaultServerLuck)
		if luck < 1 {
			luck = DefaultServerLuck
		}
		goal := drop.Goal(req.Goal)
		if goal == "" {
			goal = drop.GoalFirstDrop
		}

		set := catalog.Resolve(catalog.ResolveInput{
			Base:           snap.Entries,
			Overrides:      map[string]float64(req.CustomItems),
			RawNames:       append(snap.RawNames, req.CustomRaw...),
			LimitedNames:   snap.Limited,
			IncludeLimited: req.IncludeLimited,
		})
		model := drop.NewModel(drop.Compute(set, luck), cad)

		stats, err := model.Simulate(drop.SimParams{
			Target:  req.Target,
			Seconds: req.TimeSeconds.Or(DefaultTimeSeconds),
			Trials:  req.Trials,
			Seed:    req.Seed,
		}, goal)
		switch {
		case errors.Is(err, drop.ErrNotFound):
			respondError(w, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, drop.ErrZeroRate), errors.Is(err, drop.ErrExcessiveWork):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		case err != nil:
			log.Error("Simulation failed", "error", err, "target", req.Target)
			respondError(w, http.StatusInternalServerError, "Simulation failed")
			return
		}

		metrics.SimulationTrials.Add(float64(req.Trials))
		log.Info("Simulation completed",
			"target", req.Target,
			"goal", string(goal),
			"trials", req.Trials)

		respondJSON(w, http.StatusOK, SimulateResponse{
			Success: true,
			Target:  req.Target,
			Goal:    string(goal),
			Trials:  req.Trials,
			Stats:   stats,
		})
	}
}
