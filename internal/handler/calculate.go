package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/tuxkoh/rng-backend/internal/catalog"
	"github.com/tuxkoh/rng-backend/internal/drop"
	"github.com/tuxkoh/rng-backend/internal/logger"
	"github.com/tuxkoh/rng-backend/internal/metrics"
)

// Request-level defaults for the calculate endpoint.
const (
	DefaultServerLuck  = 8
	DefaultTimeSeconds = 3600.0
	rankingCap         = 20
)

// CalculateRequest is the body of POST /api/v1/calculate. Every field is
// optional; malformed list/map fields coerce to empty rather than erroring.
type CalculateRequest struct {
	ServerLuck     FlexInt     `json:"server_luck"`
	TimeSeconds    FlexFloat   `json:"time_seconds"`
	CustomItems    FlexChances `json:"custom_items"`
	CustomRaw      FlexStrings `json:"custom_raw"`
	IncludeLimited FlexStrings `json:"include_limited"`
	Blacklist      FlexStrings `json:"blacklist"`
	SelectedItems  FlexStrings `json:"selected_items"`
}

// ItemReport is the per-item block of the calculate response.
type ItemReport struct {
	ProbabilityPercent    float64    `json:"probability_percent"`
	ExpectedCount         float64    `json:"expected_count"`
	TimeFirstSeconds      optSeconds `json:"time_first_seconds"`
	Time99PercentSeconds  optSeconds `json:"time_99_percent_seconds"`
	BaseProbability       float64    `json:"base_probability"`
	IndividualProbability float64    `json:"individual_probability"`
	Chance                float64    `json:"chance"`
	IsRaw                 bool       `json:"is_raw"`
	Blacklisted           bool       `json:"blacklisted,omitempty"`
}

// RankedItem is one row of a ranking view.
type RankedItem struct {
	Name string `json:"name"`
	ItemReport
}

// CalculateResults aggregates the full report.
type CalculateResults struct {
	TotalItems       int                   `json:"total_items"`
	TotalWeight      float64               `json:"total_weight"`
	ServerLuck       int                   `json:"server_luck"`
	TimeSeconds      float64               `json:"time_seconds"`
	AllProbabilities map[string]ItemReport `json:"all_probabilities"`
	SortedByProb     []RankedItem          `json:"sorted_by_prob"`
	SortedByRarity   []RankedItem          `json:"sorted_by_rarity"`
	SelectedResults  map[string]ItemReport `json:"selected_results"`
}

// CalculateResponse is the endpoint's success envelope.
type CalculateResponse struct {
	Success bool             `json:"success"`
	Results CalculateResults `json:"results"`
}

// HandleCalculate computes the probability and time-domain report for the
// merged catalog under the requested luck multiplier and time window.
func HandleCalculate(loader *catalog.Loader, cad drop.Cadence) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CalculateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode calculate request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
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
		seconds := req.TimeSeconds.Or(DefaultTimeSeconds)

		set := catalog.Resolve(catalog.ResolveInput{
			Base:           snap.Entries,
			Overrides:      map[string]float64(req.CustomItems),
			RawNames:       append(snap.RawNames, req.CustomRaw...),
			LimitedNames:   snap.Limited,
			IncludeLimited: req.IncludeLimited,
			Blacklist:      append(snap.Blacklist, req.Blacklist...),
		})

		dist := drop.Compute(set, luck)
		model := drop.NewModel(dist, cad)

		all := make(map[string]ItemReport, dist.Len())
		for name, tr := range model.AllInTime(seconds) {
			all[name] = toItemReport(tr)
		}

		selected := make(map[string]ItemReport, len(req.SelectedItems))
		for _, name := range req.SelectedItems {
			rep, ok := all[name]
			if !ok {
				log.Debug("Selected item not in distribution", "name", name)
				continue
			}
			selected[name] = rep
		}

		metrics.CalculationsTotal.Inc()
		log.Info("Calculation completed",
			"items", dist.Len(),
			"server_luck", luck,
			"time_seconds", seconds)

		respondJSON(w, http.StatusOK, CalculateResponse{
			Success: true,
			Results: CalculateResults{
				TotalItems:       dist.Len(),
				TotalWeight:      dist.TotalWeight,
				ServerLuck:       luck,
				TimeSeconds:      seconds,
				AllProbabilities: all,
				SortedByProb:     rankByProbability(all),
				SortedByRarity:   rankByRarity(all),
				SelectedResults:  selected,
			},
		})
	}
}

func toItemReport(tr drop.TimeReport) ItemReport {
	return ItemReport{
		ProbabilityPercent:    tr.ProbabilityPercent,
		ExpectedCount:         tr.ExpectedCount,
		TimeFirstSeconds:      optSeconds(tr.TimeFirstSeconds),
		Time99PercentSeconds:  optSeconds(tr.TimeCertaintySecs),
		BaseProbability:       tr.BasePercent,
		IndividualProbability: tr.IndividualPercent,
		Chance:                tr.Chance,
		IsRaw:                 tr.Raw,
		Blacklisted:           tr.Blacklisted,
	}
}

// rankByProbability lists the top items by chance-within-window, descending.
// Blacklisted items are display-filtered here, not removed from the math.
func rankByProbability(all map[string]ItemReport) []RankedItem {
	ranked := visible(all)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ProbabilityPercent != ranked[j].ProbabilityPercent {
			return ranked[i].ProbabilityPercent > ranked[j].ProbabilityPercent
		}
		return ranked[i].Name < ranked[j].Name
	})
	return truncate(ranked)
}

// rankByRarity lists the rarest items first (lowest normalized share).
func rankByRarity(all map[string]ItemReport) []RankedItem {
	ranked := visible(all)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].BaseProbability != ranked[j].BaseProbability {
			return ranked[i].BaseProbability < ranked[j].BaseProbability
		}
		return ranked[i].Name < ranked[j].Name
	})
	return truncate(ranked)
}

func visible(all map[string]ItemReport) []RankedItem {
	out := make([]RankedItem, 0, len(all))
	for name, rep := range all {
		if rep.Blacklisted {
			continue
		}
		out = append(out, RankedItem{Name: name, ItemReport: rep})
	}
	return out
}

func truncate(ranked []RankedItem) []RankedItem {
	if len(ranked) > rankingCap {
		return ranked[:rankingCap]
	}
	return ranked
}
