package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuxkoh/rng-backend/internal/catalog"
	"github.com/tuxkoh/rng-backend/internal/drop"
)

func doCalculate(t *testing.T, body interface{}) (*httptest.ResponseRecorder, CalculateResponse) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", &buf)
	rec := httptest.NewRecorder()
	HandleCalculate(catalog.NewLoader(""), drop.DefaultCadence())(rec, req)

	var resp CalculateResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestHandleCalculateDefaults(t *testing.T) {
	rec, resp := doCalculate(t, map[string]interface{}{})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	r := resp.Results
	assert.Equal(t, DefaultServerLuck, r.ServerLuck)
	assert.Equal(t, DefaultTimeSeconds, r.TimeSeconds)

	// total matches a working set resolved from the default tables
	expected := catalog.Resolve(catalog.ResolveInput{
		Base:         catalog.DefaultEntries(),
		RawNames:     catalog.DefaultRawNames(),
		LimitedNames: catalog.DefaultLimitedNames(),
	})
	assert.Equal(t, len(expected), r.TotalItems)
	assert.Len(t, r.AllProbabilities, r.TotalItems)
	assert.Greater(t, r.TotalWeight, 0.0)

	// limited items stay excluded without include_limited
	assert.NotContains(t, r.AllProbabilities, "roland")
	assert.NotContains(t, r.AllProbabilities, "CTI (corrupted true insanity)")

	// normalized shares sum to 100%
	sum := 0.0
	for _, rep := range r.AllProbabilities {
		sum += rep.BaseProbability
	}
	assert.InDelta(t, 100.0, sum, 1e-6)

	// chance 2 under luck 8 floors to an effective denominator of 1
	little := r.AllProbabilities["Little"]
	assert.InDelta(t, 100.0, little.IndividualProbability, 1e-9)
	assert.False(t, little.IsRaw)
}

func TestHandleCalculateNonFiniteInputs(t *testing.T) {
	// "NaN"/"Inf" strings parse under ParseFloat; they must fall back to
	// defaults (time_seconds) or be dropped (overrides) instead of poisoning
	// the shares and breaking response encoding.
	rec, resp := doCalculate(t, `{"time_seconds": "NaN", "custom_items": {"Little": "NaN", "Pebble": "Inf"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Body.Bytes())
	require.True(t, resp.Success)

	r := resp.Results
	assert.Equal(t, DefaultTimeSeconds, r.TimeSeconds)
	for name, rep := range r.AllProbabilities {
		assert.False(t, math.IsNaN(rep.BaseProbability), "share for %s", name)
		assert.False(t, math.IsNaN(rep.ExpectedCount), "expected count for %s", name)
	}
	// the non-finite override was dropped, keeping the table chance
	assert.InDelta(t, 2.0, r.AllProbabilities["Little"].Chance, 1e-9)
}

func TestHandleCalculateLuckCoercion(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"absent", `{}`, 8},
		{"valid", `{"server_luck": 3}`, 3},
		{"numeric string", `{"server_luck": "12"}`, 12},
		{"garbage string", `{"server_luck": "banana"}`, 8},
		{"non-positive", `{"server_luck": -3}`, 8},
		{"wrong type", `{"server_luck": ["nope"]}`, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doCalculate(t, tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, resp.Results.ServerLuck)
		})
	}
}

func TestHandleCalculateMalformedListsCoerce(t *testing.T) {
	rec, resp := doCalculate(t, `{
		"custom_raw": "Little, classic",
		"include_limited": 42,
		"blacklist": {"not": "a list"},
		"selected_items": [7, "Little"]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	r := resp.Results
	assert.True(t, r.AllProbabilities["Little"].IsRaw)
	assert.True(t, r.AllProbabilities["classic"].IsRaw)
	assert.NotContains(t, r.AllProbabilities, "roland") // include_limited coerced empty
	require.Contains(t, r.SelectedResults, "Little")    // non-strings dropped, not fatal
}

func TestHandleCalculateIncludeLimited(t *testing.T) {
	rec, resp := doCalculate(t, map[string]interface{}{"include_limited": []string{"roland"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp.Results.AllProbabilities, "roland")
	assert.NotContains(t, resp.Results.AllProbabilities, "clown")
}

func TestHandleCalculateBlacklistIsDisplayOnly(t *testing.T) {
	rec, resp := doCalculate(t, map[string]interface{}{"blacklist": []string{"Little"}})
	require.Equal(t, http.StatusOK, rec.Code)

	r := resp.Results
	// still part of the math
	require.Contains(t, r.AllProbabilities, "Little")
	assert.True(t, r.AllProbabilities["Little"].Blacklisted)
	// but hidden from both ranking views
	for _, ranked := range [][]RankedItem{r.SortedByProb, r.SortedByRarity} {
		for _, ri := range ranked {
			assert.NotEqual(t, "Little", ri.Name)
		}
	}
}

func TestHandleCalculateRankings(t *testing.T) {
	rec, resp := doCalculate(t, map[string]interface{}{})
	require.Equal(t, http.StatusOK, rec.Code)

	r := resp.Results
	require.LessOrEqual(t, len(r.SortedByProb), 20)
	require.LessOrEqual(t, len(r.SortedByRarity), 20)
	for i := 1; i < len(r.SortedByProb); i++ {
		assert.GreaterOrEqual(t, r.SortedByProb[i-1].ProbabilityPercent, r.SortedByProb[i].ProbabilityPercent)
	}
	for i := 1; i < len(r.SortedByRarity); i++ {
		assert.LessOrEqual(t, r.SortedByRarity[i-1].BaseProbability, r.SortedByRarity[i].BaseProbability)
	}
}

func TestHandleCalculateCustomItems(t *testing.T) {
	rec, resp := doCalculate(t, map[string]interface{}{
		"custom_items": map[string]interface{}{
			"Little":   1000000,
			"Brandnew": "250",
			"Bogus":    "not a number",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	r := resp.Results
	assert.Equal(t, 1000000.0, r.AllProbabilities["Little"].Chance)
	require.Contains(t, r.AllProbabilities, "Brandnew")
	assert.Equal(t, 250.0, r.AllProbabilities["Brandnew"].Chance)
	assert.NotContains(t, r.AllProbabilities, "Bogus")
}

func TestHandleCalculateSelectedSkipsUnknown(t *testing.T) {
	rec, resp := doCalculate(t, map[string]interface{}{
		"selected_items": []string{"Little", "No Such Item"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Results.SelectedResults, 1)
	assert.Contains(t, resp.Results.SelectedResults, "Little")
}

func TestHandleCalculateInvalidBody(t *testing.T) {
	rec, _ := doCalculate(t, `not json at all`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
