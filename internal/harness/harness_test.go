package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := Run(s)
			require.NoError(t, err)
			require.NoError(t, Check(result))
		})
	}
}

func TestRun_RouteEnrichment(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)

	for _, s := range scenarios {
		result, err := Run(s)
		require.NoError(t, err)
		for _, res := range result.Ranked {
			if len(s.Logistics) > 0 {
				require.NotNil(t, res.Route, "scenario %s: missing route", s.Name)
				assert.Len(t, res.Route.LogisticsNodes, len(s.Logistics))
			} else {
				assert.Nil(t, res.Route, "scenario %s: unexpected route", s.Name)
			}
		}
	}
}

func TestCheck_DetectsWrongRanking(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	s := scenarios[0]
	result, err := Run(s)
	require.NoError(t, err)

	// Corrupt the expectation; Check must notice.
	s.Expect.Ranking[0] = "nobody"
	assert.Error(t, Check(result))
}

func TestLoadScenario_Missing(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does-not-exist.yaml")
	require.Error(t, err)
}

func TestLoadScenarios_SortedByFilename(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)

	names := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"bonus_terms", "insulin_basic", "multi_item_sum", "stable_tie"}, names)
}
