package scoring_test

import (
	"testing"

	"github.com/mborch/scorekeeper/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeScoreArithmetic(t *testing.T) {
	rules := scoring.RuleSet{KillPointValue: 1, PlacementPoints: []int{12, 9, 8}}
	teams := []scoring.Team{
		{ID: "t1", Name: "Solo", MatchScores: []scoring.MatchScore{{Kills: 3, Placement: 1, Bonus: 5}}},
	}

	standings := scoring.Compute(rules, teams)
	require.Len(t, standings, 1)
	assert.Equal(t, 20, standings[0].TotalPoints) // 12 + 3*1 + 5
	assert.Equal(t, 3, standings[0].TotalKills)
	assert.Equal(t, 1, standings[0].Rank)
}

func TestComputeKillTieBreak(t *testing.T) {
	// A and B land on the same points; B has more kills and must rank first
	// even though A was inserted first.
	rules := scoring.RuleSet{KillPointValue: 1, PlacementPoints: []int{15, 13}}
	teams := []scoring.Team{
		{ID: "a", Name: "A", MatchScores: []scoring.MatchScore{{Kills: 5, Placement: 1}}},
		{ID: "b", Name: "B", MatchScores: []scoring.MatchScore{{Kills: 7, Placement: 2}}},
	}

	standings := scoring.Compute(rules, teams)
	require.Len(t, standings, 2)
	assert.Equal(t, 20, standings[0].TotalPoints)
	assert.Equal(t, 20, standings[1].TotalPoints)
	assert.Equal(t, "B", standings[0].Team.Name)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, "A", standings[1].Team.Name)
	assert.Equal(t, 2, standings[1].Rank)
}

func TestComputeExactTieKeepsInputOrder(t *testing.T) {
	rules := scoring.RuleSet{KillPointValue: 1, PlacementPoints: []int{10}}
	score := []scoring.MatchScore{{Kills: 2, Placement: 1}}
	teams := []scoring.Team{
		{ID: "first", Name: "First", MatchScores: score},
		{ID: "second", Name: "Second", MatchScores: score},
	}

	standings := scoring.Compute(rules, teams)
	require.Len(t, standings, 2)
	// Identical points and kills: input order decides, ranks stay consecutive.
	assert.Equal(t, "First", standings[0].Team.Name)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, "Second", standings[1].Team.Name)
	assert.Equal(t, 2, standings[1].Rank)
}

func TestComputeIsDeterministic(t *testing.T) {
	rules, err := scoring.Preset("freefire")
	require.NoError(t, err)
	teams := []scoring.Team{
		{ID: "x", Name: "X", MatchScores: []scoring.MatchScore{{Kills: 4, Placement: 3}, {Kills: 1, Placement: 9}}},
		{ID: "y", Name: "Y", MatchScores: []scoring.MatchScore{{Kills: 2, Placement: 1}, {Kills: 6, Placement: 5}}},
		{ID: "z", Name: "Z", MatchScores: []scoring.MatchScore{{Kills: 0, Placement: 25}, {Kills: 3, Placement: 2}}},
	}

	first := scoring.Compute(rules, teams)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, scoring.Compute(rules, teams))
	}
}

func TestComputeFreefireScenario(t *testing.T) {
	rules, err := scoring.Preset("freefire")
	require.NoError(t, err)

	teams := []scoring.Team{
		{ID: "alpha", Name: "Alpha", MatchScores: []scoring.MatchScore{
			{Kills: 4, Placement: 2, Bonus: 0},
			{Kills: 2, Placement: 1, Bonus: 0},
		}},
		{ID: "bravo", Name: "Bravo", MatchScores: []scoring.MatchScore{
			{Kills: 1, Placement: 5, Bonus: 0},
			{Kills: 0, Placement: 8, Bonus: 0},
		}},
		{ID: "charlie", Name: "Charlie", MatchScores: []scoring.MatchScore{
			{Kills: 3, Placement: 3, Bonus: 0},
			{Kills: 2, Placement: 4, Bonus: 0},
		}},
	}

	standings := scoring.Compute(rules, teams)
	require.Len(t, standings, 3)

	// Alpha: (9+4) + (12+2) = 27 points, 6 kills, first place.
	assert.Equal(t, "Alpha", standings[0].Team.Name)
	assert.Equal(t, 27, standings[0].TotalPoints)
	assert.Equal(t, 6, standings[0].TotalKills)
	assert.Equal(t, 1, standings[0].Rank)

	// Charlie: (8+3) + (7+2) = 20, Bravo: (6+1) + (3+0) = 10.
	assert.Equal(t, "Charlie", standings[1].Team.Name)
	assert.Equal(t, 20, standings[1].TotalPoints)
	assert.Equal(t, "Bravo", standings[2].Team.Name)
	assert.Equal(t, 10, standings[2].TotalPoints)
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	rules := scoring.RuleSet{KillPointValue: 1, PlacementPoints: []int{5, 3}}
	teams := []scoring.Team{
		{ID: "b", Name: "B", MatchScores: []scoring.MatchScore{{Kills: 0, Placement: 2}}},
		{ID: "a", Name: "A", MatchScores: []scoring.MatchScore{{Kills: 9, Placement: 1}}},
	}

	scoring.Compute(rules, teams)
	assert.Equal(t, "b", teams[0].ID)
	assert.Equal(t, "a", teams[1].ID)
}
