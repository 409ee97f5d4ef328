package scoring

import "sort"

// Compute derives the ranked standings for the given teams under the given
// rules. It is pure: it never mutates its inputs and identical inputs
// always produce identical output.
//
// Ordering: total points descending, then total kills descending, then
// original input order. The input-order tie-break is a documented policy
// choice; ranks are consecutive even for exact ties, there is no shared
// rank.
func Compute(rules RuleSet, teams []Team) []ComputedStanding {
	standings := make([]ComputedStanding, len(teams))
	for i, team := range teams {
		totalPoints := 0
		totalKills := 0
		for _, score := range team.MatchScores {
			totalPoints += rules.MatchPoints(score)
			totalKills += score.Kills
		}
		standings[i] = ComputedStanding{
			Team:        team,
			TotalPoints: totalPoints,
			TotalKills:  totalKills,
		}
	}

	// SliceStable keeps input order for teams tied on points and kills.
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].TotalPoints != standings[j].TotalPoints {
			return standings[i].TotalPoints > standings[j].TotalPoints
		}
		return standings[i].TotalKills > standings[j].TotalKills
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
