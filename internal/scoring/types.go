package scoring

// MaxPlacement is the worst finishing position the engine accepts. A freshly
// created match score defaults to it so an unscored team sits at the bottom
// of the lobby until an admin enters a result.
const MaxPlacement = 25

// RuleSet describes how a single match result converts to points.
// Both fields are read-only from the calculator's point of view; mutating a
// rule set only affects computations that start afterwards.
type RuleSet struct {
	KillPointValue  int   `json:"kill_point_value"`
	PlacementPoints []int `json:"placement_points"`
}

// MatchScore holds the raw per-match input for one team. Bonus may be
// negative (penalties are entered as negative bonus).
type MatchScore struct {
	Kills     int `json:"kills" msgpack:"kills"`
	Placement int `json:"placement" msgpack:"placement"`
	Bonus     int `json:"bonus" msgpack:"bonus"`
}

// NewMatchScore returns the neutral score used whenever a team is added or
// the match count grows: no kills, last place, no bonus.
func NewMatchScore() MatchScore {
	return MatchScore{Kills: 0, Placement: MaxPlacement, Bonus: 0}
}

// Team is one entry in a tournament. IDs are opaque, stable, and never
// reused after deletion. The session keeps len(MatchScores) equal to the
// tournament's match count at all times.
type Team struct {
	ID          string       `json:"id" msgpack:"id"`
	Name        string       `json:"name" msgpack:"name"`
	MatchScores []MatchScore `json:"match_scores" msgpack:"match_scores"`
}

// ComputedStanding is the derived, ranked view of a team. It is never
// persisted; Compute rebuilds it from raw scores on demand.
type ComputedStanding struct {
	Team        Team `json:"team"`
	TotalPoints int  `json:"total_points"`
	TotalKills  int  `json:"total_kills"`
	Rank        int  `json:"rank"`
}

// NormalizeScores pads scores with neutral entries or truncates them so the
// result has exactly matchCount entries. Existing entries at matching
// indices are preserved.
func NormalizeScores(scores []MatchScore, matchCount int) []MatchScore {
	if matchCount < 0 {
		matchCount = 0
	}
	if len(scores) > matchCount {
		return scores[:matchCount]
	}
	for len(scores) < matchCount {
		scores = append(scores, NewMatchScore())
	}
	return scores
}
