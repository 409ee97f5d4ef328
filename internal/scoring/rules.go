package scoring

import (
	"fmt"
	"strconv"
)

// Named presets. These match the point tables the big mobile battle royale
// circuits publish; "custom" rule sets are built with NewRuleSet instead.
var presets = map[string]RuleSet{
	"freefire": {
		KillPointValue:  1,
		PlacementPoints: []int{12, 9, 8, 7, 6, 5, 4, 3, 2, 1},
	},
	"pubgm": {
		KillPointValue:  1,
		PlacementPoints: []int{10, 6, 5, 4, 3, 2, 1, 1, 0, 0},
	},
	"codm": {
		KillPointValue:  2,
		PlacementPoints: []int{15, 12, 10, 8, 6, 4, 2},
	},
}

// Preset returns a named rule set.
func Preset(name string) (RuleSet, error) {
	rs, ok := presets[name]
	if !ok {
		return RuleSet{}, fmt.Errorf("unknown scoring preset %q", name)
	}
	// Copy the table so callers cannot mutate the preset.
	points := make([]int, len(rs.PlacementPoints))
	copy(points, rs.PlacementPoints)
	rs.PlacementPoints = points
	return rs, nil
}

// PresetNames lists the available preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}

// NewRuleSet builds a manual rule set. Negative values are coerced to 0
// rather than rejected, mirroring how the admin forms treat bad input.
func NewRuleSet(killPointValue int, placementPoints []int) RuleSet {
	rs := RuleSet{
		KillPointValue:  CoercePoints(killPointValue),
		PlacementPoints: make([]int, len(placementPoints)),
	}
	for i, p := range placementPoints {
		rs.PlacementPoints[i] = CoercePoints(p)
	}
	return rs
}

// CoercePoints clamps a point value to the non-negative range.
func CoercePoints(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// ParsePoints converts free-form user input to a point value. Anything that
// does not parse as a non-negative integer becomes 0.
func ParsePoints(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return CoercePoints(v)
}

// PlacementPointsFor returns the points awarded for a 1-based placement.
// Placements beyond the table award nothing.
func (r RuleSet) PlacementPointsFor(placement int) int {
	idx := placement - 1
	if idx < 0 || idx >= len(r.PlacementPoints) {
		return 0
	}
	return r.PlacementPoints[idx]
}

// MatchPoints computes the points a single match score is worth under the
// rule set: placement points plus kill points plus the free-form bonus.
func (r RuleSet) MatchPoints(score MatchScore) int {
	return r.PlacementPointsFor(score.Placement) + score.Kills*r.KillPointValue + score.Bonus
}
