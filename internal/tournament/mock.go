package tournament

import (
	"context"
	"sync"

	"github.com/mborch/scorekeeper/internal/scoring"
)

// MockAdapter is a mock implementation of the Adapter interface for testing.
// It is safe for concurrent use.
type MockAdapter struct {
	mu sync.Mutex

	// Spies for method calls
	CreateTeamFunc       func(team scoring.Team) error
	UpdateMatchScoreFunc func(teamID string, matchIndex int, field ScoreField, value int) error
	DeleteTeamFunc       func(teamID string) error
	SetMatchCountFunc    func(matchCount int) error
	LoadFunc             func() ([]scoring.Team, int, error)
	ClearAllFunc         func() error

	// Call records
	CreateTeamCalls       []scoring.Team
	UpdateMatchScoreCalls []struct {
		TeamID     string
		MatchIndex int
		Field      ScoreField
		Value      int
	}
	DeleteTeamCalls    []string
	SetMatchCountCalls []int
	LoadCalls          int
	ClearAllCalls      int
}

var _ Adapter = (*MockAdapter)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockAdapter {
	return &MockAdapter{}
}

// Reset clears all call records.
func (m *MockAdapter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateTeamCalls = nil
	m.UpdateMatchScoreCalls = nil
	m.DeleteTeamCalls = nil
	m.SetMatchCountCalls = nil
	m.LoadCalls = 0
	m.ClearAllCalls = 0
}

func (m *MockAdapter) CreateTeam(_ context.Context, team scoring.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateTeamCalls = append(m.CreateTeamCalls, team)
	if m.CreateTeamFunc != nil {
		return m.CreateTeamFunc(team)
	}
	return nil
}

func (m *MockAdapter) UpdateMatchScore(_ context.Context, teamID string, matchIndex int, field ScoreField, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateMatchScoreCalls = append(m.UpdateMatchScoreCalls, struct {
		TeamID     string
		MatchIndex int
		Field      ScoreField
		Value      int
	}{teamID, matchIndex, field, value})
	if m.UpdateMatchScoreFunc != nil {
		return m.UpdateMatchScoreFunc(teamID, matchIndex, field, value)
	}
	return nil
}

func (m *MockAdapter) DeleteTeam(_ context.Context, teamID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteTeamCalls = append(m.DeleteTeamCalls, teamID)
	if m.DeleteTeamFunc != nil {
		return m.DeleteTeamFunc(teamID)
	}
	return nil
}

func (m *MockAdapter) SetMatchCount(_ context.Context, matchCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetMatchCountCalls = append(m.SetMatchCountCalls, matchCount)
	if m.SetMatchCountFunc != nil {
		return m.SetMatchCountFunc(matchCount)
	}
	return nil
}

func (m *MockAdapter) Load(_ context.Context) ([]scoring.Team, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return nil, 1, nil
}

func (m *MockAdapter) ClearAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearAllCalls++
	if m.ClearAllFunc != nil {
		return m.ClearAllFunc()
	}
	return nil
}
