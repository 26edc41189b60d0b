package mock

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/poiesic/userflow/ai"
)

// MockProfileGenerator is a test double for ai.ProfileGenerator.
// It allows custom behavior injection via function fields.
type MockProfileGenerator struct {
	// GenerateProfileFunc is called by GenerateProfile if set.
	// If nil, uses default deterministic behavior.
	GenerateProfileFunc func(ctx context.Context, subject ai.Subject) (*ai.Profile, error)

	subjects  []ai.Subject
	callCount int
}

// NewMockProfileGenerator creates a mock generator with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockProfileGenerator() *MockProfileGenerator {
	return &MockProfileGenerator{}
}

// GenerateProfile records the call and returns a deterministic profile.
func (m *MockProfileGenerator) GenerateProfile(ctx context.Context, subject ai.Subject) (*ai.Profile, error) {
	m.callCount++
	m.subjects = append(m.subjects, subject)

	if m.GenerateProfileFunc != nil {
		return m.GenerateProfileFunc(ctx, subject)
	}

	name := "usuário"
	if subject.Name != nil {
		name = *subject.Name
	}
	city := "cidade não informada"
	if subject.City != nil {
		city = *subject.City
	}

	return &ai.Profile{
		ProfileSummary: ai.StringPtr(fmt.Sprintf("%s mora em %s e quer crescer na área de tecnologia.", name, city)),
		LearningPath:   ai.StringPtr(pickTrack(name)),
	}, nil
}

// CallCount returns the number of times GenerateProfile was called.
func (m *MockProfileGenerator) CallCount() int {
	return m.callCount
}

// Subjects returns the subjects passed to GenerateProfile, in call order.
func (m *MockProfileGenerator) Subjects() []ai.Subject {
	return m.subjects
}

// Reset clears the call history and custom functions.
func (m *MockProfileGenerator) Reset() {
	m.callCount = 0
	m.subjects = nil
	m.GenerateProfileFunc = nil
}

// pickTrack chooses a learning track from the name hash so the same name
// always gets the same track.
func pickTrack(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return ai.LearningTracks[h.Sum32()%uint32(len(ai.LearningTracks))]
}
