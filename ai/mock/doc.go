// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.ProfileGenerator and
// ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	profile, err := mockProvider.ProfileGenerator().GenerateProfile(ctx, subject)
//
//	// Custom behavior injection
//	gen := mock.NewMockProfileGenerator()
//	gen.GenerateProfileFunc = func(ctx context.Context, s ai.Subject) (*ai.Profile, error) {
//	    return nil, errors.New("boom")
//	}
//
//	// Check call counts
//	count := gen.CallCount()
//
// # Default Behavior
//
//   - MockProfileGenerator: Returns a summary built from the subject and a
//     learning track chosen deterministically from ai.LearningTracks
//   - MockProvider: Wraps a mock generator
package mock
