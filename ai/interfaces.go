package ai

import "context"

// ProfileGenerator produces marketing profile text for a single user.
// Implementations must be thread-safe for concurrent use.
type ProfileGenerator interface {
	// GenerateProfile asks the generative-text service for a profile summary and
	// a learning-path suggestion for subject.
	// Keys missing from the service response leave the corresponding Profile
	// field nil; they are not an error.
	// Returns a *core.HTTPError when the service call fails and a
	// *core.MalformedResponseError when the response is not a JSON object.
	GenerateProfile(ctx context.Context, subject Subject) (*Profile, error)
}

// Subject is the user data embedded in a generation prompt.
// A nil field means the value was absent or null in the source record.
type Subject struct {
	Name     *string
	Username *string
	Email    *string
	City     *string
}

// Profile is the generated text for one user.
type Profile struct {
	// ProfileSummary is a short profile description, at most two paragraphs.
	ProfileSummary *string

	// LearningPath names a concrete study track, e.g. "Dados com Python".
	LearningPath *string
}

// Provider aggregates AI services for convenient initialization and lifecycle management.
type Provider interface {
	// ProfileGenerator returns the profile generation service.
	ProfileGenerator() ProfileGenerator

	// Model returns the model identifier requests are sent to.
	Model() string

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
