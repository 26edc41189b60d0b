package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/userflow/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProfileGenerator_Default(t *testing.T) {
	gen := NewMockProfileGenerator()
	ctx := context.Background()

	first, err := gen.GenerateProfile(ctx, ai.Subject{Name: ai.StringPtr("Ana"), City: ai.StringPtr("SP")})
	require.NoError(t, err)
	second, err := gen.GenerateProfile(ctx, ai.Subject{Name: ai.StringPtr("Ana")})
	require.NoError(t, err)

	require.NotNil(t, first.ProfileSummary)
	assert.Contains(t, *first.ProfileSummary, "Ana")
	assert.Contains(t, *first.ProfileSummary, "SP")
	assert.Equal(t, *first.LearningPath, *second.LearningPath, "same name should map to the same track")
	assert.Contains(t, ai.LearningTracks, *first.LearningPath)
	assert.Equal(t, 2, gen.CallCount())
	assert.Len(t, gen.Subjects(), 2)
}

func TestMockProfileGenerator_CustomFunc(t *testing.T) {
	gen := NewMockProfileGenerator()
	gen.GenerateProfileFunc = func(ctx context.Context, s ai.Subject) (*ai.Profile, error) {
		return nil, errors.New("boom")
	}

	_, err := gen.GenerateProfile(context.Background(), ai.Subject{})
	assert.EqualError(t, err, "boom")

	gen.Reset()
	assert.Equal(t, 0, gen.CallCount())
	assert.Empty(t, gen.Subjects())

	_, err = gen.GenerateProfile(context.Background(), ai.Subject{})
	assert.NoError(t, err)
}

func TestMockProvider(t *testing.T) {
	provider := NewMockProvider()
	mp := provider.(*MockProvider)

	assert.Same(t, mp.GetMockGenerator(), provider.ProfileGenerator())
	assert.Equal(t, MockModel, provider.Model())
	assert.False(t, mp.Closed())
	assert.NoError(t, provider.Close())
	assert.True(t, mp.Closed())
}
