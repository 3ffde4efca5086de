package gemini

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupAPIKeyPrefersConfigured(t *testing.T) {
	os.Setenv("GEMINI_API_KEY", "from-env")
	defer os.Unsetenv("GEMINI_API_KEY")

	assert.Equal(t, "from-config", LookupAPIKey(" from-config "))
	assert.Equal(t, "from-env", LookupAPIKey(""))
}

func TestLookupAPIKeyOrder(t *testing.T) {
	for _, name := range APIKeyEnvNames {
		os.Unsetenv(name)
	}
	assert.Equal(t, "", LookupAPIKey(""))

	os.Setenv("GOOGLE_GENERATIVE_AI_API_KEY", "third")
	defer os.Unsetenv("GOOGLE_GENERATIVE_AI_API_KEY")
	assert.Equal(t, "third", LookupAPIKey(""))

	os.Setenv("GOOGLE_API_KEY", "second")
	defer os.Unsetenv("GOOGLE_API_KEY")
	assert.Equal(t, "second", LookupAPIKey(""))
}

func TestNewWithoutKey(t *testing.T) {
	_, err := New(context.Background(), "", nil, 0)
	assert.Equal(t, errEmptyAPIKey, err)
}

func TestNewOneGeneratorPerModel(t *testing.T) {
	generators, err := New(context.Background(), "test-key", []string{"model-a", " ", "model-b"}, 0)
	assert.Nil(t, err)
	if assert.Len(t, generators, 2) {
		assert.Equal(t, "model-a", generators[0].Model())
		assert.Equal(t, "model-b", generators[1].Model())
	}
}
