package tenant

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.json")
	payload := `{
		"apps": [
			{
				"app_id": "silvergrove",
				"app_name": "Silvergrove Senior Living",
				"region": "us-east",
				"features": {"chat": true, "community": false}
			},
			{
				"app_id": "harborview",
				"app_name": "Harborview Care Network"
			}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	registry, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Len(t, registry.All(), 2)
	assert.True(t, registry.Exists("silvergrove"))
	assert.False(t, registry.Exists("unknown"))

	partner := registry.Get("silvergrove")
	require.NotNil(t, partner)
	assert.Equal(t, "Silvergrove Senior Living", partner.AppName)
	assert.Equal(t, "us-east", partner.Region)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadFromFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestHasFeature(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&PartnerConfig{
		AppID:    "silvergrove",
		Features: map[string]bool{"chat": true, "community": false},
	})

	assert.True(t, registry.HasFeature("silvergrove", "chat"))
	assert.False(t, registry.HasFeature("silvergrove", "community"))
	assert.False(t, registry.HasFeature("silvergrove", "reservations"))
	assert.False(t, registry.HasFeature("unknown", "chat"))
}

func TestGetUnknownReturnsNil(t *testing.T) {
	registry := NewRegistry()
	assert.Nil(t, registry.Get("unknown"))
}
