package gemini

import (
	"context"
	"testing"
	"time"

	"xr_archive/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), "", "", time.Second)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGenerateConfig(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		temp := float32(0.7)
		cfg := generateConfig(models.GenerateOptions{Temperature: &temp})

		require.NotNil(t, cfg.Temperature)
		assert.Equal(t, float32(0.7), *cfg.Temperature)
		assert.Empty(t, cfg.ResponseMIMEType)
		assert.Nil(t, cfg.ResponseSchema)
	})

	t.Run("json schema", func(t *testing.T) {
		cfg := generateConfig(models.GenerateOptions{Schema: &models.Schema{
			Type: models.SchemaArray,
			Items: &models.Schema{
				Type: models.SchemaObject,
				Properties: map[string]*models.Schema{
					"label": {Type: models.SchemaString},
					"x":     {Type: models.SchemaNumber},
				},
				Required: []string{"label", "x"},
			},
		}})

		assert.Nil(t, cfg.Temperature)
		assert.Equal(t, "application/json", cfg.ResponseMIMEType)
		require.NotNil(t, cfg.ResponseSchema)
		assert.Equal(t, genai.TypeArray, cfg.ResponseSchema.Type)
		require.NotNil(t, cfg.ResponseSchema.Items)
		assert.Equal(t, genai.TypeObject, cfg.ResponseSchema.Items.Type)
		assert.Equal(t, genai.TypeString, cfg.ResponseSchema.Items.Properties["label"].Type)
		assert.Equal(t, genai.TypeNumber, cfg.ResponseSchema.Items.Properties["x"].Type)
		assert.Equal(t, []string{"label", "x"}, cfg.ResponseSchema.Items.Required)
	})
}
