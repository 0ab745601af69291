package request

import "xr_archive/internal/domain/models"

type RefineRequest struct {
	BasePrompt string `json:"base_prompt" validate:"required"`
	UserIntent string `json:"user_intent" validate:"required"`
}

type HotspotsRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Prompts     models.PromptSet `json:"prompts"`
}
