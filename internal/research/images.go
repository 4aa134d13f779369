package research

import (
	"context"
	"fmt"

	"github.com/dossier-ai/dossier/internal/telemetry"
	"github.com/dossier-ai/dossier/models"
)

// GenerateImages produces n images for a prompt. A non-empty marketing
// preset is appended to the prompt as design notes.
func (s *Service) GenerateImages(ctx context.Context, prompt, marketingPreset string, n int) (models.ImageResponse, error) {
	if n < 1 {
		n = 1
	}
	if marketingPreset != "" {
		prompt = fmt.Sprintf("%s\n\nDesign notes: %s", prompt, marketingPreset)
	}
	resp, err := s.llm.GenerateImages(ctx, prompt, n)
	if err != nil {
		telemetry.ResearchRequests.WithLabelValues("image", "error").Inc()
		return models.ImageResponse{}, err
	}
	telemetry.ResearchRequests.WithLabelValues("image", "ok").Inc()
	return resp, nil
}

// EditImage applies a prompt-driven edit to an uploaded image.
func (s *Service) EditImage(ctx context.Context, prompt string, image []byte, mime string, n int) (models.ImageResponse, error) {
	if n < 1 {
		n = 1
	}
	resp, err := s.llm.EditImage(ctx, prompt, image, mime, n)
	if err != nil {
		telemetry.ResearchRequests.WithLabelValues("image_edit", "error").Inc()
		return models.ImageResponse{}, err
	}
	telemetry.ResearchRequests.WithLabelValues("image_edit", "ok").Inc()
	return resp, nil
}
