// Package identify asks a hosted vision model what an image shows. It is
// read-only with respect to the editing session: a description never
// commits anything to the history.
package identify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gomcpgo/photo_studio_ai/pkg/client"
	"github.com/gomcpgo/photo_studio_ai/pkg/config"
	"github.com/gomcpgo/photo_studio_ai/pkg/storage"
)

// Identifier runs image content identification through the model API
type Identifier struct {
	client     client.Client
	timeouts   config.TimeoutConfig
	maxImageMB int
	debug      bool
}

// NewIdentifier creates a new Identifier instance
func NewIdentifier(client client.Client, timeouts config.TimeoutConfig, maxImageMB int, debug bool) *Identifier {
	return &Identifier{
		client:     client,
		timeouts:   timeouts,
		maxImageMB: maxImageMB,
		debug:      debug,
	}
}

// Identify sends the image to the vision model and returns its text
// description. One attempt, no retries.
func (i *Identifier) Identify(ctx context.Context, params IdentifyParams) (*IdentifyResult, error) {
	startTime := time.Now()

	if params.ImagePath == "" {
		return nil, IdentifyError{
			Code:    "invalid_parameters",
			Message: "image path is required",
		}
	}
	if params.Language == "" {
		params.Language = DefaultLanguage
	}

	dataURL, err := storage.ImageToBase64(params.ImagePath, i.maxImageMB)
	if err != nil {
		return nil, IdentifyError{
			Code:    "file_error",
			Message: fmt.Sprintf("failed to load image: %v", err),
			Details: map[string]interface{}{
				"file_path": params.ImagePath,
			},
		}
	}

	input := map[string]interface{}{
		"image":  dataURL,
		"prompt": buildPrompt(params.Language),
	}

	if i.debug {
		log.Printf("Identifying image with model %s (language: %s)", ModelLLaVA, params.Language)
	}

	prediction, err := i.client.CreatePrediction(ctx, ModelLLaVA, input)
	if err != nil {
		return nil, IdentifyError{
			Code:    "service_error",
			Message: fmt.Sprintf("failed to start identification: %v", err),
		}
	}

	result, err := i.client.WaitForCompletion(ctx, prediction.ID, i.timeouts.InitialWait)
	if err != nil {
		return nil, IdentifyError{
			Code:    "service_error",
			Message: fmt.Sprintf("identification failed: %v", err),
			Details: map[string]interface{}{
				"prediction_id": prediction.ID,
			},
		}
	}

	description := joinOutput(result.Output)
	if description == "" {
		return nil, IdentifyError{
			Code:    "no_output",
			Message: "model returned an empty description",
		}
	}

	return &IdentifyResult{
		InputPath:      params.ImagePath,
		Description:    description,
		Language:       params.Language,
		Model:          ModelLLaVA,
		ModelName:      "LLaVA 13B",
		ProcessingTime: time.Since(startTime).Seconds(),
		PredictionID:   prediction.ID,
	}, nil
}

// joinOutput flattens the model output into one string. LLaVA streams its
// answer as an array of token chunks.
func joinOutput(output interface{}) string {
	switch v := output.(type) {
	case string:
		return strings.TrimSpace(v)
	case []interface{}:
		var sb strings.Builder
		for _, part := range v {
			if s, ok := part.(string); ok {
				sb.WriteString(s)
			}
		}
		return strings.TrimSpace(sb.String())
	default:
		return ""
	}
}
