package editing

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomcpgo/photo_studio_ai/pkg/client"
	"github.com/gomcpgo/photo_studio_ai/pkg/config"
	"github.com/gomcpgo/photo_studio_ai/pkg/storage"
	"github.com/gomcpgo/photo_studio_ai/pkg/types"
)

// Editor performs instruction-driven edits through the model API. On
// success the edited image is stored as a new state; the input state is
// never modified.
type Editor struct {
	client     client.Client
	storage    *storage.Storage
	timeouts   config.TimeoutConfig
	maxImageMB int
	debug      bool
}

// NewEditor creates a new Editor instance
func NewEditor(client client.Client, storage *storage.Storage, timeouts config.TimeoutConfig, maxImageMB int, debug bool) *Editor {
	return &Editor{
		client:     client,
		storage:    storage,
		timeouts:   timeouts,
		maxImageMB: maxImageMB,
		debug:      debug,
	}
}

// EditImage sends the image and instruction to a FLUX Kontext model and
// stores the result as a new state. Exactly one attempt is made; failures
// leave nothing committed.
func (e *Editor) EditImage(ctx context.Context, params EditParams) (*EditResult, error) {
	startTime := time.Now()

	if err := e.validateEditParams(&params); err != nil {
		return nil, err
	}

	modelID := GetModelFromAlias(params.Model)

	id, err := e.storage.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	dataURL, err := storage.ImageToBase64(params.ImagePath, e.maxImageMB)
	if err != nil {
		return nil, EditError{
			Code:    "file_error",
			Message: fmt.Sprintf("failed to load image: %v", err),
			Details: map[string]interface{}{
				"file_path": params.ImagePath,
			},
		}
	}

	input := e.buildEditInput(dataURL, params)

	if e.debug {
		log.Printf("Editing image with model %s: %q", modelID, params.Instruction)
	}

	prediction, err := e.client.CreatePrediction(ctx, modelID, input)
	if err != nil {
		return nil, EditError{
			Code:    "service_error",
			Message: fmt.Sprintf("failed to start edit: %v", err),
		}
	}

	result, err := e.client.WaitForCompletion(ctx, prediction.ID, e.timeouts.InitialWait)
	if err != nil {
		code := "editing_failed"
		if result == nil || result.Status == types.StatusProcessing || result.Status == types.StatusStarting {
			code = "timeout"
		}
		return nil, EditError{
			Code:    code,
			Message: fmt.Sprintf("edit failed: %v", err),
			Details: map[string]interface{}{
				"prediction_id": prediction.ID,
			},
		}
	}

	outputURL := ""
	if output, ok := result.Output.([]interface{}); ok && len(output) > 0 {
		if url, ok := output[0].(string); ok {
			outputURL = url
		}
	} else if url, ok := result.Output.(string); ok {
		outputURL = url
	}

	if outputURL == "" {
		return nil, EditError{
			Code:    "no_output",
			Message: "no output URL in result",
		}
	}

	filename := e.generateFilename(params.Filename, params.ImagePath, "edited")
	outputPath, err := e.storage.SaveImage(id, outputURL, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	inputInfo, _ := os.Stat(params.ImagePath)
	outputInfo, _ := os.Stat(outputPath)

	metrics := EditMetrics{
		ProcessingTime: time.Since(startTime).Seconds(),
	}
	if inputInfo != nil {
		metrics.InputSize = inputInfo.Size()
	}
	if outputInfo != nil {
		metrics.OutputSize = outputInfo.Size()
	}

	metadata := &types.ImageMetadata{
		Version:     "1.0",
		ID:          id,
		Operation:   "ai_edit_image",
		Origin:      types.OriginAIEdit,
		Timestamp:   time.Now(),
		Model:       modelID,
		Instruction: params.Instruction,
		Parameters: map[string]interface{}{
			"input_path":     params.ImagePath,
			"model":          params.Model,
			"guidance_scale": params.GuidanceScale,
		},
		Result: &types.OperationResult{
			Filename:       filename,
			GenerationTime: time.Since(startTime).Seconds(),
			PredictionID:   prediction.ID,
		},
	}

	if err := e.storage.SaveMetadata(id, metadata); err != nil && e.debug {
		log.Printf("Failed to save metadata: %v", err)
	}

	modelInfo := GetModelInfo(modelID)
	return &EditResult{
		ID:           id,
		InputPath:    params.ImagePath,
		OutputPath:   outputPath,
		OutputURL:    outputURL,
		Model:        modelID,
		ModelName:    modelInfo.Name,
		Instruction:  params.Instruction,
		Metrics:      metrics,
		PredictionID: prediction.ID,
	}, nil
}

// validateEditParams validates and sets defaults for edit parameters
func (e *Editor) validateEditParams(params *EditParams) error {
	if params.ImagePath == "" {
		return EditError{
			Code:    "invalid_parameters",
			Message: "image path is required",
		}
	}

	if strings.TrimSpace(params.Instruction) == "" {
		return EditError{
			Code:    "invalid_parameters",
			Message: "edit instruction is required",
		}
	}

	if params.GuidanceScale == 0 {
		params.GuidanceScale = 7.5
	}

	return nil
}

// buildEditInput builds input parameters for FLUX Kontext editing
func (e *Editor) buildEditInput(dataURL string, params EditParams) map[string]interface{} {
	input := map[string]interface{}{
		"image":          dataURL,
		"prompt":         params.Instruction,
		"guidance_scale": params.GuidanceScale,
		"num_outputs":    1,
	}

	if params.Seed > 0 {
		input["seed"] = params.Seed
	}

	return input
}

// generateFilename generates a filename for the edited image
func (e *Editor) generateFilename(userFilename, inputPath, suffix string) string {
	if userFilename != "" {
		if !strings.Contains(userFilename, ".") {
			userFilename += ".png"
		}
		return userFilename
	}

	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	if suffix != "" {
		name = fmt.Sprintf("%s_%s", name, suffix)
	}

	if ext == "" {
		ext = ".png"
	}

	return name + ext
}
