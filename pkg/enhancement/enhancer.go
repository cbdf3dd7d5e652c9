// Package enhancement runs pixel-level improvement models over the current
// image: resolution upscaling and background removal. Like editing, a
// successful enhancement is stored as a new state; failures leave nothing
// behind.
package enhancement

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

// Enhancer performs enhancement operations through the model API
type Enhancer struct {
	client     client.Client
	storage    *storage.Storage
	timeouts   config.TimeoutConfig
	maxImageMB int
	debug      bool
}

// NewEnhancer creates a new Enhancer instance
func NewEnhancer(client client.Client, storage *storage.Storage, timeouts config.TimeoutConfig, maxImageMB int, debug bool) *Enhancer {
	return &Enhancer{
		client:     client,
		storage:    storage,
		timeouts:   timeouts,
		maxImageMB: maxImageMB,
		debug:      debug,
	}
}

// Upscale raises the resolution of the image. Scale defaults to 4x.
func (e *Enhancer) Upscale(ctx context.Context, params UpscaleParams) (*EnhanceResult, error) {
	if params.ImagePath == "" {
		return nil, EnhanceError{
			Code:    "invalid_parameters",
			Message: "image path is required",
		}
	}
	if params.Scale <= 0 {
		params.Scale = 4
	}

	modelID := GetUpscaleModel(params.Model)

	input := func(dataURL string) map[string]interface{} {
		if modelID == ModelSwinIR {
			return map[string]interface{}{
				"image":     dataURL,
				"task_type": "Real-World Image Super-Resolution",
				"scale":     params.Scale,
			}
		}
		in := map[string]interface{}{
			"img":   dataURL,
			"scale": params.Scale,
		}
		if params.FaceEnhance {
			in["face_enhance"] = true
		}
		return in
	}

	suffix := fmt.Sprintf("upscaled_%dx", params.Scale)
	result, err := e.run(ctx, "upscale_image", modelID, params.ImagePath, params.Filename, suffix, input, map[string]interface{}{
		"scale":        params.Scale,
		"face_enhance": params.FaceEnhance,
	})
	if err != nil {
		return nil, err
	}
	result.Metrics.ScaleFactor = params.Scale
	return result, nil
}

// RemoveBackground cuts the subject out of the image. Output is a PNG with
// alpha transparency where the background was.
func (e *Enhancer) RemoveBackground(ctx context.Context, params RemoveBackgroundParams) (*EnhanceResult, error) {
	if params.ImagePath == "" {
		return nil, EnhanceError{
			Code:    "invalid_parameters",
			Message: "image path is required",
		}
	}

	input := func(dataURL string) map[string]interface{} {
		return map[string]interface{}{"image": dataURL}
	}

	// Transparency needs an alpha channel, so the output is always a PNG
	// regardless of what extension the caller asked for.
	filename := params.Filename
	if filename == "" {
		base := filepath.Base(params.ImagePath)
		filename = strings.TrimSuffix(base, filepath.Ext(base)) + "_nobg"
	} else {
		filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	filename += ".png"

	return e.run(ctx, "remove_background", ModelRembg, params.ImagePath, filename, "nobg", input, nil)
}

// run executes one enhancement prediction end to end: upload, wait, download,
// store, metadata.
func (e *Enhancer) run(ctx context.Context, operation, modelID, imagePath, userFilename, suffix string, buildInput func(string) map[string]interface{}, extraParams map[string]interface{}) (*EnhanceResult, error) {
	startTime := time.Now()

	id, err := e.storage.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	dataURL, err := storage.ImageToBase64(imagePath, e.maxImageMB)
	if err != nil {
		return nil, EnhanceError{
			Code:    "file_error",
			Message: fmt.Sprintf("failed to load image: %v", err),
			Details: map[string]interface{}{
				"file_path": imagePath,
			},
		}
	}

	input := buildInput(dataURL)

	if e.debug {
		log.Printf("Running %s with model %s", operation, modelID)
	}

	prediction, err := e.client.CreatePrediction(ctx, modelID, input)
	if err != nil {
		return nil, EnhanceError{
			Code:    "service_error",
			Message: fmt.Sprintf("failed to start %s: %v", operation, err),
		}
	}

	result, err := e.client.WaitForCompletion(ctx, prediction.ID, e.timeouts.InitialWait)
	if err != nil {
		code := "enhancement_failed"
		if result == nil || result.Status == types.StatusProcessing || result.Status == types.StatusStarting {
			code = "timeout"
		}
		return nil, EnhanceError{
			Code:    code,
			Message: fmt.Sprintf("%s failed: %v", operation, err),
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
		return nil, EnhanceError{
			Code:    "no_output",
			Message: "no output URL in result",
		}
	}

	filename := e.generateFilename(userFilename, imagePath, suffix)
	outputPath, err := e.storage.SaveImage(id, outputURL, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	inputInfo, _ := os.Stat(imagePath)
	outputInfo, _ := os.Stat(outputPath)

	metrics := EnhanceMetrics{
		ProcessingTime: time.Since(startTime).Seconds(),
	}
	if inputInfo != nil {
		metrics.InputSize = inputInfo.Size()
	}
	if outputInfo != nil {
		metrics.OutputSize = outputInfo.Size()
	}

	parameters := map[string]interface{}{
		"input_path": imagePath,
	}
	for k, v := range extraParams {
		parameters[k] = v
	}

	metadata := &types.ImageMetadata{
		Version:    "1.0",
		ID:         id,
		Operation:  operation,
		Origin:     types.OriginEnhance,
		Timestamp:  time.Now(),
		Model:      modelID,
		Parameters: parameters,
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
	return &EnhanceResult{
		ID:           id,
		Operation:    operation,
		InputPath:    imagePath,
		OutputPath:   outputPath,
		OutputURL:    outputURL,
		Model:        modelID,
		ModelName:    modelInfo.Name,
		Metrics:      metrics,
		PredictionID: prediction.ID,
	}, nil
}

// generateFilename generates a filename for the enhanced image
func (e *Enhancer) generateFilename(userFilename, inputPath, suffix string) string {
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
