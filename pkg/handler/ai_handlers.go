package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/photo_studio_ai/pkg/editing"
	"github.com/gomcpgo/photo_studio_ai/pkg/enhancement"
	"github.com/gomcpgo/photo_studio_ai/pkg/identify"
	"github.com/gomcpgo/photo_studio_ai/pkg/responses"
	"github.com/gomcpgo/photo_studio_ai/pkg/session"
	"github.com/gomcpgo/photo_studio_ai/pkg/types"
)

// handleAIEditImage sends the current image plus an instruction to the edit
// model. Preconditions are checked before any network traffic; on success
// the result becomes a new committed state, on failure the history and the
// adjustments are untouched.
func (h *PhotoStudioHandler) handleAIEditImage(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	state, ok := h.session.Current()
	if !ok {
		return h.errorResponse("ai_edit_image", "no_image", "no image loaded", nil)
	}

	instruction, _ := args["instruction"].(string)
	if strings.TrimSpace(instruction) == "" {
		return h.errorResponse("ai_edit_image", "invalid_parameters", "instruction parameter is required", nil)
	}

	if err := h.session.Begin(opAIEdit); err != nil {
		return h.errorResponse("ai_edit_image", "busy", err.Error(), nil)
	}
	defer h.session.End(opAIEdit)

	params := editing.EditParams{
		ImagePath:   state.Path,
		Instruction: instruction,
	}
	if model, ok := args["model"].(string); ok {
		params.Model = model
	}
	if seed, ok := args["seed"].(float64); ok {
		params.Seed = int(seed)
	}
	if filename, ok := args["filename"].(string); ok {
		params.Filename = filename
	}

	result, err := h.editor.EditImage(ctx, params)
	if err != nil {
		if editErr, ok := err.(editing.EditError); ok {
			return h.errorResponse("ai_edit_image", editErr.Code, editErr.Message, editErr.Details)
		}
		return h.errorResponse("ai_edit_image", "service_error", err.Error(), nil)
	}

	h.session.Commit(session.ImageState{
		ID:        result.ID,
		Path:      result.OutputPath,
		Origin:    types.OriginAIEdit,
		CreatedAt: time.Now(),
	})

	paths := map[string]string{
		"input_path": result.InputPath,
		"file_path":  result.OutputPath,
		"url":        result.OutputURL,
	}
	modelInfo := map[string]string{
		"id":   result.Model,
		"name": result.ModelName,
	}
	parameters := map[string]interface{}{
		"instruction": result.Instruction,
	}
	metrics := map[string]interface{}{
		"processing_time": result.Metrics.ProcessingTime,
		"input_size":      result.Metrics.InputSize,
		"output_size":     result.Metrics.OutputSize,
	}
	for k, v := range h.historyInfo() {
		metrics[k] = v
	}

	return h.successResponse(responses.BuildSuccessResponse(
		"ai_edit_image", result.ID, paths, modelInfo, parameters, metrics, result.PredictionID,
	))
}

// handleIdentifyImage asks the vision model what the current image shows.
// Never commits anything.
func (h *PhotoStudioHandler) handleIdentifyImage(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	state, ok := h.session.Current()
	if !ok {
		return h.errorResponse("identify_image", "no_image", "no image loaded", nil)
	}

	if err := h.session.Begin(opIdentify); err != nil {
		return h.errorResponse("identify_image", "busy", err.Error(), nil)
	}
	defer h.session.End(opIdentify)

	params := identify.IdentifyParams{
		ImagePath: state.Path,
	}
	if language, ok := args["language"].(string); ok {
		params.Language = language
	}

	result, err := h.identifier.Identify(ctx, params)
	if err != nil {
		if idErr, ok := err.(identify.IdentifyError); ok {
			return h.errorResponse("identify_image", idErr.Code, idErr.Message, idErr.Details)
		}
		return h.errorResponse("identify_image", "service_error", err.Error(), nil)
	}

	data := map[string]interface{}{
		"description":     result.Description,
		"language":        result.Language,
		"model":           result.Model,
		"processing_time": result.ProcessingTime,
		"prediction_id":   result.PredictionID,
	}
	return h.successResponse(responses.BuildSimpleSuccessResponse(
		"identify_image",
		fmt.Sprintf("Identified image %s", state.ID),
		data,
	))
}

// handleUpscaleImage raises the resolution of the current image and commits
// the result as a new state.
func (h *PhotoStudioHandler) handleUpscaleImage(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	state, ok := h.session.Current()
	if !ok {
		return h.errorResponse("upscale_image", "no_image", "no image loaded", nil)
	}

	if err := h.session.Begin(opUpscale); err != nil {
		return h.errorResponse("upscale_image", "busy", err.Error(), nil)
	}
	defer h.session.End(opUpscale)

	params := enhancement.UpscaleParams{
		ImagePath: state.Path,
	}
	if scale, ok := args["scale"].(float64); ok {
		params.Scale = int(scale)
	}
	if faceEnhance, ok := args["face_enhance"].(bool); ok {
		params.FaceEnhance = faceEnhance
	}
	if model, ok := args["model"].(string); ok {
		params.Model = model
	}
	if filename, ok := args["filename"].(string); ok {
		params.Filename = filename
	}

	result, err := h.enhancer.Upscale(ctx, params)
	if err != nil {
		if enhErr, ok := err.(enhancement.EnhanceError); ok {
			return h.errorResponse("upscale_image", enhErr.Code, enhErr.Message, enhErr.Details)
		}
		return h.errorResponse("upscale_image", "service_error", err.Error(), nil)
	}

	h.session.Commit(session.ImageState{
		ID:        result.ID,
		Path:      result.OutputPath,
		Origin:    types.OriginEnhance,
		CreatedAt: time.Now(),
	})

	return h.successResponse(h.enhancementResponse("upscale_image", result, map[string]interface{}{
		"scale":        result.Metrics.ScaleFactor,
		"face_enhance": params.FaceEnhance,
	}))
}

// handleRemoveBackground cuts the subject out of the current image and
// commits the result as a new state.
func (h *PhotoStudioHandler) handleRemoveBackground(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	state, ok := h.session.Current()
	if !ok {
		return h.errorResponse("remove_background", "no_image", "no image loaded", nil)
	}

	if err := h.session.Begin(opRemoveBG); err != nil {
		return h.errorResponse("remove_background", "busy", err.Error(), nil)
	}
	defer h.session.End(opRemoveBG)

	params := enhancement.RemoveBackgroundParams{
		ImagePath: state.Path,
	}
	if filename, ok := args["filename"].(string); ok {
		params.Filename = filename
	}

	result, err := h.enhancer.RemoveBackground(ctx, params)
	if err != nil {
		if enhErr, ok := err.(enhancement.EnhanceError); ok {
			return h.errorResponse("remove_background", enhErr.Code, enhErr.Message, enhErr.Details)
		}
		return h.errorResponse("remove_background", "service_error", err.Error(), nil)
	}

	h.session.Commit(session.ImageState{
		ID:        result.ID,
		Path:      result.OutputPath,
		Origin:    types.OriginEnhance,
		CreatedAt: time.Now(),
	})

	return h.successResponse(h.enhancementResponse("remove_background", result, nil))
}

// enhancementResponse builds the shared success payload for enhancement
// tools.
func (h *PhotoStudioHandler) enhancementResponse(operation string, result *enhancement.EnhanceResult, parameters map[string]interface{}) string {
	paths := map[string]string{
		"input_path": result.InputPath,
		"file_path":  result.OutputPath,
		"url":        result.OutputURL,
	}
	modelInfo := map[string]string{
		"id":   result.Model,
		"name": result.ModelName,
	}
	metrics := map[string]interface{}{
		"processing_time": result.Metrics.ProcessingTime,
		"input_size":      result.Metrics.InputSize,
		"output_size":     result.Metrics.OutputSize,
	}
	for k, v := range h.historyInfo() {
		metrics[k] = v
	}
	return responses.BuildSuccessResponse(operation, result.ID, paths, modelInfo, parameters, metrics, result.PredictionID)
}
