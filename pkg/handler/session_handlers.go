package handler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/photo_studio_ai/pkg/render"
	"github.com/gomcpgo/photo_studio_ai/pkg/responses"
	"github.com/gomcpgo/photo_studio_ai/pkg/session"
	"github.com/gomcpgo/photo_studio_ai/pkg/types"
)

// handleLoadImage imports a local file and commits it as a new state. The
// first load creates the history; later loads behave like any other commit
// and discard forward entries.
func (h *PhotoStudioHandler) handleLoadImage(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	filePath, ok := args["file_path"].(string)
	if !ok || filePath == "" {
		return h.errorResponse("load_image", "invalid_parameters", "file_path parameter is required", nil)
	}

	// Fail closed before touching storage: refuse files we cannot decode.
	width, height, err := render.Probe(filePath)
	if err != nil {
		if rerr, ok := err.(render.Error); ok {
			return h.errorResponse("load_image", rerr.Code, rerr.Message, rerr.Details)
		}
		return h.errorResponse("load_image", "file_error", err.Error(), nil)
	}

	id, err := h.storage.GenerateID()
	if err != nil {
		return h.errorResponse("load_image", "file_error", fmt.Sprintf("failed to generate ID: %v", err), nil)
	}

	imagePath, err := h.storage.ImportFile(id, filePath, h.maxImageMB)
	if err != nil {
		return h.errorResponse("load_image", "file_error", err.Error(), map[string]interface{}{
			"file_path": filePath,
		})
	}

	metadata := &types.ImageMetadata{
		ID:        id,
		Operation: "load_image",
		Origin:    types.OriginUpload,
		Timestamp: time.Now(),
		Parameters: map[string]interface{}{
			"source_path": filePath,
		},
		Result: &types.OperationResult{
			Filename: imagePath,
			Width:    width,
			Height:   height,
		},
	}
	if err := h.storage.SaveMetadata(id, metadata); err != nil && h.debug {
		// Metadata is advisory; the committed state is the image file.
		log.Printf("failed to save metadata: %v", err)
	}

	h.session.Commit(session.ImageState{
		ID:        id,
		Path:      imagePath,
		Origin:    types.OriginUpload,
		CreatedAt: time.Now(),
	})

	data := h.historyInfo()
	data["width"] = width
	data["height"] = height
	data["adjustments"] = adjustmentsMap(h.session.Adjustments())
	return h.successResponse(responses.BuildSimpleSuccessResponse(
		"load_image",
		fmt.Sprintf("Image loaded and committed (ID: %s)", id),
		data,
	))
}

// handleUndo moves the cursor back one state. At the first state this is a
// silent no-op; either way the adjustments go back to baseline.
func (h *PhotoStudioHandler) handleUndo(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	_, moved := h.session.Undo()

	message := "Moved back one state; adjustments reset"
	if !moved {
		message = "Nothing to undo; adjustments reset"
	}

	data := h.historyInfo()
	data["moved"] = moved
	data["adjustments"] = adjustmentsMap(h.session.Adjustments())
	return h.successResponse(responses.BuildSimpleSuccessResponse("undo", message, data))
}

// handleRedo moves the cursor forward one state.
func (h *PhotoStudioHandler) handleRedo(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	_, moved := h.session.Redo()

	message := "Moved forward one state; adjustments reset"
	if !moved {
		message = "Nothing to redo; adjustments reset"
	}

	data := h.historyInfo()
	data["moved"] = moved
	data["adjustments"] = adjustmentsMap(h.session.Adjustments())
	return h.successResponse(responses.BuildSimpleSuccessResponse("redo", message, data))
}

// handleResetImage moves the cursor back to the first committed state.
// Later states stay reachable through redo.
func (h *PhotoStudioHandler) handleResetImage(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	_, ok := h.session.ResetToRoot()
	if !ok {
		return h.errorResponse("reset_image", "no_image", "no image loaded", nil)
	}

	data := h.historyInfo()
	data["adjustments"] = adjustmentsMap(h.session.Adjustments())
	return h.successResponse(responses.BuildSimpleSuccessResponse(
		"reset_image",
		"Back to the original image; redo is still available",
		data,
	))
}

// handleSessionStatus reports history, adjustments and in-flight operations.
func (h *PhotoStudioHandler) handleSessionStatus(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	data := h.historyInfo()
	data["adjustments"] = adjustmentsMap(h.session.Adjustments())
	data["adjustments_at_baseline"] = h.session.Adjustments().IsBaseline()
	data["busy_operations"] = h.session.BusyOps()
	data["presets"] = h.presets.Names()
	return h.successResponse(responses.BuildSimpleSuccessResponse("session_status", "OK", data))
}

// handleAdjust merges the provided slider values into the session and
// re-renders the preview. History is never touched.
func (h *PhotoStudioHandler) handleAdjust(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	state, ok := h.session.Current()
	if !ok {
		return h.errorResponse("adjust", "no_image", "no image loaded", nil)
	}

	adj := h.session.Adjustments()
	sliders := map[string]*float64{
		"brightness": &adj.Brightness,
		"contrast":   &adj.Contrast,
		"saturation": &adj.Saturation,
		"grayscale":  &adj.Grayscale,
		"sepia":      &adj.Sepia,
		"blur":       &adj.Blur,
	}
	provided := 0
	for name, target := range sliders {
		if v, ok := args[name].(float64); ok {
			*target = v
			provided++
		}
	}
	if provided == 0 {
		return h.errorResponse("adjust", "invalid_parameters", "at least one slider value is required", nil)
	}

	applied := h.session.SetAdjustments(adj)

	previewPath, err := h.renderPreview(state, applied)
	if err != nil {
		if rerr, ok := err.(render.Error); ok {
			return h.errorResponse("adjust", rerr.Code, rerr.Message, rerr.Details)
		}
		return h.errorResponse("adjust", "decode_error", err.Error(), nil)
	}

	data := h.historyInfo()
	data["adjustments"] = adjustmentsMap(applied)
	data["preview_path"] = previewPath
	return h.successResponse(responses.BuildSimpleSuccessResponse("adjust", "Preview updated", data))
}

// handleApplyPreset replaces the adjustments wholesale from a named preset.
func (h *PhotoStudioHandler) handleApplyPreset(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return h.errorResponse("apply_preset", "invalid_parameters", "name parameter is required", nil)
	}

	state, hasImage := h.session.Current()
	if !hasImage {
		return h.errorResponse("apply_preset", "no_image", "no image loaded", nil)
	}

	preset, found := h.presets.Get(name)
	if !found {
		return h.errorResponse("apply_preset", "unknown_preset", fmt.Sprintf("unknown preset: %s", name), map[string]interface{}{
			"available": h.presets.Names(),
		})
	}

	applied := h.session.SetAdjustments(preset.Adjustments)

	previewPath, err := h.renderPreview(state, applied)
	if err != nil {
		if rerr, ok := err.(render.Error); ok {
			return h.errorResponse("apply_preset", rerr.Code, rerr.Message, rerr.Details)
		}
		return h.errorResponse("apply_preset", "decode_error", err.Error(), nil)
	}

	data := h.historyInfo()
	data["preset"] = preset.Name
	data["adjustments"] = adjustmentsMap(applied)
	data["preview_path"] = previewPath
	return h.successResponse(responses.BuildSimpleSuccessResponse(
		"apply_preset",
		fmt.Sprintf("Preset %q applied", preset.Name),
		data,
	))
}

// handleListPresets lists built-in and user presets.
func (h *PhotoStudioHandler) handleListPresets(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	list := h.presets.List()
	out := make([]map[string]interface{}, 0, len(list))
	for _, p := range list {
		out = append(out, map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"adjustments": adjustmentsMap(p.Adjustments),
		})
	}

	data := map[string]interface{}{
		"presets": out,
		"total":   len(out),
	}
	return h.successResponse(responses.BuildSimpleSuccessResponse("list_presets", "OK", data))
}

// handleResetAdjustments puts every slider back at its baseline.
func (h *PhotoStudioHandler) handleResetAdjustments(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	applied := h.session.ResetAdjustments()

	data := h.historyInfo()
	data["adjustments"] = adjustmentsMap(applied)
	return h.successResponse(responses.BuildSimpleSuccessResponse("reset_adjustments", "Adjustments reset to baseline", data))
}

// handleExportImage renders the current state with the live adjustments and
// writes an encoded artifact. History is untouched; to_gallery additionally
// appends the export to the gallery.
func (h *PhotoStudioHandler) handleExportImage(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	state, ok := h.session.Current()
	if !ok {
		return h.errorResponse("export_image", "no_image", "no image loaded", nil)
	}

	filename, _ := args["filename"].(string)
	if filename == "" {
		filename = fmt.Sprintf("export_%s.png", state.ID)
	}
	quality := 90
	if q, ok := args["quality"].(float64); ok && q > 0 {
		quality = int(q)
	}

	adj := h.session.Adjustments()
	img, err := render.File(state.Path, adj)
	if err != nil {
		if rerr, ok := err.(render.Error); ok {
			return h.errorResponse("export_image", rerr.Code, rerr.Message, rerr.Details)
		}
		return h.errorResponse("export_image", "decode_error", err.Error(), nil)
	}

	exportPath, err := h.storage.ExportPath(filename)
	if err != nil {
		return h.errorResponse("export_image", "file_error", err.Error(), nil)
	}

	if err := render.Save(img, exportPath, quality); err != nil {
		if rerr, ok := err.(render.Error); ok {
			return h.errorResponse("export_image", rerr.Code, rerr.Message, rerr.Details)
		}
		return h.errorResponse("export_image", "encode_error", err.Error(), nil)
	}

	data := h.historyInfo()
	data["export_path"] = exportPath
	data["content_type"] = render.ContentType(filename)
	data["size_bytes"] = responses.GetFileSize(exportPath)
	data["adjustments"] = adjustmentsMap(adj)

	if toGallery, _ := args["to_gallery"].(bool); toGallery {
		entry, err := h.storage.AddToGallery(exportPath, "export")
		if err != nil {
			return h.errorResponse("export_image", "file_error", fmt.Sprintf("export saved but gallery append failed: %v", err), nil)
		}
		data["gallery_id"] = entry.ID
	}

	return h.successResponse(responses.BuildSimpleSuccessResponse(
		"export_image",
		fmt.Sprintf("Exported to %s", exportPath),
		data,
	))
}

// renderPreview recomputes the preview artifact for the given state and
// adjustments. On failure the previous preview file is left as is.
func (h *PhotoStudioHandler) renderPreview(state session.ImageState, adj session.Adjustments) (string, error) {
	img, err := render.File(state.Path, adj)
	if err != nil {
		return "", err
	}
	previewPath := h.storage.PreviewPath()
	if err := render.Save(img, previewPath, 0); err != nil {
		return "", err
	}
	return previewPath, nil
}
