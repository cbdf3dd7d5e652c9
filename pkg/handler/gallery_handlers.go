package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/photo_studio_ai/pkg/responses"
	"github.com/gomcpgo/photo_studio_ai/pkg/session"
	"github.com/gomcpgo/photo_studio_ai/pkg/types"
)

// handleListGallery lists gallery entries, newest first.
func (h *PhotoStudioHandler) handleListGallery(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	entries, err := h.storage.ListGallery()
	if err != nil {
		return h.errorResponse("list_gallery", "file_error", err.Error(), nil)
	}

	response := types.ListGalleryResponse{
		Entries: entries,
		Total:   len(entries),
	}

	jsonBytes, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return h.errorResponse("list_gallery", "file_error", fmt.Sprintf("failed to format response: %v", err), nil)
	}

	return h.successResponse(string(jsonBytes))
}

// handleOpenFromGallery seeds a brand new edit history rooted at a gallery
// image. The previous history is discarded; the gallery entry itself stays
// untouched.
func (h *PhotoStudioHandler) handleOpenFromGallery(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return h.errorResponse("open_from_gallery", "invalid_parameters", "id parameter is required", nil)
	}

	entry, err := h.storage.GetGalleryEntry(id)
	if err != nil {
		return h.errorResponse("open_from_gallery", "not_found", fmt.Sprintf("gallery entry not found: %s", id), nil)
	}

	stateID, err := h.storage.GenerateID()
	if err != nil {
		return h.errorResponse("open_from_gallery", "file_error", fmt.Sprintf("failed to generate ID: %v", err), nil)
	}

	imagePath, err := h.storage.ImportFile(stateID, entry.FilePath, 0)
	if err != nil {
		return h.errorResponse("open_from_gallery", "file_error", err.Error(), nil)
	}

	metadata := &types.ImageMetadata{
		ID:        stateID,
		Operation: "open_from_gallery",
		Origin:    types.OriginGallery,
		Timestamp: time.Now(),
		SourceID:  entry.ID,
	}
	h.storage.SaveMetadata(stateID, metadata)

	h.session.Replace(session.ImageState{
		ID:        stateID,
		Path:      imagePath,
		Origin:    types.OriginGallery,
		CreatedAt: time.Now(),
	})

	data := h.historyInfo()
	data["gallery_id"] = entry.ID
	data["adjustments"] = adjustmentsMap(h.session.Adjustments())
	return h.successResponse(responses.BuildSimpleSuccessResponse(
		"open_from_gallery",
		fmt.Sprintf("Started a new editing session from gallery entry %s", entry.ID),
		data,
	))
}

// handleRemoveFromGallery deletes a gallery entry. Gallery lifecycle is
// independent of the edit history and removals are not undoable.
func (h *PhotoStudioHandler) handleRemoveFromGallery(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return h.errorResponse("remove_from_gallery", "invalid_parameters", "id parameter is required", nil)
	}

	if err := h.storage.RemoveFromGallery(id); err != nil {
		return h.errorResponse("remove_from_gallery", "not_found", err.Error(), nil)
	}

	return h.successResponse(responses.BuildSimpleSuccessResponse(
		"remove_from_gallery",
		fmt.Sprintf("Removed gallery entry %s", id),
		map[string]interface{}{"id": id},
	))
}
