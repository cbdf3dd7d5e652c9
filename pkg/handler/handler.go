package handler

import (
	"context"
	"fmt"
	"log"

	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/photo_studio_ai/pkg/client"
	"github.com/gomcpgo/photo_studio_ai/pkg/config"
	"github.com/gomcpgo/photo_studio_ai/pkg/editing"
	"github.com/gomcpgo/photo_studio_ai/pkg/enhancement"
	"github.com/gomcpgo/photo_studio_ai/pkg/identify"
	"github.com/gomcpgo/photo_studio_ai/pkg/presets"
	"github.com/gomcpgo/photo_studio_ai/pkg/responses"
	"github.com/gomcpgo/photo_studio_ai/pkg/session"
	"github.com/gomcpgo/photo_studio_ai/pkg/storage"
)

// Operation names used for the per-operation busy flags. An outstanding
// call blocks only a duplicate of itself, never other tools.
const (
	opAIEdit   = "ai_edit_image"
	opIdentify = "identify_image"
	opUpscale  = "upscale_image"
	opRemoveBG = "remove_background"
)

// PhotoStudioHandler handles MCP requests for the editing session
type PhotoStudioHandler struct {
	session    *session.Session
	editor     *editing.Editor
	identifier *identify.Identifier
	enhancer   *enhancement.Enhancer
	storage    *storage.Storage
	presets    *presets.Library
	client     client.Client
	maxImageMB int
	debug      bool
}

// NewPhotoStudioHandler creates a new handler instance wired to the real
// Replicate client.
func NewPhotoStudioHandler(cfg *config.Config, timeouts config.TimeoutConfig) (*PhotoStudioHandler, error) {
	store := storage.NewStorage(cfg.StudioRoot)

	replicateClient := client.NewReplicateClient(cfg.ReplicateAPIToken, cfg.DebugMode)

	lib, err := presets.Load(cfg.PresetsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}

	return &PhotoStudioHandler{
		session:    session.New(),
		editor:     editing.NewEditor(replicateClient, store, timeouts, cfg.MaxImageSizeMB, cfg.DebugMode),
		identifier: identify.NewIdentifier(replicateClient, timeouts, cfg.MaxImageSizeMB, cfg.DebugMode),
		enhancer:   enhancement.NewEnhancer(replicateClient, store, timeouts, cfg.MaxImageSizeMB, cfg.DebugMode),
		storage:    store,
		presets:    lib,
		client:     replicateClient,
		maxImageMB: cfg.MaxImageSizeMB,
		debug:      cfg.DebugMode,
	}, nil
}

// CallTool handles execution of the editing tools
func (h *PhotoStudioHandler) CallTool(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResponse, error) {
	if h.debug {
		log.Printf("DEBUG: MCP CallTool received: %s", req.Name)
	}

	switch req.Name {
	// Session / history tools
	case "load_image":
		return h.handleLoadImage(ctx, req.Arguments)
	case "undo":
		return h.handleUndo(ctx, req.Arguments)
	case "redo":
		return h.handleRedo(ctx, req.Arguments)
	case "reset_image":
		return h.handleResetImage(ctx, req.Arguments)
	case "session_status":
		return h.handleSessionStatus(ctx, req.Arguments)

	// Adjustment / preview tools
	case "adjust":
		return h.handleAdjust(ctx, req.Arguments)
	case "apply_preset":
		return h.handleApplyPreset(ctx, req.Arguments)
	case "list_presets":
		return h.handleListPresets(ctx, req.Arguments)
	case "reset_adjustments":
		return h.handleResetAdjustments(ctx, req.Arguments)
	case "export_image":
		return h.handleExportImage(ctx, req.Arguments)

	// AI tools
	case "ai_edit_image":
		return h.handleAIEditImage(ctx, req.Arguments)
	case "identify_image":
		return h.handleIdentifyImage(ctx, req.Arguments)
	case "upscale_image":
		return h.handleUpscaleImage(ctx, req.Arguments)
	case "remove_background":
		return h.handleRemoveBackground(ctx, req.Arguments)

	// Gallery tools
	case "list_gallery":
		return h.handleListGallery(ctx, req.Arguments)
	case "open_from_gallery":
		return h.handleOpenFromGallery(ctx, req.Arguments)
	case "remove_from_gallery":
		return h.handleRemoveFromGallery(ctx, req.Arguments)

	default:
		return nil, fmt.Errorf("unknown tool: %s", req.Name)
	}
}

func (h *PhotoStudioHandler) errorResponse(operation, code, message string, details map[string]interface{}) (*protocol.CallToolResponse, error) {
	content := responses.BuildErrorResponse(operation, code, message, details)

	return &protocol.CallToolResponse{
		Content: []protocol.ToolContent{
			{
				Type: "text",
				Text: content,
			},
		},
	}, nil
}

func (h *PhotoStudioHandler) successResponse(content string) (*protocol.CallToolResponse, error) {
	return &protocol.CallToolResponse{
		Content: []protocol.ToolContent{
			{
				Type: "text",
				Text: content,
			},
		},
	}, nil
}

// historyInfo returns the history fields included in most tool responses.
func (h *PhotoStudioHandler) historyInfo() map[string]interface{} {
	info := map[string]interface{}{
		"history_length": h.session.HistoryLen(),
		"cursor":         h.session.Cursor(),
		"can_undo":       h.session.CanUndo(),
		"can_redo":       h.session.CanRedo(),
	}
	if state, ok := h.session.Current(); ok {
		info["current_id"] = state.ID
		info["current_path"] = state.Path
		info["current_origin"] = state.Origin
	}
	return info
}

func adjustmentsMap(a session.Adjustments) map[string]interface{} {
	return map[string]interface{}{
		"brightness": a.Brightness,
		"contrast":   a.Contrast,
		"saturation": a.Saturation,
		"grayscale":  a.Grayscale,
		"sepia":      a.Sepia,
		"blur":       a.Blur,
	}
}
