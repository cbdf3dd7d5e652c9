package handler

import (
	"context"
	"encoding/json"

	"github.com/gomcpgo/mcp/pkg/protocol"
)

// ListTools provides a list of all available tools
func (h *PhotoStudioHandler) ListTools(ctx context.Context) (*protocol.ListToolsResponse, error) {
	tools := []protocol.Tool{
		{
			Name:        "load_image",
			Description: `Load a local image file into the editing session. The image is committed to the edit history: the first load starts the history, later loads behave like any other commit and discard redo states. Adjustment sliders reset to their baseline.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"file_path": {
						"type": "string",
						"description": "Path to the image file (JPEG, PNG, GIF, BMP or WebP)"
					}
				},
				"required": ["file_path"]
			}`),
		},
		{
			Name:        "adjust",
			Description: `Set one or more preview sliders and re-render the preview. Sliders are transient: they never modify the committed image and reset to baseline whenever the history cursor moves. Filter order is fixed: brightness, contrast, saturation, grayscale, sepia, blur.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"brightness": {
						"type": "number",
						"description": "Brightness percentage, 0-200 (100 = unchanged)",
						"minimum": 0,
						"maximum": 200
					},
					"contrast": {
						"type": "number",
						"description": "Contrast percentage, 0-200 (100 = unchanged)",
						"minimum": 0,
						"maximum": 200
					},
					"saturation": {
						"type": "number",
						"description": "Saturation percentage, 0-200 (100 = unchanged)",
						"minimum": 0,
						"maximum": 200
					},
					"grayscale": {
						"type": "number",
						"description": "Grayscale mix amount, 0-100 (0 = off)",
						"minimum": 0,
						"maximum": 100
					},
					"sepia": {
						"type": "number",
						"description": "Sepia mix amount, 0-100 (0 = off)",
						"minimum": 0,
						"maximum": 100
					},
					"blur": {
						"type": "number",
						"description": "Blur radius in pixels, 0-20 (0 = off)",
						"minimum": 0,
						"maximum": 20
					}
				}
			}`),
		},
		{
			Name:        "apply_preset",
			Description: "Replace all slider values at once with a named preset (built-in or user-defined). Does not touch the edit history; reversible by picking another preset or reset_adjustments.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"name": {
						"type": "string",
						"description": "Preset name, e.g. dramatic, vintage, noir. Use list_presets to see all."
					}
				},
				"required": ["name"]
			}`),
		},
		{
			Name:        "list_presets",
			Description: "List the available adjustment presets and their slider values.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        "reset_adjustments",
			Description: "Put every preview slider back at its baseline value {100,100,100,0,0,0}.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        "undo",
			Description: "Move the history cursor back one committed state. A no-op at the first state. Adjustment sliders reset to baseline either way.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        "redo",
			Description: "Move the history cursor forward one committed state. A no-op at the newest state. Adjustment sliders reset to baseline either way.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        "reset_image",
			Description: "Jump back to the first committed state. Later states remain reachable with redo; adjustment sliders reset.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        "ai_edit_image",
			Description: `Edit the current image with a natural language instruction using FLUX Kontext models, e.g. "remove the cup" or "make it a winter scene". On success the result is committed as a new history state; on failure the session is left untouched. One attempt per call, no retries; a duplicate call while one is outstanding is rejected.`,
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"instruction": {
						"type": "string",
						"description": "Text instruction describing the edit"
					},
					"model": {
						"type": "string",
						"description": "FLUX Kontext variant: pro (balanced), max (highest quality), dev (experimental)",
						"enum": ["pro", "max", "dev"],
						"default": "pro"
					},
					"seed": {
						"type": "integer",
						"description": "Random seed for reproducible results"
					},
					"filename": {
						"type": "string",
						"description": "Custom filename for the edited image"
					}
				},
				"required": ["instruction"]
			}`),
		},
		{
			Name:        "identify_image",
			Description: "Describe the content of the current image with a vision model. Read-only: nothing is committed to the history.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"language": {
						"type": "string",
						"description": "Language for the description (default: English)"
					}
				}
			}`),
		},
		{
			Name:        "upscale_image",
			Description: "Raise the resolution of the current image with a super-resolution model. On success the result is committed as a new history state. A duplicate call while one is outstanding is rejected.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"scale": {
						"type": "integer",
						"description": "Upscale factor (default 4)",
						"default": 4
					},
					"face_enhance": {
						"type": "boolean",
						"description": "Additionally enhance faces (Real-ESRGAN only)",
						"default": false
					},
					"model": {
						"type": "string",
						"description": "Upscaling model: realesrgan (default) or swinir",
						"enum": ["realesrgan", "swinir"]
					},
					"filename": {
						"type": "string",
						"description": "Custom filename for the upscaled image"
					}
				}
			}`),
		},
		{
			Name:        "remove_background",
			Description: "Cut the subject out of the current image, producing a PNG with a transparent background. On success the result is committed as a new history state.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filename": {
						"type": "string",
						"description": "Custom filename for the cut-out image"
					}
				}
			}`),
		},
		{
			Name:        "export_image",
			Description: "Render the current image with the live adjustments and write an encoded file under the exports folder. Optionally also appends the export to the gallery. Does not modify the history.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filename": {
						"type": "string",
						"description": "Output filename; the extension picks the format (png, jpg). Default export_<id>.png"
					},
					"quality": {
						"type": "integer",
						"description": "JPEG quality 1-100 (ignored for png)",
						"default": 90
					},
					"to_gallery": {
						"type": "boolean",
						"description": "Also add the export to the gallery",
						"default": false
					}
				}
			}`),
		},
		{
			Name:        "list_gallery",
			Description: "List stored gallery images, newest first.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        "open_from_gallery",
			Description: "Start a new editing session rooted at a gallery image. The current history is discarded; the gallery entry stays in place.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"id": {
						"type": "string",
						"description": "Gallery entry ID from list_gallery"
					}
				},
				"required": ["id"]
			}`),
		},
		{
			Name:        "remove_from_gallery",
			Description: "Delete a gallery entry and its image file. Independent of the edit history; not undoable.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"id": {
						"type": "string",
						"description": "Gallery entry ID from list_gallery"
					}
				},
				"required": ["id"]
			}`),
		},
		{
			Name:        "session_status",
			Description: "Report the history length and cursor, undo/redo availability, current slider values and any in-flight AI operations.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
	}

	return &protocol.ListToolsResponse{
		Tools: tools,
	}, nil
}
