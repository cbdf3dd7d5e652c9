package responses

import (
	"encoding/json"
	"fmt"
	"os"
)

// BuildSuccessResponse creates a standardized success response
func BuildSuccessResponse(operation string, id string, paths map[string]string, modelInfo map[string]string, params map[string]interface{}, metrics map[string]interface{}, predictionID string) string {
	response := map[string]interface{}{
		"success":    true,
		"operation":  operation,
		"id":         id,
		"paths":      paths,
		"model":      modelInfo,
		"parameters": params,
		"metrics":    metrics,
	}

	if predictionID != "" {
		response["prediction_id"] = predictionID
	}

	jsonBytes, _ := json.MarshalIndent(response, "", "  ")
	return string(jsonBytes)
}

// BuildErrorResponse creates a standardized error response
func BuildErrorResponse(operation string, errorType string, message string, details map[string]interface{}) string {
	response := map[string]interface{}{
		"success":   false,
		"operation": operation,
		"error": map[string]interface{}{
			"type":       errorType,
			"message":    message,
			"details":    details,
			"suggestion": GetSuggestion(errorType),
		},
	}

	jsonBytes, _ := json.MarshalIndent(response, "", "  ")
	return string(jsonBytes)
}

// BuildSimpleSuccessResponse creates a success response with a message and
// arbitrary extra fields
func BuildSimpleSuccessResponse(operation string, message string, data map[string]interface{}) string {
	response := map[string]interface{}{
		"success":   true,
		"operation": operation,
		"message":   message,
	}

	for k, v := range data {
		response[k] = v
	}

	jsonBytes, _ := json.MarshalIndent(response, "", "  ")
	return string(jsonBytes)
}

// GetFileSize returns the size of a file in bytes
func GetFileSize(filePath string) int64 {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0
	}
	return info.Size()
}

// GetSuggestion provides helpful suggestions for different error types
func GetSuggestion(errorType string) string {
	suggestions := map[string]string{
		"no_image":           "Load an image with load_image (or open_from_gallery) before calling this tool",
		"invalid_parameters": "Check the parameter values and ensure they meet the requirements",
		"file_error":         "Please check the file path and ensure the file exists and is readable",
		"file_too_large":     "Please compress or resize the image before loading it",
		"decode_error":       "Please provide an image in JPEG, PNG, GIF, BMP or WebP format",
		"encode_error":       "Check the export filename extension; png and jpg are supported",
		"busy":               "The same operation is still running; wait for it to finish before resubmitting",
		"service_error":      "Check your API token and network connection, then try again",
		"editing_failed":     "The model could not apply this edit; try rephrasing the instruction",
		"enhancement_failed": "The model could not process this image; try a different model alias",
		"timeout":            "The model took too long; try again or raise OPERATION_TIMEOUT_SECONDS",
		"no_output":          "The model returned no result; try again",
		"unknown_preset":     "Use list_presets to see the available preset names",
		"not_found":          "Use list_gallery to see the available gallery entries",
	}

	if suggestion, ok := suggestions[errorType]; ok {
		return suggestion
	}
	return "Please check your input and try again"
}

// FormatSliderValue renders a slider value without trailing zeros for
// human-readable messages.
func FormatSliderValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
