package types

import (
	"time"
)

// Prediction statuses from Replicate
const (
	StatusStarting   = "starting"
	StatusProcessing = "processing"
	StatusSucceeded  = "succeeded"
	StatusFailed     = "failed"
	StatusCanceled   = "canceled"
)

// Origins for committed image states
const (
	OriginUpload  = "upload"
	OriginAIEdit  = "ai_edit"
	OriginEnhance = "enhance"
	OriginGallery = "gallery"
)

// ImageMetadata represents the metadata stored for each committed image state
type ImageMetadata struct {
	Version     string                 `yaml:"version"`
	ID          string                 `yaml:"id"`
	Operation   string                 `yaml:"operation"`
	Origin      string                 `yaml:"origin"`
	Timestamp   time.Time              `yaml:"timestamp"`
	Model       string                 `yaml:"model,omitempty"`
	Instruction string                 `yaml:"instruction,omitempty"`
	SourceID    string                 `yaml:"source_id,omitempty"`
	Parameters  map[string]interface{} `yaml:"parameters,omitempty"`
	Result      *OperationResult       `yaml:"result,omitempty"`
	Error       *string                `yaml:"error,omitempty"`
}

// OperationResult contains the result of a service operation
type OperationResult struct {
	Filename       string  `yaml:"filename"`
	GenerationTime float64 `yaml:"generation_time"`
	PredictionID   string  `yaml:"prediction_id,omitempty"`
	Width          int     `yaml:"width,omitempty"`
	Height         int     `yaml:"height,omitempty"`
}

// ReplicatePredictionRequest represents a request to create a prediction
type ReplicatePredictionRequest struct {
	Version string                 `json:"version"`
	Input   map[string]interface{} `json:"input"`
	Webhook string                 `json:"webhook,omitempty"`
}

// ReplicatePredictionResponse represents the response from Replicate
type ReplicatePredictionResponse struct {
	ID          string                 `json:"id"`
	Version     string                 `json:"version"`
	Status      string                 `json:"status"`
	Input       map[string]interface{} `json:"input"`
	Output      interface{}            `json:"output"`
	Error       interface{}            `json:"error"`
	Logs        string                 `json:"logs"`
	CreatedAt   string                 `json:"created_at"`
	StartedAt   *string                `json:"started_at"`
	CompletedAt *string                `json:"completed_at"`
	URLs        struct {
		Get    string `json:"get"`
		Cancel string `json:"cancel"`
	} `json:"urls"`
}

// GalleryEntry describes one image in the gallery
type GalleryEntry struct {
	ID        string    `json:"id" yaml:"id"`
	Filename  string    `json:"filename" yaml:"filename"`
	FilePath  string    `json:"file_path" yaml:"file_path"`
	Source    string    `json:"source,omitempty" yaml:"source,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// ListGalleryResponse represents the response from list_gallery
type ListGalleryResponse struct {
	Entries []GalleryEntry `json:"entries"`
	Total   int            `json:"total"`
}
