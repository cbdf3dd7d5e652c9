package enhancement

// UpscaleParams holds parameters for upscaling
type UpscaleParams struct {
	ImagePath   string
	Scale       int
	FaceEnhance bool
	Model       string
	Filename    string
}

// RemoveBackgroundParams holds parameters for background removal
type RemoveBackgroundParams struct {
	ImagePath string
	Model     string
	Filename  string
}

// EnhanceResult is the outcome of a successful enhancement. The output is a
// stored state image ready to be committed.
type EnhanceResult struct {
	ID           string
	Operation    string
	InputPath    string
	OutputPath   string
	OutputURL    string
	Model        string
	ModelName    string
	Metrics      EnhanceMetrics
	PredictionID string
}

// EnhanceMetrics contains timing and size information
type EnhanceMetrics struct {
	ProcessingTime float64
	InputSize      int64
	OutputSize     int64
	ScaleFactor    int
}

// EnhanceError represents an enhancement failure
type EnhanceError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

func (e EnhanceError) Error() string {
	return e.Message
}
