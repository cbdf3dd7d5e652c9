package editing

// EditParams contains parameters for an instruction-driven image edit
type EditParams struct {
	ImagePath     string
	Instruction   string  // natural language edit instruction
	Model         string  // pro, max, dev
	GuidanceScale float64 // guidance scale for the edit
	Seed          int     // random seed
	Filename      string  // optional output filename
}

// EditResult contains the result of an image edit operation
type EditResult struct {
	ID           string
	InputPath    string
	OutputPath   string
	OutputURL    string
	Model        string
	ModelName    string
	Instruction  string
	Metrics      EditMetrics
	PredictionID string
}

// EditMetrics contains performance metrics for editing
type EditMetrics struct {
	ProcessingTime float64 // in seconds
	InputSize      int64   // in bytes
	OutputSize     int64   // in bytes
}

// EditError represents an error during editing
type EditError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

func (e EditError) Error() string {
	return e.Message
}
