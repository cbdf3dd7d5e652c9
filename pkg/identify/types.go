package identify

// IdentifyParams contains parameters for describing image content
type IdentifyParams struct {
	ImagePath string
	Language  string // language for the description, e.g. "English"
}

// IdentifyResult contains the description produced by the vision model
type IdentifyResult struct {
	InputPath      string
	Description    string
	Language       string
	Model          string
	ModelName      string
	ProcessingTime float64 // in seconds
	PredictionID   string
}

// IdentifyError represents an error during identification
type IdentifyError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

func (e IdentifyError) Error() string {
	return e.Message
}
