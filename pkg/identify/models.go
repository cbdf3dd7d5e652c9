package identify

import "fmt"

// Vision models for image content identification
const (
	ModelLLaVA = "yorickvp/llava-13b"
)

// DefaultLanguage is used when the caller does not ask for one.
const DefaultLanguage = "English"

// buildPrompt asks the vision model for a plain description in the
// requested language.
func buildPrompt(language string) string {
	if language == "" {
		language = DefaultLanguage
	}
	return fmt.Sprintf("Describe the content of this image in one or two sentences. Answer in %s.", language)
}
