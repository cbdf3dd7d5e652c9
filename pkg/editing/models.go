package editing

// FLUX Kontext models for instruction-driven image editing
const (
	ModelFluxKontextPro = "black-forest-labs/flux-kontext-pro"
	ModelFluxKontextMax = "black-forest-labs/flux-kontext-max"
	ModelFluxKontextDev = "black-forest-labs/flux-kontext-dev"
)

// ModelInfo contains information about an editing model
type ModelInfo struct {
	ID          string
	Name        string
	Description string
}

// GetModelInfo returns information about an editing model
func GetModelInfo(modelID string) ModelInfo {
	models := map[string]ModelInfo{
		ModelFluxKontextPro: {
			ID:          ModelFluxKontextPro,
			Name:        "FLUX Kontext Pro",
			Description: "Instruction-driven editing with balanced speed and quality",
		},
		ModelFluxKontextMax: {
			ID:          ModelFluxKontextMax,
			Name:        "FLUX Kontext Max",
			Description: "Maximum quality instruction-driven editing",
		},
		ModelFluxKontextDev: {
			ID:          ModelFluxKontextDev,
			Name:        "FLUX Kontext Dev",
			Description: "Development variant with advanced controls",
		},
	}

	if info, ok := models[modelID]; ok {
		return info
	}

	return ModelInfo{
		ID:   modelID,
		Name: "Unknown Model",
	}
}

// GetModelFromAlias returns the model ID from common aliases
func GetModelFromAlias(alias string) string {
	switch alias {
	case "pro", "kontext-pro", "flux-kontext-pro":
		return ModelFluxKontextPro
	case "max", "kontext-max", "flux-kontext-max":
		return ModelFluxKontextMax
	case "dev", "kontext-dev", "flux-kontext-dev":
		return ModelFluxKontextDev
	default:
		return ModelFluxKontextPro
	}
}
