package enhancement

// Upscaling models
const (
	ModelRealESRGAN = "nightmareai/real-esrgan:f121d640bd286e1fdc67f9799164c1d5be36ff74576ee11c803ae5b665dd46aa"
	ModelSwinIR     = "jingyunliang/swinir:660d922d33153019e8c263a3bba265de882e7f4f70396546b6c9c8f9d47a021a"
)

// Background removal models
const (
	ModelRembg = "cjwbw/rembg:fb8af171cfa1616ddcf1242c093f9c46bcada5ad4cf6f2fbe8b81b330ec5c003"
)

// ModelInfo describes an enhancement model
type ModelInfo struct {
	ID   string
	Name string
}

// GetModelInfo returns display information for an enhancement model
func GetModelInfo(modelID string) ModelInfo {
	switch modelID {
	case ModelRealESRGAN:
		return ModelInfo{ID: modelID, Name: "Real-ESRGAN"}
	case ModelSwinIR:
		return ModelInfo{ID: modelID, Name: "SwinIR"}
	case ModelRembg:
		return ModelInfo{ID: modelID, Name: "Rembg"}
	default:
		return ModelInfo{ID: modelID, Name: "Unknown Model"}
	}
}

// GetUpscaleModel resolves an upscale model alias to its full model ID
func GetUpscaleModel(alias string) string {
	switch alias {
	case "swinir":
		return ModelSwinIR
	case "realesrgan", "real-esrgan", "":
		return ModelRealESRGAN
	default:
		return ModelRealESRGAN
	}
}
