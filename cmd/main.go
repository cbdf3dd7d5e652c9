package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gomcpgo/mcp/pkg/handler"
	"github.com/gomcpgo/mcp/pkg/server"
	"github.com/gomcpgo/photo_studio_ai/pkg/client"
	"github.com/gomcpgo/photo_studio_ai/pkg/config"
	"github.com/gomcpgo/photo_studio_ai/pkg/editing"
	"github.com/gomcpgo/photo_studio_ai/pkg/enhancement"
	studiohandler "github.com/gomcpgo/photo_studio_ai/pkg/handler"
	"github.com/gomcpgo/photo_studio_ai/pkg/identify"
	"github.com/gomcpgo/photo_studio_ai/pkg/presets"
	"github.com/gomcpgo/photo_studio_ai/pkg/render"
	"github.com/gomcpgo/photo_studio_ai/pkg/responses"
	"github.com/gomcpgo/photo_studio_ai/pkg/storage"
)

// Version information (set by build script)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
)

func main() {
	var (
		versionFlag bool
		listPresets bool
		renderFile  string
		presetName  string
		outputFile  string
		identifyArg string
		language    string
		editFile    string
		instruction string
		upscaleFile string
		scale       int
	)

	flag.BoolVar(&versionFlag, "version", false, "Show version information")
	flag.BoolVar(&listPresets, "presets", false, "List available adjustment presets")
	flag.StringVar(&renderFile, "render", "", "Render an image file with a preset (e.g. -render photo.jpg -preset vintage)")
	flag.StringVar(&presetName, "preset", "none", "Preset to use with -render")
	flag.StringVar(&outputFile, "output", "", "Output path for -render (default <input>_rendered.png)")
	flag.StringVar(&identifyArg, "identify", "", "Identify the content of an image file")
	flag.StringVar(&language, "lang", "", "Language for -identify (default English)")
	flag.StringVar(&editFile, "edit", "", "Edit an image file with an AI instruction")
	flag.StringVar(&instruction, "p", "", "Instruction for -edit")
	flag.StringVar(&upscaleFile, "upscale", "", "Upscale an image file")
	flag.IntVar(&scale, "scale", 4, "Scale factor for -upscale")
	flag.Parse()

	if versionFlag {
		fmt.Printf("Photo Studio AI MCP Server\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		return
	}

	if listPresets {
		runListPresets()
		return
	}

	if renderFile != "" {
		if err := runRender(renderFile, presetName, outputFile); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if identifyArg != "" {
		if err := runIdentify(identifyArg, language); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if editFile != "" {
		if instruction == "" {
			fmt.Println("Error: -p flag is required when using -edit")
			fmt.Println("Usage: photo_studio_ai -edit <image_path> -p \"remove the cup\"")
			os.Exit(1)
		}
		if err := runEdit(editFile, instruction, outputFile); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if upscaleFile != "" {
		if err := runUpscale(upscaleFile, scale, outputFile); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Default: run as an MCP server
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	studioHandler, err := studiohandler.NewPhotoStudioHandler(cfg, config.LoadTimeouts())
	if err != nil {
		log.Fatalf("Failed to create handler: %v", err)
	}

	registry := handler.NewHandlerRegistry()
	registry.RegisterToolHandler(studioHandler)

	mcpServer := server.New(server.Options{
		Name:     "Photo Studio AI",
		Version:  Version,
		Registry: registry,
	})

	if err := mcpServer.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func runListPresets() {
	lib, err := presets.Load(os.Getenv("PHOTO_STUDIO_PRESETS"))
	if err != nil {
		fmt.Printf("Warning: %v (showing built-ins only)\n", err)
		lib = presets.BuiltIn()
	}

	fmt.Println("\n=== Available Presets ===")
	for _, p := range lib.List() {
		a := p.Adjustments
		fmt.Printf("  %-12s brightness=%s contrast=%s saturation=%s grayscale=%s sepia=%s blur=%s\n",
			p.Name,
			responses.FormatSliderValue(a.Brightness),
			responses.FormatSliderValue(a.Contrast),
			responses.FormatSliderValue(a.Saturation),
			responses.FormatSliderValue(a.Grayscale),
			responses.FormatSliderValue(a.Sepia),
			responses.FormatSliderValue(a.Blur))
		if p.Description != "" {
			fmt.Printf("  %-12s %s\n", "", p.Description)
		}
	}
}

func runRender(inputPath, presetName, outputPath string) error {
	lib, err := presets.Load(os.Getenv("PHOTO_STUDIO_PRESETS"))
	if err != nil {
		return err
	}

	preset, ok := lib.Get(presetName)
	if !ok {
		return fmt.Errorf("unknown preset %q (use -presets to list them)", presetName)
	}

	img, err := render.File(inputPath, preset.Adjustments)
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = inputPath + "_rendered.png"
	}
	if err := render.Save(img, outputPath, 90); err != nil {
		return err
	}

	fmt.Printf("Rendered %s with preset %q -> %s\n", inputPath, preset.Name, outputPath)
	return nil
}

func runIdentify(inputPath, language string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	replicateClient := client.NewReplicateClient(cfg.ReplicateAPIToken, cfg.DebugMode)
	identifier := identify.NewIdentifier(replicateClient, config.LoadTimeouts(), cfg.MaxImageSizeMB, cfg.DebugMode)

	result, err := identifier.Identify(context.Background(), identify.IdentifyParams{
		ImagePath: inputPath,
		Language:  language,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Model: %s\n", result.ModelName)
	fmt.Printf("Description: %s\n", result.Description)
	fmt.Printf("Time: %.1fs\n", result.ProcessingTime)
	return nil
}

func runEdit(inputPath, instruction, outputFile string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store := storage.NewStorage(cfg.StudioRoot)
	replicateClient := client.NewReplicateClient(cfg.ReplicateAPIToken, cfg.DebugMode)
	editor := editing.NewEditor(replicateClient, store, config.LoadTimeouts(), cfg.MaxImageSizeMB, cfg.DebugMode)

	fmt.Printf("Editing %s: %q\n", inputPath, instruction)
	result, err := editor.EditImage(context.Background(), editing.EditParams{
		ImagePath:   inputPath,
		Instruction: instruction,
		Filename:    outputFile,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Saved: %s (ID: %s)\n", result.OutputPath, result.ID)
	fmt.Printf("Time: %.1fs\n", result.Metrics.ProcessingTime)
	return nil
}

func runUpscale(inputPath string, scale int, outputFile string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store := storage.NewStorage(cfg.StudioRoot)
	replicateClient := client.NewReplicateClient(cfg.ReplicateAPIToken, cfg.DebugMode)
	enhancer := enhancement.NewEnhancer(replicateClient, store, config.LoadTimeouts(), cfg.MaxImageSizeMB, cfg.DebugMode)

	fmt.Printf("Upscaling %s at %dx\n", inputPath, scale)
	result, err := enhancer.Upscale(context.Background(), enhancement.UpscaleParams{
		ImagePath: inputPath,
		Scale:     scale,
		Filename:  outputFile,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Saved: %s (ID: %s)\n", result.OutputPath, result.ID)
	fmt.Printf("Time: %.1fs\n", result.Metrics.ProcessingTime)
	return nil
}
