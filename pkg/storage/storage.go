package storage

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gomcpgo/photo_studio_ai/pkg/types"
	"gopkg.in/yaml.v3"
)

// Storage handles local file storage for the editing session. Committed
// image states, gallery entries and exports live in separate subtrees of
// one root folder:
//
//	<root>/states/<id>/image.png + metadata.yaml
//	<root>/gallery/<id>/image.png + entry.yaml
//	<root>/exports/<filename>
type Storage struct {
	rootPath string
}

// NewStorage creates a new storage instance
func NewStorage(rootPath string) *Storage {
	return &Storage{
		rootPath: rootPath,
	}
}

// Root returns the storage root folder.
func (s *Storage) Root() string {
	return s.rootPath
}

// GenerateID generates a unique 8-character alphanumeric ID and creates the
// state directory for it.
func (s *Storage) GenerateID() (string, error) {
	return s.generateIDIn("states")
}

// GenerateGalleryID generates a unique ID under the gallery subtree.
func (s *Storage) GenerateGalleryID() (string, error) {
	return s.generateIDIn("gallery")
}

func (s *Storage) generateIDIn(area string) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	const idLength = 8
	maxRetries := 100

	for i := 0; i < maxRetries; i++ {
		b := make([]byte, idLength)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}

		id := make([]byte, idLength)
		for j := 0; j < idLength; j++ {
			id[j] = charset[b[j]%byte(len(charset))]
		}

		idStr := string(id)

		idPath := filepath.Join(s.rootPath, area, idStr)
		if _, err := os.Stat(idPath); os.IsNotExist(err) {
			if err := os.MkdirAll(idPath, 0755); err != nil {
				return "", fmt.Errorf("failed to create directory: %w", err)
			}
			return idStr, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique ID after %d attempts", maxRetries)
}

// SaveImage saves an image into a state directory from a URL or a base64
// data URL (the two forms the edit service returns).
func (s *Storage) SaveImage(id string, imageURL string, filename string) (string, error) {
	if filename == "" {
		ext := ".png"
		if strings.Contains(imageURL, ".jpg") || strings.Contains(imageURL, ".jpeg") {
			ext = ".jpg"
		} else if strings.Contains(imageURL, ".webp") {
			ext = ".webp"
		}
		filename = "image" + ext
	}

	imagePath := filepath.Join(s.rootPath, "states", id, filename)

	var imageData []byte
	var err error

	if strings.HasPrefix(imageURL, "data:") {
		parts := strings.SplitN(imageURL, ",", 2)
		if len(parts) != 2 {
			return "", fmt.Errorf("invalid base64 data")
		}
		imageData, err = base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return "", fmt.Errorf("failed to decode base64: %w", err)
		}
	} else {
		resp, err := http.Get(imageURL)
		if err != nil {
			return "", fmt.Errorf("failed to download image: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("failed to download image: status %d", resp.StatusCode)
		}

		imageData, err = io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read image data: %w", err)
		}
	}

	if err := os.WriteFile(imagePath, imageData, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return imagePath, nil
}

// ImportFile copies a local image file into a state directory, enforcing
// the configured size limit (in MB, 0 disables the check).
func (s *Storage) ImportFile(id string, sourcePath string, maxSizeMB int) (string, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to stat source file: %w", err)
	}
	if maxSizeMB > 0 && info.Size() > int64(maxSizeMB)*1024*1024 {
		return "", fmt.Errorf("image file too large (max %dMB)", maxSizeMB)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to read source file: %w", err)
	}

	filename := filepath.Base(sourcePath)
	imagePath := filepath.Join(s.rootPath, "states", id, filename)
	if err := os.WriteFile(imagePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return imagePath, nil
}

// SaveMetadata saves metadata for a committed state
func (s *Storage) SaveMetadata(id string, metadata *types.ImageMetadata) error {
	metadataPath := filepath.Join(s.rootPath, "states", id, "metadata.yaml")

	if metadata.Version == "" {
		metadata.Version = "1.0"
	}
	if metadata.Timestamp.IsZero() {
		metadata.Timestamp = time.Now()
	}

	data, err := yaml.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(metadataPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	return nil
}

// LoadMetadata loads metadata for a committed state
func (s *Storage) LoadMetadata(id string) (*types.ImageMetadata, error) {
	metadataPath := filepath.Join(s.rootPath, "states", id, "metadata.yaml")

	data, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata types.ImageMetadata
	if err := yaml.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	return &metadata, nil
}

// ExportPath returns the path for an export artifact, creating the exports
// folder when needed.
func (s *Storage) ExportPath(filename string) (string, error) {
	dir := filepath.Join(s.rootPath, "exports")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create exports folder: %w", err)
	}
	return filepath.Join(dir, filename), nil
}

// PreviewPath returns the path the rendered preview is written to. There is
// only one preview; it is overwritten on every re-render.
func (s *Storage) PreviewPath() string {
	return filepath.Join(s.rootPath, "preview.png")
}

// AddToGallery copies an image file into the gallery and writes its entry
// record. Returns the created entry.
func (s *Storage) AddToGallery(sourcePath string, source string) (*types.GalleryEntry, error) {
	id, err := s.GenerateGalleryID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate gallery ID: %w", err)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	filename := filepath.Base(sourcePath)
	imagePath := filepath.Join(s.rootPath, "gallery", id, filename)
	if err := os.WriteFile(imagePath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save gallery image: %w", err)
	}

	entry := &types.GalleryEntry{
		ID:        id,
		Filename:  filename,
		FilePath:  imagePath,
		Source:    source,
		Timestamp: time.Now(),
	}

	entryData, err := yaml.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gallery entry: %w", err)
	}
	entryPath := filepath.Join(s.rootPath, "gallery", id, "entry.yaml")
	if err := os.WriteFile(entryPath, entryData, 0644); err != nil {
		return nil, fmt.Errorf("failed to save gallery entry: %w", err)
	}

	return entry, nil
}

// ListGallery returns all gallery entries, newest first.
func (s *Storage) ListGallery() ([]types.GalleryEntry, error) {
	galleryDir := filepath.Join(s.rootPath, "gallery")
	entries, err := os.ReadDir(galleryDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.GalleryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read gallery: %w", err)
	}

	result := make([]types.GalleryEntry, 0, len(entries))
	for _, dirEntry := range entries {
		if !dirEntry.IsDir() {
			continue
		}
		entry, err := s.GetGalleryEntry(dirEntry.Name())
		if err != nil {
			// Skip entries without a valid record
			continue
		}
		result = append(result, *entry)
	}

	// Newest first
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	return result, nil
}

// GetGalleryEntry loads one gallery entry by ID.
func (s *Storage) GetGalleryEntry(id string) (*types.GalleryEntry, error) {
	entryPath := filepath.Join(s.rootPath, "gallery", id, "entry.yaml")
	data, err := os.ReadFile(entryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery entry: %w", err)
	}

	var entry types.GalleryEntry
	if err := yaml.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gallery entry: %w", err)
	}
	return &entry, nil
}

// RemoveFromGallery deletes a gallery entry and its image. Gallery removals
// are independent of the edit history and are not undoable.
func (s *Storage) RemoveFromGallery(id string) error {
	entryDir := filepath.Join(s.rootPath, "gallery", id)
	if _, err := os.Stat(entryDir); err != nil {
		return fmt.Errorf("gallery entry not found: %s", id)
	}
	if err := os.RemoveAll(entryDir); err != nil {
		return fmt.Errorf("failed to remove gallery entry: %w", err)
	}
	return nil
}

// GetImagePath returns the full path to a state image
func (s *Storage) GetImagePath(id string, filename string) string {
	return filepath.Join(s.rootPath, "states", id, filename)
}

// ImageToBase64 converts an image file to a base64 data URL for upload to
// the model API.
func ImageToBase64(filePath string, maxSizeMB int) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	mimeType := "image/png"
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".jpg", ".jpeg":
		mimeType = "image/jpeg"
	case ".webp":
		mimeType = "image/webp"
	case ".gif":
		mimeType = "image/gif"
	case ".bmp":
		mimeType = "image/bmp"
	}

	if maxSizeMB > 0 && len(data) > maxSizeMB*1024*1024 {
		return "", fmt.Errorf("image file too large (max %dMB)", maxSizeMB)
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
	return dataURL, nil
}
