package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomcpgo/photo_studio_ai/pkg/session"
)

func TestBuiltIn(t *testing.T) {
	lib := BuiltIn()

	p, ok := lib.Get("dramatic")
	require.True(t, ok)
	require.Equal(t, float64(80), p.Adjustments.Brightness)
	require.Equal(t, float64(150), p.Adjustments.Contrast)
	require.Equal(t, float64(0), p.Adjustments.Saturation)

	none, ok := lib.Get("none")
	require.True(t, ok)
	require.True(t, none.Adjustments.IsBaseline())

	_, ok = lib.Get("does_not_exist")
	require.False(t, ok)
}

func TestList_SortedWithDescriptions(t *testing.T) {
	lib := BuiltIn()
	list := lib.List()
	require.NotEmpty(t, list)

	for i := 1; i < len(list); i++ {
		require.Less(t, list[i-1].Name, list[i].Name, "List must be sorted by name")
	}
	for _, p := range list {
		require.NotEmpty(t, p.Description, "preset %s has no description", p.Name)
	}
}

func TestLoad_UserPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	content := `
[presets.golden_hour]
description = "warm evening light"
brightness = 108
sepia = 30

[presets.dramatic]
description = "softer take"
contrast = 120
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	lib, err := Load(path)
	require.NoError(t, err)

	// New preset: unspecified sliders stay at baseline
	p, ok := lib.Get("golden_hour")
	require.True(t, ok)
	require.Equal(t, "warm evening light", p.Description)
	require.Equal(t, float64(108), p.Adjustments.Brightness)
	require.Equal(t, float64(30), p.Adjustments.Sepia)
	require.Equal(t, float64(100), p.Adjustments.Contrast)
	require.Equal(t, float64(0), p.Adjustments.Blur)

	// User preset overrides the built-in of the same name
	d, ok := lib.Get("dramatic")
	require.True(t, ok)
	require.Equal(t, float64(120), d.Adjustments.Contrast)
	require.Equal(t, float64(100), d.Adjustments.Brightness)

	// Built-ins without an override are untouched
	v, ok := lib.Get("vintage")
	require.True(t, ok)
	require.Equal(t, float64(45), v.Adjustments.Sepia)
}

func TestLoad_ClampsUserValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	content := `
[presets.nuked]
brightness = 900
blur = -5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	lib, err := Load(path)
	require.NoError(t, err)

	p, ok := lib.Get("nuked")
	require.True(t, ok)
	require.Equal(t, float64(session.ScaleMax), p.Adjustments.Brightness)
	require.Equal(t, float64(session.BlurMin), p.Adjustments.Blur)
}

func TestLoad_MissingFileFallsBackToBuiltIns(t *testing.T) {
	lib, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, len(BuiltIn().Names()), len(lib.Names()))
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[presets.x\noops"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
