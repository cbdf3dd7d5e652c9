package identify

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gomcpgo/photo_studio_ai/pkg/client"
	"github.com/gomcpgo/photo_studio_ai/pkg/config"
)

func newTestIdentifier(t *testing.T) (*Identifier, *client.MockClient) {
	t.Helper()
	mock := client.NewMockClient()
	mock.SetResponseDelay(50 * time.Millisecond)
	return NewIdentifier(mock, config.TestTimeouts(), 10, false), mock
}

func sourceImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(path, []byte("fake jpeg bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIdentify(t *testing.T) {
	identifier, mock := newTestIdentifier(t)
	mock.SetOutput([]interface{}{"a ", "stone ", "bridge ", "over ", "a ", "river"})

	result, err := identifier.Identify(context.Background(), IdentifyParams{
		ImagePath: sourceImage(t),
	})
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}

	if result.Description != "a stone bridge over a river" {
		t.Errorf("Description = %q", result.Description)
	}
	if result.Language != DefaultLanguage {
		t.Errorf("Language = %s, want default %s", result.Language, DefaultLanguage)
	}
	if result.Model != ModelLLaVA {
		t.Errorf("Model = %s", result.Model)
	}

	call := mock.CreateCalls[0]
	if call.ModelVersion != ModelLLaVA {
		t.Errorf("model = %s", call.ModelVersion)
	}
	img, _ := call.Input["image"].(string)
	if !strings.HasPrefix(img, "data:image/jpeg;base64,") {
		t.Error("image not sent as data URL")
	}
}

func TestIdentify_LanguageInPrompt(t *testing.T) {
	identifier, mock := newTestIdentifier(t)

	result, err := identifier.Identify(context.Background(), IdentifyParams{
		ImagePath: sourceImage(t),
		Language:  "Spanish",
	})
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if result.Language != "Spanish" {
		t.Errorf("Language = %s", result.Language)
	}

	prompt, _ := mock.CreateCalls[0].Input["prompt"].(string)
	if !strings.Contains(prompt, "Spanish") {
		t.Errorf("prompt does not carry the language: %q", prompt)
	}
}

func TestIdentify_StringOutput(t *testing.T) {
	identifier, mock := newTestIdentifier(t)
	mock.SetOutput("  a lighthouse at dusk  ")

	result, err := identifier.Identify(context.Background(), IdentifyParams{
		ImagePath: sourceImage(t),
	})
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if result.Description != "a lighthouse at dusk" {
		t.Errorf("Description = %q", result.Description)
	}
}

func TestIdentify_EmptyOutput(t *testing.T) {
	identifier, mock := newTestIdentifier(t)
	mock.SetOutput([]interface{}{})

	_, err := identifier.Identify(context.Background(), IdentifyParams{
		ImagePath: sourceImage(t),
	})
	idErr, ok := err.(IdentifyError)
	if !ok || idErr.Code != "no_output" {
		t.Errorf("got %v, want no_output", err)
	}
}

func TestIdentify_MissingPath(t *testing.T) {
	identifier, mock := newTestIdentifier(t)

	_, err := identifier.Identify(context.Background(), IdentifyParams{})
	idErr, ok := err.(IdentifyError)
	if !ok || idErr.Code != "invalid_parameters" {
		t.Errorf("got %v, want invalid_parameters", err)
	}
	if len(mock.CreateCalls) != 0 {
		t.Error("invalid params must not reach the service")
	}
}

func TestIdentify_ServiceFailure(t *testing.T) {
	identifier, mock := newTestIdentifier(t)
	mock.ShouldFail = true

	_, err := identifier.Identify(context.Background(), IdentifyParams{
		ImagePath: sourceImage(t),
	})
	idErr, ok := err.(IdentifyError)
	if !ok || idErr.Code != "service_error" {
		t.Errorf("got %v, want service_error", err)
	}
}
