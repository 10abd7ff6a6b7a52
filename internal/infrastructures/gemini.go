package infrastructures

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiClient struct {
	HTTPClient *http.Client
	Config     GeminiConfig
}

// NewGeminiConfig creates GeminiConfig from the loaded application config
func NewGeminiConfig() GeminiConfig {
	return GeminiConfig{
		APIKey:  Config.GEMINI_API_KEY,
		Model:   Config.GEMINI_MODEL,
		BaseURL: strings.TrimRight(Config.GEMINI_BASE_URL, "/"),
	}
}

// NewGeminiClient creates a new Gemini HTTP client with configuration.
// Model calls are bounded by the client's 60 second timeout and by the
// request context.
func NewGeminiClient(config GeminiConfig) *GeminiClient {
	return &GeminiClient{
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		Config: config,
	}
}

// GenerateContentURL returns the generateContent endpoint for the configured model
func (c *GeminiClient) GenerateContentURL() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.Config.BaseURL, c.Config.Model)
}
