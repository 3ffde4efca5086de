package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/bitmark-inc/safecare-api/agent"
)

const (
	logPrefix      = "gemini"
	defaultTimeout = 30 * time.Second
)

var errEmptyAPIKey = fmt.Errorf("empty api key")

// DefaultModels are tried in order when no model list is configured
var DefaultModels = []string{"gemini-2.5-flash", "gemini-2.0-flash"}

// APIKeyEnvNames are the environment variables recognized as the credential
var APIKeyEnvNames = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "GOOGLE_GENERATIVE_AI_API_KEY"}

// LookupAPIKey returns the configured key, then the first non-empty
// recognized environment variable
func LookupAPIKey(configured string) string {
	if k := strings.TrimSpace(configured); k != "" {
		return k
	}

	for _, name := range APIKeyEnvNames {
		if k := strings.TrimSpace(os.Getenv(name)); k != "" {
			return k
		}
	}

	return ""
}

type generator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func (g *generator) Model() string {
	return g.model
}

func (g *generator) Generate(ctx context.Context, req agent.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	for _, a := range req.Attachments {
		parts = append(parts, genai.NewPartFromBytes(a.Data, a.MIMEType))
	}

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	log.WithFields(log.Fields{
		"prefix":      logPrefix,
		"model":       g.model,
		"prompt_len":  len(req.Prompt),
		"attachments": len(req.Attachments),
	}).Debug("generate content")

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		config)
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

// New returns one generator per model sharing a single client
func New(ctx context.Context, apiKey string, models []string, timeout time.Duration) ([]agent.Generator, error) {
	if apiKey == "" {
		return nil, errEmptyAPIKey
	}

	if len(models) == 0 {
		models = DefaultModels
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("new genai client")

		return nil, err
	}

	generators := make([]agent.Generator, 0, len(models))
	for _, m := range models {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		generators = append(generators, &generator{
			client:  client,
			model:   m,
			timeout: timeout,
		})
	}

	return generators, nil
}
