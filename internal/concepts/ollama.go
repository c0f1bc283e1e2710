package concepts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const promptTemplate = `You are an expert in explaining complex concepts to students.

Given a concept and the content of a flashcard, suggest related concepts that would deepen the student's understanding of the subject matter.

Concept: %s
Flashcard Content: %s

Format the output as a JSON object with 'relatedConcepts' (an array of related concepts) and 'explanation' (a brief explanation of how the concepts are related).`

// OllamaExpander calls a local Ollama generate API.
type OllamaExpander struct {
	client *resty.Client
	model  string
}

// NewOllamaExpander creates an expander against baseURL (e.g.
// http://localhost:11434) using the given model.
func NewOllamaExpander(baseURL, model string) *OllamaExpander {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")

	return &OllamaExpander{client: c, model: model}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Format string `json:"format"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Expand issues one generate call with the fixed prompt template and parses
// the model's JSON answer.
func (e *OllamaExpander) Expand(ctx context.Context, in Input) (*Output, error) {
	if strings.TrimSpace(in.Concept) == "" {
		return nil, fmt.Errorf("concept is empty")
	}

	reqBody := generateRequest{
		Model:  e.model,
		Prompt: fmt.Sprintf(promptTemplate, in.Concept, in.FlashcardContent),
		Format: "json",
		Stream: false,
	}

	var out generateResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		SetResult(&out).
		Post("/api/generate")
	if err != nil {
		return nil, fmt.Errorf("concept expansion request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("concept expansion backend returned status %d", resp.StatusCode())
	}
	if out.Error != "" {
		return nil, fmt.Errorf("concept expansion backend error: %s", out.Error)
	}

	var result Output
	if err := json.Unmarshal([]byte(out.Response), &result); err != nil {
		return nil, fmt.Errorf("concept expansion returned malformed JSON: %w", err)
	}
	if result.RelatedConcepts == nil {
		result.RelatedConcepts = []string{}
	}
	return &result, nil
}

// HealthPing checks /api/tags for the configured model's presence.
func (e *OllamaExpander) HealthPing(ctx context.Context) error {
	var data struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	resp, err := e.client.R().
		SetContext(ctx).
		SetResult(&data).
		Get("/api/tags")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("ollama status %d", resp.StatusCode())
	}
	want := baseModelName(e.model)
	for _, m := range data.Models {
		if baseModelName(m.Name) == want {
			return nil
		}
	}
	return fmt.Errorf("model %s not found", want)
}

// baseModelName strips a ":tag" suffix, so "llama3:8b" matches "llama3".
func baseModelName(name string) string {
	return strings.Split(name, ":")[0]
}
