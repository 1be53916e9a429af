package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"savboard/config"
	"savboard/models"
)

// ErrUnavailable means no oracle credential is configured. It is a
// pre-condition, checked before any network attempt, so callers can fall back
// (synthetic classification, demo-mode message) without treating it as a fault.
var ErrUnavailable = errors.New("oracle unavailable: no api key configured")

// ErrMalformed means the oracle answered but the payload does not fit the
// Classification shape. Unlike ErrUnavailable this one is worth logging.
var ErrMalformed = errors.New("oracle response malformed")

const defaultBaseURL = "https://api.openai.com/v1"
const defaultModel = "gpt-4.1-mini"

const classifyInstructions = `Analyse le message suivant destiné au service client d'un opérateur télécom.
Retourne uniquement un JSON avec les champs :
- sentiment: "very-negative", "negative", "neutral", "positive"
- urgency: un entier de 1 (faible) à 5 (critique)
- category: "Technical Outage", "Facturation", "Commercial", "Information", "Autre"
- sub_category: précision (ex: Fibre, Mobile, Box)
- summary: un résumé très court (max 10 mots) du problème
- suggested_response: une réponse empathique et professionnelle prête à l'emploi
- intent: "Réclamation", "Information", "Résiliation", "Technique"
- emojis: une liste d'emojis pertinents pour l'interface`

// Classifier calls the oracle's Responses API and coerces the answer into a
// Classification. Credentials come in at construction, never from ambient env.
type Classifier struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func New(cfg config.Oracle) *Classifier {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Classifier{
		apiKey:  strings.TrimSpace(cfg.ApiKey),
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Available reports whether a credential is configured.
func (cl *Classifier) Available() bool {
	return cl.apiKey != ""
}

// Classify asks the oracle for a structured classification of one message.
// One request per call; retry policy belongs to the caller.
func (cl *Classifier) Classify(ctx context.Context, content string) (models.Classification, error) {
	var zero models.Classification
	if !cl.Available() {
		return zero, ErrUnavailable
	}

	text, err := cl.generate(ctx, classifyInstructions, content)
	if err != nil {
		return zero, err
	}

	var parsed struct {
		Sentiment         *string  `json:"sentiment"`
		Urgency           *int     `json:"urgency"`
		Category          *string  `json:"category"`
		SubCategory       string   `json:"sub_category"`
		Summary           *string  `json:"summary"`
		SuggestedResponse *string  `json:"suggested_response"`
		Intent            string   `json:"intent"`
		Emojis            []string `json:"emojis"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &parsed); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if parsed.Sentiment == nil || parsed.Urgency == nil || parsed.Category == nil ||
		parsed.Summary == nil || parsed.SuggestedResponse == nil {
		return zero, fmt.Errorf("%w: missing required field", ErrMalformed)
	}

	emojis := parsed.Emojis
	if emojis == nil {
		emojis = []string{}
	}

	return models.Classification{
		// sentiment fora do conjunto conhecido é preservado como veio:
		// a taxonomia pode legitimamente crescer do lado do oráculo
		Sentiment:         *parsed.Sentiment,
		Urgency:           clampUrgency(*parsed.Urgency),
		Category:          *parsed.Category,
		SubCategory:       parsed.SubCategory,
		Summary:           *parsed.Summary,
		SuggestedResponse: *parsed.SuggestedResponse,
		Emojis:            emojis,
		Intent:            parsed.Intent,
	}, nil
}

// generate posts instructions+input to the Responses API and concatenates the
// assistant output_text items.
func (cl *Classifier) generate(ctx context.Context, instructions, input string) (string, error) {
	reqBody := map[string]any{
		"model":        cl.model,
		"instructions": instructions,
		"input":        input,
	}
	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cl.baseURL+"/responses", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+cl.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := cl.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("oracle request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("oracle error %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Output []struct {
			Type    string `json:"type"`
			Role    string `json:"role"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var sb strings.Builder
	for _, item := range parsed.Output {
		if item.Type == "message" && item.Role == "assistant" {
			for _, c := range item.Content {
				if c.Type == "output_text" && strings.TrimSpace(c.Text) != "" {
					if sb.Len() > 0 {
						sb.WriteString("\n")
					}
					sb.WriteString(c.Text)
				}
			}
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("%w: no output_text items found", ErrMalformed)
	}
	return out, nil
}

// clampUrgency keeps out-of-range oracle urgencies usable instead of
// rejecting the whole classification.
func clampUrgency(u int) int {
	if u < models.URGENCY_INFORMATIVE {
		return models.URGENCY_INFORMATIVE
	}
	if u > models.URGENCY_CRITICAL {
		return models.URGENCY_CRITICAL
	}
	return u
}

// stripFences tolerates models that wrap the JSON in a markdown code fence.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}
