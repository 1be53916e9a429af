package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"savboard/config"
	"savboard/models"
)

// fakeOracle sobe um endpoint /responses no formato da Responses API cujo
// output_text é o texto dado.
func fakeOracle(t *testing.T, outputText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/responses" {
			http.NotFound(w, r)
			return
		}
		resp := map[string]any{
			"output": []map[string]any{
				{
					"type": "message",
					"role": "assistant",
					"content": []map[string]any{
						{"type": "output_text", "text": outputText},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func testClassifier(key, baseURL string) *Classifier {
	return New(config.Oracle{ApiKey: key, Model: "test-model", BaseURL: baseURL, TimeoutSeconds: 5})
}

func TestClassify_UnavailableWithoutKey(t *testing.T) {
	// base URL propositalmente inválida: sem credencial não pode haver
	// nenhuma tentativa de rede
	cl := testClassifier("", "http://127.0.0.1:0")

	_, err := cl.Classify(context.Background(), "Box en panne")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if cl.Available() {
		t.Fatal("Available() must be false without a key")
	}
}

func TestClassify_Success(t *testing.T) {
	srv := fakeOracle(t, `{
		"sentiment": "very-negative",
		"urgency": 5,
		"category": "Technical Outage",
		"sub_category": "Fibre",
		"summary": "Panne fibre 8 jours",
		"suggested_response": "Bonjour, un technicien arrive demain.",
		"intent": "Réclamation",
		"emojis": ["🤬", "🔴"]
	}`)
	defer srv.Close()

	cl := testClassifier("sk-test", srv.URL)
	a, err := cl.Classify(context.Background(), "Plus d'Internet depuis 8 jours")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Sentiment != models.SENTIMENT_VERY_NEGATIVE || a.Urgency != 5 {
		t.Fatalf("unexpected classification: %+v", a)
	}
	if a.Category != "Technical Outage" || a.SubCategory != "Fibre" {
		t.Fatalf("unexpected taxonomy: %+v", a)
	}
	if len(a.Emojis) != 2 {
		t.Fatalf("emojis = %v", a.Emojis)
	}
}

func TestClassify_UrgencyClampedAndSentimentPreserved(t *testing.T) {
	srv := fakeOracle(t, `{
		"sentiment": "furibond",
		"urgency": 11,
		"category": "Autre",
		"summary": "ok",
		"suggested_response": "ok"
	}`)
	defer srv.Close()

	cl := testClassifier("sk-test", srv.URL)
	a, err := cl.Classify(context.Background(), "peu importe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Urgency != models.URGENCY_CRITICAL {
		t.Fatalf("urgency not clamped: %d", a.Urgency)
	}
	// taxonomia aberta: valor desconhecido é preservado tal qual
	if a.Sentiment != "furibond" {
		t.Fatalf("sentiment rewritten: %q", a.Sentiment)
	}
	if a.Emojis == nil {
		t.Fatal("emojis must default to an empty slice")
	}
}

func TestClassify_UrgencyClampedLow(t *testing.T) {
	srv := fakeOracle(t, `{"sentiment":"neutral","urgency":0,"category":"Autre","summary":"ok","suggested_response":"ok"}`)
	defer srv.Close()

	cl := testClassifier("sk-test", srv.URL)
	a, err := cl.Classify(context.Background(), "rien")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Urgency != models.URGENCY_INFORMATIVE {
		t.Fatalf("urgency = %d, want %d", a.Urgency, models.URGENCY_INFORMATIVE)
	}
}

func TestClassify_MalformedPayload(t *testing.T) {
	cases := map[string]string{
		"not json":               "désolé, je ne peux pas répondre",
		"missing required field": `{"sentiment": "neutral", "category": "Autre"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			srv := fakeOracle(t, payload)
			defer srv.Close()

			cl := testClassifier("sk-test", srv.URL)
			_, err := cl.Classify(context.Background(), "peu importe")
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("err = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestClassify_FencedJSONTolerated(t *testing.T) {
	srv := fakeOracle(t, "```json\n{\"sentiment\":\"neutral\",\"urgency\":2,\"category\":\"Autre\",\"summary\":\"ok\",\"suggested_response\":\"ok\"}\n```")
	defer srv.Close()

	cl := testClassifier("sk-test", srv.URL)
	a, err := cl.Classify(context.Background(), "peu importe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Urgency != 2 {
		t.Fatalf("urgency = %d", a.Urgency)
	}
}

func TestClassify_TransportFailureIsNotMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cl := testClassifier("sk-test", srv.URL)
	_, err := cl.Classify(context.Background(), "peu importe")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrMalformed) {
		t.Fatalf("transport failure misclassified: %v", err)
	}
}
