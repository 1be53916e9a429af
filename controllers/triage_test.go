package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"savboard/config"
	"savboard/models"
)

func TestReply_PendingToProcessed(t *testing.T) {
	r, database := newAPI(t, config.Oracle{})
	uploadSample(t, r)

	w := doRequest(t, r, http.MethodPost, "/api/records/1/reply",
		`{"reply_text": "Bonjour Jean, un technicien passe demain."}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var rec models.Record
	if err := database.Where("id = ?", "1").First(&rec).Error; err != nil {
		t.Fatal(err)
	}
	if rec.Status != models.RECORD_STATUS_PROCESSED {
		t.Fatalf("status = %q", rec.Status)
	}
	if rec.ReplyText != "Bonjour Jean, un technicien passe demain." {
		t.Fatalf("reply_text = %q", rec.ReplyText)
	}
	// editar a resposta não reescreve a sugestão da classificação
	a, _ := rec.Analysis()
	if a.SuggestedResponse == rec.ReplyText {
		t.Fatal("reply leaked into the classification")
	}

	// processed não volta nem é processado de novo
	w = doRequest(t, r, http.MethodPost, "/api/records/1/reply", `{"reply_text": "encore"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("second reply status = %d", w.Code)
	}
}

func TestReply_RequiresBody(t *testing.T) {
	r, _ := newAPI(t, config.Oracle{})
	uploadSample(t, r)

	w := doRequest(t, r, http.MethodPost, "/api/records/1/reply", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestEscalate_PendingToEscalated(t *testing.T) {
	r, database := newAPI(t, config.Oracle{})
	uploadSample(t, r)

	w := doRequest(t, r, http.MethodPost, "/api/records/2/escalate", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var rec models.Record
	database.Where("id = ?", "2").First(&rec)
	if rec.Status != models.RECORD_STATUS_ESCALATED {
		t.Fatalf("status = %q", rec.Status)
	}

	// escalated é terminal
	w = doRequest(t, r, http.MethodPost, "/api/records/2/reply", `{"reply_text": "tard"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("reply after escalate status = %d", w.Code)
	}
}

func TestAnalyze_DemoModeKeepsClassification(t *testing.T) {
	r, database := newAPI(t, config.Oracle{})
	uploadSample(t, r)

	var before models.Record
	database.Where("id = ?", "1").First(&before)

	w := doRequest(t, r, http.MethodPost, "/api/records/1/analyze", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["demo_mode"] != true || body["updated"] != false {
		t.Fatalf("body = %v", body)
	}

	var after models.Record
	database.Where("id = ?", "1").First(&after)
	if after.AnalysisSource != before.AnalysisSource || after.Sentiment != before.Sentiment ||
		after.Urgency != before.Urgency {
		t.Fatal("demo mode must leave the classification untouched")
	}
}

func TestAnalyze_AppliesOracleResult(t *testing.T) {
	oracle := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"output": []map[string]any{{
				"type": "message",
				"role": "assistant",
				"content": []map[string]any{{
					"type": "output_text",
					"text": `{"sentiment":"very-negative","urgency":5,"category":"Technical Outage","sub_category":"Box","summary":"Panne box","suggested_response":"On arrive.","intent":"Réclamation","emojis":["🔴"]}`,
				}},
			}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer oracle.Close()

	r, database := newAPI(t, config.Oracle{ApiKey: "sk-test", BaseURL: oracle.URL, TimeoutSeconds: 5})
	uploadSample(t, r)

	w := doRequest(t, r, http.MethodPost, "/api/records/2/analyze", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["updated"] != true {
		t.Fatalf("body = %s", w.Body.String())
	}

	var rec models.Record
	database.Where("id = ?", "2").First(&rec)
	if rec.AnalysisSource != models.ANALYSIS_SOURCE_ORACLE {
		t.Fatalf("analysis source = %q", rec.AnalysisSource)
	}
	if rec.Urgency != 5 || rec.Category != "Technical Outage" {
		t.Fatalf("classification not replaced: %+v", rec)
	}
	// refresh mexe só na classificação
	if rec.Status != models.RECORD_STATUS_PENDING {
		t.Fatalf("status touched by analyze: %q", rec.Status)
	}
}

func TestAnalyze_TransportFailureKeepsClassification(t *testing.T) {
	oracle := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer oracle.Close()

	r, database := newAPI(t, config.Oracle{ApiKey: "sk-test", BaseURL: oracle.URL, TimeoutSeconds: 5})
	uploadSample(t, r)

	var before models.Record
	database.Where("id = ?", "1").First(&before)

	w := doRequest(t, r, http.MethodPost, "/api/records/1/analyze", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", w.Code)
	}

	var after models.Record
	database.Where("id = ?", "1").First(&after)
	if after.Sentiment != before.Sentiment || after.AnalysisSource != before.AnalysisSource {
		t.Fatal("failed refresh must not touch the previous classification")
	}
}

func TestAnalyze_UnknownRecord(t *testing.T) {
	r, _ := newAPI(t, config.Oracle{})
	uploadSample(t, r)

	w := doRequest(t, r, http.MethodPost, "/api/records/zzz/analyze", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}
