package controllers

import (
	"errors"
	"log"
	"net/http"

	dbpkg "savboard/db"
	"savboard/enrich"
	"savboard/models"

	"github.com/gin-gonic/gin"
)

type replyInput struct {
	ReplyText string `json:"reply_text" binding:"required"`
}

// POST /api/records/:id/reply
// O agente envia a resposta final (a sugestão do LLM é só rascunho: editá-la
// nunca reescreve a classificação). pending -> processed.
func ReplyRecord(c *gin.Context) {
	id, ok := ParamRecordID(c)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var input replyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, "reply_text é obrigatório", http.StatusBadRequest)
		return
	}

	var record models.Record
	if err := db.Where("id = ?", id).First(&record).Error; err != nil {
		RespondError(c, "record não encontrado", http.StatusNotFound)
		return
	}
	if record.Status != models.RECORD_STATUS_PENDING {
		RespondError(c, "record não está pendente", http.StatusConflict)
		return
	}

	if err := db.Model(&models.Record{}).
		Where("id = ? AND status = ?", record.ID, models.RECORD_STATUS_PENDING).
		Updates(map[string]any{
			"status":     models.RECORD_STATUS_PROCESSED,
			"reply_text": input.ReplyText,
		}).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	record.Status = models.RECORD_STATUS_PROCESSED
	record.ReplyText = input.ReplyText
	RespondSuccess(c, gin.H{"record": record})
}

// POST /api/records/:id/escalate
// pending -> escalated (N2). Nenhuma outra transição existe.
func EscalateRecord(c *gin.Context) {
	id, ok := ParamRecordID(c)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var record models.Record
	if err := db.Where("id = ?", id).First(&record).Error; err != nil {
		RespondError(c, "record não encontrado", http.StatusNotFound)
		return
	}
	if record.Status != models.RECORD_STATUS_PENDING {
		RespondError(c, "record não está pendente", http.StatusConflict)
		return
	}

	if err := db.Model(&models.Record{}).
		Where("id = ? AND status = ?", record.ID, models.RECORD_STATUS_PENDING).
		Update("status", models.RECORD_STATUS_ESCALATED).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	record.Status = models.RECORD_STATUS_ESCALATED
	RespondSuccess(c, gin.H{"record": record})
}

// POST /api/records/:id/analyze
// Refresh da classificação via oráculo. Sem credencial: devolve modo demo e
// não toca em nada. Falha de transporte/payload: idem, com 502. Resposta que
// chegou depois de um refresh mais novo do mesmo record é descartada
// (last-issued-wins, ver enrich.Tracker).
func AnalyzeRecord(c *gin.Context) {
	id, ok := ParamRecordID(c)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}
	classifier := ClassifierInstance(c)
	tracker := TrackerInstance(c)
	if classifier == nil || tracker == nil {
		RespondError(c, "enrichment não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var record models.Record
	if err := db.Where("id = ?", id).First(&record).Error; err != nil {
		RespondError(c, "record não encontrado", http.StatusNotFound)
		return
	}

	ticket := tracker.Begin(record.ID)

	analysis, err := classifier.Classify(c.Request.Context(), record.Content)
	if errors.Is(err, enrich.ErrUnavailable) {
		RespondSuccess(c, gin.H{
			"updated":   false,
			"demo_mode": true,
			"message":   "Aucune clé API configurée : classification existante conservée.",
		})
		return
	}
	if err != nil {
		log.Printf("analyze: record=%s error: %v", record.ID, err)
		RespondError(c, "échec de l'analyse, classification existante conservée", http.StatusBadGateway)
		return
	}

	if !tracker.Latest(record.ID, ticket) {
		RespondSuccess(c, gin.H{"updated": false, "superseded": true})
		return
	}

	record.SetAnalysis(analysis, models.ANALYSIS_SOURCE_ORACLE)
	if err := db.Model(&models.Record{}).
		Where("id = ?", record.ID).
		Updates(classificationColumns(record)).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"updated": true, "record": record})
}

// classificationColumns limita o update às colunas de classificação:
// status, reply e ordem de chegada nunca são tocados por um refresh.
func classificationColumns(r models.Record) map[string]any {
	return map[string]any{
		"analysis_source":    r.AnalysisSource,
		"sentiment":          r.Sentiment,
		"urgency":            r.Urgency,
		"category":           r.Category,
		"sub_category":       r.SubCategory,
		"summary":            r.Summary,
		"suggested_response": r.SuggestedResponse,
		"emojis":             r.EmojisJSON,
		"intent":             r.Intent,
	}
}
