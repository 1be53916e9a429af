package controllers

import (
	"log"
	"net/http"

	dbpkg "savboard/db"
	"savboard/models"

	"github.com/gin-gonic/gin"
)

type askInput struct {
	Question string `json:"question" binding:"required"`
}

// POST /api/insights/ask
// Pergunta livre do analista, respondida sobre uma amostra limitada da
// coleção (primeiros 500 registros, campos resumidos). Sem credencial o
// oráculo devolve a mensagem fixa de modo demo.
func AskInsights(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}
	classifier := ClassifierInstance(c)
	if classifier == nil {
		RespondError(c, "enrichment não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var input askInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, "question é obrigatório", http.StatusBadRequest)
		return
	}

	var records []models.Record
	if err := db.Order("row_index asc").Limit(500).Find(&records).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	answer, err := classifier.Ask(c.Request.Context(), input.Question, records)
	if err != nil {
		log.Printf("insights: error: %v", err)
		RespondError(c, "erreur lors de l'analyse des données", http.StatusBadGateway)
		return
	}

	RespondSuccess(c, gin.H{
		"answer":    answer,
		"demo_mode": !classifier.Available(),
		"sampled":   len(records),
	})
}
