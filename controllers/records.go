package controllers

import (
	"net/http"
	"strings"

	dbpkg "savboard/db"
	"savboard/models"

	"github.com/gin-gonic/gin"
)

// GET /api/records
// Query params:
// - status=pending|processed|escalated (optional)
// - q=texto (optional) -> busca em content + handle (tabela do analista)
// - limit (optional, default: 200, max: 500)
// - offset (optional, default: 0)
func GetRecords(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	status := strings.TrimSpace(c.Query("status"))
	q := strings.TrimSpace(c.Query("q"))
	limit := clampInt(queryInt(c, "limit", 200), 1, 500)
	offset := clampInt(queryInt(c, "offset", 0), 0, 1_000_000)

	query := db.Model(&models.Record{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(content) LIKE ? OR LOWER(handle) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var records []models.Record
	if err := query.Order("row_index asc").
		Limit(limit).
		Offset(offset).
		Find(&records).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{
		"total":   total,
		"limit":   limit,
		"offset":  offset,
		"records": records,
	})
}

// GET /api/records/:id
func GetRecordByID(c *gin.Context) {
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

	RespondSuccess(c, gin.H{"record": record})
}

// GET /api/queue
// Fila do agente: pendentes por urgência decrescente; empate mantém a ordem
// de chegada (row_index). Registro sem classificação conta como urgência 0.
func GetQueue(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var records []models.Record
	if err := db.Where("status = ?", models.RECORD_STATUS_PENDING).
		Order("urgency desc, row_index asc").
		Find(&records).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{
		"pending": len(records),
		"queue":   records,
	})
}
