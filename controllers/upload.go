package controllers

import (
	"io"
	"log"
	"net/http"

	dbpkg "savboard/db"
	"savboard/ingest"
	"savboard/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 32 << 20 // 32 MiB

// POST /api/records/upload
// Aceita multipart (campo "file") ou o texto cru no corpo.
// Substitui a coleção inteira numa transação: ou o novo lote entra completo,
// ou a coleção anterior permanece intocada.
func UploadRecords(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	raw, err := readUploadText(c)
	if err != nil {
		RespondError(c, "falha ao ler o arquivo: "+err.Error(), http.StatusBadRequest)
		return
	}

	table := ingest.Parse(raw)
	records := ingest.Materialize(table)
	if len(records) == 0 {
		RespondError(c, "arquivo sem linhas de dados utilizáveis", http.StatusBadRequest)
		return
	}

	batchID := uuid.NewString()
	for i := range records {
		records[i].BatchID = batchID
	}

	tx := db.Begin()
	if tx.Error != nil {
		RespondError(c, tx.Error.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Delete(&models.Record{}).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	for i := range records {
		if err := tx.Create(&records[i]).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("upload: batch=%s records=%d dropped_rows=%d", batchID, len(records), table.Dropped)

	RespondSuccess(c, gin.H{
		"batch_id":     batchID,
		"count":        len(records),
		"dropped_rows": table.Dropped,
	})
}

func readUploadText(c *gin.Context) (string, error) {
	if file, _, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		b, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
