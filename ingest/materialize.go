package ingest

import (
	"fmt"
	"strings"

	"savboard/enrich"
	"savboard/models"
)

// Materialize converte as linhas cruas em Records canônicos.
// Nunca falha o lote inteiro: campo inutilizável vira default documentado,
// coluna ausente vira default para todas as linhas. Todo registro sai como
// "pending" e já com uma classificação sintética anexada, para os dashboards
// não tratarem "sem classificação" logo após o upload.
func Materialize(t Table) []models.Record {
	idxID := t.Column("id")
	idxText := t.Column("text")
	idxDate := t.Column("created", "date")
	idxUser := t.Column("user", "name", "screen_name")

	seen := make(map[string]bool, len(t.Rows))
	records := make([]models.Record, 0, len(t.Rows))

	for i, row := range t.Rows {
		rowIndex := i + 1 // a linha 0 do arquivo é o header

		content := fieldAt(row, idxText)
		if content == "" {
			content = models.FALLBACK_CONTENT
		}

		id := fieldAt(row, idxID)
		if id == "" {
			id = fmt.Sprintf("row-%d", rowIndex)
		}
		// colisão de id: nunca sobrescreve em silêncio, sintetiza um novo
		for seen[id] {
			id = fmt.Sprintf("%s#%d", id, rowIndex)
		}
		seen[id] = true

		author := fieldAt(row, idxUser)
		if author == "" {
			author = models.FALLBACK_AUTHOR
		}

		timestamp := fieldAt(row, idxDate)
		if timestamp == "" {
			timestamp = models.FALLBACK_TIMESTAMP
		}

		rec := models.Record{
			ID:        id,
			RowIndex:  rowIndex,
			Author:    author,
			Handle:    "@" + strings.TrimPrefix(author, "@"),
			Content:   content,
			Timestamp: timestamp,
			IsPro:     enrich.IsPro(content, rowIndex),
			Status:    models.RECORD_STATUS_PENDING,
		}
		rec.SetAnalysis(enrich.Synthetic(content, rowIndex), models.ANALYSIS_SOURCE_SYNTHETIC)

		records = append(records, rec)
	}

	return records
}

func fieldAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(unquote(strings.TrimSpace(row[idx])))
}
