package controllers

import (
	"net/http"

	dbpkg "savboard/db"
	"savboard/models"

	"github.com/gin-gonic/gin"
)

type bucketRow struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// GET /api/dashboard/supervisor
// Visão de plateau: volume, críticos, taxa de sentimento negativo e
// distribuição por status do fluxo de triagem.
func GetSupervisorDashboard(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var total int64
	if err := db.Model(&models.Record{}).Count(&total).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var critical int64
	if err := db.Model(&models.Record{}).
		Where("analysis_source <> '' AND urgency = ?", models.URGENCY_CRITICAL).
		Count(&critical).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var negative int64
	if err := db.Model(&models.Record{}).
		Where("analysis_source <> '' AND sentiment IN (?)",
			[]string{models.SENTIMENT_VERY_NEGATIVE, models.SENTIMENT_NEGATIVE}).
		Count(&negative).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var statusRows []bucketRow
	if err := db.Model(&models.Record{}).
		Select("status as name, count(*) as count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{
		"total":         total,
		"critical":      critical,
		"negative":      negative,
		"negative_rate": rate(negative, total),
		"status":        statusRows,
	})
}

// GET /api/dashboard/analyst
// Distribuição de sentimento (sempre os 4 buckets fixos, na ordem, mais os
// rótulos desconhecidos que o oráculo tenha inventado), top 5 categorias,
// urgência média e taxa de críticos.
func GetAnalystDashboard(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var total int64
	if err := db.Model(&models.Record{}).Count(&total).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var sentimentRows []bucketRow
	if err := db.Model(&models.Record{}).
		Select("sentiment as name, count(*) as count").
		Where("analysis_source <> ''").
		Group("sentiment").
		Scan(&sentimentRows).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	sentiments := orderSentiments(sentimentRows)

	var categories []bucketRow
	if err := db.Model(&models.Record{}).
		Select("category as name, count(*) as count").
		Where("analysis_source <> ''").
		Group("category").
		Order("count desc, name asc").
		Limit(5).
		Scan(&categories).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var critical int64
	if err := db.Model(&models.Record{}).
		Where("analysis_source <> '' AND urgency = ?", models.URGENCY_CRITICAL).
		Count(&critical).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	// urgência média sobre a coleção inteira; sem classificação conta 0
	type sumRow struct{ Total int64 }
	var s sumRow
	if err := db.Model(&models.Record{}).
		Select("coalesce(sum(urgency), 0) as total").
		Scan(&s).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	avgUrgency := 0.0
	if total > 0 {
		avgUrgency = float64(s.Total) / float64(total)
	}

	RespondSuccess(c, gin.H{
		"total":          total,
		"sentiments":     sentiments,
		"top_categories": categories,
		"avg_urgency":    avgUrgency,
		"critical":       critical,
		"critical_rate":  rate(critical, total),
	})
}

// orderSentiments materializa os 4 buckets conhecidos na ordem fixa (com zero
// quando vazio) e preserva no fim qualquer sentimento fora do conjunto.
func orderSentiments(rows []bucketRow) []bucketRow {
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Name] = r.Count
	}

	out := make([]bucketRow, 0, len(rows)+4)
	for _, s := range models.KnownSentiments() {
		out = append(out, bucketRow{Name: s, Count: counts[s]})
		delete(counts, s)
	}
	for _, r := range rows {
		if c, ok := counts[r.Name]; ok {
			out = append(out, bucketRow{Name: r.Name, Count: c})
			delete(counts, r.Name)
		}
	}
	return out
}

func rate(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
