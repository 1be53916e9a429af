package workers

import (
	"context"
	"log"
	"time"

	"savboard/config"
	"savboard/enrich"
	"savboard/models"

	"github.com/jinzhu/gorm"
)

// StartClassifier starts a loop that upgrades synthetic classifications to
// real ones, a small batch per tick. Bulk ingestion never calls the oracle
// (cost/latency), so this is how a freshly uploaded collection converges to
// live classifications without anyone clicking record by record.
func StartClassifier(db *gorm.DB, classifier *enrich.Classifier, tracker *enrich.Tracker, cfg config.Worker) {
	if !cfg.Enabled {
		return
	}
	if !classifier.Available() {
		log.Printf("classify worker: no oracle credential, worker disabled")
		return
	}

	interval := time.Duration(cfg.IntervalSeconds) * time.Second

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			upgradeBatch(db, classifier, tracker, cfg.BatchSize)
		}
	}()
}

func upgradeBatch(db *gorm.DB, classifier *enrich.Classifier, tracker *enrich.Tracker, batchSize int) {
	var records []models.Record
	if err := db.
		Where("analysis_source = ?", models.ANALYSIS_SOURCE_SYNTHETIC).
		Order("urgency desc, row_index asc").
		Limit(batchSize).
		Find(&records).Error; err != nil {
		log.Printf("classify worker: query error: %v", err)
		return
	}

	for _, rec := range records {
		upgradeOne(db, classifier, tracker, rec)
	}
}

func upgradeOne(db *gorm.DB, classifier *enrich.Classifier, tracker *enrich.Tracker, rec models.Record) {
	ticket := tracker.Begin(rec.ID)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	analysis, err := classifier.Classify(ctx, rec.Content)
	if err != nil {
		// classificação sintética permanece; um tick futuro tenta de novo
		log.Printf("classify worker: record=%s error: %v", rec.ID, err)
		return
	}

	// um refresh manual emitido depois tem prioridade sobre este resultado
	if !tracker.Latest(rec.ID, ticket) {
		return
	}

	rec.SetAnalysis(analysis, models.ANALYSIS_SOURCE_ORACLE)
	if err := db.Model(&models.Record{}).
		Where("id = ? AND analysis_source = ?", rec.ID, models.ANALYSIS_SOURCE_SYNTHETIC).
		Updates(map[string]any{
			"analysis_source":    rec.AnalysisSource,
			"sentiment":          rec.Sentiment,
			"urgency":            rec.Urgency,
			"category":           rec.Category,
			"sub_category":       rec.SubCategory,
			"summary":            rec.Summary,
			"suggested_response": rec.SuggestedResponse,
			"emojis":             rec.EmojisJSON,
			"intent":             rec.Intent,
		}).Error; err != nil {
		log.Printf("classify worker: update error: %v", err)
	}
}
