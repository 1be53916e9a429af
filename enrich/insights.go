package enrich

import (
	"context"
	"encoding/json"
	"fmt"

	"savboard/models"
)

// DemoModeAnswer is returned by Ask when no credential is configured.
const DemoModeAnswer = "Mode démo : configurez une clé API pour interroger le dataset complet."

const sampleLimit = 500

// recordDigest é o recorte resumido de um registro que vai no contexto do
// prompt (nunca o registro inteiro).
type recordDigest struct {
	Date      string `json:"date"`
	Content   string `json:"content"`
	Category  string `json:"category,omitempty"`
	Sentiment string `json:"sentiment,omitempty"`
	Urgency   int    `json:"urgency,omitempty"`
}

// Ask answers a free-text analyst question against a bounded sample of the
// working collection (first sampleLimit records, summarized fields only).
// Without a credential it returns the fixed demo-mode answer, not an error.
func (cl *Classifier) Ask(ctx context.Context, question string, records []models.Record) (string, error) {
	if !cl.Available() {
		return DemoModeAnswer, nil
	}

	if len(records) > sampleLimit {
		records = records[:sampleLimit]
	}
	digests := make([]recordDigest, 0, len(records))
	for _, r := range records {
		d := recordDigest{Date: r.Timestamp, Content: r.Content}
		if a, ok := r.Analysis(); ok {
			d.Category = a.Category
			d.Sentiment = a.Sentiment
			d.Urgency = a.Urgency
		}
		digests = append(digests, d)
	}
	dataContext, err := json.Marshal(digests)
	if err != nil {
		return "", err
	}

	instructions := "Tu es un analyste de données expert pour un opérateur télécom. " +
		"Réponds de manière synthétique, professionnelle et basée sur les données fournies. " +
		"Utilise du markdown pour la mise en forme (listes, gras)."

	input := fmt.Sprintf("Échantillon des messages SAV (JSON) :\n%s\n\nQuestion de l'analyste : %q",
		dataContext, question)

	return cl.generate(ctx, instructions, input)
}
