package enrich

import (
	"fmt"
	"hash/fnv"
	"strings"

	"savboard/models"
)

/************************************************
/**** MARK: SYNTHETIC TAXONOMY ****/
/************************************************/
const CATEGORY_TECHNICAL_OUTAGE = "Technical Outage"
const CATEGORY_COMMERCIAL = "Commercial"

const syntheticResponse = "Bonjour, je prends en charge votre demande..."
const summaryMaxRunes = 30

// Synthetic fabrica uma classificação completa sem chamar o oráculo.
// É uma função pura de (content, rowIndex): mesmo input, mesma classificação,
// então re-ingerir o mesmo arquivo produz exatamente a mesma coleção.
func Synthetic(content string, rowIndex int) models.Classification {
	u := roll(content, rowIndex, "urgency")

	urgency := models.URGENCY_LOW
	if u > 0.8 {
		urgency = models.URGENCY_CRITICAL
	} else if u > 0.5 {
		urgency = models.URGENCY_MEDIUM
	}

	sentiment := models.SENTIMENT_NEUTRAL
	if urgency >= models.URGENCY_HIGH {
		sentiment = models.SENTIMENT_VERY_NEGATIVE
	}

	category := CATEGORY_COMMERCIAL
	subCategory := "Général"
	if strings.Contains(strings.ToLower(content), "box") {
		category = CATEGORY_TECHNICAL_OUTAGE
		subCategory = "Box"
	}

	return models.Classification{
		Sentiment:         sentiment,
		Urgency:           urgency,
		Category:          category,
		SubCategory:       subCategory,
		Summary:           shortSummary(content),
		SuggestedResponse: syntheticResponse,
		Emojis:            []string{},
		Intent:            "Information",
	}
}

// IsPro is the deterministic stand-in for the enriched "pro customer" flag
// the export does not carry.
func IsPro(content string, rowIndex int) bool {
	return roll(content, rowIndex, "pro") > 0.9
}

// roll maps (content, rowIndex, salt) into [0, 1) via FNV-1a.
func roll(content string, rowIndex int, salt string) float64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d:%s", content, rowIndex, salt)
	return float64(h.Sum64()%10000) / 10000
}

func shortSummary(content string) string {
	runes := []rune(content)
	if len(runes) <= summaryMaxRunes {
		return content
	}
	return string(runes[:summaryMaxRunes]) + "..."
}
