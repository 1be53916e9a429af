package models

import "encoding/json"

/************************************************
/**** MARK: SENTIMENT ****/
/************************************************/
const SENTIMENT_VERY_NEGATIVE = "very-negative"
const SENTIMENT_NEGATIVE = "negative"
const SENTIMENT_NEUTRAL = "neutral"
const SENTIMENT_POSITIVE = "positive"

/************************************************
/**** MARK: URGENCY ****/
/************************************************/
const URGENCY_INFORMATIVE = 1
const URGENCY_LOW = 2
const URGENCY_MEDIUM = 3
const URGENCY_HIGH = 4
const URGENCY_CRITICAL = 5

/************************************************
/**** MARK: ANALYSIS SOURCE ****/
/************************************************/
const ANALYSIS_SOURCE_SYNTHETIC = "synthetic"
const ANALYSIS_SOURCE_ORACLE = "oracle"

// KnownSentiments retorna o conjunto fixo, em ordem, do mais negativo ao mais positivo.
// A taxonomia de category/intent é aberta; só sentiment tem conjunto conhecido,
// e mesmo assim valores fora dele são preservados (a taxonomia pode crescer).
func KnownSentiments() []string {
	return []string{
		SENTIMENT_VERY_NEGATIVE,
		SENTIMENT_NEGATIVE,
		SENTIMENT_NEUTRAL,
		SENTIMENT_POSITIVE,
	}
}

// Classification é a análise estruturada de uma mensagem, vinda do oráculo LLM
// ou do gerador sintético. Sempre completa: nenhum campo fica sem valor.
type Classification struct {
	Sentiment         string   `json:"sentiment"`
	Urgency           int      `json:"urgency"`
	Category          string   `json:"category"`
	SubCategory       string   `json:"sub_category"`
	Summary           string   `json:"summary"`
	SuggestedResponse string   `json:"suggested_response"`
	Emojis            []string `json:"emojis"`
	Intent            string   `json:"intent"`
}

func encodeEmojis(emojis []string) string {
	if len(emojis) == 0 {
		return "[]"
	}
	b, err := json.Marshal(emojis)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeEmojis(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
