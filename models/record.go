package models

import "time"

/************************************************
/**** MARK: RECORD STATUS ****/
/************************************************/
const RECORD_STATUS_PENDING = "pending"
const RECORD_STATUS_PROCESSED = "processed"
const RECORD_STATUS_ESCALATED = "escalated"

/************************************************
/**** MARK: FALLBACK VALUES ****/
/************************************************/
const FALLBACK_CONTENT = "Contenu indisponible"
const FALLBACK_TIMESTAMP = "Récemment"
const FALLBACK_AUTHOR = "Client"

// Record representa uma mensagem de suporte ingerida (tweet SAV).
// Ela entra como "pending" e sai do fluxo via reply ("processed") ou escalada ("escalated").
// A coleção inteira é substituída a cada upload; registros nunca são removidos um a um.
type Record struct {
	ID       string `gorm:"primary_key" json:"id"`
	RowIndex int    `gorm:"not null;index" json:"row_index"` // ordem de chegada no arquivo
	BatchID  string `gorm:"not null;index" json:"batch_id"`

	Author    string `gorm:"not null" json:"author"`
	Handle    string `gorm:"not null" json:"handle"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Timestamp string `gorm:"not null" json:"timestamp"`

	ClientSince          string `gorm:"default:''" json:"client_since"`
	Location             string `gorm:"default:''" json:"location"`
	IsPro                bool   `gorm:"default:false" json:"is_pro"`
	HistoryIncidentCount int    `gorm:"default:0" json:"history_incident_count"`

	Status    string `gorm:"not null;default:'pending';index" json:"status"`
	ReplyText string `gorm:"type:text" json:"reply_text"`

	// Classificação achatada em colunas (ver Classification).
	// AnalysisSource vazio significa "sem classificação".
	AnalysisSource    string   `gorm:"default:'';index" json:"analysis_source"`
	Sentiment         string   `gorm:"default:''" json:"sentiment"`
	Urgency           int      `gorm:"default:0;index" json:"urgency"`
	Category          string   `gorm:"default:''" json:"category"`
	SubCategory       string   `gorm:"default:''" json:"sub_category"`
	Summary           string   `gorm:"type:text" json:"summary"`
	SuggestedResponse string   `gorm:"type:text" json:"suggested_response"`
	EmojisJSON        string   `gorm:"column:emojis;type:text" json:"-"`
	Emojis            []string `gorm:"-" json:"emojis"`
	Intent            string   `gorm:"default:''" json:"intent"`

	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Analysis devolve a classificação do registro, ou ok=false se ele ainda não tem uma.
func (r Record) Analysis() (Classification, bool) {
	if r.AnalysisSource == "" {
		return Classification{}, false
	}
	return Classification{
		Sentiment:         r.Sentiment,
		Urgency:           r.Urgency,
		Category:          r.Category,
		SubCategory:       r.SubCategory,
		Summary:           r.Summary,
		SuggestedResponse: r.SuggestedResponse,
		Emojis:            decodeEmojis(r.EmojisJSON),
		Intent:            r.Intent,
	}, true
}

// SetAnalysis substitui a classificação inteira (nunca campo a campo).
func (r *Record) SetAnalysis(a Classification, source string) {
	r.AnalysisSource = source
	r.Sentiment = a.Sentiment
	r.Urgency = a.Urgency
	r.Category = a.Category
	r.SubCategory = a.SubCategory
	r.Summary = a.Summary
	r.SuggestedResponse = a.SuggestedResponse
	r.EmojisJSON = encodeEmojis(a.Emojis)
	r.Emojis = decodeEmojis(r.EmojisJSON)
	r.Intent = a.Intent
}

// AfterFind rehidrata o campo virtual Emojis a partir da coluna JSON.
func (r *Record) AfterFind() error {
	r.Emojis = decodeEmojis(r.EmojisJSON)
	return nil
}

// UrgencyOrZero é a urgência usada em ordenações e filtros:
// registros sem classificação contam como 0, nunca como erro.
func (r Record) UrgencyOrZero() int {
	if r.AnalysisSource == "" {
		return 0
	}
	return r.Urgency
}
