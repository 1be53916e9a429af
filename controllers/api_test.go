package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"savboard/config"
	"savboard/controllers"
	"savboard/db"
	"savboard/enrich"
	"savboard/router"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

const sampleExport = `id,text,created_at,user
1,"Box en panne, c'est inadmissible, 100€ de remise svp",2024-01-01,jean
2,"Merci pour la fibre rapide",2024-01-02,lea
`

// newAPI monta a API completa (rotas reais, DB sqlite em memória) com o
// oráculo dado. Oracle zero = sem credencial = modo demo.
func newAPI(t *testing.T, oracle config.Oracle) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.Open()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	r.Use(controllers.SetEnrichmentToContext(enrich.New(oracle), enrich.NewTracker()))
	router.Initialize(r, config.Configuration{})

	return r, database
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if strings.HasPrefix(strings.TrimSpace(body), "{") {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v\n%s", err, w.Body.String())
	}
	return out
}

func uploadSample(t *testing.T, r *gin.Engine) {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/records/upload", sampleExport)
	if w.Code != http.StatusOK {
		t.Fatalf("upload failed: %d %s", w.Code, w.Body.String())
	}
}
