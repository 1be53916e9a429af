package config

import (
	"encoding/json"
	"log"
	"os"
	"strings"
)

// Oracle é a credencial/endpoint do serviço LLM. É passada explicitamente
// para enrich.New na construção; nenhum call site consulta env por conta
// própria.
type Oracle struct {
	ApiKey         string `json:"api_key"`
	Model          string `json:"model"`
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type Worker struct {
	Enabled         bool `json:"enabled"`
	IntervalSeconds int  `json:"interval_seconds"`
	BatchSize       int  `json:"batch_size"`
}

type Configuration struct {
	ApiPort string `json:"api_port"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Oracle Oracle `json:"oracle"`
	Worker Worker `json:"worker"`
}

func Get(path string) Configuration {
	var c Configuration

	b, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(b, &c); err != nil {
			log.Fatal(err)
		}
	} else {
		log.Printf("config: %v (usando defaults)", err)
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.DbName == "" {
		c.DbName = ":memory:"
	}
	if c.Oracle.ApiKey == "" {
		// fallback único e centralizado para a env clássica
		c.Oracle.ApiKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if c.Oracle.Model == "" {
		c.Oracle.Model = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	}
	if c.Oracle.TimeoutSeconds <= 0 {
		c.Oracle.TimeoutSeconds = 30
	}
	if c.Worker.IntervalSeconds <= 0 {
		c.Worker.IntervalSeconds = 5
	}
	if c.Worker.BatchSize <= 0 {
		c.Worker.BatchSize = 10
	}

	return c
}
