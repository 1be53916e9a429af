package main

import (
	"flag"
	"log"

	"savboard/config"
	"savboard/controllers"
	"savboard/db"
	"savboard/enrich"
	"savboard/router"
	"savboard/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config.json", "caminho do arquivo de configuração")
	flag.Parse()

	// .env é opcional; em produção as envs vêm do ambiente mesmo
	if err := godotenv.Load(); err == nil {
		log.Printf(".env carregado")
	}

	cfg := config.Get(*configPath)

	db.SetConfigurations(cfg)
	database, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	classifier := enrich.New(cfg.Oracle)
	tracker := enrich.NewTracker()
	if classifier.Available() {
		log.Printf("oracle configurado (model=%s)", cfg.Oracle.Model)
	} else {
		log.Printf("oracle sem credencial: classificações sintéticas apenas (modo demo)")
	}

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	r.Use(controllers.SetEnrichmentToContext(classifier, tracker))
	router.Initialize(r, cfg)

	workers.StartClassifier(database, classifier, tracker, cfg.Worker)

	log.Printf("savboard listening on :%s", cfg.ApiPort)
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		log.Fatal(err)
	}
}
