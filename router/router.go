package router

import (
	"log"

	"savboard/config"
	"savboard/controllers"
	"savboard/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares.
// No auth layer: the dashboard is a single-operator session tool; role
// selection happens entirely on the front.
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Ingestão (substitui a coleção inteira)
	api.POST("/records/upload", Logger(), controllers.UploadRecords)

	// Coleção
	api.GET("/records", Logger(), controllers.GetRecords)
	api.GET("/records/:id", Logger(), controllers.GetRecordByID)
	api.GET("/queue", Logger(), controllers.GetQueue)

	// Triagem (agente)
	api.POST("/records/:id/reply", Logger(), controllers.ReplyRecord)
	api.POST("/records/:id/escalate", Logger(), controllers.EscalateRecord)
	api.POST("/records/:id/analyze", Logger(), controllers.AnalyzeRecord)

	// Dashboards (supervisor / analista)
	api.GET("/dashboard/supervisor", Logger(), controllers.GetSupervisorDashboard)
	api.GET("/dashboard/analyst", Logger(), controllers.GetAnalystDashboard)

	// Perguntas livres do analista
	api.POST("/insights/ask", Logger(), controllers.AskInsights)

	log.Printf("Routes initialized")
}
