package main

import (
	"flag"
	"log"
	"strings"

	"nairatrack/config"
	"nairatrack/database"
	"nairatrack/middleware"
	"nairatrack/router"
	"nairatrack/service"
)

// @title NairaTrack API
// @version 1.0
// @description Personal finance tracking API: bank connections, transactions, budgets, savings goals and reports
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "external config file path (optional)")
	flag.StringVar(&configFile, "c", "", "external config file path (shorthand)")
	flag.StringVar(&port, "port", "", "listen port, e.g. 8080 or :8080")
	flag.StringVar(&port, "p", "", "listen port (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&showVersion, "v", false, "print version (shorthand)")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("nairatrack v1.0.0")
		return
	}

	// Embedded defaults plus optional external overrides
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Command line port wins over config
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("port set from command line: %s", port)
	}

	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	if err := middleware.InitAuth(cfg); err != nil {
		log.Fatalf("failed to init auth: %v", err)
	}

	exportWorker := service.NewExportWorker(database.DB, cfg)
	exportWorker.Start()

	r := router.SetupRouter(cfg, exportWorker)

	log.Printf("==========================================")
	log.Printf("  💰 NairaTrack started")
	log.Printf("==========================================")
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API:      http://localhost%s/api/v1/", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
