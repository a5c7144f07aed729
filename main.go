package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/VoteScope/VS-Dashboards/internal/config"
	"github.com/VoteScope/VS-Dashboards/internal/dashboard"
	"github.com/VoteScope/VS-Dashboards/internal/middleware"
	"github.com/VoteScope/VS-Dashboards/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "dashboards.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	if err := dashboard.Init(cfg); err != nil {
		log.Fatal("Failed to initialize dashboard: ", err)
	}

	store := session.NewStore()

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.SessionMiddleware(store))
	r.Get("/", RootHandler)

	r.Mount("/dashboard", dashboard.SetupRoutes())
	r.Mount("/datasets", dashboard.SetupDatasetRoutes())

	fmt.Println("Server listening on port :" + cfg.Port + "...")

	http.ListenAndServe("0.0.0.0:"+cfg.Port, r)
}
