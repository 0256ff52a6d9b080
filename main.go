package main

import (
	auth "Seismo/internal/auth"
	drift "Seismo/internal/calc/drift"
	importer "Seismo/internal/calc/importer"
	recommend "Seismo/internal/calc/recommend"
	report "Seismo/internal/calc/report"
	config "Seismo/internal/config"
	metrics "Seismo/internal/metrics"
	repo "Seismo/internal/repo"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// HandleList wires every route of the service onto mux.
func HandleList(mux *mux.Router, cfg config.Config, users repo.Repository, rec drift.Recorder) {
	authEnv := &auth.Env{JWTKey: []byte(cfg.TokenKey), Repo: users}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	driftH := &drift.Handler{Limit: cfg.DriftLimit, Metrics: rec}
	recommendH := &recommend.Handler{Limit: cfg.DriftLimit}
	reportH := &report.Handler{Drift: driftH}
	importH := &importer.Handler{Drift: driftH}

	secureApi.HandleFunc("/tools/drift/calc", driftH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/drift/recommend", recommendH.Stiffness).Methods("POST")
	secureApi.HandleFunc("/tools/drift/report/pdf", reportH.PDF).Methods("POST")
	secureApi.HandleFunc("/tools/drift/report/xlsx", reportH.XLSX).Methods("POST")
	secureApi.HandleFunc("/tools/drift/import", importH.Floors).Methods("POST")

	mux.Handle("/metrics", promhttp.Handler()).Methods("GET")

	mux.PathPrefix("/").
		Handler(http.FileServer(http.Dir(cfg.StaticDir)))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	if cfg.TokenKey == "" {
		log.Fatal("TOKEN_KEY is not set")
	}

	db, err := auth.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	users := repo.NewPostgresUserDB(db)
	if err := users.EnsureSchema(ctx); err != nil {
		log.Fatal("schema: ", err)
	}

	mux := mux.NewRouter()
	HandleList(mux, cfg, users, metrics.NewProm(prometheus.DefaultRegisterer))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting server on %s (drift limit %v m)", cfg.Addr, cfg.DriftLimit)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
