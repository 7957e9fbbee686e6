package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pbihub/adapters/store"
	"pbihub/internal/config"
	"pbihub/internal/container"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, appConfig.Database.Driver, appConfig.Database.URL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.InitWithDatabase(db); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	if err := appContainer.InitContent(); err != nil {
		log.Fatalf("Failed to load learning content: %v", err)
	}
	handler, err := appContainer.Handler()
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	servers := []*http.Server{{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	// pprof registers on the default mux
	if appConfig.Profiling.Enabled {
		servers = append(servers, &http.Server{
			Addr:              ":" + appConfig.Profiling.Port,
			Handler:           http.DefaultServeMux,
			ReadHeaderTimeout: 10 * time.Second,
		})
		log.Printf("Performance profiling server starting on :%s", appConfig.Profiling.Port)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			log.Printf("Listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Shutdown of %s failed: %v", srv.Addr, err)
			}
		}
		return nil
	})

	log.Printf("Excel + Power BI Learning Hub on http://localhost:%s", appConfig.Server.Port)
	if err := g.Wait(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
