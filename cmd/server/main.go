package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/joho/godotenv"
	"github.com/mmuslimabdulj/likechat/internal/config"
	httpHandler "github.com/mmuslimabdulj/likechat/internal/delivery/http"
	"github.com/mmuslimabdulj/likechat/internal/delivery/ws"
	"github.com/mmuslimabdulj/likechat/internal/middleware"
	"github.com/mmuslimabdulj/likechat/internal/store"
	"github.com/mmuslimabdulj/likechat/internal/usecase"
)

func main() {
	// Load .env file (ignore error if not exists, e.g. in production)
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()

	if cfg.IsSilent() {
		log.SetOutput(io.Discard)
	}

	// Persistence
	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	chat, err := usecase.NewChat(usecase.Options{
		MaxLogSize:        cfg.MaxLogSize,
		RecentMessages:    cfg.RecentMessages,
		PersistedMessages: cfg.PersistedMessages,
	})
	if err != nil {
		log.Fatalf("Failed to create chat: %v", err)
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	snapshot := store.LoadOrEmpty(loadCtx, st)
	cancelLoad()
	chat.Restore(snapshot)
	log.Printf("[store] Loaded %d messages, %d likes, %d private rooms",
		len(snapshot.Messages), len(snapshot.Likes), len(snapshot.PrivateChats))

	persister := store.NewPersister(st, cfg.SaveRate)
	persistCtx, stopPersister := context.WithCancel(context.Background())
	go persister.Run(persistCtx)

	// Event loop
	hub := ws.NewHub(chat, persister)
	hub.SetSaveInterval(cfg.SaveInterval)
	hub.SetMaxMessageSize(int64(cfg.MaxMessageSize))
	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	admin, err := usecase.NewAdminAuth(cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		log.Fatalf("Invalid admin configuration: %v", err)
	}
	if !admin.Enabled() {
		log.Println("No admin password configured, message deletion is disabled")
	}

	// Routes
	handler := httpHandler.NewHandler(hub, admin, cfg)
	router := handler.Router()
	router.Use(middleware.SecurityHeaders)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("likechat running at http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Println("Shutting down server...")
				return server.Shutdown(ctx)
			},
			"chat": func(ctx context.Context) error {
				stopHub()
				final := hub.Wait()

				stopPersister()
				<-persister.Done()

				if err := persister.Flush(ctx, final); err != nil {
					log.Printf("[store] Final save failed: %v", err)
				} else {
					log.Printf("[store] Saved %d messages on shutdown (%d writes total)", len(final.Messages), persister.Saves())
				}
				return st.Close()
			},
		},
	)

	exitCode := <-wait
	log.Printf("Server exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// openStore builds the configured snapshot store
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		log.Printf("[store] Using SQLite at %s", cfg.SQLitePath)
		return store.NewSQLiteStore(cfg.SQLitePath)
	default:
		fs := store.NewFileStore(cfg.DataFile)
		log.Printf("[store] Using JSON file at %s", fs.Path())
		return fs, nil
	}
}
