package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/draftforge/draftforge/src/ai/providers"
	"github.com/draftforge/draftforge/src/api/config"
	"github.com/draftforge/draftforge/src/api/data"
	"github.com/draftforge/draftforge/src/api/storage"
	"github.com/draftforge/draftforge/src/api/types"
	"github.com/draftforge/draftforge/src/api/webserver"
	"github.com/draftforge/draftforge/src/generator"
	"github.com/draftforge/draftforge/src/social"
	"gorm.io/gorm"
)

var allModels = []interface{}{
	&types.User{}, &types.APIKey{}, &types.ContentItem{},
}

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)

	rdb := data.MustRedis(cfg.RedisURL)
	sessions := data.NewSessions(rdb)
	store := storage.New(db)

	gen := generator.New(store.APIKeys, store.Content, cfg.GeminiAPIKey,
		generator.WithEventFunc(func(ctx context.Context, item *types.ContentItem) {
			err := data.PublishContentEvent(ctx, rdb, map[string]interface{}{
				"id":      item.ID,
				"user_id": item.UserID,
				"type":    item.Type,
				"model":   item.Model,
				"time":    item.CreatedAt.Unix(),
			})
			if err != nil {
				log.Printf("content event: %v", err)
			}
		}),
	)

	pub, err := social.New(cfg.DiscordBotToken, cfg.DiscordChannelID, cfg.SocialWebhooks)
	if err != nil {
		log.Fatalf("social: %v", err)
	}

	router := webserver.New(cfg, store, sessions, rdb, gen, pub)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("DraftForge API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
