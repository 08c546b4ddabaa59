package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/karan-lumetium/portfolio-website/docs"
	"github.com/karan-lumetium/portfolio-website/internal/config"
	"github.com/karan-lumetium/portfolio-website/internal/domain/blog"
	"github.com/karan-lumetium/portfolio-website/internal/domain/category"
	"github.com/karan-lumetium/portfolio-website/internal/domain/tag"
	"github.com/karan-lumetium/portfolio-website/internal/domain/user"
	api "github.com/karan-lumetium/portfolio-website/internal/http"
	"github.com/karan-lumetium/portfolio-website/internal/metrics"
	"github.com/karan-lumetium/portfolio-website/internal/platform/database"
	"github.com/karan-lumetium/portfolio-website/internal/platform/token"
	"github.com/karan-lumetium/portfolio-website/internal/repository/postgres"
	"github.com/karan-lumetium/portfolio-website/internal/worker"
)

// @title           Portfolio API
// @version         1.0
// @description     Personal portfolio/blog backend with JWT auth
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()
	metrics.Register()

	db, err := database.NewPostgres(cfg.DB_DSN)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	postRepo := postgres.NewPostRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	tagRepo := postgres.NewTagRepo(db)

	userSvc := user.NewService(userRepo)
	blogSvc := blog.NewService(postRepo)
	categorySvc := category.NewService(categoryRepo)
	tagSvc := tag.NewService(tagRepo)

	tokens := token.NewManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, "portfolio-website")

	viewCh := make(chan worker.PostView, 100)
	viewWorker := worker.NewViewCountWorker(viewCh, postRepo)

	router := api.NewRouter(userSvc, blogSvc, categorySvc, tagSvc, tokens, viewCh, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go viewWorker.Run(ctx)

	go func() {
		log.Printf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}

	log.Println("server stopped")
}
