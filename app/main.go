package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	pgRepo "github.com/plateshare/feedsync/internal/repository/postgres"
	"github.com/plateshare/feedsync/internal/repository/postgres/model"
	"github.com/plateshare/feedsync/internal/usecase/feed"
	"github.com/plateshare/feedsync/internal/usecase/profile"
)

const (
	defaultTimeout     = 30
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, relying on environment")
	}
}

// Dev harness: connects to the store, runs one feed refresh plus a
// profile load for the configured user and logs the projections. The
// sync core itself is a library; there is no server here.
func main() {
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	var (
		db  *gorm.DB
		err error
	)

	for i := range dbMaxRetry {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			err = sqlDB.Ping()
			if err == nil {
				break
			}
			log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	if err := db.AutoMigrate(&model.User{}, &model.Recipe{}, &model.Like{}); err != nil {
		log.Fatal("failed to migrate schema:", err)
	}

	sessionUser, err := uuid.Parse(os.Getenv("SESSION_USER_ID"))
	if err != nil {
		log.Fatal("SESSION_USER_ID must be a valid UUID:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timeout := defaultTimeout * time.Second
	recipeRepo := pgRepo.NewRecipeRepository(db)

	feedSvc := feed.NewService(recipeRepo, sessionUser)
	unsubscribe := feedSvc.Subscribe(func(snap feed.Snapshot) {
		logrus.Infof("feed %s: %d recipes, %d liked", snap.Status, len(snap.Recipes), len(snap.LikedIDs))
	})
	defer unsubscribe()

	refreshCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := feedSvc.Refresh(refreshCtx); err != nil {
		logrus.Errorf("feed refresh: %v", err)
	}
	for _, r := range feedSvc.Snapshot().Recipes {
		author := "unknown"
		if r.Author != nil {
			author = r.Author.Name
		}
		logrus.Infof("recipe %d %q by %s, %d likes", r.ID, r.Title, author, r.LikeCount)
	}

	profileSvc := profile.NewService(recipeRepo)
	loadCtx, cancelLoad := context.WithTimeout(ctx, timeout)
	defer cancelLoad()
	if err := profileSvc.Load(loadCtx, sessionUser); err != nil {
		logrus.Errorf("profile load: %v", err)
	}
	snap := profileSvc.Snapshot()
	logrus.Infof("profile: %d authored, %d liked", len(snap.Authored), len(snap.Liked))
}
