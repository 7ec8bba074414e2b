package main

import (
	"context"
	"log"

	"github.com/CPU-commits/Intranet_BCourseStats/cache"
	"github.com/CPU-commits/Intranet_BCourseStats/db"
	"github.com/CPU-commits/Intranet_BCourseStats/models"
	controllers_query "github.com/CPU-commits/Intranet_BCourseStats/query/controllers"
	"github.com/CPU-commits/Intranet_BCourseStats/query/server"
	"github.com/CPU-commits/Intranet_BCourseStats/services"
	"github.com/CPU-commits/Intranet_BCourseStats/settings"
	"go.uber.org/zap"
)

const CACHE_PREFIX = "coursestats:"

func newLogger(prod bool) (*zap.Logger, error) {
	if prod {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func nopClose() error { return nil }

// newCache returns the store together with the func that releases it
func newCache(ctx context.Context, url string, logger *zap.Logger) (cache.Store, func() error) {
	if url == "" {
		return cache.NopStore{}, nopClose
	}
	store, err := cache.NewRedisStore(ctx, url, CACHE_PREFIX)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		return cache.NopStore{}, nopClose
	}
	return store, store.Close
}

// @title       Course Stats API
// @version     1.0
// @description Course search, historical instructors and enrollment statistics

// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       Authorization
// @description                BearerJWTToken in Authorization Header

// @accept  json
// @produce json
// @product application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @product application/pdf

// @schemes http https
func main() {
	settingsData := settings.GetSettings()
	if err := settingsData.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger, err := newLogger(settingsData.IsProd())
	if err != nil {
		log.Fatalf("Cannot init logger: %v", err)
	}
	defer logger.Sync()

	conn, err := db.NewConnection(db.Ctx, settingsData.MONGO_CONNECTION, settingsData.MONGO_DB)
	if err != nil {
		logger.Fatal("cannot connect to the document store", zap.Error(err))
	}
	defer conn.Disconnect(context.Background())

	// Models
	sectionModel := models.NewSectionModel(conn, settingsData.MONGO_SECTIONS_COLLECTION)
	subjectModel := models.NewSubjectModel(conn, settingsData.MONGO_SUBJECTS_COLLECTION)
	snapshotModel := models.NewSnapshotModel(conn, settingsData.MONGO_TIMESERIES_COLLECTION)
	dataModel := models.NewDataModel(conn, settingsData.MONGO_DATA_COLLECTION)
	if err := sectionModel.EnsureIndexes(db.Ctx); err != nil {
		logger.Warn("cannot create sections text index", zap.Error(err))
	}
	store, closeCache := newCache(db.Ctx, settingsData.REDIS_URL, logger)
	defer closeCache()
	// Services
	coursesService := services.NewCoursesService(sectionModel, subjectModel, store, logger)
	statsService := services.NewStatsService(sectionModel, snapshotModel.CollectionName, logger)
	dataService := services.NewDataService(dataModel, logger)

	ctrls := server.Controllers{
		Courses: controllers_query.NewCoursesController(coursesService),
		Stats:   controllers_query.NewStatsController(statsService, dataService),
	}
	config := server.Config{
		Port:         settingsData.PORT,
		ClientURL:    settingsData.CLIENT_URL,
		JWTSecretKey: settingsData.JWT_SECRET_KEY,
		RateLimit:    settingsData.RATE_LIMIT,
		Prod:         settingsData.IsProd(),
	}
	if err := server.Init(logger, config, ctrls); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
