// Package testkit boots a complete application on an in-memory SQLite
// database for handler-level tests. Redis is absent (the cache degrades to
// always-miss) and uploads land on a per-test temp disk.
package testkit

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/vitrine/app/controllers"
	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/app/repositories"
	"github.com/shashiranjanraj/vitrine/app/routes"
	"github.com/shashiranjanraj/vitrine/app/services"
	"github.com/shashiranjanraj/vitrine/config"
	"github.com/shashiranjanraj/vitrine/pkg/auth"
	"github.com/shashiranjanraj/vitrine/pkg/router"
	"github.com/shashiranjanraj/vitrine/pkg/storage"
)

const testBodyMax = 1 << 20

var dbSeq atomic.Uint64

// App is a fully wired application under test.
type App struct {
	DB      *gorm.DB
	Tokens  *auth.Manager
	Auth    *services.AuthService
	Catalog *services.CatalogService
	Orders  *services.OrderService
	Handler http.Handler
}

// NewApp builds the application on a fresh in-memory database with the
// schema migrated.
func NewApp(t *testing.T) *App {
	t.Helper()

	db := NewDB(t)
	tokens := auth.NewManager("testkit-secret", time.Hour)

	users := repositories.NewUserRepository(db)
	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)
	orders := repositories.NewOrderRepository(db)

	authSvc := services.NewAuthService(users, tokens)
	catalogSvc := services.NewCatalogService(categories, products, nil)
	orderSvc := services.NewOrderService(orders)

	disks, err := storage.NewManager(&config.Config{
		StorageDisk:      "local",
		StorageLocalRoot: t.TempDir(),
		StorageURL:       "http://localhost/storage",
	})
	require.NoError(t, err)

	r := router.New()
	routes.Register(r, routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc, testBodyMax),
		Category: controllers.NewCategoryController(catalogSvc, testBodyMax),
		Product:  controllers.NewProductController(catalogSvc, testBodyMax),
		Order:    controllers.NewOrderController(orderSvc, testBodyMax),
		Upload:   controllers.NewUploadController(disks, testBodyMax),
		Health:   controllers.NewHealthController(db),
	}, tokens, authSvc.Resolve)

	return &App{
		DB:      db,
		Tokens:  tokens,
		Auth:    authSvc,
		Catalog: catalogSvc,
		Orders:  orderSvc,
		Handler: r.Handler(),
	}
}

// NewDB opens a fresh in-memory SQLite database with the schema migrated.
// Each call gets its own database even within one process.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testkit_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}
