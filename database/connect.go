package database

import (
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

var (
	connGroup singleflight.Group
	connMu    sync.RWMutex
	conn      *gorm.DB

	// swapped out by tests
	openConnection = openPostgres
)

// Connect returns the process-wide database connection, dialing on first
// use. Concurrent first callers collapse into a single dial attempt; a
// failed attempt is not cached, so the next call retries. There is no
// teardown, the connection lives for the rest of the process.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errs.NewEnvironmentVariableError("DATABASE_URL")
	}

	connMu.RLock()
	existing := conn
	connMu.RUnlock()
	if existing != nil {
		return existing, nil
	}

	v, err, _ := connGroup.Do("connect", func() (interface{}, error) {
		db, err := openConnection(dsn)
		if err != nil {
			return nil, err
		}
		connMu.Lock()
		conn = db
		connMu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, errs.NewDatabaseError("open", "connection", err)
	}
	return v.(*gorm.DB), nil
}

func openPostgres(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		return nil, err
	}

	// Verify the connection actually works before caching it
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, err
	}

	return db, nil
}

// resetConnection drops the cached connection. Only used by tests.
func resetConnection() {
	connMu.Lock()
	conn = nil
	connMu.Unlock()
}
