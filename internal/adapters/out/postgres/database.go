package postgres

import (
	"fmt"
	"time"

	"vendorbot/internal/adapters/out/postgres/menurepo"
	"vendorbot/internal/adapters/out/postgres/orderrepo"
	"vendorbot/internal/adapters/out/postgres/outboxrepo"

	// database/sql driver registered as "postgres", selected by DriverLibPQ.
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported database/sql drivers. DriverPgx is what gorm.io/driver/postgres uses by default.
const (
	DriverPgx   = "pgx"
	DriverLibPQ = "postgres"
)

type ConnectionConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Driver   string
}

func (c ConnectionConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

// Open connects with the configured driver and applies the schema.
func Open(cfg ConnectionConfig) (*gorm.DB, error) {
	dialector, err := newDialector(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func newDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", DriverPgx:
		return gormpostgres.Open(dsn), nil
	case DriverLibPQ:
		return gormpostgres.New(gormpostgres.Config{DriverName: DriverLibPQ, DSN: dsn}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate creates the tables and the order id sequence if they do not exist.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s", orderrepo.OrderIDSequence)).Error; err != nil {
		return fmt.Errorf("create order id sequence: %w", err)
	}

	if err := db.AutoMigrate(
		&menurepo.MenuItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&outboxrepo.NotificationDTO{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	return nil
}
