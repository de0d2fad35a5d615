package config

import (
	"log"
	"net"
	"os"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var (
	db *gorm.DB
)

func GetDB() *gorm.DB {
	return db
}

// BuildDSN renders the MySQL DSN for the configured database.
// A DB_HOST of the form "/cloudsql/<instance>" connects over a unix socket.
func BuildDSN(s *Settings) string {
	cfg := mysqldriver.NewConfig()
	cfg.User = s.DBUser
	cfg.Passwd = s.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(s.DBHost, s.DBPort)
	if strings.HasPrefix(s.DBHost, "/cloudsql/") {
		cfg.Net = "unix"
		cfg.Addr = s.DBHost
	}
	cfg.DBName = s.DBName
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN()
}

// ConnectDatabaseWithRetry connects and sets the global DB.
// Call this from main() AFTER the HTTP server is listening.
func ConnectDatabaseWithRetry(s *Settings) {
	dsn := BuildDSN(s)

	var attempt int
	for {
		attempt++
		conn, err := gorm.Open(mysql.Open(dsn), initConfig())
		if err == nil {
			if sqlDB, derr := conn.DB(); derr == nil && sqlDB != nil {
				if s.DBMaxOpenConns > 0 {
					sqlDB.SetMaxOpenConns(s.DBMaxOpenConns)
				}
				sqlDB.SetMaxIdleConns(s.DBMaxIdleConns)
				if s.DBConnMaxLifetimeSeconds > 0 {
					sqlDB.SetConnMaxLifetime(time.Duration(s.DBConnMaxLifetimeSeconds) * time.Second)
				}
				if s.DBConnMaxIdleTimeSeconds > 0 {
					sqlDB.SetConnMaxIdleTime(time.Duration(s.DBConnMaxIdleTimeSeconds) * time.Second)
				}
			}

			if pluginErr := conn.Use(otelgorm.NewPlugin()); pluginErr != nil {
				log.Printf("db connected but failed to install otelgorm plugin: %v", pluginErr)
			}
			db = conn
			log.Printf("connected to database (attempt=%d)", attempt)
			return
		}

		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		log.Printf("failed to connect database (attempt=%d): %v; retrying in %s", attempt, err, sleep)
		time.Sleep(sleep)
	}
}

func initConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         initLog(),
		NamingStrategy: initNamingStrategy(),
	}
}

func initLog() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			Colorful:      false,
			LogLevel:      logger.Error,
			SlowThreshold: time.Second,
		},
	)
}

func initNamingStrategy() *schema.NamingStrategy {
	return &schema.NamingStrategy{
		SingularTable: false,
		TablePrefix:   "",
	}
}
