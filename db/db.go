// db/db.go
package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dev-mohitbeniwal/subexpiry/config"
	logger "github.com/dev-mohitbeniwal/subexpiry/logging"
)

var MySQL *gorm.DB

func InitMySQL() error {
	var err error
	dsn := config.GetString("database.url")
	logger.Info("Connecting to MySQL")
	MySQL, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Error),
	})
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	sqlDB, err := MySQL.DB()
	if err != nil {
		return fmt.Errorf("failed to get MySQL handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.GetInt("database.maxOpenConns"))
	sqlDB.SetMaxIdleConns(config.GetInt("database.maxIdleConns"))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	logger.Info("Successfully connected to MySQL")
	return nil
}

func CloseMySQL() {
	if MySQL == nil {
		return
	}
	sqlDB, err := MySQL.DB()
	if err != nil {
		logger.Error("Error getting MySQL handle", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing MySQL connection", zap.Error(err))
	} else {
		logger.Info("MySQL connection closed successfully")
	}
}
