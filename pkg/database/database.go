package database

import (
	"fmt"

	"shorturl-api/internal/config"
	"shorturl-api/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitMySQL 建立 MySQL 连接并迁移表结构
// cfg.DSN 非空时直接使用，否则由逐项字段拼接
func InitMySQL(cfg *config.DB) (*gorm.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	}

	// TranslateError 让唯一键冲突以 gorm.ErrDuplicatedKey 暴露
	connection, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %v", err)
	}

	if err := migrate(connection); err != nil {
		return nil, err
	}
	return connection, nil
}

// InitSQLite 建立 SQLite 连接，测试模式下替代 MySQL
func InitSQLite(path string) (*gorm.DB, error) {
	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %v", err)
	}

	if err := migrate(connection); err != nil {
		return nil, err
	}
	return connection, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.ShortURL{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %v", err)
	}
	return nil
}
