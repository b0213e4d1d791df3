package database

import (
	"github.com/aura-assistant/backend/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitDB(dbType, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch dbType {
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		// pure-Go sqlite driver, no cgo
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.Prompt{},
		&model.Instruction{},
		&model.Suggestion{},
		&model.Chat{},
		&model.Message{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
