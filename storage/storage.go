package storage

import (
	"counting-app/config"
	"counting-app/models"
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists state snapshots as key/JSON rows. It implements
// inventory.Persister.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Load(key string) ([]byte, bool, error) {
	var rec models.StateRecord
	// Struct condition so gorm quotes the column; "key" is reserved
	// in MySQL and SQL Server.
	if err := s.db.Where(&models.StateRecord{Key: key}).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(rec.Value), true, nil
}

func (s *Store) Save(key string, value []byte) error {
	rec := models.StateRecord{Key: key, Value: string(value)}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

func (s *Store) Remove(key string) error {
	return s.db.Where(&models.StateRecord{Key: key}).Delete(&models.StateRecord{}).Error
}

// Open connects to the configured database and migrates the snapshot
// table.
func Open() (*gorm.DB, error) {
	_, dialector := getDSNAndDialector(config.DBName)
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.StateRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}

func getDSNAndDialector(dbName string) (string, gorm.Dialector) {
	switch config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, dbName, config.DBPort)
		return dsn, postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return dsn, mysql.Open(dsn)
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return dsn, sqlserver.Open(dsn)
	default:
		log.Fatalf("Unsupported DB_DRIVER: %s", config.DBDriver)
		return "", nil
	}
}
