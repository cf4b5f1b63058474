package database

import (
	"fmt"
	"log"

	"little_learners_backend/internal/catalog"
	"little_learners_backend/internal/config"
	"little_learners_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedCatalog(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Student{},
		&model.Course{},
		&model.Lesson{},
		&model.LessonSection{},
		&model.StudentProgress{},
	)
}

// SeedCatalog inserts the built-in courses on an empty database. Lessons the
// database already knows are left alone; the catalog resolver merges the
// built-in lists at read time regardless.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, entry := range catalog.All() {
		course := entry.Course
		course.Points = catalog.TotalPoints(entry.Lessons)
		if err := db.Create(&course).Error; err != nil {
			return err
		}
		for _, lesson := range entry.Lessons {
			if err := db.Create(&lesson).Error; err != nil {
				return err
			}
		}
	}

	log.Println("Seeded built-in course catalog")
	return nil
}
