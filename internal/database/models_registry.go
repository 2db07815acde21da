package database

import "jobboard/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM
// models, parents before children.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Job{},
		&models.Application{},
		&models.CaseStudy{},
		&models.Review{},
	}
}
