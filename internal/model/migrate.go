package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей каталога.
// Порядок важен: родительские таблицы раньше дочерних.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Service{},
		&Provider{},
		&ProviderPhoto{},
		&Profile{},
		&Event{},
	)
}
