package models

import "gorm.io/gorm"

// Migrate runs the schema migrations for all models. The join tables are
// registered explicitly so the repositories can create and delete membership
// rows directly.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Cart{}, "Items", &CartItem{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&Order{}, "Items", &OrderItem{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&User{},
		&Item{},
		&Cart{},
		&Order{},
	)
}
