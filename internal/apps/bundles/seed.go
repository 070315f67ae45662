package bundles

import (
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// defaultCatalog is the launch price list. It only seeds an empty table;
// after that admins own the rows.
var defaultCatalog = []DataBundle{
	{Provider: "MTN", Name: "500MB/7 days", MB: 500, Price: 200},
	{Provider: "GLO", Name: "1GB/7 days", MB: 1024, Price: 300},
	{Provider: "AIRTEL", Name: "250MB/7 days", MB: 250, Price: 150},
	{Provider: "9MOBILE", Name: "750MB/7 days", MB: 750, Price: 250},
	{Provider: "MTN", Name: "Awoof Special", MB: 2048, Price: 500},
}

// SeedDefaults inserts the launch catalog when the table is empty.
func SeedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&DataBundle{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rows := make([]DataBundle, len(defaultCatalog))
	copy(rows, defaultCatalog)
	for i := range rows {
		rows[i].ID = uuid.New()
		rows[i].Active = true
	}

	if err := db.Create(&rows).Error; err != nil {
		return err
	}
	slog.Info("seeded bundle catalog", "bundles", len(rows))
	return nil
}
