package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wingops/wingscore/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Exercise{},
		&model.Score{},
		&model.Wing{},
		&model.RosterEntry{},
		&model.SeedMarker{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	if err := Seed(db, ""); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if err := Seed(db, ""); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	var count int64
	if err := db.Model(&model.Exercise{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != int64(len(defaultExercises)) {
		t.Fatalf("exercise count = %d, want %d", count, len(defaultExercises))
	}

	var markers int64
	if err := db.Model(&model.SeedMarker{}).Count(&markers).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if markers != 1 {
		t.Fatalf("marker count = %d, want 1", markers)
	}
}

func TestSeedImportsRosterFiles(t *testing.T) {
	db := newTestDB(t)

	dir := t.TempDir()
	csv := "name\nsmith\njones\n"
	if err := os.WriteFile(filepath.Join(dir, "alpha wing.csv"), []byte(csv), 0o644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	if err := Seed(db, dir); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	var wing model.Wing
	if err := db.Where("name = ?", "ALPHA WING").First(&wing).Error; err != nil {
		t.Fatalf("wing not seeded: %v", err)
	}

	var users []model.User
	if err := db.Where("wing = ?", "ALPHA WING").Find(&users).Error; err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("user count = %d, want 2", len(users))
	}
	for _, u := range users {
		if u.HasPassword() || u.HasLoggedIn {
			t.Fatalf("seeded user should be unclaimed: %+v", u)
		}
		if u.Name != strings.ToUpper(u.Name) {
			t.Fatalf("name not normalized: %q", u.Name)
		}
	}

	var entries int64
	if err := db.Model(&model.RosterEntry{}).Where("wing = ?", "ALPHA WING").Count(&entries).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if entries != 2 {
		t.Fatalf("roster entries = %d, want 2", entries)
	}

	// Missing seed directory is not an error.
	db2 := newTestDB(t)
	if err := Seed(db2, filepath.Join(dir, "does-not-exist")); err != nil {
		t.Fatalf("seed with absent dir failed: %v", err)
	}
}
