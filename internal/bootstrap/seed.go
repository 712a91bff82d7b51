package bootstrap

import (
	"encoding/csv"
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"github.com/wingops/wingscore/internal/model"
	"gorm.io/gorm"
)

const seedKey = "initial_seed"

var defaultExercises = []model.Exercise{
	{Name: "PUSHUPS", Type: model.ExerciseTypeRep},
	{Name: "SITUPS", Type: model.ExerciseTypeRep},
	{Name: "SQUATS", Type: model.ExerciseTypeRep},
}

// Seed performs first-run initialization: default exercises, plus wings and
// roster entries from CSV seed files when present. It runs explicitly at
// startup and is guarded by a marker row, so restarts and concurrent first
// requests can never double-seed.
func Seed(db *gorm.DB, seedDir string) error {
	var marker model.SeedMarker
	err := db.Where("key = ?", seedKey).First(&marker).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, exercise := range defaultExercises {
			ex := exercise
			var count int64
			if err := tx.Model(&model.Exercise{}).
				Where("name = ?", ex.Name).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				if err := tx.Create(&ex).Error; err != nil {
					return err
				}
			}
		}

		if seedDir != "" {
			if err := seedRosterFiles(tx, seedDir); err != nil {
				return err
			}
		}

		return tx.Create(&model.SeedMarker{Key: seedKey}).Error
	})
}

// seedRosterFiles imports every <wing name>.csv found in dir. Each file is a
// single name column, optional header row.
func seedRosterFiles(tx *gorm.DB, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}

		wing := strings.ToUpper(strings.TrimSuffix(entry.Name(), ".csv"))
		if err := tx.Where(model.Wing{Name: wing}).
			FirstOrCreate(&model.Wing{Name: wing}).Error; err != nil {
			return err
		}

		if err := seedWingRoster(tx, dir+"/"+entry.Name(), wing); err != nil {
			return err
		}
		log.Printf("seeded roster for wing %s", wing)
	}

	return nil
}

func seedWingRoster(tx *gorm.DB, path, wing string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			log.Printf("skipping %s line %d: %v", path, line, err)
			continue
		}
		if len(record) == 0 {
			continue
		}

		name := strings.ToUpper(strings.TrimSpace(record[0]))
		if name == "" || (line == 1 && strings.EqualFold(name, "name")) {
			continue
		}

		w := wing
		var count int64
		if err := tx.Model(&model.User{}).
			Where("name = ? AND wing = ?", name, wing).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := tx.Create(&model.User{Name: name, Wing: &w}).Error; err != nil {
				return err
			}
		}

		var rosterCount int64
		if err := tx.Model(&model.RosterEntry{}).
			Where("name = ? AND wing = ?", name, wing).
			Count(&rosterCount).Error; err != nil {
			return err
		}
		if rosterCount == 0 {
			if err := tx.Create(&model.RosterEntry{Name: name, Wing: wing}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
