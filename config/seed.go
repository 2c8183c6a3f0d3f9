package config

import (
	_ "embed"
	"fmt"
	"strings"

	"nutrakids/models"

	"github.com/BurntSushi/toml"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed foods_seed.toml
var defaultSeed []byte

type SeedFile struct {
	Achievements []SeedAchievement `toml:"achievement"`
	Foods        []SeedFood        `toml:"food"`
}

type SeedAchievement struct {
	Code        string `toml:"code"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Points      int    `toml:"points"`
	Icon        string `toml:"icon"`
}

type SeedFood struct {
	Name       string   `toml:"name"`
	Emoji      string   `toml:"emoji"`
	Category   string   `toml:"category"`
	Alternates []string `toml:"alternates"`
}

// LoadSeed decodes a seed file; an empty path means the embedded default.
func LoadSeed(path string) (*SeedFile, error) {
	var sf SeedFile
	if path == "" {
		if _, err := toml.Decode(string(defaultSeed), &sf); err != nil {
			return nil, fmt.Errorf("decode embedded seed: %w", err)
		}
		return &sf, nil
	}
	if _, err := toml.DecodeFile(path, &sf); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return &sf, nil
}

// Seed inserts the seed rows that are not present yet and reports how many
// foods were added. Existing rows are never modified.
func Seed(db *gorm.DB, sf *SeedFile) (int64, error) {
	for _, a := range sf.Achievements {
		row := models.Achievement{
			Code:          a.Code,
			Name:          a.Name,
			Description:   a.Description,
			PointsAwarded: a.Points,
			IconURL:       a.Icon,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			return 0, fmt.Errorf("seed achievement %s: %w", a.Code, err)
		}
	}

	var added int64
	for _, f := range sf.Foods {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			continue
		}
		row := models.FoodEntry{
			Name:           name,
			NameKey:        models.FoodNameKey(name),
			Emoji:          f.Emoji,
			Category:       f.Category,
			AlternateNames: models.JoinAlternates(f.Alternates),
		}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name_key"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return added, fmt.Errorf("seed food %s: %w", name, res.Error)
		}
		added += res.RowsAffected
	}
	return added, nil
}
