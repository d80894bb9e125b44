// Package seeds loads the area type/status lookup tables from the embedded
// YAML file. Seeding is idempotent: existing keys are left untouched.
package seeds

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/CampAtlas/CA-Backend/internal/camps"
	"github.com/CampAtlas/CA-Backend/internal/db"
	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm/clause"
)

//go:embed data/area_lookups.yaml
var areaLookupsYAML []byte

type lookupFile struct {
	AreaTypes    []string `yaml:"area_types"`
	AreaStatuses []string `yaml:"area_statuses"`
}

// displayLabel turns a snake_case key into a human-readable label,
// e.g. "storage_unit" -> "Storage Unit".
func displayLabel(key string) string {
	return cases.Title(language.AmericanEnglish).String(strings.ReplaceAll(key, "_", " "))
}

func SeedAll() error {
	var file lookupFile
	if err := yaml.Unmarshal(areaLookupsYAML, &file); err != nil {
		return fmt.Errorf("parse area lookups: %w", err)
	}

	for _, key := range file.AreaTypes {
		t := camps.AreaType{Key: key, Label: displayLabel(key)}
		if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&t).Error; err != nil {
			return fmt.Errorf("seed area type %q: %w", key, err)
		}
	}

	for _, key := range file.AreaStatuses {
		s := camps.AreaStatus{Key: key, Label: displayLabel(key)}
		if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error; err != nil {
			return fmt.Errorf("seed area status %q: %w", key, err)
		}
	}

	return nil
}
