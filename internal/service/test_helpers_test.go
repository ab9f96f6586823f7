package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/NextGenXplorer/NutriGuide/internal/db"
	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutriguide.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

// testProfile targets 2660 kcal/day (BMR 1716.25, moderate activity, maintain).
func testProfile() model.UserProfile {
	return model.UserProfile{
		Name:              "Asha",
		Age:               30,
		HeightCm:          175,
		WeightKg:          76.75,
		Gender:            model.GenderMale,
		ActivityLevel:     model.ActivityModerate,
		Goal:              model.GoalMaintain,
		DietaryPreference: model.DietVegetarian,
	}
}

func seedProfile(t *testing.T, sqldb *sql.DB) model.UserProfile {
	t.Helper()
	p := testProfile()
	if err := service.SaveProfile(sqldb, p); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	return p
}

// fixedRand always picks index 0.
type fixedRand struct{}

func (fixedRand) Intn(int) int { return 0 }
