package service_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

func TestGetProfileAbsentReturnsNil(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	p, err := service.GetProfile(db)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil profile, got %+v", p)
	}
	target, err := service.CurrentTarget(db)
	if err != nil || target != nil {
		t.Fatalf("expected nil target without error, got %+v, %v", target, err)
	}
	if _, err := service.RequireProfile(db); !errors.Is(err, service.ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestSaveProfileNormalizesAndOverwrites(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	in := testProfile()
	in.Name = "  Asha "
	in.Gender = "MALE"
	in.Goal = " Lose"
	if err := service.SaveProfile(db, in); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	got, err := service.GetProfile(db)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.Name != "Asha" || got.Gender != model.GenderMale || got.Goal != model.GoalLose {
		t.Fatalf("unexpected normalized profile: %+v", got)
	}

	in = testProfile()
	in.Name = "Ravi"
	if err := service.SaveProfile(db, in); err != nil {
		t.Fatalf("overwrite profile: %v", err)
	}
	var rows int
	if err := db.QueryRow(`SELECT COUNT(1) FROM profile`).Scan(&rows); err != nil {
		t.Fatalf("count profile rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected one profile row, got %d", rows)
	}

	target, err := service.CurrentTarget(db)
	if err != nil {
		t.Fatalf("current target: %v", err)
	}
	if target.DailyCalorieGoal != 2660 || target.Category != model.CategoryOverweight {
		t.Fatalf("unexpected target: %+v", target)
	}
}

func TestValidateProfileMessages(t *testing.T) {
	t.Parallel()
	cases := []struct {
		mutate func(*model.UserProfile)
		want   string
	}{
		{func(p *model.UserProfile) { p.Name = " " }, "name is required"},
		{func(p *model.UserProfile) { p.Age = 0 }, "age must be > 0"},
		{func(p *model.UserProfile) { p.HeightCm = -1 }, "height_cm must be > 0"},
		{func(p *model.UserProfile) { p.WeightKg = 0 }, "weight_kg must be > 0"},
		{func(p *model.UserProfile) { p.Age = 200 }, "age must be <= 150"},
		{func(p *model.UserProfile) { p.HeightCm = math.Inf(1) }, "height_cm must be <= 300"},
		{func(p *model.UserProfile) { p.WeightKg = math.Inf(1) }, "weight_kg must be <= 700"},
		{func(p *model.UserProfile) { p.WeightKg = math.NaN() }, "weight_kg must be > 0"},
		{func(p *model.UserProfile) { p.Gender = "x" }, "gender must be one of: male, female, other"},
		{func(p *model.UserProfile) { p.ActivityLevel = "extreme" }, "activity_level must be one of"},
		{func(p *model.UserProfile) { p.Goal = "bulk" }, "goal must be one of"},
		{func(p *model.UserProfile) { p.DietaryPreference = "keto" }, "dietary_preference must be one of"},
	}
	for _, c := range cases {
		p := testProfile()
		c.mutate(&p)
		err := service.ValidateProfile(p)
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Fatalf("expected error containing %q, got %v", c.want, err)
		}
	}
	if err := service.ValidateProfile(testProfile()); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
}

func TestGetProfileWrapsQueryError(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New err: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT name, age, height_cm`).WillReturnError(errors.New("database is locked"))

	_, err = service.GetProfile(db)
	if err == nil || err.Error() != "get profile: database is locked" {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
