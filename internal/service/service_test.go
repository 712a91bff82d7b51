package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/wingops/wingscore/internal/auth"
	"github.com/wingops/wingscore/internal/config"
	"github.com/wingops/wingscore/internal/model"
	"github.com/wingops/wingscore/internal/repository"
	"github.com/wingops/wingscore/pkg/token"
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
		&model.Report{},
		&model.AccountAction{},
		&model.Wing{},
		&model.RosterEntry{},
		&model.SeedMarker{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

type fixture struct {
	db *gorm.DB

	users     repository.UserRepository
	scores    repository.ScoreRepository
	exercises repository.ExerciseRepository
	reports   repository.ReportRepository
	roster    repository.RosterRepository

	hasher *auth.Hasher
	codec  token.Codec

	audit     AuditService
	adminAuth AdminAuthService
	account   AccountService
	admin     AdminService
	conflict  ConflictService
	score     ScoreService
	exercise  ExerciseService
	report    ReportService
	rosterSvc RosterService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)

	hasher, err := auth.NewHasher("test-password-secret")
	if err != nil {
		t.Fatalf("failed to build hasher: %v", err)
	}
	codec, err := token.NewCodec("test-password-secret", "")
	if err != nil {
		t.Fatalf("failed to build codec: %v", err)
	}

	f := &fixture{
		db:        db,
		users:     repository.NewUserRepository(db),
		scores:    repository.NewScoreRepository(db),
		exercises: repository.NewExerciseRepository(db),
		reports:   repository.NewReportRepository(db),
		roster:    repository.NewRosterRepository(db),
		hasher:    hasher,
		codec:     codec,
	}

	f.audit = NewAuditService(repository.NewAuditRepository(db))
	f.adminAuth = NewAdminAuthService(testAdminSecrets())
	f.account = NewAccountService(f.users, f.roster, hasher, codec, f.audit,
		token.TTLSession, token.TTLRememberMe)
	f.admin = NewAdminService(f.users, f.scores, f.roster, f.adminAuth, hasher, f.audit)
	f.conflict = NewConflictService(db, f.users, f.scores, f.adminAuth, f.audit)
	f.score = NewScoreService(f.scores, f.exercises)
	f.exercise = NewExerciseService(f.exercises)
	f.report = NewReportService(f.reports, f.users, f.roster, hasher, f.audit)
	f.rosterSvc = NewRosterService(f.roster, f.users)

	return f
}

func (f *fixture) seedUser(t *testing.T, name, wing string, password *string) *model.User {
	t.Helper()

	w := wing
	user := &model.User{Name: name, Wing: &w}
	if password != nil {
		hashed := f.hasher.Hash(*password)
		user.PasswordHash = &hashed
	}
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}
	if err := f.roster.Upsert(context.Background(), name, wing); err != nil {
		t.Fatalf("failed to seed roster entry for %s: %v", name, err)
	}

	return user
}

func (f *fixture) seedExercise(t *testing.T, name string) *model.Exercise {
	t.Helper()

	exercise := &model.Exercise{Name: name, Type: model.ExerciseTypeRep}
	if err := f.exercises.Create(context.Background(), exercise); err != nil {
		t.Fatalf("failed to seed exercise %s: %v", name, err)
	}

	return exercise
}

func testAdminSecrets() config.AdminSecrets {
	return config.AdminSecrets{
		Global:       "ocs-secret",
		LegacyGlobal: "legacy-secret",
		GenericWing:  "wing-generic",
		PerWing: map[string]string{
			"ALPHA WING": "alpha-secret",
			"BETA WING":  "beta-secret",
		},
	}
}

func strPtr(s string) *string { return &s }
