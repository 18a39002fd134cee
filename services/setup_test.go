package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/survey-manager/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "survey.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.User{},
		&models.Survey{},
		&models.Question{},
		&models.Alternative{},
		&models.SurveyResponse{},
		&models.Answer{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Email: email, Password: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return u
}

// fixture: survey 2 câu hỏi (Q1: a1,a2; Q2: b1,b2), đã phát hành, đóng vào năm 2999.
type fixture struct {
	ctx       context.Context
	db        *gorm.DB
	catalog   *CatalogService
	responses *ResponseService
	results   *ResultsService

	owner      models.User
	respondent models.User

	survey         *models.Survey
	q1, q2         *models.Question
	a1, a2, b1, b2 *models.Alternative
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	f := &fixture{
		ctx:       context.Background(),
		db:        db,
		catalog:   NewCatalogService(db, time.UTC),
		responses: NewResponseService(db),
		results:   NewResultsService(db),
	}
	f.owner = createUser(t, db, "owner@example.com")
	f.respondent = createUser(t, db, "respondent@example.com")

	var err error
	if f.survey, err = f.catalog.CreateSurvey(f.ctx, f.owner.ID, "Khảo sát", "mô tả"); err != nil {
		t.Fatalf("CreateSurvey: %v", err)
	}
	f.q1 = f.mustQuestion(t, "Q1")
	f.q2 = f.mustQuestion(t, "Q2")
	f.a1 = f.mustAlternative(t, f.q1, "a1")
	f.a2 = f.mustAlternative(t, f.q1, "a2")
	f.b1 = f.mustAlternative(t, f.q2, "b1")
	f.b2 = f.mustAlternative(t, f.q2, "b2")

	f.release(t, "1/1/2999")
	return f
}

func (f *fixture) mustQuestion(t *testing.T, text string) *models.Question {
	t.Helper()
	q, err := f.catalog.CreateQuestion(f.ctx, f.owner.ID, f.survey.ID, text)
	if err != nil {
		t.Fatalf("CreateQuestion(%s): %v", text, err)
	}
	return q
}

func (f *fixture) mustAlternative(t *testing.T, q *models.Question, value string) *models.Alternative {
	t.Helper()
	a, err := f.catalog.CreateAlternative(f.ctx, f.owner.ID, f.survey.ID, q.ID, value)
	if err != nil {
		t.Fatalf("CreateAlternative(%s): %v", value, err)
	}
	return a
}

func (f *fixture) release(t *testing.T, closing string) {
	t.Helper()
	released := true
	patch := SurveyPatch{Released: &released}
	patch.ClosingDate.Set = true
	patch.ClosingDate.Value = &closing
	if _, err := f.catalog.UpdateSurvey(f.ctx, f.owner.ID, f.survey.ID, patch); err != nil {
		t.Fatalf("UpdateSurvey(release): %v", err)
	}
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func assertErrorIs(t *testing.T, err, want error) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want %v", want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("error = %v, want %v", err, want)
	}
}
