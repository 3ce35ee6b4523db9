package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobhive/jobhive/internal/apperr"
	"github.com/jobhive/jobhive/internal/models"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database per test.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache database keeps every pooled connection on
	// the same in-memory store, while the unique name isolates tests.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Job{}, &models.Application{}, &models.SavedJob{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Name:         "Test " + role,
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

type jobOpts struct {
	status    string
	deadline  *time.Time
	salaryMin float64
	salaryMax float64
	isRemote  bool
	location  string
	title     string
}

func seedJob(t *testing.T, db *gorm.DB, employer *models.User, opts jobOpts) *models.Job {
	t.Helper()
	if opts.status == "" {
		opts.status = models.JobStatusPublished
	}
	if opts.location == "" {
		opts.location = "Berlin"
	}
	if opts.title == "" {
		opts.title = "Software Engineer"
	}
	job := &models.Job{
		EmployerID:          employer.ID,
		Title:               opts.title,
		Description:         "Build things",
		Location:            opts.location,
		JobType:             "full-time",
		Status:              opts.status,
		IsRemote:            opts.isRemote,
		ApplicationDeadline: opts.deadline,
	}
	if opts.salaryMin > 0 || opts.salaryMax > 0 {
		raw, _ := json.Marshal(models.SalaryRangeValue{
			Min:      &opts.salaryMin,
			Max:      &opts.salaryMax,
			Currency: "USD",
			Period:   "year",
		})
		job.SalaryRange = datatypes.JSON(raw)
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	status, _ := apperr.StatusOf(err)
	return status
}
