package services

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jobhive/jobhive/internal/models"
	"gorm.io/gorm"
)

func TestOrderClause(t *testing.T) {
	cases := []struct {
		sort string
		want string
	}{
		{"", "jobs.created_at DESC"},
		{"-created_at", "jobs.created_at DESC"},
		{"createdAt", "jobs.created_at ASC"},
		{"-createdAt", "jobs.created_at DESC"},
		{"title", "jobs.title ASC"},
		{"-title", "jobs.title DESC"},
		{"location", "jobs.location ASC"},
		// Unknown fields fall back instead of erroring
		{"salary'; DROP TABLE jobs;--", "jobs.created_at DESC"},
		{"bogus", "jobs.created_at DESC"},
		{"-bogus", "jobs.created_at DESC"},
	}
	for _, tc := range cases {
		if got := OrderClause(tc.sort); got != tc.want {
			t.Errorf("OrderClause(%q) = %q, want %q", tc.sort, got, tc.want)
		}
	}
}

func TestNormalizeAll(t *testing.T) {
	got := normalizeAll([]string{"Full-Time", " CONTRACT ", ""}, false)
	if !reflect.DeepEqual(got, []string{"full-time", "contract"}) {
		t.Errorf("job types: %v", got)
	}

	got = normalizeAll([]string{"Entry Level", "Senior", "Mid Level"}, true)
	if !reflect.DeepEqual(got, []string{"entry", "senior", "mid"}) {
		t.Errorf("experience levels: %v", got)
	}
}

// buildSQL renders the filter into SQL without touching the store.
func buildSQL(t *testing.T, f JobFilters) string {
	t.Helper()
	db := testDB(t)
	var jobs []models.Job
	tx := f.Apply(db.Session(&gorm.Session{DryRun: true}).Model(&models.Job{})).Find(&jobs)
	if tx.Error != nil {
		t.Fatalf("dry run: %v", tx.Error)
	}
	return tx.Statement.SQL.String()
}

func TestSalaryBoundsQueryShape(t *testing.T) {
	min, max := 100000.0, 150000.0

	sql := buildSQL(t, JobFilters{MinSalary: &min, MaxSalary: &max})
	if !strings.Contains(sql, "salary_range->>'max'") {
		t.Errorf("min bound not compared against stored max: %s", sql)
	}
	if !strings.Contains(sql, "salary_range->>'min'") {
		t.Errorf("max bound not compared against stored min: %s", sql)
	}

	// One bound applies only that bound
	sql = buildSQL(t, JobFilters{MinSalary: &min})
	if strings.Contains(sql, "salary_range->>'min'") {
		t.Errorf("lone min bound also constrained stored min: %s", sql)
	}

	sql = buildSQL(t, JobFilters{MaxSalary: &max})
	if strings.Contains(sql, "salary_range->>'max'") {
		t.Errorf("lone max bound also constrained stored max: %s", sql)
	}
}

func TestEmptyFilterAddsNoConditions(t *testing.T) {
	sql := buildSQL(t, JobFilters{})
	if strings.Contains(sql, "LIKE") || strings.Contains(sql, "salary_range") {
		t.Errorf("empty filter set produced conditions: %s", sql)
	}
}
