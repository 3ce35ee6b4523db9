package services

import (
	"strings"

	"gorm.io/gorm"
)

// JobFilters is the composable filter set behind GET /jobs. Every field
// is optional; zero values apply no constraint. Keeping this separate
// from the handler lets the query construction be tested in isolation.
type JobFilters struct {
	Search     string
	Location   string
	JobTypes   []string
	Experience []string
	IsRemote   *bool
	MinSalary  *float64
	MaxSalary  *float64
}

// sortFields whitelists sortable columns, keyed by the API-facing name.
var sortFields = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"updated_at": "updated_at",
	"updatedAt":  "updated_at",
	"title":      "title",
	"location":   "location",
}

const defaultOrder = "jobs.created_at DESC"

// Apply adds the filter conditions to q. Only rows already scoped to
// published jobs should be passed in; Apply does not add the
// visibility predicate itself.
func (f JobFilters) Apply(q *gorm.DB) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(jobs.title) LIKE ? OR LOWER(jobs.description) LIKE ?", pattern, pattern)
	}
	if f.Location != "" {
		q = q.Where("LOWER(jobs.location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if types := normalizeAll(f.JobTypes, false); len(types) > 0 {
		q = q.Where("jobs.job_type IN ?", types)
	}
	if levels := normalizeAll(f.Experience, true); len(levels) > 0 {
		q = q.Where("jobs.experience_level IN ?", levels)
	}
	if f.IsRemote != nil {
		q = q.Where("jobs.is_remote = ?", *f.IsRemote)
	}
	// Salary bounds match when the stored range overlaps the requested
	// interval: minSalary checks the range's max, maxSalary its min.
	if f.MinSalary != nil {
		q = q.Where("(jobs.salary_range->>'max')::numeric >= ?", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		q = q.Where("(jobs.salary_range->>'min')::numeric <= ?", *f.MaxSalary)
	}
	return q
}

// OrderClause resolves a sort expression like "title" or "-createdAt"
// to a SQL ORDER BY. Unknown fields fall back to newest first.
func OrderClause(sort string) string {
	if sort == "" {
		return defaultOrder
	}
	field, desc := sort, false
	if strings.HasPrefix(sort, "-") {
		field, desc = sort[1:], true
	}
	column, ok := sortFields[field]
	if !ok {
		return defaultOrder
	}
	if desc {
		return "jobs." + column + " DESC"
	}
	return "jobs." + column + " ASC"
}

// normalizeAll lowercases values; firstWord additionally truncates
// compound labels ("Entry Level" -> "entry") the way the experience
// filter expects.
func normalizeAll(values []string, firstWord bool) []string {
	var out []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if firstWord {
			v = strings.Fields(v)[0]
		}
		out = append(out, v)
	}
	return out
}
