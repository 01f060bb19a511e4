package postgres

import (
	"context"
	"fmt"

	source "github.com/geocoder89/portfolio/internal/content"
	"github.com/geocoder89/portfolio/internal/domain/content"
	"github.com/jackc/pgx/v5"
)

// ImportSet is everything cmd/populate copies into the store.
type ImportSet struct {
	Education      []content.Education
	Experiences    []content.Experience
	Certifications []content.Certification
	Projects       []content.Project
	Achievements   []content.Achievement
	Skills         content.SkillGroups
}

// ImportSetFromDocument takes every importable section of the fallback document.
// The profile block has no table and is left out.
func ImportSetFromDocument(doc source.Document) ImportSet {
	return ImportSet{
		Education:      doc.Education,
		Experiences:    doc.ProfessionalExperience,
		Certifications: doc.Certifications,
		Projects:       doc.Projects,
		Achievements:   doc.Achievements,
		Skills:         doc.TechnicalSkills,
	}
}

func (s ImportStats) Total() int64 {
	return s.Education + s.Experiences + s.Certifications + s.Projects + s.Achievements + s.Skills
}

type ImportStats struct {
	Education      int64
	Experiences    int64
	Certifications int64
	Projects       int64
	Achievements   int64
	Skills         int64
}

// Import copies set into the content tables in one transaction; any failure rolls
// everything back. With replace the content tables are emptied first.
func (r *ContentRepo) Import(ctx context.Context, set ImportSet, replace bool) (stats ImportStats, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if replace {
		_, err = tx.Exec(ctx, `TRUNCATE education, experience, certification, project, achievement, skill RESTART IDENTITY`)
		if err != nil {
			err = fmt.Errorf("truncate content: %w", err)
			return
		}
	}

	copyRows := func(table string, cols []string, rows [][]any) (int64, error) {
		if len(rows) == 0 {
			return 0, nil
		}

		var n int64

		err := r.prom.ObserveDB("content.import."+table, func() error {
			var e error
			n, e = tx.CopyFrom(ctx, pgx.Identifier{table}, cols, pgx.CopyFromRows(rows))
			return e
		})

		if err != nil {
			return 0, fmt.Errorf("import %s: %w", table, err)
		}

		return n, nil
	}

	stats.Education, err = copyRows("education", []string{"degree", "institute", "cgpa", "passing_year"}, educationRows(set.Education))
	if err != nil {
		return
	}

	stats.Experiences, err = copyRows("experience", []string{"company", "role", "duration", "responsibilities"}, experienceRows(set.Experiences))
	if err != nil {
		return
	}

	stats.Certifications, err = copyRows("certification", []string{"title", "organization", "year", "image_file"}, certificationRows(set.Certifications))
	if err != nil {
		return
	}

	stats.Projects, err = copyRows("project", []string{"title", "description", "link"}, projectRows(set.Projects))
	if err != nil {
		return
	}

	stats.Achievements, err = copyRows("achievement", []string{"text"}, achievementRows(set.Achievements))
	if err != nil {
		return
	}

	stats.Skills, err = copyRows("skill", []string{"category", "name"}, skillRows(set.Skills))
	if err != nil {
		return
	}

	err = tx.Commit(ctx)

	return
}

func educationRows(items []content.Education) [][]any {
	rows := make([][]any, 0, len(items))
	for _, e := range items {
		var year *int32
		if n, ok := e.PassingYear.Int(); ok {
			y := int32(n)
			year = &y
		}
		rows = append(rows, []any{e.Degree, e.Institute, e.CGPA, year})
	}
	return rows
}

func experienceRows(items []content.Experience) [][]any {
	rows := make([][]any, 0, len(items))
	for _, e := range items {
		rows = append(rows, []any{e.Company, e.Role, e.Duration, content.EncodeResponsibilities(e.Responsibilities)})
	}
	return rows
}

func certificationRows(items []content.Certification) [][]any {
	rows := make([][]any, 0, len(items))
	for _, c := range items {
		rows = append(rows, []any{c.Title, c.Organization, c.Year, nullIfEmpty(c.ImageFile)})
	}
	return rows
}

func projectRows(items []content.Project) [][]any {
	rows := make([][]any, 0, len(items))
	for _, p := range items {
		rows = append(rows, []any{p.Title, p.Description, p.Link})
	}
	return rows
}

func achievementRows(items []content.Achievement) [][]any {
	rows := make([][]any, 0, len(items))
	for _, a := range items {
		rows = append(rows, []any{a.Text})
	}
	return rows
}

// skillRows flattens groups in their written order, so ORDER BY id reads them back the same way.
func skillRows(groups content.SkillGroups) [][]any {
	var rows [][]any
	for _, g := range groups {
		for _, name := range g.Names {
			rows = append(rows, []any{g.Category, name})
		}
	}
	return rows
}
