package postgres

import (
	"context"

	"github.com/geocoder89/portfolio/internal/domain/content"
	"github.com/geocoder89/portfolio/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContentRepo is the relational content.Source plus the admin inserts.
type ContentRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewContentRepo(pool *pgxpool.Pool, prom *observability.Prom) *ContentRepo {
	return &ContentRepo{pool: pool, prom: prom}
}

func listAll[T any](ctx context.Context, r *ContentRepo, op, query string, scan func(pgx.CollectableRow) (T, error)) ([]T, error) {
	var out []T

	err := r.prom.ObserveDB(op, func() error {
		rows, err := r.pool.Query(ctx, query)

		if err != nil {
			return err
		}

		out, err = pgx.CollectRows(rows, scan)
		return err
	})

	if err != nil {
		return nil, readErr(op, err)
	}

	if out == nil {
		out = []T{}
	}

	return out, nil
}

func (r *ContentRepo) Education(ctx context.Context) ([]content.Education, error) {
	return listAll(ctx, r, "content.list_education",
		`SELECT id, degree, institute, cgpa, passing_year FROM education ORDER BY id`,
		func(row pgx.CollectableRow) (content.Education, error) {
			var (
				e    content.Education
				year *int
			)

			err := row.Scan(&e.ID, &e.Degree, &e.Institute, &e.CGPA, &year)

			if year != nil {
				e.PassingYear = content.YearOf(*year)
			}

			return e, err
		})
}

func (r *ContentRepo) Experiences(ctx context.Context) ([]content.Experience, error) {
	return listAll(ctx, r, "content.list_experience",
		`SELECT id, company, role, duration, responsibilities FROM experience ORDER BY id`,
		func(row pgx.CollectableRow) (content.Experience, error) {
			var (
				e   content.Experience
				raw string
			)

			err := row.Scan(&e.ID, &e.Company, &e.Role, &e.Duration, &raw)

			e.Responsibilities = content.ResponsibilitiesOrEmpty(raw)

			return e, err
		})
}

func (r *ContentRepo) Certifications(ctx context.Context) ([]content.Certification, error) {
	return listAll(ctx, r, "content.list_certifications",
		`SELECT id, title, organization, year, image_file FROM certification ORDER BY id`,
		func(row pgx.CollectableRow) (content.Certification, error) {
			var (
				c     content.Certification
				image *string
			)

			err := row.Scan(&c.ID, &c.Title, &c.Organization, &c.Year, &image)

			if image != nil {
				c.ImageFile = *image
			}

			return c, err
		})
}

func (r *ContentRepo) Skills(ctx context.Context) (content.SkillGroups, error) {
	rows, err := listAll(ctx, r, "content.list_skills",
		`SELECT id, category, name FROM skill ORDER BY id`,
		func(row pgx.CollectableRow) (content.Skill, error) {
			var s content.Skill
			err := row.Scan(&s.ID, &s.Category, &s.Name)
			return s, err
		})

	if err != nil {
		return nil, err
	}

	return content.GroupSkills(rows), nil
}

func (r *ContentRepo) Projects(ctx context.Context) ([]content.Project, error) {
	return listAll(ctx, r, "content.list_projects",
		`SELECT id, title, description, link FROM project ORDER BY id`,
		func(row pgx.CollectableRow) (content.Project, error) {
			var p content.Project
			err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Link)
			return p, err
		})
}

func (r *ContentRepo) Achievements(ctx context.Context) ([]content.Achievement, error) {
	return listAll(ctx, r, "content.list_achievements",
		`SELECT id, text FROM achievement ORDER BY id`,
		func(row pgx.CollectableRow) (content.Achievement, error) {
			var a content.Achievement
			err := row.Scan(&a.ID, &a.Text)
			return a, err
		})
}

func (r *ContentRepo) CreateExperience(ctx context.Context, e content.Experience) (int64, error) {
	var id int64

	err := r.prom.ObserveDB("content.create_experience", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO experience (company, role, duration, responsibilities)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			e.Company, e.Role, e.Duration, content.EncodeResponsibilities(e.Responsibilities),
		).Scan(&id)
	})

	return id, err
}

func (r *ContentRepo) CreateProject(ctx context.Context, p content.Project) (int64, error) {
	var id int64

	err := r.prom.ObserveDB("content.create_project", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO project (title, description, link)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			p.Title, p.Description, p.Link,
		).Scan(&id)
	})

	return id, err
}

func (r *ContentRepo) CreateCertification(ctx context.Context, c content.Certification) (int64, error) {
	var id int64

	err := r.prom.ObserveDB("content.create_certification", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO certification (title, organization, year, image_file)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			c.Title, c.Organization, c.Year, nullIfEmpty(c.ImageFile),
		).Scan(&id)
	})

	return id, err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
