package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/geocoder89/portfolio/internal/domain/content"
)

// ContentRepo is an in-process content store for DB_DRIVER=memory and tests.
// Reads return copies in insertion order.
type ContentRepo struct {
	mu     sync.RWMutex
	nextID int64

	education      []content.Education
	experiences    []content.Experience
	certifications []content.Certification
	skills         []content.Skill
	projects       []content.Project
	achievements   []content.Achievement
}

func NewContentRepo() *ContentRepo {
	return &ContentRepo{}
}

func (r *ContentRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func snapshot[T any](mu *sync.RWMutex, items []T) []T {
	mu.RLock()
	defer mu.RUnlock()

	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	return out
}

func (r *ContentRepo) Education(ctx context.Context) ([]content.Education, error) {
	return snapshot(&r.mu, r.education), nil
}

func (r *ContentRepo) Experiences(ctx context.Context) ([]content.Experience, error) {
	out := snapshot(&r.mu, r.experiences)

	for i := range out {
		out[i].Responsibilities = slices.Clone(out[i].Responsibilities)
	}

	return out, nil
}

func (r *ContentRepo) Certifications(ctx context.Context) ([]content.Certification, error) {
	return snapshot(&r.mu, r.certifications), nil
}

func (r *ContentRepo) Skills(ctx context.Context) (content.SkillGroups, error) {
	return content.GroupSkills(snapshot(&r.mu, r.skills)), nil
}

func (r *ContentRepo) Projects(ctx context.Context) ([]content.Project, error) {
	return snapshot(&r.mu, r.projects), nil
}

func (r *ContentRepo) Achievements(ctx context.Context) ([]content.Achievement, error) {
	return snapshot(&r.mu, r.achievements), nil
}

func (r *ContentRepo) CreateExperience(ctx context.Context, e content.Experience) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.id()

	// same normalization the text column gives us
	e.Responsibilities = content.ResponsibilitiesOrEmpty(content.EncodeResponsibilities(e.Responsibilities))

	r.experiences = append(r.experiences, e)

	return e.ID, nil
}

func (r *ContentRepo) CreateProject(ctx context.Context, p content.Project) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.id()
	r.projects = append(r.projects, p)

	return p.ID, nil
}

func (r *ContentRepo) CreateCertification(ctx context.Context, c content.Certification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = r.id()
	r.certifications = append(r.certifications, c)

	return c.ID, nil
}

// AddSkill and the other Add* helpers seed the store in tests.
func (r *ContentRepo) AddSkill(category, name string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.id()
	r.skills = append(r.skills, content.Skill{ID: id, Category: category, Name: name})

	return id
}

func (r *ContentRepo) AddEducation(e content.Education) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.id()
	r.education = append(r.education, e)

	return e.ID
}

func (r *ContentRepo) AddAchievement(text string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.id()
	r.achievements = append(r.achievements, content.Achievement{ID: id, Text: text})

	return id
}
