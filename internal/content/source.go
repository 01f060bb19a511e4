package content

import (
	"context"
	"errors"

	"github.com/geocoder89/portfolio/internal/domain/content"
)

// ErrStoreUnavailable marks a read that failed because the store could not be reached.
// Stores wrap their connectivity failures with it; the resolver treats it as "no rows".
var ErrStoreUnavailable = errors.New("content store unavailable")

// Source is anything that can answer the public content reads.
// The Postgres repo and the fallback document both implement it.
type Source interface {
	Education(ctx context.Context) ([]content.Education, error)
	Experiences(ctx context.Context) ([]content.Experience, error)
	Certifications(ctx context.Context) ([]content.Certification, error)
	Skills(ctx context.Context) (content.SkillGroups, error)
	Projects(ctx context.Context) ([]content.Project, error)
	Achievements(ctx context.Context) ([]content.Achievement, error)
}

// FallbackSource is the document-backed Source, which also carries the profile block.
type FallbackSource interface {
	Source
	Profile(ctx context.Context) (content.Profile, error)
}

// Section names, used for logging, metrics and the JSON API.
const (
	SectionEducation      = "education"
	SectionExperience     = "professional_experience"
	SectionCertifications = "certifications"
	SectionSkills         = "technical_skills"
	SectionProjects       = "projects"
	SectionAchievements   = "achievements"
)
