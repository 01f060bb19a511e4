package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/geocoder89/portfolio/internal/domain/content"
)

type Origin string

const (
	OriginStore    Origin = "store"
	OriginFallback Origin = "fallback"
)

// Decision is what a Policy picks for one read.
type Decision int

const (
	UseStore Decision = iota
	UseFallback
	Fail
)

// Policy picks the answering source from the store's row count and error.
type Policy func(storeRows int, storeErr error) Decision

// StoreFirst is the default policy: the store wins when it returned rows,
// an unreachable or empty store hands the whole read to the fallback document,
// and any other store error fails the read.
func StoreFirst(storeRows int, storeErr error) Decision {
	switch {
	case storeErr == nil && storeRows > 0:
		return UseStore
	case storeErr == nil, errors.Is(storeErr, ErrStoreUnavailable):
		return UseFallback
	default:
		return Fail
	}
}

// ReadObserver receives one call per resolved read. *observability.Prom implements it.
type ReadObserver interface {
	ObserveContentRead(section, origin string)
}

// Result is one resolved read. StoreUnavailable drives the "fallback data" banner.
type Result[T any] struct {
	Items            T
	Origin           Origin
	StoreUnavailable bool
}

type Resolver struct {
	primary  Source
	fallback FallbackSource
	policy   Policy
	log      *slog.Logger
	observer ReadObserver
}

type Option func(*Resolver)

func WithPolicy(p Policy) Option {
	return func(r *Resolver) {
		if p != nil {
			r.policy = p
		}
	}
}

func WithObserver(o ReadObserver) Option {
	return func(r *Resolver) { r.observer = o }
}

// NewResolver wires the store-backed and document-backed sources. primary may be nil,
// in which case every read is answered by the fallback document.
func NewResolver(primary Source, fallback FallbackSource, log *slog.Logger, opts ...Option) *Resolver {
	if log == nil {
		log = slog.Default()
	}

	r := &Resolver{
		primary:  primary,
		fallback: fallback,
		policy:   StoreFirst,
		log:      log,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Resolver) Education(ctx context.Context) (Result[[]content.Education], error) {
	return resolve(ctx, r, SectionEducation, sliceLen[content.Education],
		func(ctx context.Context, s Source) ([]content.Education, error) { return s.Education(ctx) },
		r.fallback.Education,
		[]content.Education{},
	)
}

func (r *Resolver) Experiences(ctx context.Context) (Result[[]content.Experience], error) {
	return resolve(ctx, r, SectionExperience, sliceLen[content.Experience],
		func(ctx context.Context, s Source) ([]content.Experience, error) { return s.Experiences(ctx) },
		r.fallback.Experiences,
		[]content.Experience{},
	)
}

func (r *Resolver) Certifications(ctx context.Context) (Result[[]content.Certification], error) {
	return resolve(ctx, r, SectionCertifications, sliceLen[content.Certification],
		func(ctx context.Context, s Source) ([]content.Certification, error) { return s.Certifications(ctx) },
		r.fallback.Certifications,
		[]content.Certification{},
	)
}

func (r *Resolver) Skills(ctx context.Context) (Result[content.SkillGroups], error) {
	return resolve(ctx, r, SectionSkills,
		func(g content.SkillGroups) int { return len(g) },
		func(ctx context.Context, s Source) (content.SkillGroups, error) { return s.Skills(ctx) },
		r.fallback.Skills,
		content.SkillGroups{},
	)
}

func (r *Resolver) Projects(ctx context.Context) (Result[[]content.Project], error) {
	return resolve(ctx, r, SectionProjects, sliceLen[content.Project],
		func(ctx context.Context, s Source) ([]content.Project, error) { return s.Projects(ctx) },
		r.fallback.Projects,
		[]content.Project{},
	)
}

func (r *Resolver) Achievements(ctx context.Context) (Result[[]content.Achievement], error) {
	return resolve(ctx, r, SectionAchievements, sliceLen[content.Achievement],
		func(ctx context.Context, s Source) ([]content.Achievement, error) { return s.Achievements(ctx) },
		r.fallback.Achievements,
		[]content.Achievement{},
	)
}

// Profile always comes from the fallback document; the store has no profile table.
// Fields that fail to decode are left empty; the rest are kept.
func (r *Resolver) Profile(ctx context.Context) content.Profile {
	p, err := r.fallback.Profile(ctx)

	if err != nil {
		r.log.ErrorContext(ctx, "fallback document unreadable", "section", "profile", "err", err)
	}

	return p
}

func resolve[T any](
	ctx context.Context,
	r *Resolver,
	section string,
	size func(T) int,
	fromStore func(context.Context, Source) (T, error),
	fromFallback func(context.Context) (T, error),
	empty T,
) (Result[T], error) {
	var (
		items    T
		storeErr error
	)

	if r.primary == nil {
		storeErr = ErrStoreUnavailable
	} else {
		items, storeErr = fromStore(ctx, r.primary)
	}

	unavailable := errors.Is(storeErr, ErrStoreUnavailable)

	if unavailable {
		r.log.WarnContext(ctx, "content store unavailable, serving fallback document", "section", section, "err", storeErr)
	}

	var n int
	if storeErr == nil {
		n = size(items)
	}

	switch r.policy(n, storeErr) {
	case UseStore:
		r.observe(section, OriginStore)
		return Result[T]{Items: items, Origin: OriginStore}, nil
	case Fail:
		return Result[T]{Items: empty}, fmt.Errorf("read %s: %w", section, storeErr)
	}

	fb, err := fromFallback(ctx)

	if err != nil {
		r.log.ErrorContext(ctx, "fallback document unreadable", "section", section, "path", r.fallbackPath(), "err", err)
		fb = empty
	}

	r.observe(section, OriginFallback)

	return Result[T]{Items: fb, Origin: OriginFallback, StoreUnavailable: unavailable}, nil
}

func (r *Resolver) observe(section string, origin Origin) {
	if r.observer != nil {
		r.observer.ObserveContentRead(section, string(origin))
	}
}

func (r *Resolver) fallbackPath() string {
	if d, ok := r.fallback.(*DocumentSource); ok {
		return d.Path()
	}
	return ""
}

func sliceLen[E any](items []E) int {
	return len(items)
}
