package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/geocoder89/portfolio/internal/domain/content"
)

var ErrMalformedDocument = errors.New("malformed fallback document")

// Document mirrors data/resume_data.json.
type Document struct {
	content.Profile

	Education              []content.Education     `json:"education"`
	ProfessionalExperience []content.Experience    `json:"professional_experience"`
	Certifications         []content.Certification `json:"certifications"`
	TechnicalSkills        content.SkillGroups     `json:"technical_skills"`
	Projects               []content.Project       `json:"projects"`
	Achievements           []content.Achievement   `json:"achievements"`
}

// DocumentSource reads the fallback document from disk on every call.
// The file is read-only input; nothing here writes it.
type DocumentSource struct {
	path string
}

func NewDocumentSource(path string) *DocumentSource {
	return &DocumentSource{path: path}
}

func (d *DocumentSource) Path() string {
	return d.path
}

// Load returns the whole document. A missing file is an empty document.
// A section that fails to decode is left empty and reported in the joined error;
// the other sections are still returned.
func (d *DocumentSource) Load() (Document, error) {
	raw, err := d.sections()
	if err != nil {
		return Document{}, err
	}

	var doc Document

	err = errors.Join(
		decodeProfile(raw, &doc.Profile),
		decodeSection(raw, SectionEducation, &doc.Education),
		decodeSection(raw, SectionExperience, &doc.ProfessionalExperience),
		decodeSection(raw, SectionCertifications, &doc.Certifications),
		decodeSection(raw, SectionSkills, &doc.TechnicalSkills),
		decodeSection(raw, SectionProjects, &doc.Projects),
		decodeSection(raw, SectionAchievements, &doc.Achievements),
	)

	return doc, err
}

// sections splits the top-level object by key without decoding the values.
func (d *DocumentSource) sections() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(d.path)

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read fallback document: %w", err)
	}

	var raw map[string]json.RawMessage

	err = json.Unmarshal(b, &raw)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	if raw == nil {
		raw = map[string]json.RawMessage{}
	}

	return raw, nil
}

func decodeSection[T any](raw map[string]json.RawMessage, key string, dst *T) error {
	b, ok := raw[key]
	if !ok {
		return nil
	}

	if err := json.Unmarshal(b, dst); err != nil {
		var zero T
		*dst = zero
		return fmt.Errorf("%w: %s: %v", ErrMalformedDocument, key, err)
	}

	return nil
}

func decodeProfile(raw map[string]json.RawMessage, p *content.Profile) error {
	return errors.Join(
		decodeSection(raw, "name", &p.Name),
		decodeSection(raw, "email", &p.Email),
		decodeSection(raw, "phone", &p.Phone),
		decodeSection(raw, "linkedin", &p.LinkedIn),
		decodeSection(raw, "summary", &p.Summary),
	)
}

// readSection decodes one key of the document, so a bad section never hides the others.
func readSection[T any](d *DocumentSource, key string) (T, error) {
	var out T

	raw, err := d.sections()
	if err != nil {
		return out, err
	}

	err = decodeSection(raw, key, &out)

	return out, err
}

func (d *DocumentSource) Profile(ctx context.Context) (content.Profile, error) {
	raw, err := d.sections()
	if err != nil {
		return content.Profile{}, err
	}

	var p content.Profile
	err = decodeProfile(raw, &p)

	return p, err
}

func (d *DocumentSource) Education(ctx context.Context) ([]content.Education, error) {
	items, err := readSection[[]content.Education](d, SectionEducation)
	return orEmpty(items), err
}

func (d *DocumentSource) Experiences(ctx context.Context) ([]content.Experience, error) {
	items, err := readSection[[]content.Experience](d, SectionExperience)

	out := orEmpty(items)
	for i := range out {
		if out[i].Responsibilities == nil {
			out[i].Responsibilities = []string{}
		}
	}

	return out, err
}

func (d *DocumentSource) Certifications(ctx context.Context) ([]content.Certification, error) {
	items, err := readSection[[]content.Certification](d, SectionCertifications)
	return orEmpty(items), err
}

func (d *DocumentSource) Skills(ctx context.Context) (content.SkillGroups, error) {
	groups, err := readSection[content.SkillGroups](d, SectionSkills)
	return orEmpty(groups), err
}

func (d *DocumentSource) Projects(ctx context.Context) ([]content.Project, error) {
	items, err := readSection[[]content.Project](d, SectionProjects)
	return orEmpty(items), err
}

func (d *DocumentSource) Achievements(ctx context.Context) ([]content.Achievement, error) {
	items, err := readSection[[]content.Achievement](d, SectionAchievements)
	return orEmpty(items), err
}

func orEmpty[T any, S ~[]T](items S) S {
	if items == nil {
		return S{}
	}
	return items
}
