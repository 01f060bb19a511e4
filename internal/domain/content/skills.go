package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Skill is one row of the skills table. Pages consume SkillGroups instead.
type Skill struct {
	ID       int64  `json:"id,omitempty"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

type SkillGroup struct {
	Category string
	Names    []string
}

// SkillGroups is an ordered category list. It reads and writes as a JSON object
// whose keys keep the order they were written in.
type SkillGroups []SkillGroup

// Names returns the skills listed under category, or nil.
func (g SkillGroups) Names(category string) []string {
	for _, group := range g {
		if group.Category == category {
			return group.Names
		}
	}
	return nil
}

// Add appends names to category, creating it at the end when new.
func (g SkillGroups) Add(category string, names ...string) SkillGroups {
	for i := range g {
		if g[i].Category == category {
			g[i].Names = append(g[i].Names, names...)
			return g
		}
	}
	return append(g, SkillGroup{Category: category, Names: append([]string{}, names...)})
}

// GroupSkills folds rows into SkillGroups. Categories appear in first-seen order
// and names keep row order inside each category.
func GroupSkills(rows []Skill) SkillGroups {
	groups := SkillGroups{}

	for _, s := range rows {
		groups = groups.Add(s.Category, s.Name)
	}

	return groups
}

func (g SkillGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, group := range g {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(group.Category)
		if err != nil {
			return nil, err
		}

		names := group.Names
		if names == nil {
			names = []string{}
		}

		val, err := json.Marshal(names)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (g *SkillGroups) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok == nil {
		*g = nil
		return nil
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("technical skills must be an object of category lists")
	}

	out := SkillGroups{}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		category, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", keyTok)
		}

		var names []string
		if err := dec.Decode(&names); err != nil {
			return fmt.Errorf("category %q: %w", category, err)
		}

		out = out.Add(category, names...)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*g = out
	return nil
}
