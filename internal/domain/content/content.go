// Package content holds the portfolio records shown on the public pages.
//
// The same types decode from the relational store and from the fallback
// resume document, so a page never has to care which source answered.
package content

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Education struct {
	ID          int64       `json:"id,omitempty"`
	Degree      string      `json:"degree"`
	Institute   string      `json:"institute"`
	CGPA        string      `json:"cgpa"`
	PassingYear PassingYear `json:"passing_year,omitempty"`
}

type Experience struct {
	ID               int64    `json:"id,omitempty"`
	Company          string   `json:"company"`
	Role             string   `json:"role"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
}

type Project struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type Certification struct {
	ID           int64  `json:"id,omitempty"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Year         string `json:"year"`
	ImageFile    string `json:"image_file,omitempty"`
}

type Achievement struct {
	ID   int64  `json:"id,omitempty"`
	Text string `json:"text"`
}

// Profile is the contact block of the fallback document.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	Summary  string `json:"summary"`
}

// PassingYear is the year as written. Numbers and numeric strings normalise to
// digits; anything else ("2019-2023", "expected 2025") is kept verbatim.
// The empty value means unknown.
type PassingYear string

// YearOf builds a PassingYear from a stored integer column.
func YearOf(n int) PassingYear {
	return PassingYear(strconv.Itoa(n))
}

// Int reports the numeric year, if the text is one.
func (y PassingYear) Int() (int, bool) {
	n, err := strconv.Atoi(string(y))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (y *PassingYear) UnmarshalJSON(b []byte) error {
	var s looseString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}

	*y = PassingYear(s)
	return nil
}

// MarshalJSON writes numeric years as numbers and everything else as a string.
func (y PassingYear) MarshalJSON() ([]byte, error) {
	if n, ok := y.Int(); ok {
		return json.Marshal(n)
	}
	return json.Marshal(string(y))
}

// looseString takes a JSON string, number or bool and keeps its text. null is "".
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))

	switch {
	case raw == "null":
		*s = ""
		return nil
	case strings.HasPrefix(raw, `"`):
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(strings.TrimSpace(v))
		return nil
	case raw == "true" || raw == "false":
		*s = looseString(raw)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", raw)
	}

	*s = looseString(n.String())
	return nil
}

// UnmarshalJSON lets cgpa be written as a number ("cgpa": 8.7) as well as a string.
func (e *Education) UnmarshalJSON(b []byte) error {
	type plain Education

	aux := struct {
		*plain
		CGPA looseString `json:"cgpa"`
	}{plain: (*plain)(e)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	e.CGPA = string(aux.CGPA)
	return nil
}

// UnmarshalJSON accepts either a full object or a bare title string,
// which is what the resume parser writes.
func (c *Certification) UnmarshalJSON(b []byte) error {
	var title string
	if err := json.Unmarshal(b, &title); err == nil {
		*c = Certification{Title: title}
		return nil
	}

	type plain Certification
	var p plain

	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	*c = Certification(p)
	return nil
}

// UnmarshalJSON accepts either {"text": "..."} or a bare string.
func (a *Achievement) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		*a = Achievement{Text: text}
		return nil
	}

	type plain Achievement
	var p plain

	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	*a = Achievement(p)
	return nil
}
