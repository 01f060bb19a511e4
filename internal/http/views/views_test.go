package views

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/portfolio/internal/domain/content"
	"github.com/geocoder89/portfolio/internal/http/flash"
	"github.com/gin-gonic/gin"
)

func TestEveryPageRenders(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	notice := flash.Success("Saved")

	base := gin.H{
		"title":    "Test",
		"profile":  content.Profile{Name: "Jane Doe", Summary: "Engineer"},
		"flash":    &notice,
		"banner":   "Database not connected. Displaying fallback data.",
		"loggedIn": true,
		"username": "admin",
		"message":  "boom",

		"educations":   []content.Education{{Degree: "BSc", PassingYear: "2020"}},
		"experiences":  []content.Experience{{Company: "ACME", Role: "Dev", Responsibilities: []string{"Ship"}}},
		"certs":        []content.Certification{{Title: "CKA", ImageFile: "abc.png"}},
		"skills":       content.SkillGroups{{Category: "programming_languages", Names: []string{"Go"}}},
		"projects":     []content.Project{{Title: "Site", Link: "https://example.com"}},
		"achievements": []content.Achievement{{Text: "Winner"}},
	}

	for name := range r.pages {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := r.Instance(name, base).Render(w); err != nil {
				t.Fatalf("render %s: %v", name, err)
			}

			body := w.Body.String()
			if !strings.Contains(body, "Saved") || !strings.Contains(body, "Displaying fallback data") {
				t.Fatalf("%s: layout did not render flash and banner", name)
			}
		})
	}
}

func TestCertificationImagePathAndSkillsHeading(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	err = r.Instance("certifications.html", gin.H{
		"profile": content.Profile{},
		"certs":   []content.Certification{{Title: "CKA", ImageFile: "0a1b2c3d4e5f6a7b.png"}},
	}).Render(w)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(w.Body.String(), `/static/uploads/certs/0a1b2c3d4e5f6a7b.png`) {
		t.Fatalf("missing image path in %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	err = r.Instance("technical_skills.html", gin.H{
		"profile": content.Profile{},
		"skills": content.SkillGroups{
			{Category: "tools", Names: []string{"Docker"}},
			{Category: "programming_languages", Names: []string{"Go"}},
		},
	}).Render(w)
	if err != nil {
		t.Fatal(err)
	}

	body := w.Body.String()
	if !strings.Contains(body, "Programming Languages") {
		t.Fatalf("category heading not humanized: %s", body)
	}
	if strings.Index(body, "Tools") > strings.Index(body, "Programming Languages") {
		t.Fatalf("categories should render in the order given: %s", body)
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"programming_languages", "Programming Languages"},
		{"databases", "Databases"},
		{"écosystème_web", "Écosystème Web"},
		{"  cloud__tools ", "Cloud Tools"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := humanize(tt.key); got != tt.want {
			t.Fatalf("humanize(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
