package headhunter

import "testing"

func TestParseVacancyID(t *testing.T) {
	tests := []struct {
		location string
		id       string
		ok       bool
	}{
		{location: "hh:12345", id: "12345", ok: true},
		{location: " HH://777 ", id: "777", ok: true},
		{location: "https://hh.ru/vacancy/98765", id: "98765", ok: true},
		{location: "https://spb.hh.ru/vacancy/42/?from=search", id: "42", ok: true},
		{location: "hh:abc"},
		{location: "https://example.com/vacancy/1"},
		{location: "https://hh.ru/employer/1"},
		{location: "ftp://hh.ru/vacancy/1"},
		{location: "/tmp/job.txt"},
		{location: "s3://bucket/jd.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			id, ok := ParseVacancyID(tt.location)
			if ok != tt.ok || id != tt.id && tt.ok {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tt.id, tt.ok, id, ok)
			}
			if IsVacancy(tt.location) != tt.ok {
				t.Fatalf("IsVacancy disagrees with ParseVacancyID")
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	in := `<p><strong>Responsibilities:</strong></p><ul><li>Build backend services</li><li>Own CI &amp; CD</li></ul><p>We&nbsp;offer remote work</p>`
	want := "Responsibilities:\nBuild backend services\nOwn CI & CD\nWe offer remote work"

	if got := StripHTML(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if got := StripHTML("   "); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestVacancyText(t *testing.T) {
	v := &Vacancy{
		Name:        "Go Developer",
		Description: "<p>Build services</p>",
	}
	v.KeySkills = append(v.KeySkills,
		struct {
			Name string `json:"name,omitempty"`
		}{Name: "Go"},
		struct {
			Name string `json:"name,omitempty"`
		}{Name: " "},
		struct {
			Name string `json:"name,omitempty"`
		}{Name: "PostgreSQL"},
	)

	want := "Go Developer\n\nBuild services\n\nKey skills: Go, PostgreSQL"
	if got := v.Text(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if got := (&Vacancy{}).Text(); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}
