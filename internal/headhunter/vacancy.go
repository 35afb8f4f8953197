package headhunter

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

const scheme = "hh:"

var (
	vacancyPath = regexp.MustCompile(`^/vacancy/(\d+)/?$`)
	digits      = regexp.MustCompile(`^\d+$`)

	blockTags = regexp.MustCompile(`(?i)</?(p|li|ul|ol|br|h[1-6]|div)\b[^>]*>`)
	anyTag    = regexp.MustCompile(`<[^>]*>`)
	blankRuns = regexp.MustCompile(`\n[ \t]*(\n[ \t]*)+`)
)

type Vacancy struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	KeySkills   []struct {
		Name string `json:"name,omitempty"`
	} `json:"key_skills,omitempty"`
	Employer struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"employer,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	Archived     bool   `json:"archived,omitempty"`
}

// Text renders the vacancy as a plain text job description: the title, the
// description with markup removed and the key skills.
func (v *Vacancy) Text() string {
	parts := make([]string, 0, 3)

	if name := strings.TrimSpace(v.Name); name != "" {
		parts = append(parts, name)
	}
	if description := StripHTML(v.Description); description != "" {
		parts = append(parts, description)
	}

	skills := make([]string, 0, len(v.KeySkills))
	for _, skill := range v.KeySkills {
		if name := strings.TrimSpace(skill.Name); name != "" {
			skills = append(skills, name)
		}
	}
	if len(skills) > 0 {
		parts = append(parts, "Key skills: "+strings.Join(skills, ", "))
	}

	return strings.Join(parts, "\n\n")
}

// StripHTML converts the description markup returned by the API into text.
// Block elements become line breaks.
func StripHTML(s string) string {
	s = blockTags.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = strings.ReplaceAll(html.UnescapeString(s), "\u00a0", " ")
	s = blankRuns.ReplaceAllString(s, "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ParseVacancyID accepts hh:<id> and https://hh.ru/vacancy/<id> style
// locations, including regional hh.ru subdomains.
func ParseVacancyID(location string) (string, bool) {
	location = strings.TrimSpace(location)

	if strings.HasPrefix(strings.ToLower(location), scheme) {
		id := strings.TrimPrefix(location[len(scheme):], "//")
		return id, digits.MatchString(id)
	}

	u, err := url.Parse(location)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host != "hh.ru" && !strings.HasSuffix(host, ".hh.ru") {
		return "", false
	}

	match := vacancyPath.FindStringSubmatch(u.Path)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// IsVacancy reports whether location references an hh.ru vacancy.
func IsVacancy(location string) bool {
	_, ok := ParseVacancyID(location)
	return ok
}
