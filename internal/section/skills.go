package section

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	skillsHeading     = regexp.MustCompile(`Skills\s*[:\n]`)
	skillsHeadingFold = regexp.MustCompile(`(?i)Skills\s*[:\n]`)
	blankLine         = regexp.MustCompile(`\n[ \t\r]*\n`)
)

// ExtractSkills returns the skills listed under the first "Skills" heading
// followed by a colon or a line break. The block ends at the first blank
// line. Each line is split on ':', ',' and '-'; empty pieces are dropped and
// duplicates removed, keeping the first occurrence order.
func (e *Extractor) ExtractSkills(document string) []string {
	heading := skillsHeading
	if e.foldCase {
		heading = skillsHeadingFold
	}

	loc := heading.FindStringIndex(document)
	if loc == nil {
		return []string{}
	}

	block := document[loc[1]:]
	if end := blankLine.FindStringIndex(block); end != nil {
		block = block[:end[0]]
	}

	seen := make(map[string]struct{})
	skills := make([]string, 0)

	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		for _, piece := range strings.FieldsFunc(line, isSkillDelimiter) {
			skill := strings.TrimFunc(piece, isSkillPadding)
			if skill == "" {
				continue
			}
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			skills = append(skills, skill)
		}
	}

	return skills
}

func isSkillDelimiter(r rune) bool {
	return r == ':' || r == ',' || r == '-'
}

// isSkillPadding trims whitespace and list bullets around a skill.
func isSkillPadding(r rune) bool {
	switch r {
	case '•', '·', '*', '▪', '◦':
		return true
	}
	return unicode.IsSpace(r)
}
