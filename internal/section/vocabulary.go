package section

// Name is a known résumé section title. Titles are plain text markers, no
// hierarchy between them is modeled.
type Name string

const (
	ContactInformation     Name = "Contact Information"
	Objective              Name = "Objective"
	Summary                Name = "Summary"
	Education              Name = "Education"
	Experience             Name = "Experience"
	Skills                 Name = "Skills"
	Projects               Name = "Projects"
	Certifications         Name = "Certifications"
	Licenses               Name = "Licenses"
	Awards                 Name = "Awards"
	Honors                 Name = "Honors"
	Publications           Name = "Publications"
	References             Name = "References"
	TechnicalSkills        Name = "Technical Skills"
	ComputerSkills         Name = "Computer Skills"
	ProgrammingLanguages   Name = "Programming Languages"
	SoftwareSkills         Name = "Software Skills"
	SoftSkills             Name = "Soft Skills"
	LanguageSkills         Name = "Language Skills"
	ProfessionalSkills     Name = "Professional Skills"
	TransferableSkills     Name = "Transferable Skills"
	WorkExperience         Name = "Work Experience"
	ProfessionalExperience Name = "Professional Experience"
	EmploymentHistory      Name = "Employment History"
	InternshipExperience   Name = "Internship Experience"
	VolunteerExperience    Name = "Volunteer Experience"
	LeadershipExperience   Name = "Leadership Experience"
	ResearchExperience     Name = "Research Experience"
	TeachingExperience     Name = "Teaching Experience"
)

// Vocabulary is the ordered set of titles treated as section headings.
var Vocabulary = []Name{
	ContactInformation, Objective, Summary, Education, Experience,
	Skills, Projects, Certifications, Licenses, Awards, Honors,
	Publications, References, TechnicalSkills, ComputerSkills,
	ProgrammingLanguages, SoftwareSkills, SoftSkills, LanguageSkills,
	ProfessionalSkills, TransferableSkills, WorkExperience,
	ProfessionalExperience, EmploymentHistory, InternshipExperience,
	VolunteerExperience, LeadershipExperience, ResearchExperience,
	TeachingExperience,
}

func (n Name) String() string { return string(n) }

// Known reports whether n is part of Vocabulary.
func (n Name) Known() bool {
	for _, v := range Vocabulary {
		if v == n {
			return true
		}
	}
	return false
}
