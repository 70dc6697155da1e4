package skillgap

// Category names a SkillSet bucket.
type Category string

const (
	Technical      Category = "technical"
	Soft           Category = "soft"
	Certifications Category = "certifications"
)

// ExperienceLevel is the self-reported seniority of a profile.
type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "Entry"
	LevelJunior    ExperienceLevel = "Junior"
	LevelMid       ExperienceLevel = "Mid-level"
	LevelSenior    ExperienceLevel = "Senior"
	LevelLead      ExperienceLevel = "Lead"
	LevelPrincipal ExperienceLevel = "Principal"
)

var TechnicalSkills = []string{
	"JavaScript", "Python", "React", "Node.js", "SQL", "AWS", "Docker", "Git",
	"TypeScript", "Java", "C++", "Angular", "Vue.js", "MongoDB", "PostgreSQL",
	"Kubernetes", "Jenkins", "GraphQL", "REST APIs", "Machine Learning",
}

var SoftSkills = []string{
	"Communication", "Leadership", "Problem Solving", "Teamwork", "Time Management",
	"Critical Thinking", "Adaptability", "Project Management", "Public Speaking",
	"Negotiation", "Mentoring", "Strategic Planning", "Data Analysis", "Customer Service",
}

var CertificationOptions = []string{
	"AWS Certified Solutions Architect", "Google Cloud Professional", "Microsoft Azure Fundamentals",
	"Certified Scrum Master", "PMP Certification", "Google Analytics", "Salesforce Admin",
	"CompTIA Security+", "Cisco CCNA", "Oracle Certified Professional",
}

var ExperienceLevels = []ExperienceLevel{
	LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelLead, LevelPrincipal,
}

// PopularJobs are the suggestions offered next to the job title input.
var PopularJobs = []string{
	"Software Engineer",
	"Data Scientist",
	"Product Manager",
	"UX Designer",
	"Digital Marketer",
	"DevOps Engineer",
}

// RequiredSkills is the ground truth every assessment is scored against.
type RequiredSkills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// DefaultRequiredSkills returns a fresh copy of the fixed requirement set.
// The target job description does not influence it.
func DefaultRequiredSkills() RequiredSkills {
	return RequiredSkills{
		Technical: []string{"JavaScript", "React", "Node.js", "SQL", "AWS", "Docker", "TypeScript", "GraphQL"},
		Soft:      []string{"Communication", "Problem Solving", "Teamwork", "Leadership", "Time Management"},
	}
}

// Options returns the selectable values for a category, or nil for an unknown one.
func Options(c Category) []string {
	switch c {
	case Technical:
		return TechnicalSkills
	case Soft:
		return SoftSkills
	case Certifications:
		return CertificationOptions
	}
	return nil
}

// IsOption reports whether skill is one of the catalog values of c.
func IsOption(c Category, skill string) bool {
	for _, o := range Options(c) {
		if o == skill {
			return true
		}
	}
	return false
}

func ValidLevel(level ExperienceLevel) bool {
	for _, l := range ExperienceLevels {
		if l == level {
			return true
		}
	}
	return false
}
