package resume

import (
	"regexp"
	"unicode/utf8"

	"skillpath_backend/internal/keywords"
)

type skillCategory struct {
	key    string
	skills []string
}

var skillCategories = []skillCategory{
	{"programming_languages", []string{
		"python", "java", "javascript", "typescript", "c++", "c#", "c", "go",
		"rust", "swift", "kotlin", "scala", "ruby", "php", "sql", "html",
		"css", "r", "matlab", "assembly", "verilog", "vhdl", "systemverilog",
		"perl", "bash", "powershell", "dart", "lua",
	}},
	{"frameworks", []string{
		"react", "angular", "vue", "node.js", "express", "django", "flask",
		"spring", "tensorflow", "pytorch", "keras", "pandas", "numpy",
		"fastapi", "next.js", "svelte", "bootstrap", "tailwind", "scikit-learn",
		"opencv", "hugging face", "langchain", "streamlit", "gradio",
		"react native", "flutter", "electron", "ionic", "xamarin",
	}},
	{"databases", []string{
		"mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle",
		"cassandra", "dynamodb", "elasticsearch", "neo4j", "influxdb",
		"firebase", "supabase", "planetscale", "cockroachdb",
	}},
	{"cloud_devops", []string{
		"aws", "azure", "gcp", "docker", "kubernetes", "jenkins",
		"terraform", "ansible", "linux", "git", "github", "gitlab",
		"ci/cd", "devops", "microservices", "serverless", "lambda",
		"vercel", "netlify", "heroku", "digitalocean", "cloudflare",
	}},
	{"hardware_engineering", []string{
		"verilog", "vhdl", "systemverilog", "vivado", "quartus", "modelsim",
		"cadence", "synopsys", "mentor graphics", "altium designer", "kicad",
		"fpga", "asic", "pcb design", "schematic design", "layout design",
		"xilinx", "altera", "intel fpga", "amd", "arm", "risc-v",
		"embedded systems", "microcontrollers", "arduino", "raspberry pi",
		"jtag", "spi", "i2c", "uart", "pcie", "ddr", "usb",
	}},
	{"ai_ml", []string{
		"machine learning", "deep learning", "neural networks", "nlp",
		"computer vision", "reinforcement learning", "llm", "gpt",
		"chatgpt", "openai", "anthropic", "claude", "transformers",
		"bert", "stable diffusion", "generative ai", "prompt engineering",
	}},
	{"development_tools", []string{
		"visual studio code", "intellij", "eclipse", "vim", "emacs",
		"jupyter", "postman", "insomnia", "figma", "adobe", "slack", "jira",
		"confluence", "notion", "trello", "asana", "discord", "teams",
	}},
	{"web_technologies", []string{
		"rest api", "graphql", "websockets", "json", "xml", "oauth",
		"jwt", "cors", "https", "cdn", "progressive web app", "pwa",
		"responsive design", "accessibility", "seo", "performance optimization",
	}},
	{"soft_skills", []string{
		"leadership", "teamwork", "communication", "problem solving",
		"agile", "scrum", "kanban", "project management", "mentoring",
		"collaboration", "critical thinking", "analytical", "creative",
	}},
	{"certifications", []string{
		"aws certified", "google cloud certified", "azure certified",
		"comptia", "cisco", "pmp", "scrum master", "product owner",
		"security+", "network+", "cissp", "ceh", "oscp",
	}},
	{"emerging_tech", []string{
		"blockchain", "cryptocurrency", "nft", "web3", "defi",
		"quantum computing", "iot", "edge computing", "ar", "vr",
		"metaverse", "5g", "cybersecurity", "zero trust",
	}},
}

var (
	educationKeywords = []string{
		"bachelor", "master", "phd", "degree", "university", "college",
		"computer science", "computer engineering", "software engineering",
		"data science", "information technology", "cybersecurity",
	}
	experienceLevels = []string{"intern", "junior", "senior", "lead", "manager", "director"}
	roleKeywords     = []string{
		"software engineer", "developer", "programmer", "analyst",
		"data scientist", "devops", "full stack", "frontend", "backend",
		"mobile developer", "web developer", "qa", "tester",
	}

	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// Skills maps a category key such as "databases" to the skills found.
type Skills map[string][]string

func (s Skills) Total() int {
	n := 0
	for _, v := range s {
		n += len(v)
	}
	return n
}

type Contact struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}

type ExperienceKeywords struct {
	Levels []string `json:"levels"`
	Roles  []string `json:"roles"`
}

type Parsed struct {
	Filename   string             `json:"filename,omitempty"`
	Contact    Contact            `json:"contact"`
	Skills     Skills             `json:"skills"`
	Education  []string           `json:"education"`
	Experience ExperienceKeywords `json:"experience"`
	TextLength int                `json:"text_length"`
	RawText    string             `json:"raw_text,omitempty"`
}

// Parse extracts contact details and keyword matches from resume text.
func Parse(text string) Parsed {
	m := keywords.NewMatcher(text)

	skills := make(Skills, len(skillCategories))
	for _, c := range skillCategories {
		skills[c.key] = m.Find(c.skills)
	}

	return Parsed{
		Contact: Contact{
			Emails: nonNil(emailPattern.FindAllString(text, -1)),
			Phones: nonNil(phonePattern.FindAllString(text, -1)),
		},
		Skills:    skills,
		Education: m.Find(educationKeywords),
		Experience: ExperienceKeywords{
			Levels: m.Find(experienceLevels),
			Roles:  m.Find(roleKeywords),
		},
		TextLength: utf8.RuneCountInString(text),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
