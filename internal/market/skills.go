package market

import (
	"slices"

	"skillpath_backend/internal/keywords"
)

// marketSkills is the vocabulary searched for in job descriptions.
var marketSkills = []string{
	// languages
	"python", "java", "javascript", "typescript", "c++", "c#", "c", "go",
	"rust", "swift", "kotlin", "scala", "ruby", "php", "sql", "html",
	"css", "r", "matlab", "verilog", "vhdl", "systemverilog",
	// frameworks
	"react", "angular", "vue", "node.js", "express", "django", "flask",
	"spring", "tensorflow", "pytorch", "keras", "pandas", "numpy",
	"fastapi", "next.js", "svelte", "bootstrap", "tailwind", "scikit-learn",
	// databases
	"mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle",
	"cassandra", "dynamodb", "elasticsearch",
	// cloud and devops
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins",
	"terraform", "ansible", "linux", "git", "github", "gitlab",
	"ci/cd", "microservices", "serverless",
	// hardware
	"vivado", "quartus", "modelsim", "cadence", "synopsys",
	"fpga", "asic", "pcb design", "xilinx", "altera", "embedded systems",
	// ai
	"machine learning", "deep learning", "neural networks", "nlp",
	"computer vision", "artificial intelligence",
	// web
	"rest api", "graphql", "websockets", "json", "oauth", "jwt",
	// soft
	"agile", "scrum", "kanban", "leadership", "teamwork", "communication",
}

// ExtractSkills lists the known skills mentioned in a job description.
func ExtractSkills(description string) []string {
	return keywords.NewMatcher(description).Find(marketSkills)
}

// CountFrequency tallies skills and sorts them by count, most common first.
// Ties keep first-seen order.
func CountFrequency(skills []string) []SkillCount {
	counts := []SkillCount{}
	index := map[string]int{}
	for _, s := range skills {
		if i, ok := index[s]; ok {
			counts[i].Count++
			continue
		}
		index[s] = len(counts)
		counts = append(counts, SkillCount{Skill: s, Count: 1})
	}
	slices.SortStableFunc(counts, func(a, b SkillCount) int {
		return b.Count - a.Count
	})
	return counts
}
