package market

import "skillpath_backend/internal/keywords"

type family string

const (
	familySoftware family = "software"
	familyData     family = "data"
	familyHardware family = "hardware"
)

var templates = map[family][]Posting{
	familySoftware: {
		{
			Title:       "Software Engineer",
			Company:     "Tech Corp",
			Description: "We are looking for a software engineer with experience in Python, JavaScript, React, Node.js, AWS, Docker, and SQL. Must have experience with agile development, Git, and RESTful APIs. Bachelor's degree in Computer Science required.",
			Salary:      "$80,000 - $120,000",
			URL:         "https://example.com/job1",
		},
		{
			Title:       "Full Stack Developer",
			Company:     "StartupXYZ",
			Description: "Full stack developer needed with React, Angular, Node.js, MongoDB, PostgreSQL, and cloud experience (AWS/Azure). Experience with TypeScript, Docker, Kubernetes, and CI/CD pipelines preferred.",
			Salary:      "$70,000 - $110,000",
			URL:         "https://example.com/job2",
		},
		{
			Title:       "Backend Engineer",
			Company:     "DataFlow Inc",
			Description: "Backend engineer with Python, Django, FastAPI, PostgreSQL, Redis, and microservices architecture. Experience with Kafka, Docker, Kubernetes, and monitoring tools required.",
			Salary:      "$90,000 - $130,000",
			URL:         "https://example.com/job3",
		},
	},
	familyData: {
		{
			Title:       "Data Scientist",
			Company:     "AI Analytics Co",
			Description: "Data scientist role requiring Python, R, SQL, TensorFlow, PyTorch, scikit-learn, pandas, and numpy. Experience with machine learning, deep learning, and statistical analysis. PhD preferred.",
			Salary:      "$100,000 - $150,000",
			URL:         "https://example.com/job4",
		},
		{
			Title:       "ML Engineer",
			Company:     "MLOps Solutions",
			Description: "Machine learning engineer with Python, TensorFlow, PyTorch, Kubernetes, Docker, and MLOps experience. Knowledge of NLP, computer vision, and model deployment required.",
			Salary:      "$110,000 - $160,000",
			URL:         "https://example.com/job5",
		},
	},
	familyHardware: {
		{
			Title:       "Hardware Engineer",
			Company:     "ChipDesign Corp",
			Description: "Hardware engineer with Verilog, VHDL, SystemVerilog, and Vivado experience. FPGA development, ASIC design, and PCB design layout skills required. Experience with Cadence, Synopsys tools preferred.",
			Salary:      "$85,000 - $125,000",
			URL:         "https://example.com/job6",
		},
		{
			Title:       "FPGA Engineer",
			Company:     "Embedded Systems Ltd",
			Description: "FPGA engineer with Xilinx Vivado, Altera Quartus, Verilog, and embedded systems experience. Knowledge of ARM, RISC-V, and communication protocols (SPI, I2C, UART) required.",
			Salary:      "$90,000 - $135,000",
			URL:         "https://example.com/job7",
		},
	},
}

func familyFor(title string) family {
	m := keywords.NewMatcher(title)
	switch {
	case m.Has("data scientist") || m.Has("ml") || m.Has("machine learning"):
		return familyData
	case m.Has("hardware") || m.Has("fpga") || m.Has("embedded"):
		return familyHardware
	}
	return familySoftware
}

// generatePostings returns limit postings for the title's family, padded
// with software postings when the family has fewer templates.
func generatePostings(title, location string, limit int) []Posting {
	pool := append([]Posting(nil), templates[familyFor(title)]...)
	for len(pool) < limit {
		pool = append(pool, templates[familySoftware]...)
	}
	out := make([]Posting, limit)
	copy(out, pool[:limit])
	for i := range out {
		out[i].Location = location
	}
	return out
}
