package skillgap

type Readiness string

const (
	Ready            Readiness = "Ready"
	NearlyReady      Readiness = "Nearly Ready"
	NeedsDevelopment Readiness = "Needs Development"
)

const (
	readyThreshold       = 70
	nearlyReadyThreshold = 50
)

// Classify maps an overall score to a readiness label and a time-to-ready estimate.
func Classify(overall int) (Readiness, string) {
	switch {
	case overall >= readyThreshold:
		return Ready, "0-1 months"
	case overall >= nearlyReadyThreshold:
		return NearlyReady, "2-4 months"
	default:
		return NeedsDevelopment, "6-12 months"
	}
}
