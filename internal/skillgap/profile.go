package skillgap

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCategory = errors.New("unknown skill category")
	ErrUnknownSkill    = errors.New("skill is not in the catalog")
	ErrInvalidLevel    = errors.New("invalid experience level")
	ErrNegativeYears   = errors.New("years of experience must not be negative")
)

// SkillSet holds the skills a user has selected. Lists behave as sets.
type SkillSet struct {
	Technical      []string `json:"technical"`
	Soft           []string `json:"soft"`
	Certifications []string `json:"certifications"`
}

type Experience struct {
	Years int             `json:"years"`
	Level ExperienceLevel `json:"level"`
}

// Profile is everything the wizard collects about the user.
type Profile struct {
	Skills     SkillSet   `json:"skills"`
	Experience Experience `json:"experience"`
}

func NewProfile() Profile {
	return Profile{
		Skills: SkillSet{
			Technical:      []string{},
			Soft:           []string{},
			Certifications: []string{},
		},
		Experience: Experience{Years: 0, Level: LevelEntry},
	}
}

type TargetJob struct {
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description"`
}

// Complete reports whether title and description are both filled in.
func (t TargetJob) Complete() bool {
	return strings.TrimSpace(t.Title) != "" && strings.TrimSpace(t.Description) != ""
}

func (s *SkillSet) list(c Category) (*[]string, error) {
	switch c {
	case Technical:
		return &s.Technical, nil
	case Soft:
		return &s.Soft, nil
	case Certifications:
		return &s.Certifications, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
}

// Toggle adds skill to category c when absent and removes it when present.
// It returns whether the skill is selected afterwards.
func (s *SkillSet) Toggle(c Category, skill string) (bool, error) {
	l, err := s.list(c)
	if err != nil {
		return false, err
	}
	if !IsOption(c, skill) {
		return false, fmt.Errorf("%w: %q", ErrUnknownSkill, skill)
	}
	for i, v := range *l {
		if v == skill {
			*l = append((*l)[:i:i], (*l)[i+1:]...)
			return false, nil
		}
	}
	*l = append(*l, skill)
	return true, nil
}

func (e Experience) Validate() error {
	if e.Years < 0 {
		return ErrNegativeYears
	}
	if !ValidLevel(e.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, e.Level)
	}
	return nil
}
