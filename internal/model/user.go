package model

import "time"

// swagger:model User
type User struct {
	BaseModel
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"size:100;not null" json:"-"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	ResumeData       RawJSON `gorm:"type:json" json:"resumeData,omitempty" swaggertype:"object"`
	TargetJobs       RawJSON `gorm:"type:json" json:"targetJobs,omitempty" swaggertype:"array,object"`
	LearningProgress RawJSON `gorm:"type:json" json:"learningProgress,omitempty" swaggertype:"object"`
}

func (User) TableName() string {
	return "users"
}
