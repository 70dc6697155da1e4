package model

type ScanStatus string

const (
	ScanUploaded  ScanStatus = "uploaded"
	ScanCompleted ScanStatus = "completed"
	ScanFailed    ScanStatus = "failed"
)

// swagger:model ResumeScan
type ResumeScan struct {
	UUIDBase
	UserID          *uint      `gorm:"index" json:"userId,omitempty"`
	FileName        string     `gorm:"size:255;not null" json:"fileName"`
	ContentType     string     `gorm:"size:100" json:"contentType"`
	Size            int64      `json:"size"`
	StorageKey      string     `gorm:"size:255" json:"-"`
	StorageURL      string     `gorm:"size:500" json:"storageUrl,omitempty"`
	Status          ScanStatus `gorm:"size:20;not null" json:"status"`
	YearsExperience int        `json:"yearsExperience,omitempty"`
}

func (ResumeScan) TableName() string {
	return "resume_scans"
}
