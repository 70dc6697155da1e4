package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("User with this email already exists")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrWizardNotFound     = errors.New("assessment not found")
	ErrWizardBusy         = errors.New("assessment is being updated, try again")
	ErrScanNotFound       = errors.New("resume scan not found")
	ErrResumeAnalysis     = errors.New("Failed to analyze resume, please try again")
)
