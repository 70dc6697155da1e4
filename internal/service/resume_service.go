package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/resume"
	"skillpath_backend/internal/session"
	"skillpath_backend/internal/simulate"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"
	"skillpath_backend/pkg/monitoring"
	"skillpath_backend/pkg/tracing"
)

const (
	sniffBytes      = 512
	resumeKeyPrefix = "resumes"
)

type ScanStore interface {
	Create(ctx context.Context, scan *model.ResumeScan) error
	Finish(ctx context.Context, id string, status model.ScanStatus, years int) error
	FindByID(ctx context.Context, id string) (*model.ResumeScan, error)
	RecentByUser(ctx context.Context, userID uint, limit int) ([]model.ResumeScan, error)
}

// FileUpload is a received file. Content must allow rewinding after the
// leading bytes were sniffed.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.ReadSeeker
}

type ResumeService struct {
	Storage   StorageProvider
	Scans     ScanStore
	Analyzer  *resume.Analyzer
	Simulator *simulate.Simulator
	maxBytes  atomic.Int64
	now       func() time.Time
}

func NewResumeService(storage StorageProvider, scans ScanStore, analyzer *resume.Analyzer, sim *simulate.Simulator, maxBytes int64) *ResumeService {
	s := &ResumeService{
		Storage:   storage,
		Scans:     scans,
		Analyzer:  analyzer,
		Simulator: sim,
		now:       time.Now,
	}
	s.SetMaxBytes(maxBytes)
	return s
}

func (s *ResumeService) SetMaxBytes(n int64) {
	s.maxBytes.Store(n)
}

func (s *ResumeService) MaxBytes() int64 {
	return s.maxBytes.Load()
}

// validate sniffs the head of f, rewinds it and returns the accepted type.
func (s *ResumeService) validate(f FileUpload) (string, error) {
	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(f.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if _, err := f.Content.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	return resume.NewValidator(s.MaxBytes()).Validate(resume.Upload{
		Filename:     f.Filename,
		DeclaredType: f.ContentType,
		Size:         f.Size,
		Head:         head[:n],
	})
}

// Scan validates and stores a resume and returns the canned analysis once
// the simulated upload and analysis delays have passed. Validation errors
// are returned as is; everything else becomes util.ErrResumeAnalysis.
func (s *ResumeService) Scan(ctx context.Context, sess session.Session, f FileUpload) (*resume.Analysis, error) {
	ctx, span := tracing.StartSpan(ctx, "resume.scan", attribute.String("file.name", f.Filename), attribute.Int64("file.size", f.Size))
	defer span.End()

	contentType, err := s.validate(f)
	if err != nil {
		monitoring.ResumeScans.WithLabelValues("rejected").Inc()
		return nil, err
	}

	now := s.now()
	scan := &model.ResumeScan{
		FileName:    f.Filename,
		ContentType: contentType,
		Size:        f.Size,
		StorageKey:  ObjectKey(resumeKeyPrefix, f.Filename, now),
		Status:      model.ScanUploaded,
	}
	if sess.LoggedIn {
		uid := sess.UserID
		scan.UserID = &uid
	}

	start := time.Now()
	url, err := simulate.Start(ctx, s.Simulator, simulate.ResumeUpload, func(ctx context.Context) (string, error) {
		monitoring.SimulatedWait.WithLabelValues(string(simulate.ResumeUpload)).Observe(time.Since(start).Seconds())
		return s.Storage.Upload(ctx, scan.StorageKey, f.Content, f.Size, contentType)
	}).Wait()
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("store resume: %w", err))
	}
	scan.StorageURL = url

	detached := context.WithoutCancel(ctx)
	if err := s.Scans.Create(detached, scan); err != nil {
		return nil, s.fail(span, fmt.Errorf("save scan: %w", err))
	}
	logger.Log.Info("Resume uploaded", zap.String("scan_id", scan.ID), zap.String("key", scan.StorageKey))

	start = time.Now()
	analysis, _ := simulate.Start(ctx, s.Simulator, simulate.ResumeAnalysis, func(context.Context) (resume.Analysis, error) {
		monitoring.SimulatedWait.WithLabelValues(string(simulate.ResumeAnalysis)).Observe(time.Since(start).Seconds())
		return s.Analyzer.Analyze(f.Filename), nil
	}).Wait()
	analysis.ScanID = scan.ID

	if err := s.Scans.Finish(detached, scan.ID, model.ScanCompleted, analysis.Experience.TotalYears); err != nil {
		_ = s.Scans.Finish(detached, scan.ID, model.ScanFailed, 0)
		return nil, s.fail(span, fmt.Errorf("finish scan %s: %w", scan.ID, err))
	}

	monitoring.ResumeScans.WithLabelValues(string(model.ScanCompleted)).Inc()
	logger.Log.Info("Resume scanned",
		zap.String("scan_id", scan.ID),
		zap.String("content_type", contentType),
		zap.Int64("size", f.Size),
		zap.Int("years", analysis.Experience.TotalYears),
		zap.Bool("logged_in", sess.LoggedIn),
	)
	return &analysis, nil
}

// fail logs the cause and replaces it with the user facing analysis error.
func (s *ResumeService) fail(span trace.Span, err error) error {
	tracing.RecordError(span, err)
	monitoring.ResumeScans.WithLabelValues(string(model.ScanFailed)).Inc()
	logger.Log.Error("Resume scan failed", zap.Error(err))
	return util.ErrResumeAnalysis
}

// Parse extracts text from the upload and runs keyword extraction over it.
func (s *ResumeService) Parse(ctx context.Context, f FileUpload) (*resume.Parsed, error) {
	_, span := tracing.StartSpan(ctx, "resume.parse", attribute.String("file.name", f.Filename))
	defer span.End()

	contentType, err := s.validate(f)
	if err != nil {
		return nil, err
	}

	limit := resume.NewValidator(s.MaxBytes()).MaxBytes
	data, err := io.ReadAll(io.LimitReader(f.Content, limit+1))
	if err != nil {
		return nil, tracing.RecordError(span, fmt.Errorf("read upload: %w", err))
	}
	if int64(len(data)) > limit {
		return nil, &resume.LimitError{MaxBytes: limit}
	}

	text, err := resume.ExtractText(f.Filename, contentType, data)
	if err != nil {
		tracing.RecordError(span, err)
		if errors.Is(err, resume.ErrUnsupportedFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", resume.ErrUnreadable, err)
	}

	parsed := resume.Parse(text)
	parsed.Filename = f.Filename
	logger.Log.Debug("Resume parsed",
		zap.String("file", f.Filename),
		zap.Int("text_length", parsed.TextLength),
		zap.Int("skills", parsed.Skills.Total()),
	)
	return &parsed, nil
}

// GetScan returns a stored scan. Anonymous scans are visible to everyone,
// owned scans only to their owner.
func (s *ResumeService) GetScan(ctx context.Context, sess session.Session, id string) (*model.ResumeScan, error) {
	scan, err := s.Scans.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScanNotFound
		}
		return nil, err
	}
	if scan.UserID != nil && (!sess.LoggedIn || *scan.UserID != sess.UserID) {
		return nil, util.ErrScanNotFound
	}
	return scan, nil
}
