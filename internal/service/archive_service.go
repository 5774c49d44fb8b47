package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Palash-oss/TIMETABLE/pkg/config"
	appErrors "github.com/Palash-oss/TIMETABLE/pkg/errors"
	"github.com/Palash-oss/TIMETABLE/pkg/jobs"
	"github.com/Palash-oss/TIMETABLE/pkg/storage"
)

const (
	snapshotTaskKind = "timetable_snapshot"
	cleanupInterval  = 6 * time.Hour
)

type timetableExporter interface {
	ExportCSV(ctx context.Context, semester, academicYear string) ([]byte, error)
}

type snapshotStore interface {
	Save(name string, data []byte) (string, error)
	Read(name string) ([]byte, error)
	List() ([]storage.SnapshotInfo, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ArchiveSnapshot describes a stored snapshot and its signed download link.
type ArchiveSnapshot struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type snapshotRequest struct {
	semester     string
	academicYear string
}

// ArchiveService keeps on-disk CSV snapshots of published timetables and
// serves them through signed, expiring download tokens. Snapshots taken
// after a publish run on a background queue so the publish path never
// blocks on disk IO.
type ArchiveService struct {
	exporter  timetableExporter
	store     snapshotStore
	signer    *storage.DownloadSigner
	queue     *jobs.Queue
	apiPrefix string
	ttl       time.Duration
	logger    *zap.Logger
	cancel    context.CancelFunc
}

// NewArchiveService constructs the service and its snapshot queue.
func NewArchiveService(
	exporter timetableExporter,
	store snapshotStore,
	signer *storage.DownloadSigner,
	cfg config.ArchiveConfig,
	apiPrefix string,
	logger *zap.Logger,
) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ArchiveService{
		exporter:  exporter,
		store:     store,
		signer:    signer,
		apiPrefix: strings.TrimRight(apiPrefix, "/"),
		ttl:       cfg.TTL,
		logger:    logger,
	}
	s.queue = jobs.New("archive", s.handleTask, jobs.Options{
		Workers: cfg.Workers,
		Logger:  logger,
	})
	return s
}

// Start launches the snapshot workers and the retention janitor.
func (s *ArchiveService) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.queue.Start(ctx)
	go s.janitor(ctx)
}

// Stop drains the snapshot workers and stops the janitor.
func (s *ArchiveService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.queue.Stop()
}

func (s *ArchiveService) janitor(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Cleanup(); err != nil {
				s.logger.Warn("snapshot cleanup failed", zap.Error(err))
			}
		}
	}
}

// Schedule queues an archival snapshot for a just-published timetable.
// Failures are logged, never surfaced: archiving must not fail a publish.
func (s *ArchiveService) Schedule(semester, academicYear string) {
	err := s.queue.Enqueue(jobs.Task{
		ID:      uuid.NewString(),
		Kind:    snapshotTaskKind,
		Payload: snapshotRequest{semester: semester, academicYear: academicYear},
	})
	if err != nil {
		s.logger.Warn("snapshot enqueue failed",
			zap.String("semester", semester), zap.String("academic_year", academicYear), zap.Error(err))
	}
}

// Snapshot renders the active timetable to CSV, stores it and returns a
// signed download link.
func (s *ArchiveService) Snapshot(ctx context.Context, semester, academicYear string) (*ArchiveSnapshot, error) {
	payload, err := s.exporter.ExportCSV(ctx, semester, academicYear)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("timetable_%s_%s_%s.csv",
		sanitizeSnapshotPart(semester),
		sanitizeSnapshotPart(academicYear),
		time.Now().UTC().Format("20060102_150405"))
	if _, err := s.store.Save(name, payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store snapshot")
	}

	token, expiresAt, err := s.signer.Sign(name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download token")
	}

	s.logger.Info("timetable snapshot archived",
		zap.String("snapshot", name),
		zap.String("semester", semester),
		zap.String("academic_year", academicYear))

	return &ArchiveSnapshot{
		Name:      name,
		URL:       fmt.Sprintf("%s/timetable/archive/%s", s.apiPrefix, token),
		ExpiresAt: expiresAt,
	}, nil
}

// Download verifies a token and returns the snapshot payload and name.
func (s *ArchiveService) Download(token string) ([]byte, string, error) {
	name, err := s.signer.Verify(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}
	payload, err := s.store.Read(name)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "snapshot no longer available")
	}
	return payload, name, nil
}

// List returns the archived snapshots, newest first.
func (s *ArchiveService) List() ([]storage.SnapshotInfo, error) {
	infos, err := s.store.List()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list snapshots")
	}
	return infos, nil
}

// Cleanup removes snapshots older than the configured retention.
func (s *ArchiveService) Cleanup() ([]string, error) {
	deleted, err := s.store.CleanupOlderThan(s.ttl)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clean up snapshots")
	}
	if len(deleted) > 0 {
		s.logger.Info("expired snapshots removed", zap.Int("count", len(deleted)))
	}
	return deleted, nil
}

func (s *ArchiveService) handleTask(ctx context.Context, task jobs.Task) error {
	req, ok := task.Payload.(snapshotRequest)
	if !ok {
		return fmt.Errorf("unexpected payload for task kind %s", task.Kind)
	}
	_, err := s.Snapshot(ctx, req.semester, req.academicYear)
	return err
}

func sanitizeSnapshotPart(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-", ".", "-")
	return replacer.Replace(raw)
}
