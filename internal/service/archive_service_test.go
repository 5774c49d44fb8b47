package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Palash-oss/TIMETABLE/pkg/config"
	appErrors "github.com/Palash-oss/TIMETABLE/pkg/errors"
	"github.com/Palash-oss/TIMETABLE/pkg/storage"
)

type stubExporter struct {
	payload []byte
	err     error
	calls   int
}

func (s *stubExporter) ExportCSV(context.Context, string, string) ([]byte, error) {
	s.calls++
	return s.payload, s.err
}

func newArchiveFixture(t *testing.T, exporter *stubExporter) *ArchiveService {
	t.Helper()
	store, err := storage.NewArchiveStore(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewDownloadSigner("test-secret", time.Hour)
	cfg := config.ArchiveConfig{TTL: time.Hour, Workers: 1}
	return NewArchiveService(exporter, store, signer, cfg, "/api/v1", zap.NewNop())
}

func TestArchiveServiceSnapshotRoundTrip(t *testing.T) {
	exporter := &stubExporter{payload: []byte("Day,Course\nMONDAY,CS101\n")}
	svc := newArchiveFixture(t, exporter)

	snapshot, err := svc.Snapshot(context.Background(), "3", "2026-27")
	require.NoError(t, err)
	assert.Contains(t, snapshot.Name, "timetable_3_2026-27_")
	assert.Contains(t, snapshot.URL, "/api/v1/timetable/archive/")
	assert.True(t, snapshot.ExpiresAt.After(time.Now()))

	infos, err := svc.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, snapshot.Name, infos[0].Name)

	token := snapshot.URL[len("/api/v1/timetable/archive/"):]
	payload, name, err := svc.Download(token)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Name, name)
	assert.Equal(t, exporter.payload, payload)
}

func TestArchiveServiceDownloadRejectsBadToken(t *testing.T) {
	svc := newArchiveFixture(t, &stubExporter{payload: []byte("x")})

	_, _, err := svc.Download("not-a-token")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestArchiveServiceScheduleRunsSnapshot(t *testing.T) {
	exporter := &stubExporter{payload: []byte("Day,Course\n")}
	svc := newArchiveFixture(t, exporter)
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Schedule("3", "2026-27")
	require.Eventually(t, func() bool {
		infos, err := svc.List()
		return err == nil && len(infos) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestArchiveServiceSnapshotPropagatesExportFailure(t *testing.T) {
	svc := newArchiveFixture(t, &stubExporter{err: assert.AnError})

	_, err := svc.Snapshot(context.Background(), "3", "2026-27")
	assert.Error(t, err)

	infos, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, infos)
}
