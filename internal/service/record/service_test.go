package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/absensia/absensi-backend-go/internal/domain/punch"
	"github.com/absensia/absensi-backend-go/internal/domain/record"
	"github.com/absensia/absensi-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordRepo struct {
	upserts  []record.Record
	caps     []record.Capabilities
	failNext error
}

func (f *fakeRecordRepo) DescribeTarget(ctx context.Context) (record.Capabilities, error) {
	return record.Capabilities{}, nil
}

func (f *fakeRecordRepo) Upsert(ctx context.Context, rec record.Record, caps record.Capabilities) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.upserts = append(f.upserts, rec)
	f.caps = append(f.caps, caps)
	return nil
}

func (f *fakeRecordRepo) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*record.Record, error) {
	return nil, nil
}

type fakeRecorder struct {
	syncOK     int
	syncFailed int
}

func (f *fakeRecorder) RecordPunch(string)               {}
func (f *fakeRecorder) RecordDuplicate(string)           {}
func (f *fakeRecorder) RecordPreconditionFailure()       {}
func (f *fakeRecorder) RecordFaceReject()                {}
func (f *fakeRecorder) RecordFaceLatency(time.Duration) {}
func (f *fakeRecorder) RecordSync(success bool) {
	if success {
		f.syncOK++
	} else {
		f.syncFailed++
	}
}

func strPtr(s string) *string { return &s }

var testWindow = schedule.Window{WorkStart: "10:00", WorkEnd: "16:00"}

func newTestSynchronizer(repo *fakeRecordRepo, caps record.Capabilities) (record.Synchronizer, *fakeRecorder) {
	recorder := &fakeRecorder{}
	return NewSynchronizer(repo, testWindow, caps, recorder), recorder
}

func TestSyncBlankEmployeeIsNoOp(t *testing.T) {
	repo := &fakeRecordRepo{}
	sync, recorder := newTestSynchronizer(repo, record.Capabilities{})

	err := sync.Sync(context.Background(), punch.Punch{Day: "2026-09-01"}, "")
	require.NoError(t, err)
	assert.Empty(t, repo.upserts)
	assert.Zero(t, recorder.syncOK)
}

func TestSyncPresent(t *testing.T) {
	repo := &fakeRecordRepo{}
	sync, recorder := newTestSynchronizer(repo, record.Capabilities{})

	p := punch.Punch{
		Name:          "Jane Doe",
		Day:           "2026-09-01",
		CheckInTime:   strPtr("09:45:00"),
		CheckInStatus: strPtr("On Time"),
		CheckOutTime:  strPtr("16:05:00"),
	}
	require.NoError(t, sync.Sync(context.Background(), p, "e-1"))

	require.Len(t, repo.upserts, 1)
	rec := repo.upserts[0]
	assert.Equal(t, "e-1", rec.EmployeeID)
	assert.Equal(t, "2026-09-01", rec.AttendanceDate)
	assert.Equal(t, record.StatusPresent, rec.Status)
	assert.Equal(t, 0, rec.LateMinutes)
	assert.Nil(t, rec.LeaveReason)
	assert.Nil(t, rec.Notes)
	assert.Equal(t, 1, recorder.syncOK)
}

func TestSyncStoredLateStatusWins(t *testing.T) {
	repo := &fakeRecordRepo{}
	sync, _ := newTestSynchronizer(repo, record.Capabilities{})

	// Admin forced Late even though the time itself is before the cutoff.
	p := punch.Punch{
		Day:           "2026-09-01",
		CheckInTime:   strPtr("09:30:00"),
		CheckInStatus: strPtr("Late"),
	}
	require.NoError(t, sync.Sync(context.Background(), p, "e-1"))

	require.Len(t, repo.upserts, 1)
	assert.Equal(t, record.StatusLate, repo.upserts[0].Status)
	assert.Equal(t, 0, repo.upserts[0].LateMinutes)
}

func TestSyncRederivesFromTime(t *testing.T) {
	repo := &fakeRecordRepo{}
	sync, _ := newTestSynchronizer(repo, record.Capabilities{})

	// Stored status is stale; the time is past the cutoff.
	p := punch.Punch{
		Day:           "2026-09-01",
		CheckInTime:   strPtr("10:25:00"),
		CheckInStatus: strPtr("On Time"),
	}
	require.NoError(t, sync.Sync(context.Background(), p, "e-1"))

	require.Len(t, repo.upserts, 1)
	assert.Equal(t, record.StatusLate, repo.upserts[0].Status)
	assert.Equal(t, 25, repo.upserts[0].LateMinutes)
}

func TestSyncReasonMapping(t *testing.T) {
	cases := []struct {
		reason     string
		wantStatus string
		wantReason *string
		wantNotes  *string
	}{
		{"Sakit", record.StatusSick, strPtr(record.ReasonSick), nil},
		{"Izin", record.StatusLeave, strPtr(record.ReasonOther), strPtr("Izin")},
		{"IZIN", record.StatusLeave, strPtr(record.ReasonOther), strPtr("Izin")},
		{"Tanpa Keterangan", record.StatusAbsent, strPtr(record.ReasonAlpa), nil},
		{"tanpa keterangan", record.StatusAbsent, strPtr(record.ReasonAlpa), nil},
		{"Acara keluarga", record.StatusAbsent, strPtr(record.ReasonAlpa), strPtr("Acara keluarga")},
	}
	for _, c := range cases {
		t.Run(c.reason, func(t *testing.T) {
			repo := &fakeRecordRepo{}
			sync, _ := newTestSynchronizer(repo, record.Capabilities{})

			p := punch.Punch{
				Day:  "2026-09-01",
				Meta: punch.Meta{ReasonName: c.reason},
			}
			require.NoError(t, sync.Sync(context.Background(), p, "e-1"))

			require.Len(t, repo.upserts, 1)
			rec := repo.upserts[0]
			assert.Equal(t, c.wantStatus, rec.Status)
			assert.Equal(t, c.wantReason, rec.LeaveReason)
			assert.Equal(t, c.wantNotes, rec.Notes)
			assert.Equal(t, 0, rec.LateMinutes)
		})
	}
}

func TestSyncReasonBeatsStoredStatus(t *testing.T) {
	repo := &fakeRecordRepo{}
	sync, _ := newTestSynchronizer(repo, record.Capabilities{})

	p := punch.Punch{
		Day:           "2026-09-01",
		CheckInTime:   strPtr("10:30:00"),
		CheckInStatus: strPtr("Late"),
		Meta:          punch.Meta{ReasonName: "Sakit"},
	}
	require.NoError(t, sync.Sync(context.Background(), p, "e-1"))

	require.Len(t, repo.upserts, 1)
	assert.Equal(t, record.StatusSick, repo.upserts[0].Status)
	assert.Nil(t, repo.upserts[0].CheckInTime)
	assert.Equal(t, 0, repo.upserts[0].LateMinutes)
}

func TestSyncPassesCapabilities(t *testing.T) {
	repo := &fakeRecordRepo{}
	caps := record.Capabilities{HasLeaveReason: true, HasNotes: true}
	sync, _ := newTestSynchronizer(repo, caps)

	require.NoError(t, sync.Sync(context.Background(), punch.Punch{Day: "2026-09-01"}, "e-1"))

	require.Len(t, repo.caps, 1)
	assert.Equal(t, caps, repo.caps[0])
}

func TestSyncReportsFailure(t *testing.T) {
	repo := &fakeRecordRepo{failNext: errors.New("connection refused")}
	sync, recorder := newTestSynchronizer(repo, record.Capabilities{})

	err := sync.Sync(context.Background(), punch.Punch{Day: "2026-09-01"}, "e-1")
	require.Error(t, err)
	assert.Equal(t, 1, recorder.syncFailed)
}
