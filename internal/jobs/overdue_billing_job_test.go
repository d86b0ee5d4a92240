package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"parcelmybox/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type overdueMarkerMock struct {
	mock.Mock
}

func (m *overdueMarkerMock) Handle(ctx context.Context, cmd commands.MarkOverdueBillingCommand) (commands.OverdueResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.OverdueResult), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOverdueBillingJob_Run(t *testing.T) {
	// Given
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	marker := &overdueMarkerMock{}
	marker.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.MarkOverdueBillingCommand) bool {
		return cmd.Now().Equal(now)
	})).Return(commands.OverdueResult{Bills: 2, Invoices: 1}, nil).Once()

	job := NewOverdueBillingJob(marker, "", discardLogger())
	job.now = func() time.Time { return now }

	// When
	result, err := job.Run(context.Background())

	// Then
	require.NoError(t, err)
	assert.Equal(t, commands.OverdueResult{Bills: 2, Invoices: 1}, result)
	marker.AssertExpectations(t)
}

func TestOverdueBillingJob_Run_ReturnsHandlerError(t *testing.T) {
	// Given
	boom := errors.New("database is down")
	marker := &overdueMarkerMock{}
	marker.On("Handle", mock.Anything, mock.Anything).Return(commands.OverdueResult{}, boom)
	job := NewOverdueBillingJob(marker, "", discardLogger())

	// When
	_, err := job.Run(context.Background())

	// Then
	require.ErrorIs(t, err, boom)
}

func TestOverdueBillingJob_Schedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{"default", "", false},
		{"descriptor", "@every 1h", false},
		{"five fields", "0 * * * *", false},
		{"garbage", "whenever", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewOverdueBillingJob(&overdueMarkerMock{}, tt.schedule, discardLogger())

			err := job.Start()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			job.Stop()
		})
	}
}

func TestJobManager_StartAndStop(t *testing.T) {
	jm := NewJobManager(&overdueMarkerMock{}, "@every 1h", discardLogger())

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
