package file

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-drop-api/internal/domain/errs"
)

func TestNew(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name      string
		expiresAt time.Time
		downloads int
		wantErr   error
	}{
		{"expiry after creation", now.Add(time.Hour), 10, nil},
		{"expiry equal to creation", now, 10, nil},
		{"expiry before creation", now.Add(-time.Second), 10, errs.ErrValidation},
		{"zero download threshold", now.Add(time.Hour), 0, errs.ErrValidation},
		{"negative download threshold", now.Add(time.Hour), -1, errs.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New("files/k", "k.txt", 42, now, tt.expiresAt, tt.downloads)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(42), f.SizeBytes)
			assert.Equal(t, tt.downloads, f.ExpireAfterNDownload)
		})
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name      string
		expiresAt time.Time
		threshold int
		count     int
		want      bool
	}{
		{"live", now.Add(time.Hour), 10, 0, false},
		{"time passed", now.Add(-time.Second), 10, 0, true},
		{"downloads exhausted", now.Add(time.Hour), 10, 10, true},
		{"downloads over", now.Add(time.Hour), 10, 11, true},
		{"one download left", now.Add(time.Hour), 10, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{
				ExpiresAt:            tt.expiresAt,
				ExpireAfterNDownload: tt.threshold,
				DownloadCount:        tt.count,
			}
			assert.Equal(t, tt.want, f.IsExpired(now))
		})
	}
}
