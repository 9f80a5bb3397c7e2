package store_test

import (
	"errors"
	"testing"

	"receipts-backend/models"
	"receipts-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRecordPending(t *testing.T) {
	s, _ := newTestStore(t)

	pf, err := s.RecordPending("jan_2024.csv", "/data/2024-01-01/jan_2024.csv")
	require.NoError(t, err)
	assert.Equal(t, models.FileStatusPending, pf.Status)
	assert.NotEmpty(t, pf.IngestID)
	assert.False(t, pf.ProcessedAt.IsZero())
}

func TestRecordPendingDuplicateFileName(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.RecordPending("jan_2024.csv", "")
	require.NoError(t, err)

	_, err = s.RecordPending("jan_2024.csv", "")
	require.Error(t, err)
	assert.True(t, store.IsUniquenessViolation(err))
}

func TestUpdateLedgerPatch(t *testing.T) {
	s, db := newTestStore(t)

	_, err := s.RecordPending("4_3.csv", "")
	require.NoError(t, err)

	status := models.FileStatusSuccess
	records := 42
	require.NoError(t, s.UpdateLedger("4_3.csv", store.LedgerPatch{
		Status:       &status,
		RecordsCount: &records,
	}))

	var pf models.ProcessedFile
	require.NoError(t, db.Where("file_name = ?", "4_3.csv").First(&pf).Error)
	assert.Equal(t, models.FileStatusSuccess, pf.Status)
	assert.Equal(t, 42, pf.RecordsCount)
	assert.Empty(t, pf.ErrorMessage)
}

func TestUpdateLedgerUnknownFile(t *testing.T) {
	s, _ := newTestStore(t)

	status := models.FileStatusFailed
	err := s.UpdateLedger("missing.csv", store.LedgerPatch{Status: &status})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUpdateLedgerRejectsUnknownStatus(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.RecordPending("5_1.csv", "")
	require.NoError(t, err)

	bogus := models.FileStatus("retrying")
	err = s.UpdateLedger("5_1.csv", store.LedgerPatch{Status: &bogus})
	require.Error(t, err)
	assert.True(t, store.IsConstraintViolation(err))
}

func TestUpdateLedgerEmptyPatchIsNoop(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.UpdateLedger("whatever.csv", store.LedgerPatch{}))
}

func TestIsFileProcessedTracksStatus(t *testing.T) {
	s, _ := newTestStore(t)

	processed, err := s.IsFileProcessed("6_2.csv")
	require.NoError(t, err)
	assert.False(t, processed)

	_, err = s.RecordPending("6_2.csv", "")
	require.NoError(t, err)

	processed, err = s.IsFileProcessed("6_2.csv")
	require.NoError(t, err)
	assert.False(t, processed, "pending files are not processed yet")

	status := models.FileStatusSuccess
	require.NoError(t, s.UpdateLedger("6_2.csv", store.LedgerPatch{Status: &status}))

	processed, err = s.IsFileProcessed("6_2.csv")
	require.NoError(t, err)
	assert.True(t, processed)

	status = models.FileStatusFailed
	require.NoError(t, s.UpdateLedger("6_2.csv", store.LedgerPatch{Status: &status}))

	processed, err = s.IsFileProcessed("6_2.csv")
	require.NoError(t, err)
	assert.False(t, processed, "failed files should be retried")
}
