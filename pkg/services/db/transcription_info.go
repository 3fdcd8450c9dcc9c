package dbservice

import (
	"errors"
	"time"

	"github.com/voxscribe/voxscribe-server/pkg/dbmodels"
	"gorm.io/gorm"
)

// GetTranscriptions retrieves a paginated list of transcriptions created
// since the given time, newest first, and returns the total count for the
// same window.
func (s *DatabaseService) GetTranscriptions(since time.Time, offset, limit uint64) ([]*dbmodels.Transcription, int64, error) {
	var transcriptions []*dbmodels.Transcription
	var total int64

	tx := s.db.Model(&dbmodels.Transcription{}).Where("created >= ?", since)

	// total count before applying limit and offset
	err := tx.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return transcriptions, 0, nil
	}

	tx.Order("created DESC, id DESC")
	if limit > 0 {
		tx.Limit(int(limit))
	}
	if offset > 0 {
		tx.Offset(int(offset))
	}

	err = tx.Find(&transcriptions).Error
	if err != nil {
		return nil, 0, err
	}

	return transcriptions, total, nil
}

// GetTranscriptionByTranscriptionId retrieves a single record by its unique
// transcription_id. It returns (nil, nil) if the record is not found.
func (s *DatabaseService) GetTranscriptionByTranscriptionId(transcriptionId string) (*dbmodels.Transcription, error) {
	var transcription dbmodels.Transcription
	cond := &dbmodels.Transcription{
		TranscriptionId: transcriptionId,
	}
	result := s.db.Where(cond).First(&transcription)

	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return &transcription, nil
}
