package dbservice

import (
	"github.com/voxscribe/voxscribe-server/pkg/dbmodels"
)

// InsertTranscription stores a finished transcription and returns the number
// of affected rows. The record's ID and Created fields are populated by gorm.
func (s *DatabaseService) InsertTranscription(info *dbmodels.Transcription) (int64, error) {
	result := s.db.Create(info)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteTranscription removes a record by its transcription_id and returns
// the number of affected rows.
func (s *DatabaseService) DeleteTranscription(transcriptionId string) (int64, error) {
	cond := &dbmodels.Transcription{
		TranscriptionId: transcriptionId,
	}
	result := s.db.Where(cond).Delete(&dbmodels.Transcription{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
