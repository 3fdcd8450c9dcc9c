package dbmodels

import (
	"time"

	"github.com/voxscribe/voxscribe-server/pkg/config"
)

type Transcription struct {
	ID              uint64    `gorm:"primarykey" json:"-"`
	TranscriptionId string    `gorm:"column:transcription_id;not null;uniqueIndex" json:"transcriptionId"`
	AudioUrl        string    `gorm:"column:audio_url;not null" json:"audioUrl"`
	Transcription   string    `gorm:"column:transcription;type:text;not null" json:"transcription"`
	Source          string    `gorm:"column:source;not null;default:azure" json:"source"`
	Locale          string    `gorm:"column:locale;not null" json:"locale"`
	Created         time.Time `gorm:"column:created;not null;autoCreateTime;index:idx_transcriptions_created,sort:desc" json:"createdAt"`
}

func (t *Transcription) TableName() string {
	return config.FormatDBTable("transcriptions")
}
