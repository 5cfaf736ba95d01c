package store

import "time"

// AnswerRecord captures one answered question.
type AnswerRecord struct {
	ID           uint   `gorm:"primaryKey"`
	UserKey      string `gorm:"index"`
	SessionID    string `gorm:"index"`
	QuestionID   string
	Topic        string
	Difficulty   string
	ConceptLabel string
	Answer       string
	Correct      bool
	CreatedAt    time.Time
}

// SessionRecord captures one finished quiz session.
type SessionRecord struct {
	ID             uint   `gorm:"primaryKey"`
	UserKey        string `gorm:"index"`
	SessionID      string `gorm:"uniqueIndex"`
	Topic          string
	KnowledgeLevel string
	SourceMode     string
	TotalQuestions int
	CorrectAnswers int
	DurationSecs   int
	CreatedAt      time.Time
}

// Upload queue states.
const (
	UploadPending   = "pending"
	UploadUploading = "uploading"
	UploadDone      = "done"
	UploadFailed    = "failed"
)

// UploadItem is one queued document upload.
type UploadItem struct {
	ID        uint   `gorm:"primaryKey"`
	UserKey   string `gorm:"index"`
	FileName  string
	FilePath  string
	SizeBytes int64
	State     string `gorm:"index"`
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Preference is a small per-user key/value setting.
type Preference struct {
	ID      uint   `gorm:"primaryKey"`
	UserKey string `gorm:"index:idx_pref_user_key,unique"`
	Key     string `gorm:"index:idx_pref_user_key,unique"`
	Value   string
}
