package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityRepo records answers and finished sessions and serves the
// aggregates behind the stats command and the dashboard screen.
type ActivityRepo struct {
	db *gorm.DB
}

// RecordAnswer appends one answered question.
func (r *ActivityRepo) RecordAnswer(ctx context.Context, rec AnswerRecord) error {
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

// FinishSession records a completed session. Re-recording the same
// session identity is a no-op, so a summary screen redraw cannot
// double-count.
func (r *ActivityRepo) FinishSession(ctx context.Context, rec SessionRecord) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// RecentSessions returns the user's latest sessions, newest first.
func (r *ActivityRepo) RecentSessions(ctx context.Context, userKey string, limit int) ([]SessionRecord, error) {
	var recs []SessionRecord
	err := r.db.WithContext(ctx).
		Where("user_key = ?", userKey).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	return recs, nil
}

// SessionByID returns one finished session record, or nil when the
// session was never recorded.
func (r *ActivityRepo) SessionByID(ctx context.Context, sessionID string) (*SessionRecord, error) {
	var rec SessionRecord
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	return &rec, nil
}

// TopicStat aggregates answers for one topic.
type TopicStat struct {
	Topic    string
	Answered int
	Correct  int
}

// Accuracy returns the fraction of correct answers, or 0 when empty.
func (t TopicStat) Accuracy() float64 {
	if t.Answered == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Answered)
}

// Stats is the local activity summary for one user.
type Stats struct {
	Sessions int64
	Answered int64
	Correct  int64
	Topics   []TopicStat
}

// Accuracy returns the overall fraction of correct answers.
func (s Stats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// Stats computes the aggregate view of a user's recorded activity.
func (r *ActivityRepo) Stats(ctx context.Context, userKey string) (Stats, error) {
	var out Stats

	err := r.db.WithContext(ctx).
		Model(&SessionRecord{}).
		Where("user_key = ?", userKey).
		Count(&out.Sessions).Error
	if err != nil {
		return Stats{}, fmt.Errorf("count sessions: %w", err)
	}

	err = r.db.WithContext(ctx).
		Model(&AnswerRecord{}).
		Where("user_key = ?", userKey).
		Count(&out.Answered).Error
	if err != nil {
		return Stats{}, fmt.Errorf("count answers: %w", err)
	}

	err = r.db.WithContext(ctx).
		Model(&AnswerRecord{}).
		Where("user_key = ? AND correct", userKey).
		Count(&out.Correct).Error
	if err != nil {
		return Stats{}, fmt.Errorf("count correct answers: %w", err)
	}

	rows := []struct {
		Topic    string
		Answered int
		Correct  int
	}{}
	err = r.db.WithContext(ctx).
		Model(&AnswerRecord{}).
		Select("topic, COUNT(*) AS answered, SUM(CASE WHEN correct THEN 1 ELSE 0 END) AS correct").
		Where("user_key = ?", userKey).
		Group("topic").
		Order("answered DESC").
		Scan(&rows).Error
	if err != nil {
		return Stats{}, fmt.Errorf("aggregate topics: %w", err)
	}
	for _, row := range rows {
		out.Topics = append(out.Topics, TopicStat(row))
	}

	return out, nil
}
