package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Preference keys used by the screens.
const (
	PrefLastTopic     = "last_topic"
	PrefLastLevel     = "last_level"
	PrefQuestionCount = "question_count"
)

// PrefRepo stores small per-user settings, like the last quiz topic.
type PrefRepo struct {
	db *gorm.DB
}

// Set upserts one preference.
func (r *PrefRepo) Set(ctx context.Context, userKey, key, value string) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_key"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&Preference{UserKey: userKey, Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

// Get returns a preference value, or fallback when unset.
func (r *PrefRepo) Get(ctx context.Context, userKey, key, fallback string) (string, error) {
	var pref Preference
	err := r.db.WithContext(ctx).
		Where("user_key = ? AND key = ?", userKey, key).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("get preference %s: %w", key, err)
	}
	return pref.Value, nil
}
