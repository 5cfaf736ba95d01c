package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// UploadRepo manages the document upload queue. Files are queued
// locally first so an interrupted upload survives a restart.
type UploadRepo struct {
	db *gorm.DB
}

// Enqueue adds a file to the queue in the pending state and returns
// the stored item.
func (r *UploadRepo) Enqueue(ctx context.Context, userKey, fileName, filePath string, sizeBytes int64) (*UploadItem, error) {
	item := UploadItem{
		UserKey:   userKey,
		FileName:  fileName,
		FilePath:  filePath,
		SizeBytes: sizeBytes,
		State:     UploadPending,
	}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("enqueue upload: %w", err)
	}
	return &item, nil
}

// Pending returns the user's queued uploads that still need work,
// oldest first.
func (r *UploadRepo) Pending(ctx context.Context, userKey string) ([]UploadItem, error) {
	var items []UploadItem
	err := r.db.WithContext(ctx).
		Where("user_key = ? AND state IN ?", userKey, []string{UploadPending, UploadFailed}).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("query pending uploads: %w", err)
	}
	return items, nil
}

// All returns every queued upload for the user, newest first.
func (r *UploadRepo) All(ctx context.Context, userKey string) ([]UploadItem, error) {
	var items []UploadItem
	err := r.db.WithContext(ctx).
		Where("user_key = ?", userKey).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("query uploads: %w", err)
	}
	return items, nil
}

// SetState transitions one item. errMsg is kept only for the failed
// state.
func (r *UploadRepo) SetState(ctx context.Context, id uint, state, errMsg string) error {
	if state != UploadFailed {
		errMsg = ""
	}
	res := r.db.WithContext(ctx).
		Model(&UploadItem{}).
		Where("id = ?", id).
		Updates(map[string]any{"state": state, "error": errMsg})
	if res.Error != nil {
		return fmt.Errorf("update upload state: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("upload item %d not found", id)
	}
	return nil
}

// ClearQueue drops every queued item for the user. Called when a login
// event fires so stale work from an earlier session cannot replay.
func (r *UploadRepo) ClearQueue(ctx context.Context, userKey string) error {
	err := r.db.WithContext(ctx).
		Where("user_key = ?", userKey).
		Delete(&UploadItem{}).Error
	if err != nil {
		return fmt.Errorf("clear upload queue: %w", err)
	}
	return nil
}

// Remove deletes one queued item.
func (r *UploadRepo) Remove(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&UploadItem{}, id).Error; err != nil {
		return fmt.Errorf("remove upload item: %w", err)
	}
	return nil
}
