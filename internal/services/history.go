package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
	ErrNotFound    = errors.New("not found")
)

// DefaultHistoryLimit is how many history entries an owner keeps.
const DefaultHistoryLimit = 50

// HistoryService stores generated prompts and favorites per owner.
type HistoryService struct {
	db    *gorm.DB
	limit int
	now   func() time.Time
}

func NewHistoryService(db *gorm.DB, limit int) *HistoryService {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryService{db: db, limit: limit, now: time.Now}
}

// SaveToHistory records prompt as the owner's newest entry and drops entries
// beyond the history limit.
func (s *HistoryService) SaveToHistory(ctx context.Context, ownerID, prompt string, components models.ComponentSet) (*models.HistoryEntry, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	entry := &models.HistoryEntry{
		CreatedAt:  s.now(),
		OwnerID:    ownerID,
		Prompt:     prompt,
		Components: components,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		var ids []string
		if err := tx.Model(&models.HistoryEntry{}).
			Where("owner_id = ?", ownerID).
			Order("created_at desc").
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) <= s.limit {
			return nil
		}
		return tx.Where("id IN ?", ids[s.limit:]).Delete(&models.HistoryEntry{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save history: %w", err)
	}
	return entry, nil
}

// GetHistory returns up to limit entries, newest first. limit <= 0 returns
// everything kept.
func (s *HistoryService) GetHistory(ctx context.Context, ownerID string, limit int) ([]models.HistoryEntry, error) {
	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	entries := []models.HistoryEntry{}
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}

// GetHistoryPage returns one page of history and the total entry count.
// Pages start at 1.
func (s *HistoryService) GetHistoryPage(ctx context.Context, ownerID string, page, pageSize int) ([]models.HistoryEntry, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.HistoryEntry{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count history: %w", err)
	}

	entries := []models.HistoryEntry{}
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, total, nil
}

func (s *HistoryService) GetHistoryItem(ctx context.Context, ownerID, id string) (*models.HistoryEntry, error) {
	var entry models.HistoryEntry
	err := s.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history entry: %w", err)
	}
	return &entry, nil
}

// ClearHistory deletes every entry of the owner and reports how many went.
func (s *HistoryService) ClearHistory(ctx context.Context, ownerID string) (int64, error) {
	result := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&models.HistoryEntry{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear history: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// AddToFavorites pins prompt. Pinning the same prompt twice returns the
// existing favorite with created false.
func (s *HistoryService) AddToFavorites(ctx context.Context, ownerID, prompt string, components models.ComponentSet) (*models.Favorite, bool, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, false, ErrEmptyPrompt
	}

	var existing models.Favorite
	err := s.db.WithContext(ctx).Where("owner_id = ? AND prompt = ?", ownerID, prompt).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up favorite: %w", err)
	}

	now := s.now()
	favorite := &models.Favorite{
		CreatedAt:  now,
		UpdatedAt:  now,
		OwnerID:    ownerID,
		Prompt:     prompt,
		Components: components,
	}
	if err := s.db.WithContext(ctx).Create(favorite).Error; err != nil {
		return nil, false, fmt.Errorf("failed to save favorite: %w", err)
	}
	return favorite, true, nil
}

func (s *HistoryService) RemoveFromFavorites(ctx context.Context, ownerID, id string) error {
	result := s.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).Delete(&models.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetFavorites returns favorites, newest first.
func (s *HistoryService) GetFavorites(ctx context.Context, ownerID string) ([]models.Favorite, error) {
	favorites := []models.Favorite{}
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return favorites, nil
}

func (s *HistoryService) IsInFavorites(ctx context.Context, ownerID, prompt string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("owner_id = ? AND prompt = ?", ownerID, strings.TrimSpace(prompt)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorites: %w", err)
	}
	return count > 0, nil
}

// UpdateFavorite replaces the prompt and components of a favorite. An empty
// prompt or component set keeps the stored value. The id and creation time
// never change.
func (s *HistoryService) UpdateFavorite(ctx context.Context, ownerID, id, prompt string, components models.ComponentSet) (*models.Favorite, error) {
	var favorite models.Favorite
	err := s.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).First(&favorite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load favorite: %w", err)
	}

	if p := strings.TrimSpace(prompt); p != "" {
		favorite.Prompt = p
	}
	if !components.IsEmpty() {
		favorite.Components = components
	}
	favorite.UpdatedAt = s.now()

	if err := s.db.WithContext(ctx).Save(&favorite).Error; err != nil {
		return nil, fmt.Errorf("failed to update favorite: %w", err)
	}
	return &favorite, nil
}
