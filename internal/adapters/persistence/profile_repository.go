package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/market"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
)

// GormProfileRepository implements ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByID retrieves a profile by id
func (r *GormProfileRepository) FindByID(ctx context.Context, id string) (*progress.Profile, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByName retrieves a profile by name
func (r *GormProfileRepository) FindByName(ctx context.Context, name string) (*progress.Profile, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *GormProfileRepository) findOne(ctx context.Context, where string, arg string) (*progress.Profile, error) {
	var model ProfileModel
	result := r.db.WithContext(ctx).Where(where, arg).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", progress.ErrProfileNotFound, arg)
		}
		return nil, fmt.Errorf("failed to find profile: %w", result.Error)
	}

	return r.modelToProfile(r.db.WithContext(ctx), &model)
}

// List retrieves all profiles ordered by name
func (r *GormProfileRepository) List(ctx context.Context) ([]*progress.Profile, error) {
	db := r.db.WithContext(ctx)

	var models []ProfileModel
	if err := db.Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]*progress.Profile, 0, len(models))
	for i := range models {
		p, err := r.modelToProfile(db, &models[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Save replaces the stored state of a profile in a single transaction
func (r *GormProfileRepository) Save(ctx context.Context, p *progress.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveProfile(tx, p.Snapshot())
	})
}

// Delete removes a profile and all of its progress
func (r *GormProfileRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteProfile(tx, id)
	})
}

// Replace deletes replacedID and saves p in one transaction
func (r *GormProfileRepository) Replace(ctx context.Context, replacedID string, p *progress.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replacedID != p.ID() {
			if err := deleteProfile(tx, replacedID); err != nil {
				return err
			}
		}
		return saveProfile(tx, p.Snapshot())
	})
}

func saveProfile(tx *gorm.DB, s progress.Snapshot) error {
	model := &ProfileModel{
		ID:            s.ID,
		Name:          s.Name,
		SchemaVersion: progress.SchemaVersion,
		Edition:       string(s.Preferences.Edition),
		ViewMode:      string(s.Preferences.ViewMode),
		ShowHidden:    s.Preferences.ShowHidden,
		ItemSize:      string(s.Preferences.ItemSize),
		GameMode:      string(s.Preferences.GameMode),
		UpdatedAt:     s.UpdatedAt,
	}
	// Upsert: create or update
	if err := tx.Save(model).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if err := deleteChildren(tx, s.ID); err != nil {
		return err
	}

	stations := make(map[string]*StationProgressModel)
	for id, level := range s.StationLevels {
		stations[id] = &StationProgressModel{ProfileID: s.ID, StationID: id, Level: level}
	}
	for id := range s.HiddenStations {
		if row, ok := stations[id]; ok {
			row.Hidden = true
		} else {
			stations[id] = &StationProgressModel{ProfileID: s.ID, StationID: id, Hidden: true}
		}
	}
	stationRows := make([]*StationProgressModel, 0, len(stations))
	for _, row := range stations {
		stationRows = append(stationRows, row)
	}

	completedRows := make([]CompletedRequirementModel, 0, len(s.CompletedRequirements))
	for id := range s.CompletedRequirements {
		completedRows = append(completedRows, CompletedRequirementModel{ProfileID: s.ID, RequirementID: id})
	}

	itemRows := make([]ItemCountModel, 0, len(s.ItemCounts))
	for id, c := range s.ItemCounts {
		itemRows = append(itemRows, ItemCountModel{ProfileID: s.ID, ItemID: id, Have: c.Have, HaveFir: c.HaveFir})
	}

	levelRows := make([]ProfileLevelModel, 0, len(s.TraderLevels)+len(s.SkillLevels))
	for name, level := range s.TraderLevels {
		levelRows = append(levelRows, ProfileLevelModel{ProfileID: s.ID, Kind: levelKindTrader, Name: name, Level: level})
	}
	for name, level := range s.SkillLevels {
		levelRows = append(levelRows, ProfileLevelModel{ProfileID: s.ID, Kind: levelKindSkill, Name: name, Level: level})
	}

	if len(stationRows) > 0 {
		if err := tx.CreateInBatches(stationRows, 100).Error; err != nil {
			return fmt.Errorf("failed to save station progress: %w", err)
		}
	}
	if len(completedRows) > 0 {
		if err := tx.CreateInBatches(completedRows, 100).Error; err != nil {
			return fmt.Errorf("failed to save completed requirements: %w", err)
		}
	}
	if len(itemRows) > 0 {
		if err := tx.CreateInBatches(itemRows, 100).Error; err != nil {
			return fmt.Errorf("failed to save item counts: %w", err)
		}
	}
	if len(levelRows) > 0 {
		if err := tx.CreateInBatches(levelRows, 100).Error; err != nil {
			return fmt.Errorf("failed to save trader and skill levels: %w", err)
		}
	}
	return nil
}

func deleteProfile(tx *gorm.DB, id string) error {
	if err := deleteChildren(tx, id); err != nil {
		return err
	}
	result := tx.Where("id = ?", id).Delete(&ProfileModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", progress.ErrProfileNotFound, id)
	}
	return nil
}

func deleteChildren(tx *gorm.DB, profileID string) error {
	children := []interface{}{
		&StationProgressModel{},
		&CompletedRequirementModel{},
		&ItemCountModel{},
		&ProfileLevelModel{},
	}
	for _, model := range children {
		if err := tx.Where("profile_id = ?", profileID).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear profile rows: %w", err)
		}
	}
	return nil
}

// modelToProfile loads the child rows of a profile and rebuilds the aggregate
func (r *GormProfileRepository) modelToProfile(db *gorm.DB, model *ProfileModel) (*progress.Profile, error) {
	var (
		stationRows   []StationProgressModel
		completedRows []CompletedRequirementModel
		itemRows      []ItemCountModel
		levelRows     []ProfileLevelModel
	)
	if err := db.Where("profile_id = ?", model.ID).Find(&stationRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load station progress: %w", err)
	}
	if err := db.Where("profile_id = ?", model.ID).Find(&completedRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load completed requirements: %w", err)
	}
	if err := db.Where("profile_id = ?", model.ID).Find(&itemRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load item counts: %w", err)
	}
	if err := db.Where("profile_id = ?", model.ID).Find(&levelRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load trader and skill levels: %w", err)
	}

	s := progress.Snapshot{
		ID:                    model.ID,
		Name:                  model.Name,
		StationLevels:         make(map[string]int, len(stationRows)),
		HiddenStations:        make(map[string]bool),
		CompletedRequirements: make(map[string]bool, len(completedRows)),
		ItemCounts:            make(map[string]hideout.ItemCount, len(itemRows)),
		TraderLevels:          make(map[string]int),
		SkillLevels:           make(map[string]int),
		Preferences: progress.Preferences{
			Edition:    hideout.Edition(model.Edition),
			ViewMode:   hideout.ViewMode(model.ViewMode),
			ShowHidden: model.ShowHidden,
			ItemSize:   progress.ItemSize(model.ItemSize),
			GameMode:   market.GameMode(model.GameMode),
		},
		UpdatedAt: model.UpdatedAt,
	}
	for _, row := range stationRows {
		if row.Level > 0 {
			s.StationLevels[row.StationID] = row.Level
		}
		if row.Hidden {
			s.HiddenStations[row.StationID] = true
		}
	}
	for _, row := range completedRows {
		s.CompletedRequirements[row.RequirementID] = true
	}
	for _, row := range itemRows {
		s.ItemCounts[row.ItemID] = hideout.ItemCount{Have: row.Have, HaveFir: row.HaveFir}
	}
	for _, row := range levelRows {
		switch row.Kind {
		case levelKindTrader:
			s.TraderLevels[row.Name] = row.Level
		case levelKindSkill:
			s.SkillLevels[row.Name] = row.Level
		}
	}

	p, err := progress.FromSnapshot(s)
	if err != nil {
		return nil, fmt.Errorf("invalid profile in database: %w", err)
	}
	return p, nil
}
