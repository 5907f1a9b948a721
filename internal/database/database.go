package database

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"
	_ "github.com/mattn/go-sqlite3"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hoteldesk/go-hotel-client/core"
	hotelixlog "github.com/hoteldesk/go-hotel-client/internal/logging"
)

// ErrNoActiveProfile is returned by operations that need an active profile when none is set.
var ErrNoActiveProfile = errors.New("no active profile, run `hotelix profile add` first")

type Service struct {
	db         *gorm.DB
	profileMux sync.Mutex // Protects profile activation operations
}

var (
	dbInstance *Service
	dbOnce     sync.Once
)

// New returns the process wide store at <hotelix dir>/store.sqlite.
func New() *Service {
	dbOnce.Do(func() {
		hotelixDir, err := hotelixlog.GetHotelixDir()
		if err != nil {
			log.Fatalf("failed to prepare hotelix directory: %v", err)
		}
		svc, err := Open(filepath.Join(hotelixDir, "store.sqlite"))
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		dbInstance = svc
	})
	return dbInstance
}

// Open connects to the sqlite database at path and migrates it. Unlike New it is not shared.
func Open(path string) (*Service, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Profile{}, &ScreenHistory{}, &Snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Service{db: db}, nil
}

// GetDB returns the database instance
func (s *Service) GetDB() *gorm.DB {
	return s.db
}

// Close closes the database connection
func (s *Service) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// Profile operations

func validateProfile(profile *Profile) error {
	profile.Alias = strings.TrimSpace(profile.Alias)
	if profile.Alias == "" {
		return errors.New("profile alias cannot be empty")
	}
	if len(profile.Alias) > 20 {
		return fmt.Errorf("profile alias %q is longer than 20 characters", profile.Alias)
	}
	cfg := core.Config{BaseURL: profile.BaseURL}
	if err := core.WithBaseURL(&cfg); err != nil {
		return err
	}
	profile.BaseURL = cfg.BaseURL
	return nil
}

// CreateProfile creates a new profile in the database
func (s *Service) CreateProfile(profile *Profile) error {
	if err := validateProfile(profile); err != nil {
		return err
	}
	hotelixlog.Debug("Creating profile",
		zap.String("alias", profile.Alias),
		zap.String("base_url", profile.BaseURL))

	if err := s.db.Create(profile).Error; err != nil {
		hotelixlog.Debug("Failed to create profile", zap.Error(err))
		return err
	}
	hotelixlog.Debug("Profile created", zap.Uint("id", profile.ID))
	return nil
}

// CreateProfileAsActive creates a profile and makes it the only active one.
func (s *Service) CreateProfileAsActive(profile *Profile) error {
	if err := validateProfile(profile); err != nil {
		return err
	}
	s.profileMux.Lock()
	defer s.profileMux.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Profile{}).Where("active = ?", true).Update("active", false).Error; err != nil {
			return err
		}
		profile.Active = true
		return tx.Create(profile).Error
	})
}

func (s *Service) GetProfile(id uint) (*Profile, error) {
	var profile Profile
	if err := s.db.First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByAlias returns nil, nil when no profile carries alias.
func (s *Service) GetProfileByAlias(alias string) (*Profile, error) {
	var profile Profile
	err := s.db.Where("alias = ?", alias).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Service) GetAllProfiles() ([]Profile, error) {
	var profiles []Profile
	err := s.db.Order("alias").Find(&profiles).Error
	return profiles, err
}

func (s *Service) UpdateProfile(profile *Profile) error {
	return s.db.Save(profile).Error
}

// DeleteProfile removes the profile together with its snapshots.
func (s *Service) DeleteProfile(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("profile_id = ?", id).Delete(&Snapshot{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&Profile{}, id).Error
	})
}

// SetActiveProfile sets a profile as active and deactivates all others
func (s *Service) SetActiveProfile(id uint) error {
	s.profileMux.Lock()
	defer s.profileMux.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		// First, deactivate all profiles
		if err := tx.Model(&Profile{}).Where("active = ?", true).Update("active", false).Error; err != nil {
			return err
		}
		result := tx.Model(&Profile{}).Where("id = ?", id).Update("active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("profile %d: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

// GetActiveProfile retrieves the currently active profile
func (s *Service) GetActiveProfile() (*Profile, error) {
	var profile Profile
	err := s.db.Where("active = ?", true).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No active profile found - return nil profile with no error
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// SaveToken stores a freshly issued token for the profile.
func (s *Service) SaveToken(profileID uint, cred core.Credential) error {
	hotelixlog.Debug("Saving token",
		zap.Uint("profile_id", profileID),
		zap.Time("expires_at", cred.ExpiresAt))
	return s.db.Model(&Profile{}).Where("id = ?", profileID).Updates(map[string]any{
		"token":            cred.Token,
		"token_expires_at": cred.ExpiresAt,
	}).Error
}

// Credential reads the stored token of the profile. It is read on every call so a token rotated
// by another hotelix process is seen.
func (s *Service) Credential(profileID uint) (core.Credential, error) {
	profile, err := s.GetProfile(profileID)
	if err != nil {
		return core.Credential{}, err
	}
	if profile.Token == "" {
		return core.Credential{}, core.ErrNoCredential
	}
	return profile.Credential(), nil
}

// Screen history operations

// GetScreenHistory returns the single history record, nil when none was saved yet.
func (s *Service) GetScreenHistory() (*ScreenHistory, error) {
	var history ScreenHistory
	err := s.db.First(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &history, nil
}

// SetCurrentScreen records resource as the current screen, the former one becomes previous.
func (s *Service) SetCurrentScreen(resource string) error {
	history, err := s.GetScreenHistory()
	if err != nil {
		return err
	}
	if history == nil {
		return s.db.Create(&ScreenHistory{CurrentScreen: resource}).Error
	}
	if history.CurrentScreen == resource {
		return nil
	}
	history.PreviousScreen = history.CurrentScreen
	history.CurrentScreen = resource
	return s.db.Save(history).Error
}

// CurrentScreen returns the last screen shown or fallback.
func (s *Service) CurrentScreen(fallback string) string {
	history, err := s.GetScreenHistory()
	if err != nil || history == nil || history.CurrentScreen == "" {
		return fallback
	}
	return history.CurrentScreen
}

// Snapshot operations

// SaveSnapshot replaces the stored collection of resource for the profile.
func (s *Service) SaveSnapshot(profileID uint, resource string, records core.RecordSet) error {
	plain := make([]map[string]any, len(records))
	for i, r := range records {
		plain[i] = r
	}
	data, err := msgpack.Marshal(plain)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", resource, err)
	}
	snapshot := &Snapshot{ProfileID: profileID, Resource: resource, Count: len(records), Data: data}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "resource"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "count", "updated_at"}),
	}).Create(snapshot).Error
}

// LoadSnapshot returns the stored collection and the time it was saved.
// A missing snapshot yields an empty set and a zero time.
func (s *Service) LoadSnapshot(profileID uint, resource string) (core.RecordSet, time.Time, error) {
	var snapshot Snapshot
	err := s.db.Where("profile_id = ? AND resource = ?", profileID, resource).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.RecordSet{}, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	records, err := decodeSnapshot(snapshot.Data)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode %s snapshot: %w", resource, err)
	}
	return records, snapshot.UpdatedAt, nil
}

func decodeSnapshot(data []byte) (core.RecordSet, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	var plain []map[string]any
	if err := dec.Decode(&plain); err != nil {
		return nil, err
	}
	records := make(core.RecordSet, len(plain))
	for i, r := range plain {
		records[i] = r
	}
	return records, nil
}
