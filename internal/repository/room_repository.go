package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	roomDomain "github.com/suitespot/service-booking/internal/domain/room"
	"github.com/suitespot/service-booking/internal/pkg/apperror"
)

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomNo          string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Title           string    `gorm:"type:varchar(200)"`
	Description     string    `gorm:"type:text"`
	ImageURL        string    `gorm:"type:text"`
	RoomSize        string    `gorm:"type:varchar(50)"`
	Capacity        int       `gorm:"not null;default:0"`
	PricePerNight   int64     `gorm:"not null;default:0;index"`
	Offer           bool      `gorm:"not null;default:false"`
	DiscountPercent int       `gorm:"not null;default:0"`
	Status          string    `gorm:"type:varchar(20);not null;default:'Available'"`
	ReviewCount     int       `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RoomModel) TableName() string { return "rooms" }

// GormRoomRepository implements RoomRepository using GORM.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID retrieves a room by its record key.
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	var model RoomModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Room", id.String())
		}
		return nil, fmt.Errorf("failed to find room by ID: %w", err)
	}
	return toRoomDomain(&model)
}

// FindByRoomNo retrieves a room by its room number.
func (r *GormRoomRepository) FindByRoomNo(ctx context.Context, roomNo string) (*roomDomain.Room, error) {
	return r.findByRoomNo(ctx, roomNo, false)
}

// LockByRoomNo retrieves a room and locks its row for the rest of the transaction.
func (r *GormRoomRepository) LockByRoomNo(ctx context.Context, roomNo string) (*roomDomain.Room, error) {
	return r.findByRoomNo(ctx, roomNo, inTransaction(ctx))
}

func (r *GormRoomRepository) findByRoomNo(ctx context.Context, roomNo string, forUpdate bool) (*roomDomain.Room, error) {
	q := conn(ctx, r.db)
	// SQLite has no row locks; its single writer already serializes transactions.
	if forUpdate && r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model RoomModel
	if err := q.Where("room_no = ?", roomNo).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Room", roomNo)
		}
		return nil, fmt.Errorf("failed to find room by number: %w", err)
	}
	return toRoomDomain(&model)
}

// List retrieves rooms, optionally sorted by price and restricted to rooms on offer.
func (r *GormRoomRepository) List(ctx context.Context, filter roomDomain.ListFilter) ([]*roomDomain.Room, error) {
	q := conn(ctx, r.db).Model(&RoomModel{})
	if filter.OfferOnly {
		q = q.Where("offer = ?", true)
	}
	switch filter.Sort {
	case roomDomain.SortPriceAsc:
		q = q.Order("price_per_night ASC").Order("room_no ASC")
	case roomDomain.SortPriceDesc:
		q = q.Order("price_per_night DESC").Order("room_no ASC")
	default:
		q = q.Order("room_no ASC")
	}

	var models []RoomModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return toRoomDomains(models)
}

// TopByPrice retrieves the limit most expensive rooms.
func (r *GormRoomRepository) TopByPrice(ctx context.Context, limit int) ([]*roomDomain.Room, error) {
	var models []RoomModel
	if err := conn(ctx, r.db).
		Order("price_per_night DESC").
		Order("room_no ASC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find top rooms: %w", err)
	}
	return toRoomDomains(models)
}

// Upsert inserts a room, or refreshes the catalog fields of the room with the
// same number while keeping its key, status and review count.
func (r *GormRoomRepository) Upsert(ctx context.Context, room *roomDomain.Room) error {
	model := toRoomModel(room)
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "room_no"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "image_url", "room_size", "capacity",
			"price_per_night", "offer", "discount_percent", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert room %s: %w", room.RoomNo(), err)
	}
	return nil
}

// SetStatus overwrites the advisory status of a room.
func (r *GormRoomRepository) SetStatus(ctx context.Context, roomNo string, status roomDomain.RoomStatus) error {
	result := conn(ctx, r.db).
		Model(&RoomModel{}).
		Where("room_no = ?", roomNo).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set room status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Room", roomNo)
	}
	return nil
}

// IncrementReviewCount adds one to the room's review counter in a single statement.
func (r *GormRoomRepository) IncrementReviewCount(ctx context.Context, roomNo string) error {
	result := conn(ctx, r.db).
		Model(&RoomModel{}).
		Where("room_no = ?", roomNo).
		UpdateColumn("review_count", gorm.Expr("review_count + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("failed to increment review count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Room", roomNo)
	}
	return nil
}

// --- Conversion Helpers ---

func toRoomModel(room *roomDomain.Room) *RoomModel {
	d := room.Details()
	return &RoomModel{
		ID:              room.ID(),
		RoomNo:          room.RoomNo(),
		Title:           d.Title,
		Description:     d.Description,
		ImageURL:        d.ImageURL,
		RoomSize:        d.RoomSize,
		Capacity:        d.Capacity,
		PricePerNight:   d.PricePerNight,
		Offer:           d.Offer,
		DiscountPercent: d.DiscountPercent,
		Status:          string(room.Status()),
		ReviewCount:     room.ReviewCount(),
		CreatedAt:       room.CreatedAt(),
		UpdatedAt:       room.UpdatedAt(),
	}
}

func toRoomDomain(m *RoomModel) (*roomDomain.Room, error) {
	status, err := roomDomain.ParseRoomStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return roomDomain.Reconstruct(
		m.ID,
		m.RoomNo,
		roomDomain.Details{
			Title:           m.Title,
			Description:     m.Description,
			ImageURL:        m.ImageURL,
			RoomSize:        m.RoomSize,
			Capacity:        m.Capacity,
			PricePerNight:   m.PricePerNight,
			Offer:           m.Offer,
			DiscountPercent: m.DiscountPercent,
		},
		status,
		m.ReviewCount,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toRoomDomains(models []RoomModel) ([]*roomDomain.Room, error) {
	rooms := make([]*roomDomain.Room, len(models))
	for i := range models {
		room, err := toRoomDomain(&models[i])
		if err != nil {
			return nil, err
		}
		rooms[i] = room
	}
	return rooms, nil
}
