package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingDomain "github.com/shareit-hub/service-shareit/internal/domain/booking"
	"github.com/shareit-hub/service-shareit/pkg/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	StartDate time.Time `gorm:"column:start_date;not null;index"`
	EndDate   time.Time `gorm:"column:end_date;not null;index"`
	ItemID    int64     `gorm:"not null;index"`
	Item      ItemModel `gorm:"foreignKey:ItemID;constraint:OnDelete:RESTRICT"`
	BookerID  int64     `gorm:"not null;index"`
	Booker    UserModel `gorm:"foreignKey:BookerID;constraint:OnDelete:RESTRICT"`
	Status    string    `gorm:"not null;size:20;index"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// query loads bookings with the item, its owner and the booker attached.
func (r *GormBookingRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Preload("Item.Owner").
		Preload("Booker")
}

// ownedBy restricts a query to bookings of items owned by ownerID.
func (r *GormBookingRepository) ownedBy(ctx context.Context, ownerID int64) *gorm.DB {
	return r.query(ctx).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
}

func (r *GormBookingRepository) find(db *gorm.DB, what string) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := db.Order("bookings.start_date DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find %s bookings: %w", what, err)
	}
	return toDomainBookings(models)
}

// FindByID retrieves a booking by its identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.query(ctx).Where("bookings.id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// Save persists a new booking. Item and booker rows are referenced, never written.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	return bookingDomain.ReconstructBooking(
		model.ID, bk.Start(), bk.End(), bk.Item(), bk.Booker(), bk.Status(), bk.Version(), bk.CreatedAt(), bk.UpdatedAt(),
	), nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	// IncrementVersion has already been called, so the stored row carries the previous version.
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", bk.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"status":     bk.Status().String(),
			"version":    bk.Version(),
			"updated_at": bk.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// --- Booker-scoped finders ---

// FindByBooker returns every booking made by bookerID.
func (r *GormBookingRepository) FindByBooker(ctx context.Context, bookerID int64) ([]*bookingDomain.Booking, error) {
	return r.find(r.query(ctx).Where("bookings.booker_id = ?", bookerID), "booker")
}

// FindByBookerAndStatus returns bookerID's bookings in status.
func (r *GormBookingRepository) FindByBookerAndStatus(ctx context.Context, bookerID int64, status bookingDomain.BookingStatus) ([]*bookingDomain.Booking, error) {
	return r.find(r.query(ctx).
		Where("bookings.booker_id = ? AND bookings.status = ?", bookerID, status.String()), "booker status")
}

// FindCurrentByBooker returns bookerID's bookings in progress at now.
func (r *GormBookingRepository) FindCurrentByBooker(ctx context.Context, bookerID int64, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.find(r.query(ctx).
		Where("bookings.booker_id = ? AND bookings.start_date < ? AND bookings.end_date > ?", bookerID, now, now), "current booker")
}

// FindPastByBooker returns bookerID's bookings that ended before now.
func (r *GormBookingRepository) FindPastByBooker(ctx context.Context, bookerID int64, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.find(r.query(ctx).
		Where("bookings.booker_id = ? AND bookings.end_date < ?", bookerID, now), "past booker")
}

// FindFutureByBooker returns bookerID's bookings that start after now.
func (r *GormBookingRepository) FindFutureByBooker(ctx context.Context, bookerID int64, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.find(r.query(ctx).
		Where("bookings.booker_id = ? AND bookings.start_date > ?", bookerID, now), "future booker")
}

// --- Owner-scoped finders ---

// FindByOwner returns every booking of items owned by ownerID.
func (r *GormBookingRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*bookingDomain.Booking, error) {
	return r.find(r.ownedBy(ctx, ownerID), "owner")
}

// FindByOwnerAndStatus returns bookings of ownerID's items in status.
func (r *GormBookingRepository) FindByOwnerAndStatus(ctx context.Context, ownerID int64, status bookingDomain.BookingStatus) ([]*bookingDomain.Booking, error) {
	return r.find(r.ownedBy(ctx, ownerID).Where("bookings.status = ?", status.String()), "owner status")
}

// FindCurrentByOwner returns bookings of ownerID's items in progress at now.
func (r *GormBookingRepository) FindCurrentByOwner(ctx context.Context, ownerID int64, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.find(r.ownedBy(ctx, ownerID).
		Where("bookings.start_date < ? AND bookings.end_date > ?", now, now), "current owner")
}

// FindPastByOwner returns bookings of ownerID's items that ended before now.
func (r *GormBookingRepository) FindPastByOwner(ctx context.Context, ownerID int64, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.find(r.ownedBy(ctx, ownerID).Where("bookings.end_date < ?", now), "past owner")
}

// FindFutureByOwner returns bookings of ownerID's items that start after now.
func (r *GormBookingRepository) FindFutureByOwner(ctx context.Context, ownerID int64, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.find(r.ownedBy(ctx, ownerID).Where("bookings.start_date > ?", now), "future owner")
}

// --- Item view support ---

// FindApprovedByItems returns APPROVED bookings of the given items ordered by start.
func (r *GormBookingRepository) FindApprovedByItems(ctx context.Context, itemIDs []int64) ([]*bookingDomain.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var models []BookingModel
	if err := r.query(ctx).
		Where("bookings.item_id IN ? AND bookings.status = ?", itemIDs, bookingDomain.StatusApproved.String()).
		Order("bookings.start_date ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find approved bookings: %w", err)
	}
	return toDomainBookings(models)
}

// HasCompletedBooking reports whether bookerID has an APPROVED booking of itemID that ended before now.
func (r *GormBookingRepository) HasCompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("booker_id = ? AND item_id = ? AND status = ? AND end_date < ?",
			bookerID, itemID, bookingDomain.StatusApproved.String(), now).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count completed bookings: %w", err)
	}
	return count > 0, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		StartDate: bk.Start(),
		EndDate:   bk.End(),
		ItemID:    bk.Item().ID(),
		BookerID:  bk.BookerID(),
		Status:    bk.Status().String(),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.StartDate.UTC(),
		m.EndDate.UTC(),
		toDomainItem(&m.Item),
		toDomainUser(&m.Booker),
		status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
