package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
)

// NewPostgresStores returns gorm backed stores sharing db.
func NewPostgresStores(db *gorm.DB) *Stores {
	return &Stores{
		Rooms:        &roomRepository{db: db},
		Reservations: &reservationRepository{db: db},
		Blocks:       &blockRepository{db: db},
		Payments:     &paymentRepository{db: db},
		Discounts:    &discountRepository{db: db},
	}
}

type roomRepository struct {
	db *gorm.DB
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	return translate(conn(ctx, r.db).Create(room).Error, apperrors.ErrRoomNotFound)
}

func (r *roomRepository) Update(ctx context.Context, room *models.Room) error {
	res := conn(ctx, r.db).Model(&models.Room{}).
		Where("id = ?", room.ID).
		Select("*").Omit("id", "tenant_id", "created_at").
		Updates(room)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrRoomNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRoomNotFound
	}
	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Delete(&models.Room{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrRoomNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRoomNotFound
	}
	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := conn(ctx, r.db).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, translate(err, apperrors.ErrRoomNotFound)
	}
	return &room, nil
}

func (r *roomRepository) GetByNumber(ctx context.Context, tenantID, number string) (*models.Room, error) {
	var room models.Room
	err := conn(ctx, r.db).Where("tenant_id = ? AND number = ?", tenantID, number).First(&room).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrRoomNotFound)
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	query := conn(ctx, r.db).Model(&models.Room{})
	if filter.TenantID != "" {
		query = query.Where("tenant_id = ?", filter.TenantID)
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}
	var rooms []models.Room
	if err := query.Order("number ASC").Find(&rooms).Error; err != nil {
		return nil, translate(err, apperrors.ErrRoomNotFound)
	}
	return rooms, nil
}

type reservationRepository struct {
	db *gorm.DB
}

func (r *reservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	if res.Version == 0 {
		res.Version = 1
	}
	return translate(conn(ctx, r.db).Create(res).Error, apperrors.ErrReservationNotFound)
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := conn(ctx, r.db).Where("id = ?", id).First(&res).Error; err != nil {
		return nil, translate(err, apperrors.ErrReservationNotFound)
	}
	return &res, nil
}

func (r *reservationRepository) List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error) {
	query := conn(ctx, r.db).Model(&models.Reservation{})
	if filter.TenantID != "" {
		query = query.Where("tenant_id = ?", filter.TenantID)
	}
	if len(filter.RoomIDs) > 0 {
		query = query.Where("room_id IN ?", filter.RoomIDs)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ActiveOnly {
		query = query.Where("status <> ?", constants.ReservationStatusCancelled)
	}
	if filter.From != nil && filter.To != nil {
		query = query.Where("check_in < ? AND check_out > ?", *filter.To, *filter.From)
	}
	var out []models.Reservation
	if err := query.Order("check_in ASC, created_at ASC").Find(&out).Error; err != nil {
		return nil, translate(err, apperrors.ErrReservationNotFound)
	}
	return out, nil
}

func (r *reservationRepository) Update(ctx context.Context, res *models.Reservation) error {
	result := conn(ctx, r.db).Model(&models.Reservation{}).
		Where("id = ? AND version = ?", res.ID, res.Version).
		Updates(map[string]interface{}{
			"total_price":     res.TotalPrice,
			"discount_amount": res.DiscountAmount,
			"coupon_code":     res.CouponCode,
			"coupon_id":       res.CouponID,
			"guest_notes":     res.GuestNotes,
			"status":          res.Status,
			"qr_token":        res.QRToken,
			"checked_in_at":   res.CheckedInAt,
			"checked_out_at":  res.CheckedOutAt,
			"version":         res.Version + 1,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return translate(result.Error, apperrors.ErrReservationNotFound)
	}
	if result.RowsAffected == 0 {
		var count int64
		conn(ctx, r.db).Model(&models.Reservation{}).Where("id = ?", res.ID).Count(&count)
		if count == 0 {
			return apperrors.ErrReservationNotFound
		}
		return apperrors.ErrStaleWrite
	}
	res.Version++
	return nil
}

type blockRepository struct {
	db *gorm.DB
}

func (r *blockRepository) Create(ctx context.Context, b *models.RoomBlock) error {
	return translate(conn(ctx, r.db).Create(b).Error, apperrors.ErrBlockNotFound)
}

func (r *blockRepository) Update(ctx context.Context, b *models.RoomBlock) error {
	res := conn(ctx, r.db).Model(&models.RoomBlock{}).
		Where("id = ?", b.ID).
		Select("*").Omit("id", "tenant_id", "created_at").
		Updates(b)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrBlockNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrBlockNotFound
	}
	return nil
}

func (r *blockRepository) Delete(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Delete(&models.RoomBlock{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrBlockNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrBlockNotFound
	}
	return nil
}

func (r *blockRepository) GetByID(ctx context.Context, id string) (*models.RoomBlock, error) {
	var b models.RoomBlock
	if err := conn(ctx, r.db).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, translate(err, apperrors.ErrBlockNotFound)
	}
	return &b, nil
}

func (r *blockRepository) List(ctx context.Context, filter BlockFilter) ([]models.RoomBlock, error) {
	query := conn(ctx, r.db).Model(&models.RoomBlock{})
	if filter.TenantID != "" {
		query = query.Where("tenant_id = ?", filter.TenantID)
	}
	if len(filter.RoomIDs) > 0 {
		query = query.Where("room_id IN ?", filter.RoomIDs)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.ExcludeID != "" {
		query = query.Where("id <> ?", filter.ExcludeID)
	}
	if filter.From != nil && filter.To != nil {
		query = query.Where("start_date < ? AND end_date > ?", *filter.To, *filter.From)
	}
	var out []models.RoomBlock
	if err := query.Order("start_date ASC").Find(&out).Error; err != nil {
		return nil, translate(err, apperrors.ErrBlockNotFound)
	}
	return out, nil
}

type paymentRepository struct {
	db *gorm.DB
}

func (r *paymentRepository) Create(ctx context.Context, p *models.Payment) error {
	return translate(conn(ctx, r.db).Create(p).Error, apperrors.ErrPaymentNotFound)
}

func (r *paymentRepository) GetByReservationID(ctx context.Context, reservationID string) (*models.Payment, error) {
	var p models.Payment
	if err := conn(ctx, r.db).Where("reservation_id = ?", reservationID).First(&p).Error; err != nil {
		return nil, translate(err, apperrors.ErrPaymentNotFound)
	}
	return &p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *models.Payment) error {
	res := conn(ctx, r.db).Model(&models.Payment{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{"amount": p.Amount, "status": p.Status, "updated_at": time.Now()})
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrPaymentNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrPaymentNotFound
	}
	return nil
}

type discountRepository struct {
	db *gorm.DB
}

func (r *discountRepository) Create(ctx context.Context, d *models.Discount) error {
	return translate(conn(ctx, r.db).Create(d).Error, apperrors.ErrDiscountNotFound)
}

func (r *discountRepository) GetByID(ctx context.Context, id string) (*models.Discount, error) {
	var d models.Discount
	if err := conn(ctx, r.db).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, translate(err, apperrors.ErrDiscountNotFound)
	}
	return &d, nil
}

func (r *discountRepository) GetByCode(ctx context.Context, tenantID, code string) (*models.Discount, error) {
	var d models.Discount
	err := conn(ctx, r.db).Where("tenant_id = ? AND code = ?", tenantID, code).First(&d).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrDiscountNotFound)
	}
	return &d, nil
}

func (r *discountRepository) List(ctx context.Context, tenantID string) ([]models.Discount, error) {
	query := conn(ctx, r.db).Model(&models.Discount{})
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	var out []models.Discount
	if err := query.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, translate(err, apperrors.ErrDiscountNotFound)
	}
	return out, nil
}

func (r *discountRepository) IncrementUsage(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Model(&models.Discount{}).
		Where("id = ? AND (quantity = 0 OR used_count < quantity)", id).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrDiscountNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict("discount usage limit reached")
	}
	return nil
}
