package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/services/logger"
	"hotelbooking/validator"
)

// CouponResult is the outcome of validating a code against a subtotal.
// Discount never exceeds the subtotal.
type CouponResult struct {
	Valid       bool
	CouponID    string
	Discount    decimal.Decimal
	FinalAmount decimal.Decimal
}

// CouponResolver validates discount codes and records their redemption.
type CouponResolver interface {
	Validate(ctx context.Context, tenantID, code string, subtotal decimal.Decimal) (CouponResult, error)
	CommitUsage(ctx context.Context, couponID string) error
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DiscountResolver resolves codes against the tenant's Discount records.
type DiscountResolver struct {
	discounts repository.DiscountStore
	clock     Clock
}

func NewDiscountResolver(discounts repository.DiscountStore, clock Clock) *DiscountResolver {
	return &DiscountResolver{discounts: discounts, clock: clock}
}

func (r *DiscountResolver) Validate(ctx context.Context, tenantID, code string, subtotal decimal.Decimal) (CouponResult, error) {
	invalid := CouponResult{Valid: false, Discount: decimal.Zero, FinalAmount: subtotal}

	d, err := r.discounts.GetByCode(ctx, tenantID, normalizeCode(code))
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
			return invalid, nil
		}
		return invalid, err
	}
	if !discountUsable(d, r.clock.today()) {
		return invalid, nil
	}

	discount := subtotal.Mul(decimal.NewFromInt(int64(d.Discount))).Div(decimal.NewFromInt(100)).Round(2)
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return CouponResult{
		Valid:       true,
		CouponID:    d.ID,
		Discount:    discount,
		FinalAmount: subtotal.Sub(discount),
	}, nil
}

func (r *DiscountResolver) CommitUsage(ctx context.Context, couponID string) error {
	return r.discounts.IncrementUsage(ctx, couponID)
}

func discountUsable(d *models.Discount, today time.Time) bool {
	if d.Status != constants.DiscountStatusActive {
		return false
	}
	if today.Before(NormalizeDate(d.FromDate)) || today.After(NormalizeDate(d.ToDate)) {
		return false
	}
	if d.Quantity > 0 && d.UsedCount >= d.Quantity {
		return false
	}
	return true
}

type DiscountInput struct {
	Code        string
	Name        string
	Description string
	Quantity    int
	FromDate    time.Time
	ToDate      time.Time
	Percent     int
	Status      *int
}

// DiscountService manages the tenant's discount codes.
type DiscountService struct {
	discounts repository.DiscountStore
	log       logger.Logger
}

func NewDiscountService(discounts repository.DiscountStore, log logger.Logger) *DiscountService {
	return &DiscountService{discounts: discounts, log: log}
}

func (s *DiscountService) Create(ctx context.Context, in DiscountInput) (*models.Discount, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	if tenantID == "" {
		return nil, apperrors.ErrTenantRequired
	}

	d := &models.Discount{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Code:        normalizeCode(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Quantity:    in.Quantity,
		FromDate:    NormalizeDate(in.FromDate),
		ToDate:      NormalizeDate(in.ToDate),
		Discount:    in.Percent,
		Status:      constants.DiscountStatusActive,
	}
	if in.Status != nil {
		d.Status = *in.Status
	}
	if err := validator.ValidateDiscount(d); err != nil {
		return nil, err
	}
	if _, err := s.discounts.GetByCode(ctx, tenantID, d.Code); err == nil {
		return nil, apperrors.Conflict("discount code " + d.Code + " already exists")
	} else if !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		return nil, err
	}
	if err := s.discounts.Create(ctx, d); err != nil {
		return nil, err
	}
	s.log.Info("discount %s created in tenant %s", d.Code, tenantID)
	return d, nil
}

func (s *DiscountService) List(ctx context.Context) ([]models.Discount, error) {
	tenantID, err := ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.discounts.List(ctx, tenantID)
}
