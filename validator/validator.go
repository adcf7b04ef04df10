package validator

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
)

var (
	validate *playground.Validate
	once     sync.Once
)

func registerCustom(v *playground.Validate) {
	_ = v.RegisterValidation("roomtype", func(fl playground.FieldLevel) bool {
		return isOneOf(fl.Field().String(), constants.RoomTypes)
	})
	_ = v.RegisterValidation("blocktype", func(fl playground.FieldLevel) bool {
		return isOneOf(fl.Field().String(), []string{constants.BlockTypeMaintenance, constants.BlockTypeEvent, constants.BlockTypeOther})
	})
	_ = v.RegisterValidation("isodate", func(fl playground.FieldLevel) bool {
		_, err := time.Parse(constants.DateLayout, fl.Field().String())
		return err == nil
	})
}

// Instance returns the shared validator with the custom tags registered.
func Instance() *playground.Validate {
	once.Do(func() {
		validate = playground.New()
		registerCustom(validate)
	})
	return validate
}

// RegisterGinValidations makes the custom tags available to gin binding.
func RegisterGinValidations() {
	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		registerCustom(v)
	}
}

// Struct validates v and converts failures to a validation AppError.
func Struct(v interface{}) error {
	if err := Instance().Struct(v); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, describe(err), err)
	}
	return nil
}

func describe(err error) string {
	verrs, ok := err.(playground.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// ValidateRoom checks the catalog invariants of a room.
func ValidateRoom(room *models.Room) error {
	if strings.TrimSpace(room.Number) == "" {
		return apperrors.Validation("room number is required")
	}
	if err := room.ValidateType(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "invalid room type", err)
	}
	if !room.PricePerNight.GreaterThan(decimal.Zero) {
		return apperrors.Validation("pricePerNight must be positive")
	}
	if room.MaxOccupancy < 1 {
		return apperrors.Validation("maxOccupancy must be at least 1")
	}
	if room.RatingAverage < 0 || room.RatingAverage > 5 {
		return apperrors.Validation("ratingAverage must be between 0 and 5")
	}
	return nil
}

// ValidateDateRange requires from < to.
func ValidateDateRange(from, to time.Time, what string) error {
	if !to.After(from) {
		return apperrors.Validation(what + " end date must be after start date")
	}
	return nil
}

func ValidateBlockType(t string) error {
	if !isOneOf(t, []string{constants.BlockTypeMaintenance, constants.BlockTypeEvent, constants.BlockTypeOther}) {
		return apperrors.Validation("invalid block type: " + t)
	}
	return nil
}

func ValidateDiscount(discount *models.Discount) error {
	if strings.TrimSpace(discount.Code) == "" {
		return apperrors.Validation("discount code is required")
	}
	if discount.Name == "" {
		return apperrors.Validation("discount name is required")
	}
	if discount.Discount <= 0 || discount.Discount > 100 {
		return apperrors.Validation("discount must be between 1 and 100 percent")
	}
	if !discount.ToDate.After(discount.FromDate) {
		return apperrors.Validation("discount end date must be after start date")
	}
	if discount.Quantity < 0 {
		return apperrors.Validation("discount quantity cannot be negative")
	}
	if err := discount.ValidateStatusDiscount(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "invalid discount status", err)
	}
	return nil
}

func isOneOf(v string, options []string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
