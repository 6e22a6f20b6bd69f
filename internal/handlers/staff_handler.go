package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/audit"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/cache"
	paymentDomain "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/domain/payment"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httpresp"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/timezone"
)

type StaffHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache cache.Availability
}

func NewStaffHandler(db *gorm.DB, audit *audit.Dispatcher, cache cache.Availability) *StaffHandler {
	return &StaffHandler{db: db, audit: audit, cache: cache}
}

// --------- Requests ---------

type CreateStaffRequest struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=6"`
	Phone    string     `json:"phone"`
	RoleID   *uuid.UUID `json:"roleId"`

	Specialties     []string        `json:"specialties"`
	CommissionType  string          `json:"commissionType"`
	CommissionValue decimal.Decimal `json:"commissionValue"`
	IsAvailable     *bool           `json:"isAvailable"`
	BlockedDates    []string        `json:"blockedDates"`
}

// UpdateStaffRequest is a patch: nil fields are left untouched.
type UpdateStaffRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`

	Specialties     *[]string        `json:"specialties"`
	CommissionType  *string          `json:"commissionType"`
	CommissionValue *decimal.Decimal `json:"commissionValue"`
	IsAvailable     *bool            `json:"isAvailable"`
	BlockedDates    *[]string        `json:"blockedDates"`
}

type CommissionTierRequest struct {
	MinAmount decimal.Decimal     `json:"minAmount"`
	MaxAmount decimal.NullDecimal `json:"maxAmount"`
	Rate      decimal.Decimal     `json:"rate"`
}

type CommissionTiersRequest struct {
	Tiers []CommissionTierRequest `json:"tiers" binding:"required"`
}

// --------- Validation ---------

func validateCommission(rawType string, value decimal.Decimal) (paymentDomain.CommissionType, error) {
	commissionType, err := paymentDomain.ParseCommissionType(rawType)
	if err != nil {
		return "", err
	}
	if value.IsNegative() {
		return "", httperr.ErrInvalid("invalid_commission_value", "commissionValue must not be negative")
	}
	if commissionType == paymentDomain.CommissionPercent && value.GreaterThan(decimal.NewFromInt(100)) {
		return "", httperr.ErrInvalid("invalid_commission_value", "A percent commission must not exceed 100")
	}
	return commissionType, nil
}

// normalizeBlockedDates stores every blocked day as YYYY-MM-DD (UTC).
func normalizeBlockedDates(raw []string) ([]string, error) {
	blocked := make([]string, 0, len(raw))
	for _, r := range raw {
		d, err := timezone.ParseDate(r)
		if err != nil {
			return nil, err
		}
		blocked = append(blocked, d.Format(timezone.DateLayout))
	}
	return blocked, nil
}

// --------- Handlers ---------

func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	commissionType, err := validateCommission(req.CommissionType, req.CommissionValue)
	if err != nil {
		fail(c, err)
		return
	}

	blocked, err := normalizeBlockedDates(req.BlockedDates)
	if err != nil {
		fail(c, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		RoleID:       req.RoleID,
	}

	staff := models.Staff{
		Specialties:     req.Specialties,
		CommissionType:  string(commissionType),
		CommissionValue: req.CommissionValue.Round(2),
		IsAvailable:     req.IsAvailable == nil || *req.IsAvailable,
		BlockedDates:    blocked,
	}
	if staff.Specialties == nil {
		staff.Specialties = []string{}
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrInvalid("email_already_registered", "A user with this email already exists")
		}

		if err := tx.Omit("Role").Create(&user).Error; err != nil {
			return err
		}

		staff.UserID = user.ID
		return tx.Omit("User", "WorkingHours", "CommissionTiers").Create(&staff).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	staff.User = &user
	httpresp.Created(c, staff)
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var staff models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		Preload("User").
		Preload("WorkingHours", func(db *gorm.DB) *gorm.DB {
			return db.Order("weekday ASC")
		}).
		Preload("CommissionTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_amount ASC")
		}).
		First(&staff, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "staff_not_found", "Staff not found")
			return
		}
		fail(c, err)
		return
	}

	httpresp.OK(c, staff)
}

// Update patches the staff profile and drops every cached availability day
// of the staff member.
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	var blocked []string
	if req.BlockedDates != nil {
		var err error
		if blocked, err = normalizeBlockedDates(*req.BlockedDates); err != nil {
			fail(c, err)
			return
		}
	}

	userFields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "name must not be empty")
			return
		}
		userFields["name"] = name
	}
	if req.Phone != nil {
		userFields["phone"] = strings.TrimSpace(*req.Phone)
	}

	var staff models.Staff
	changed := map[string]any{}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&staff, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("staff_not_found", "Staff not found")
			}
			return err
		}

		rawType, value := staff.CommissionType, staff.CommissionValue
		if req.CommissionType != nil {
			rawType = *req.CommissionType
		}
		if req.CommissionValue != nil {
			value = *req.CommissionValue
		}
		commissionType, err := validateCommission(rawType, value)
		if err != nil {
			return err
		}

		if string(commissionType) != staff.CommissionType || !value.Round(2).Equal(staff.CommissionValue) {
			staff.CommissionType = string(commissionType)
			staff.CommissionValue = value.Round(2)
			changed["commissionType"] = staff.CommissionType
			changed["commissionValue"] = staff.CommissionValue.StringFixed(2)
		}
		if req.IsAvailable != nil && *req.IsAvailable != staff.IsAvailable {
			staff.IsAvailable = *req.IsAvailable
			changed["isAvailable"] = staff.IsAvailable
		}
		if req.BlockedDates != nil {
			staff.BlockedDates = blocked
			changed["blockedDates"] = blocked
		}
		if req.Specialties != nil {
			staff.Specialties = *req.Specialties
			if staff.Specialties == nil {
				staff.Specialties = []string{}
			}
			changed["specialties"] = staff.Specialties
		}

		if err := tx.Omit(clause.Associations).Save(&staff).Error; err != nil {
			return err
		}

		if len(userFields) > 0 {
			if err := tx.Model(&models.User{}).
				Where("id = ?", staff.UserID).
				Updates(userFields).Error; err != nil {
				return err
			}
			for k, v := range userFields {
				changed[k] = v
			}
		}

		return tx.Preload("User").First(&staff, "id = ?", id).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	h.cache.InvalidateStaff(c.Request.Context(), staff.ID)

	if len(changed) > 0 {
		h.audit.Dispatch(audit.Event{
			UserID:   actorID(c),
			Action:   audit.ActionStaffUpdated,
			Entity:   "staff",
			EntityID: &staff.ID,
			Metadata: changed,
		})
	}

	httpresp.OK(c, staff)
}

// UpdateCommissionTiers replaces the TABLE brackets. Brackets must be
// ordered, non-overlapping and only the last may be open ended.
func (h *StaffHandler) UpdateCommissionTiers(c *gin.Context) {
	staffID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req CommissionTiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	tiers := make([]models.CommissionTier, 0, len(req.Tiers))
	for i, t := range req.Tiers {
		if t.MinAmount.IsNegative() || t.Rate.IsNegative() || t.Rate.GreaterThan(decimal.NewFromInt(100)) {
			httperr.BadRequest(c, "invalid_commission_tier", "Tier amounts and rates must be within range")
			return
		}
		if t.MaxAmount.Valid && !t.MaxAmount.Decimal.GreaterThan(t.MinAmount) {
			httperr.BadRequest(c, "invalid_commission_tier", "maxAmount must be greater than minAmount")
			return
		}
		if i > 0 {
			prev := req.Tiers[i-1]
			if !prev.MaxAmount.Valid || t.MinAmount.LessThan(prev.MaxAmount.Decimal) {
				httperr.BadRequest(c, "invalid_commission_tier", "Tiers must be ordered and must not overlap")
				return
			}
		}

		tiers = append(tiers, models.CommissionTier{
			StaffID:   staffID,
			MinAmount: t.MinAmount.Round(2),
			MaxAmount: t.MaxAmount,
			Rate:      t.Rate.Round(2),
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var staff models.Staff
		if err := tx.Select("id").First(&staff, "id = ?", staffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("staff_not_found", "Staff not found")
			}
			return err
		}

		if err := tx.Where("staff_id = ?", staffID).Delete(&models.CommissionTier{}).Error; err != nil {
			return err
		}
		if len(tiers) > 0 {
			return tx.Create(&tiers).Error
		}
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, tiers)
}
