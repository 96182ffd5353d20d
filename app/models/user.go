package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	SUBSCRIPTION_TRIAL     = "trial"
	SUBSCRIPTION_ACTIVE    = "active"
	SUBSCRIPTION_EXPIRED   = "expired"
	SUBSCRIPTION_CANCELLED = "cancelled"
)

// User is an account in the master store. Every user owns exactly one tenant
// database; TenantDBName is assigned at provisioning time and never changes.
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Email              string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Password           string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	CompanyName        string         `gorm:"type:varchar(150)" json:"company_name" validate:"required,min=2,max=150"`
	Phone              string         `gorm:"type:varchar(50);default:null" json:"phone" validate:"max=50"`
	Address            string         `gorm:"type:varchar(255);default:null" json:"address" validate:"max=255"`
	PlanID             uint           `gorm:"index" json:"plan_id" validate:"required"`
	Plan               *Plan          `gorm:"foreignKey:PlanID" json:"-"`
	TenantDBName       string         `gorm:"uniqueIndex;type:varchar(120)" json:"tenant_db_name" validate:"required"`
	TenantDBURL        string         `gorm:"type:varchar(255)" json:"-" validate:"required"`
	SubscriptionStatus string         `gorm:"type:varchar(20);default:'trial';index:idx_users_sub_active" json:"subscription_status" validate:"oneof=trial active expired cancelled"`
	TrialStartDate     time.Time      `gorm:"type:timestamp" json:"trial_start_date"`
	TrialEndDate       *time.Time     `gorm:"type:timestamp;default:null" json:"trial_end_date"`
	ProductID          string         `gorm:"type:varchar(50)" json:"product_id" validate:"required,max=50"`
	IsActive           bool           `gorm:"default:true;index:idx_users_sub_active" json:"is_active"`
	LastLoginAt        *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// IsTrialExpired reports whether the user is on a trial that has run out.
// Expiry is evaluated lazily against the clock, nothing is written.
func (u *User) IsTrialExpired(now time.Time) bool {
	if u.SubscriptionStatus != SUBSCRIPTION_TRIAL {
		return false
	}
	if u.TrialEndDate == nil {
		return true
	}
	return now.After(*u.TrialEndDate)
}

// HasAccess reports whether the user may use the service at the given time:
// the account must be active and either subscribed or inside the trial window.
func (u *User) HasAccess(now time.Time) bool {
	if !u.IsActive {
		return false
	}
	if u.SubscriptionStatus == SUBSCRIPTION_TRIAL {
		return !u.IsTrialExpired(now)
	}
	return u.SubscriptionStatus == SUBSCRIPTION_ACTIVE
}
