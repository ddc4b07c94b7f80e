package model

import "time"

type MealCategory string

const (
	CategoryBreakfast MealCategory = "breakfast"
	CategoryLunch     MealCategory = "lunch"
	CategoryDinner    MealCategory = "dinner"
	CategoryInstant   MealCategory = "instant"
)

type MealPreference string

const (
	PreferenceVeg    MealPreference = "veg"
	PreferenceNonVeg MealPreference = "non-veg"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Terminal reports whether no further status transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

type PlanType string

const (
	PlanWeekly  PlanType = "weekly"
	PlanMonthly PlanType = "monthly"
)

type SubscriptionMealType string

const (
	MealTypeBreakfast SubscriptionMealType = "breakfast"
	MealTypeLunch     SubscriptionMealType = "lunch"
	MealTypeDinner    SubscriptionMealType = "dinner"
	MealTypeAll       SubscriptionMealType = "all"
)

type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleManager UserRole = "manager"
)

type User struct {
	ID           string   `gorm:"primaryKey;size:64;not null" json:"id"`
	Name         string   `gorm:"size:64;not null" json:"name"`
	Email        string   `gorm:"size:128;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:128;not null" json:"-"`
	Address      string   `gorm:"size:256" json:"address"`
	Role         UserRole `gorm:"size:16;not null" json:"role"` // user, manager
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Meal struct {
	ID          string         `gorm:"primaryKey;size:64;not null" json:"id"`
	Name        string         `gorm:"size:64;not null" json:"name"`
	Description string         `gorm:"size:512" json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // whole currency units
	Category    MealCategory   `gorm:"size:16;index;not null" json:"category"`
	Type        MealPreference `gorm:"size:16;index;not null" json:"type"`
	Image       string         `gorm:"size:128" json:"image"`
	IsAvailable bool           `gorm:"not null" json:"isAvailable"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type Order struct {
	ID              string        `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID          string        `gorm:"size:64;index;not null" json:"user"`
	TotalAmount     int64         `gorm:"not null" json:"totalAmount"` // snapshot at creation, never recomputed
	Status          OrderStatus   `gorm:"size:16;index;not null" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"size:16;not null" json:"paymentStatus"`
	DeliveryAddress string        `gorm:"size:256;not null" json:"deliveryAddress"`
	OrderDate       time.Time     `json:"orderDate"`

	// payment details, filled when the ledger marks the order paid
	PaymentID     string `gorm:"size:64" json:"paymentId,omitempty"`
	PaymentMethod string `gorm:"size:32" json:"paymentMethod,omitempty"`
	PaymentAmount int64  `json:"paymentAmount,omitempty"`

	// guards concurrent status mutations
	Version   int64     `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

type OrderItem struct {
	ID uint `gorm:"primaryKey" json:"-"`
	// FK → order.id
	OrderID string `gorm:"size:64;index;not null" json:"-"`
	// FK → meal.id
	MealID    string `gorm:"size:64;index;not null" json:"meal"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	UnitPrice int64  `gorm:"not null" json:"unitPrice"` // meal price at order time

	CreatedAt time.Time `json:"-"`
}

type Subscription struct {
	ID              string               `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID          string               `gorm:"size:64;index;not null" json:"user"`
	PlanType        PlanType             `gorm:"size:16;not null" json:"planType"` // immutable after creation
	MealType        SubscriptionMealType `gorm:"size:16;not null" json:"mealType"` // immutable after creation
	Preference      MealPreference       `gorm:"size:16;not null" json:"preference"`
	StartDate       time.Time            `gorm:"not null" json:"startDate"`
	EndDate         time.Time            `gorm:"not null" json:"endDate"`
	DeliveryAddress string               `gorm:"size:256;not null" json:"deliveryAddress"`
	TotalAmount     int64                `gorm:"not null" json:"totalAmount"`
	Status          SubscriptionStatus   `gorm:"size:16;index;not null" json:"status"`
	PaymentStatus   PaymentStatus        `gorm:"size:16;not null" json:"paymentStatus"`

	Version   int64     `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Payment struct {
	ID     string `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID string `gorm:"size:64;index;not null" json:"user"`
	// exactly one of OrderID / SubscriptionID is set
	OrderID        *string       `gorm:"size:64;index" json:"orderId,omitempty"`
	SubscriptionID *string       `gorm:"size:64;index" json:"subscriptionId,omitempty"`
	Amount         int64         `gorm:"not null" json:"amount"`
	PaymentMethod  string        `gorm:"size:32;not null" json:"paymentMethod"`
	TransactionID  string        `gorm:"size:64;not null" json:"transactionId"`
	Status         PaymentStatus `gorm:"size:16;not null" json:"status"`
	Timestamp      time.Time     `json:"timestamp"`
	CreatedAt      time.Time     `json:"-"`
}
