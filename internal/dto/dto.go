package dto

import "time"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type OrderItemRequest struct {
	Meal     string `json:"meal" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string             `json:"deliveryAddress"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CreateSubscriptionRequest struct {
	PlanType        string     `json:"planType" validate:"required,oneof=weekly monthly"`
	MealType        string     `json:"mealType" validate:"required,oneof=breakfast lunch dinner all"`
	Preference      string     `json:"preference" validate:"required,oneof=veg non-veg"`
	StartDate       *time.Time `json:"startDate"`
	DeliveryAddress string     `json:"deliveryAddress"`
}

type UpdateSubscriptionRequest struct {
	Preference      string `json:"preference" validate:"omitempty,oneof=veg non-veg"`
	DeliveryAddress string `json:"deliveryAddress"`
}

type CreateMealRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=500"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Category    string `json:"category" validate:"required,oneof=breakfast lunch dinner instant"`
	Type        string `json:"type" validate:"required,oneof=veg non-veg"`
	Image       string `json:"image"`
	IsAvailable *bool  `json:"isAvailable"`
}

type UpdateMealRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Price       *int64  `json:"price" validate:"omitempty,gt=0"`
	Category    *string `json:"category" validate:"omitempty,oneof=breakfast lunch dinner instant"`
	Type        *string `json:"type" validate:"omitempty,oneof=veg non-veg"`
	Image       *string `json:"image"`
	IsAvailable *bool   `json:"isAvailable"`
}

type CreatePaymentIntentRequest struct {
	Type          string `json:"type" validate:"required,oneof=order subscription"`
	ID            string `json:"id" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// PaymentIntentResponse is the opaque client-side handle for the mock
// gateway. Nothing is persisted until the payment is verified.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
}

type VerifyPaymentRequest struct {
	Type            string `json:"type" validate:"required,oneof=order subscription"`
	ID              string `json:"id" validate:"required"`
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
	TransactionID   string `json:"transactionId" validate:"required"`
	PaymentMethod   string `json:"paymentMethod"`
}
