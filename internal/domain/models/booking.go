package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Booking is a customer's reservation of a tour (and optional package).
type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user"`
	TourID          string        `json:"tour"`
	PackageID       *string       `json:"package"`
	TravelersCount  int           `json:"travelers_count"`
	TotalPrice      Money         `json:"total_price"`
	Status          BookingStatus `json:"status"`
	BookingDate     time.Time     `json:"booking_date"`
	SpecialRequests string        `json:"special_requests"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// BookingInput is the client-settable part of a booking.
type BookingInput struct {
	TourID          string  `json:"tour" binding:"required"`
	PackageID       *string `json:"package"`
	TravelersCount  int     `json:"travelers_count" binding:"required,gte=1"`
	SpecialRequests string  `json:"special_requests" binding:"max=2000"`
}
