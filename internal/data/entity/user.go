package entity

import "time"

type UserType string

const (
	UserTypeCustomer  UserType = "customer"
	UserTypeMuthawwif UserType = "muthawwif"
)

type User struct {
	Base
	Username       string   `db:"username"`
	Email          string   `db:"email"`
	PasswordHash   string   `db:"password"`
	Type           UserType `db:"type"`
	FullName       string   `db:"full_name"`
	PassportNumber *string  `db:"passport_number"`
	MobileNumber   *string  `db:"mobile_number"`
	WhatsappNumber *string  `db:"whatsapp_number"`
	Nationality    *string  `db:"nationality"`
	PhotoURL       *string  `db:"photo_url"`
	Bio            *string  `db:"bio"`
	Experience     *int     `db:"experience"`
}

// MuthawwifFilter narrows the public muthawwif directory. From/To
// restrict results to guides with at least one free slot in the window.
type MuthawwifFilter struct {
	Nationality *string
	ServiceType *ServiceType
	From        *time.Time
	To          *time.Time
}
