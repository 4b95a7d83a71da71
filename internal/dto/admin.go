package dto

import "fooddelivery/internal/domain"

// UserListEntry is the hash-free projection of an account served to admins.
type UserListEntry struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
	Phone      string `json:"phoneNumber,omitempty"`
	Address    string `json:"address,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

type UserListResponse struct {
	Users []UserListEntry `json:"users"`
	Total int             `json:"total"`
}

type StatsResponse struct {
	domain.UserStats
	VerificationRate int `json:"verificationRate"`
	AdminRate        int `json:"adminRate"`
}
