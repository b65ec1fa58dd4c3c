package dto

import "github.com/black-yen/sketer-workmoney/internal/core/domain"

// CoachResponse is one roster member.
type CoachResponse struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

// ListCoachesResponse is the full roster.
type ListCoachesResponse struct {
	Coaches []CoachResponse `json:"coaches"`
}

// UpdateCoachRoleRequest is the explicit default-role update command.
type UpdateCoachRoleRequest struct {
	Role string `json:"role" binding:"required,nonblank"`
}

// ToCoachResponse converts a roster member for the wire.
func ToCoachResponse(c domain.Coach) CoachResponse {
	return CoachResponse{Name: c.Name, Role: c.Role, IsAdmin: c.IsAdmin}
}
