package domain

import (
	"regexp"
	"strings"
)

// GhanaPhonePattern matches local (0XXXXXXXXX) and international (+233XXXXXXXXX)
// numbers on the networks KayExpress serves.
var GhanaPhonePattern = regexp.MustCompile(`^(\+233|0)(20|23|24|26|27|28|50|53|54|55|56|57|59)\d{7}$`)

// GhanaRegions maps region slugs to display names (all 16 regions).
var GhanaRegions = map[string]string{
	"greater_accra": "Greater Accra",
	"ashanti":       "Ashanti",
	"western":       "Western",
	"western_north": "Western North",
	"central":       "Central",
	"volta":         "Volta",
	"oti":           "Oti",
	"eastern":       "Eastern",
	"northern":      "Northern",
	"savannah":      "Savannah",
	"north_east":    "North East",
	"upper_east":    "Upper East",
	"upper_west":    "Upper West",
	"ahafo":         "Ahafo",
	"bono":          "Bono",
	"bono_east":     "Bono East",
}

func ValidRegion(slug string) bool {
	_, ok := GhanaRegions[strings.ToLower(strings.TrimSpace(slug))]
	return ok
}

func ValidGhanaPhone(phone string) bool {
	return GhanaPhonePattern.MatchString(strings.TrimSpace(phone))
}

// MaskPhone hides the middle digits of a phone number for payloads
// not owned by the viewer, keeping the prefix and last four digits.
func MaskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) < 8 {
		return phone
	}
	keepHead := 4
	if strings.HasPrefix(phone, "+") {
		keepHead = 6
	}
	tail := phone[len(phone)-4:]
	if keepHead > len(phone)-4 {
		keepHead = len(phone) - 4
	}
	return phone[:keepHead] + strings.Repeat("*", len(phone)-keepHead-4) + tail
}
