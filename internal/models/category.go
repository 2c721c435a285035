package models

// EventCategories lists the categories an event can be filed under
var EventCategories = []string{
	"Music",
	"Conference",
	"Workshop",
	"Seminar",
	"Networking",
	"Sports",
	"Arts & Culture",
	"Food & Drink",
	"Technology",
	"Business",
	"Education",
	"Health & Wellness",
	"Entertainment",
	"Other",
}

// IsValidCategory returns true if name is one of EventCategories
func IsValidCategory(name string) bool {
	for _, c := range EventCategories {
		if c == name {
			return true
		}
	}
	return false
}
