package seating

import (
	"strings"

	"guestpass-backend/models"
)

// Zone is a named seating area. Color is a display hint only.
type Zone struct {
	Name        string `json:"zone"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

const (
	ZoneVIP       = "VIP Front Section"
	ZoneProtocol  = "Protocol Section"
	ZoneAssociate = "Associate Section"
	ZoneGeneral   = "General Section"
)

// AssignZone maps a guest type to its seating zone. Unknown types land in the general section.
func AssignZone(guestType models.GuestType) Zone {
	switch guestType {
	case models.GuestTypeVIP:
		return Zone{Name: ZoneVIP, Description: "Reserved VIP seating at the front", Color: "purple"}
	case models.GuestTypeSpouse:
		return Zone{Name: ZoneVIP, Description: "Seated with VIP guest", Color: "purple"}
	case models.GuestTypePA:
		return Zone{Name: ZoneProtocol, Description: "Personal Assistant seating area", Color: "blue"}
	case models.GuestTypeAssociate:
		return Zone{Name: ZoneAssociate, Description: "General associate seating", Color: "green"}
	default:
		return Zone{Name: ZoneGeneral, Description: "General seating area", Color: "gray"}
	}
}

// ColorClass picks display classes from a free-text zone name.
func ColorClass(zone string) string {
	switch {
	case strings.Contains(zone, "VIP"):
		return "bg-purple-100 text-purple-800 border-purple-300"
	case strings.Contains(zone, "Protocol"):
		return "bg-blue-100 text-blue-800 border-blue-300"
	case strings.Contains(zone, "Associate"):
		return "bg-green-100 text-green-800 border-green-300"
	default:
		return "bg-gray-100 text-gray-800 border-gray-300"
	}
}

// Apply fills in the derived zone on a guest.
func Apply(g *models.Guest) {
	g.Zone = AssignZone(g.Type).Name
}
