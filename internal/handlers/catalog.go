package handlers

import (
	"github.com/gin-gonic/gin"

	"child-clinic-server/internal/utils"
)

// Doctor is a static reference entry, not a persisted entity. Bookings
// carry the doctor name as free text.
type Doctor struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

var doctors = []Doctor{
	{ID: 1, Name: "Dr. Priya Sharma", Specialization: "Pediatrician"},
	{ID: 2, Name: "Dr. Rajesh Kumar", Specialization: "Neonatologist"},
	{ID: 3, Name: "Dr. Kavitha Menon", Specialization: "Pediatric Surgeon"},
	{ID: 4, Name: "Dr. Arjun Reddy", Specialization: "Child Psychologist"},
}

// timeSlots are the bookable slot labels. They are reference content for
// the booking form; the service does not reject other labels.
var timeSlots = []string{
	"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM",
	"11:00 AM", "11:30 AM", "4:00 PM", "4:30 PM",
	"5:00 PM", "5:30 PM",
}

// CatalogHandler serves the static doctor and time slot listings.
type CatalogHandler struct{}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// GetDoctors handles fetching the clinic's doctor listing.
func (h *CatalogHandler) GetDoctors(c *gin.Context) {
	utils.Success(c, "Doctors fetched successfully", doctors)
}

// GetTimeSlots handles fetching the bookable time slot labels.
func (h *CatalogHandler) GetTimeSlots(c *gin.Context) {
	utils.Success(c, "Time slots fetched successfully", timeSlots)
}
