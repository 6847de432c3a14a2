package handlers

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"child-clinic-server/internal/middleware"
	"child-clinic-server/internal/models"
	"child-clinic-server/internal/store"
	"child-clinic-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Store store.AppointmentStore
	Now   func() time.Time
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(s store.AppointmentStore) *AppointmentHandler {
	return &AppointmentHandler{Store: s, Now: time.Now}
}

// CreateAppointmentRequest represents the request body for booking an
// appointment. The guardian email is not part of the body: it is stamped
// from the authenticated identity.
type CreateAppointmentRequest struct {
	DoctorName string `json:"doctorName" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	ChildName  string `json:"childName" binding:"required"`
	ChildAge   string `json:"childAge" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Issue      string `json:"issue" binding:"required"`
}

// CreateAppointment handles booking a new appointment for the
// authenticated guardian.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	guardianEmail, exists := middleware.GetUserEmailFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Guardian identity not found in token")
		return
	}

	appointment := models.Appointment{
		GuardianEmail: guardianEmail,
		DoctorName:    req.DoctorName,
		Date:          req.Date,
		Time:          req.Time,
		ChildName:     req.ChildName,
		ChildAge:      req.ChildAge,
		Phone:         req.Phone,
		Issue:         req.Issue,
	}

	if err := h.Store.Create(c.Request.Context(), &appointment); err != nil {
		if store.IsValidation(err) {
			utils.BadRequest(c, "Validation failed: "+err.Error())
			return
		}
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment booked successfully", appointment.ViewAt(h.Now()))
}

// GetAppointments handles fetching every appointment. Admin only; the
// role check lives in the route setup.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	appointments, err := h.Store.ListAll(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	views := h.presentAppointments(c, appointments)
	utils.Success(c, "Appointments fetched successfully", views)
}

// GetAppointmentsByEmail handles fetching appointments for a guardian
// email. Guardians may only query their own email; admins may query any.
func (h *AppointmentHandler) GetAppointmentsByEmail(c *gin.Context) {
	email := c.Param("email")

	userEmail, _ := middleware.GetUserEmailFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && userEmail != email {
		utils.Forbidden(c, "You may only view your own appointments")
		return
	}

	appointments, err := h.Store.ListByGuardianEmail(c.Request.Context(), email)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	views := h.presentAppointments(c, appointments)
	utils.Success(c, "Appointments fetched successfully", views)
}

// CancelAppointmentResponse carries the record removed by a cancel, when
// one matched.
type CancelAppointmentResponse struct {
	Deleted       bool                `json:"deleted"`
	DeletedRecord *models.Appointment `json:"deletedRecord,omitempty"`
}

// CancelAppointment handles deleting an appointment by id. Only the
// owning guardian or an admin may cancel; cancelling an id that no longer
// exists succeeds with deleted=false so retries stay harmless.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	id := c.Param("id")

	userEmail, _ := middleware.GetUserEmailFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	if userRole != models.RoleAdmin {
		existing, err := h.Store.GetByID(c.Request.Context(), id)
		if err == nil && existing.GuardianEmail != userEmail {
			utils.Forbidden(c, "You are not authorized to cancel this appointment")
			return
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
	}

	deleted, found, err := h.Store.DeleteByID(c.Request.Context(), id)
	if err != nil {
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		return
	}

	if !found {
		utils.Success(c, "Nothing to delete", CancelAppointmentResponse{Deleted: false})
		return
	}
	utils.Success(c, "Appointment cancelled successfully", CancelAppointmentResponse{Deleted: true, DeletedRecord: &deleted})
}

// presentAppointments applies the optional search and sort query params
// and attaches the derived status to each record.
func (h *AppointmentHandler) presentAppointments(c *gin.Context, appointments []models.Appointment) []models.AppointmentView {
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		appointments = filterAppointments(appointments, search)
	}

	switch c.Query("sort") {
	case "date_asc":
		sortAppointmentsByDate(appointments, true)
	case "date_desc":
		sortAppointmentsByDate(appointments, false)
	}

	now := h.Now()
	views := make([]models.AppointmentView, len(appointments))
	for i := range appointments {
		views[i] = appointments[i].ViewAt(now)
	}
	return views
}

// filterAppointments keeps records whose guardian email, doctor name or
// child name contains the query, case-insensitively.
func filterAppointments(appointments []models.Appointment, query string) []models.Appointment {
	query = strings.ToLower(query)
	filtered := make([]models.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if strings.Contains(strings.ToLower(a.GuardianEmail), query) ||
			strings.Contains(strings.ToLower(a.DoctorName), query) ||
			strings.Contains(strings.ToLower(a.ChildName), query) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

func sortAppointmentsByDate(appointments []models.Appointment, ascending bool) {
	sort.SliceStable(appointments, func(i, j int) bool {
		// Dates are "YYYY-MM-DD" text, so the lexicographic order is the
		// chronological one. Ties fall back to the slot label.
		a, b := appointments[i], appointments[j]
		if !ascending {
			a, b = b, a
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return slotMinutes(a.Time) < slotMinutes(b.Time)
	})
}

// slotMinutes converts a slot label like "4:30 PM" to minutes since
// midnight for ordering. Unparsable labels sort first.
func slotMinutes(slot string) int {
	t, err := time.Parse(models.SlotLayout, slot)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}
