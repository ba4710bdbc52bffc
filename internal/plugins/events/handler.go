package events

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hearth/internal/apperror"
	"github.com/keyxmakerx/hearth/internal/plugins/auth"
	"github.com/keyxmakerx/hearth/internal/plugins/families"
)

// Handler holds the HTTP handlers for event endpoints.
type Handler struct {
	service EventService
}

// NewHandler creates a new event handler.
func NewHandler(service EventService) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/v1/families/:familyID/events?from=...&to=...
// Times are RFC 3339; the default window is today through 30 days out.
func (h *Handler) List(c echo.Context) error {
	now := time.Now().UTC()

	w := Window{
		From: now.Truncate(24 * time.Hour),
		To:   now.Truncate(24 * time.Hour).Add(30 * 24 * time.Hour),
	}
	if from := c.QueryParam("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return apperror.NewValidation("from must be an RFC 3339 timestamp")
		}
		w.From = t.UTC()
	}
	if to := c.QueryParam("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return apperror.NewValidation("to must be an RFC 3339 timestamp")
		}
		w.To = t.UTC()
	}

	views, err := h.service.ListViews(c.Request().Context(), c.Param("familyID"), w, now)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"events": views,
		"from":   w.From,
		"to":     w.To,
	})
}

// Get handles GET /api/v1/families/:familyID/events/:eventID.
func (h *Handler) Get(c echo.Context) error {
	evt, err := h.service.Get(c.Request().Context(), c.Param("familyID"), c.Param("eventID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, evt)
}

// Create handles POST /api/v1/families/:familyID/events. Adult+.
func (h *Handler) Create(c echo.Context) error {
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	input, err := eventInputFromRequest(req.Title, req.Description, req.Location,
		req.StartTime, req.EndTime, req.AllDay, req.RRule, req.ParticipantIDs)
	if err != nil {
		return err
	}

	evt, err := h.service.Create(c.Request().Context(), c.Param("familyID"), auth.GetUserID(c), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, evt)
}

// Update handles PUT /api/v1/families/:familyID/events/:eventID. Adult+.
func (h *Handler) Update(c echo.Context) error {
	var req UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	input, err := eventInputFromRequest(req.Title, req.Description, req.Location,
		req.StartTime, req.EndTime, req.AllDay, req.RRule, req.ParticipantIDs)
	if err != nil {
		return err
	}

	evt, err := h.service.Update(c.Request().Context(), c.Param("familyID"), c.Param("eventID"), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, evt)
}

// Delete handles DELETE /api/v1/families/:familyID/events/:eventID. Adult+.
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("familyID"), c.Param("eventID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Export handles GET /api/v1/families/:familyID/events/export.ics.
func (h *Handler) Export(c echo.Context) error {
	fc := families.GetFamilyContext(c)
	familyName := ""
	if fc != nil && fc.Family != nil {
		familyName = fc.Family.Name
	}

	data, err := h.service.ExportICS(c.Request().Context(), c.Param("familyID"), familyName)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="hearth.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(data))
}

// eventInputFromRequest parses the wire DTO into a validated-enough input
// for the service. Time parsing happens here; semantic checks in the service.
func eventInputFromRequest(title, description, location, start, end string, allDay bool, rule string, participantIDs []string) (EventInput, error) {
	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return EventInput{}, apperror.NewValidation("start_time must be an RFC 3339 timestamp")
	}
	endTime, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return EventInput{}, apperror.NewValidation("end_time must be an RFC 3339 timestamp")
	}

	return EventInput{
		Title:          title,
		Description:    description,
		Location:       location,
		StartTime:      startTime,
		EndTime:        endTime,
		AllDay:         allDay,
		RRule:          rule,
		ParticipantIDs: participantIDs,
	}, nil
}
