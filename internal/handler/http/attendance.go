package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

type AttendanceHandler struct {
	service attendance.Service
}

func NewAttendanceHandler(service attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// CheckIn handles POST /attendance/check-in
func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var req attendance.CheckInRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	record, err := h.service.CheckIn(r.Context(), employeeID, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", record)
}

// CheckOut handles PUT /attendance/check-out
func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	record, err := h.service.CheckOut(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", record)
}

// Mark handles POST /attendance/mark
func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	record, err := h.service.Mark(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked", record)
}

// List handles GET /attendance
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := attendance.ListAttendanceFilter{
		EmployeeID: query.Get("employee_id"),
		Status:     query.Get("status"),
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	if raw := query.Get("start_date"); raw != "" {
		if date, ok := validator.IsValidDate(raw); ok {
			filter.From = &date
		}
	}
	if raw := query.Get("end_date"); raw != "" {
		if date, ok := validator.IsValidDate(raw); ok {
			filter.To = &date
		}
	}
	filter.Normalize()

	records, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, response.NewMeta(filter.Page, filter.Limit, total))
}

// ListToday handles GET /attendance/today
func (h *AttendanceHandler) ListToday(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Report handles GET /attendance/report
func (h *AttendanceHandler) Report(w http.ResponseWriter, r *http.Request) {
	from, ok := parseDateQuery(w, r, "start_date")
	if !ok {
		return
	}
	to, ok := parseDateQuery(w, r, "end_date")
	if !ok {
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID != "" && !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	report, err := h.service.Report(r.Context(), from, to, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}
