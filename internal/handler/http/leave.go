package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler struct {
	service leave.Service
}

func NewLeaveHandler(service leave.Service) *LeaveHandler {
	return &LeaveHandler{service: service}
}

// Apply handles POST /leaves
func (h *LeaveHandler) Apply(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	request, err := h.service.Apply(r.Context(), employeeID, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", request)
}

// Approve handles PUT /leaves/{id}/approve
func (h *LeaveHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, true)
}

// Reject handles PUT /leaves/{id}/reject
func (h *LeaveHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, false)
}

func (h *LeaveHandler) review(w http.ResponseWriter, r *http.Request, approve bool) {
	requestID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(requestID) {
		response.BadRequest(w, "Invalid leave request id", nil)
		return
	}

	approverID := middleware.EmployeeID(r)
	if approverID == "" {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var req leave.ReviewLeaveRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	var (
		request *leave.LeaveRequest
		err     error
		message string
	)
	if approve {
		request, err = h.service.Approve(r.Context(), requestID, approverID, &req)
		message = "Leave request approved"
	} else {
		request, err = h.service.Reject(r.Context(), requestID, approverID, &req)
		message = "Leave request rejected"
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, request)
}

// GetByID handles GET /leaves/{id}
func (h *LeaveHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(requestID) {
		response.BadRequest(w, "Invalid leave request id", nil)
		return
	}

	request, err := h.service.GetByID(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// List handles GET /leaves
func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := leaveFilterFromQuery(r)

	requests, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, response.NewMeta(filter.Page, filter.Limit, total))
}

// ListMine handles GET /leaves/my
func (h *LeaveHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	filter := leaveFilterFromQuery(r)
	filter.EmployeeID = employeeID

	requests, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, response.NewMeta(filter.Page, filter.Limit, total))
}

// GetMyBalances handles GET /leaves/balance
func (h *LeaveHandler) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == "" {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	h.balances(w, r, employeeID)
}

// GetEmployeeBalances handles GET /leaves/balance/{employeeID}
func (h *LeaveHandler) GetEmployeeBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	h.balances(w, r, employeeID)
}

func (h *LeaveHandler) balances(w http.ResponseWriter, r *http.Request, employeeID string) {
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be an integer", nil)
			return
		}
		year = parsed
	}

	balances, err := h.service.GetBalances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// GetCalendar handles GET /leaves/calendar
func (h *LeaveHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	from, ok := parseDateQuery(w, r, "start_date")
	if !ok {
		return
	}
	to, ok := parseDateQuery(w, r, "end_date")
	if !ok {
		return
	}

	requests, err := h.service.GetCalendar(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func leaveFilterFromQuery(r *http.Request) leave.ListLeaveFilter {
	query := r.URL.Query()

	filter := leave.ListLeaveFilter{
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
	return filter
}

func parseDateQuery(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	date, ok := validator.IsValidDate(raw)
	if !ok {
		response.BadRequest(w, name+" must be a valid date (YYYY-MM-DD)", nil)
		return time.Time{}, false
	}
	return date, true
}
