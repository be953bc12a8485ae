package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler struct {
	service payroll.Service
}

func NewPayrollHandler(service payroll.Service) *PayrollHandler {
	return &PayrollHandler{service: service}
}

// Generate handles POST /payroll
func (h *PayrollHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	record, err := h.service.Generate(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll record generated", record)
}

// Update handles PUT /payroll/{id}
func (h *PayrollHandler) Update(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(recordID) {
		response.BadRequest(w, "Invalid payroll record id", nil)
		return
	}

	var req payroll.UpdatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	record, err := h.service.Update(r.Context(), recordID, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record updated", record)
}

// BulkGenerate handles POST /payroll/bulk. The summary is always a 200:
// per-employee failures are data, not an error.
func (h *PayrollHandler) BulkGenerate(w http.ResponseWriter, r *http.Request) {
	var req payroll.BulkGeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.BulkGenerate(r.Context(), req.Month, req.Year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk payroll generation finished", result)
}

// GetByID handles GET /payroll/{id}
func (h *PayrollHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(recordID) {
		response.BadRequest(w, "Invalid payroll record id", nil)
		return
	}

	record, err := h.service.GetByID(r.Context(), recordID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// List handles GET /payroll
func (h *PayrollHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := payroll.ListPayrollFilter{
		EmployeeID: query.Get("employee_id"),
		Status:     query.Get("status"),
	}
	filter.Month, _ = strconv.Atoi(query.Get("month"))
	filter.Year, _ = strconv.Atoi(query.Get("year"))
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))
	filter.Normalize()

	records, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, response.NewMeta(filter.Page, filter.Limit, total))
}

// GetEmployeeHistory handles GET /payroll/employee/{employeeID}
func (h *PayrollHandler) GetEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	records, err := h.service.GetEmployeeHistory(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Stats handles GET /payroll/stats
func (h *PayrollHandler) Stats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		response.BadRequest(w, "month must be an integer", nil)
		return
	}
	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		response.BadRequest(w, "year must be an integer", nil)
		return
	}

	stats, err := h.service.Stats(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// UpsertSalaryStructure handles PUT /payroll/structures/{employeeID}
func (h *PayrollHandler) UpsertSalaryStructure(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	var req payroll.UpsertSalaryStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	structure, err := h.service.UpsertSalaryStructure(r.Context(), employeeID, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary structure saved", structure)
}

// GetSalaryStructure handles GET /payroll/structures/{employeeID}
func (h *PayrollHandler) GetSalaryStructure(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	structure, err := h.service.GetSalaryStructure(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, structure)
}
