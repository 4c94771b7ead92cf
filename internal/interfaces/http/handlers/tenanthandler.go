package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantgate/tenantgate/internal/application/subscription/usecases"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
	"github.com/tenantgate/tenantgate/internal/shared/utils"
)

// TenantHandler is the operator console for tenants and their subscription lifecycle.
type TenantHandler struct {
	createTenantUC     createTenantUseCase
	getTenantUC        getTenantUseCase
	listTenantsUC      listTenantsUseCase
	changeTenantPlanUC changeTenantPlanUseCase
	setTenantActiveUC  setTenantActiveUseCase
	renewTenantUC      renewTenantUseCase
	blockTenantUC      blockTenantUseCase
	unblockTenantUC    blockTenantUseCase
	summaryUC          getSubscriptionSummaryUseCase
	sweepUC            sweepSubscriptionsUseCase
	logger             logger.Interface
}

// TenantHandlerDeps groups the use cases behind TenantHandler.
type TenantHandlerDeps struct {
	CreateTenant     createTenantUseCase
	GetTenant        getTenantUseCase
	ListTenants      listTenantsUseCase
	ChangeTenantPlan changeTenantPlanUseCase
	SetTenantActive  setTenantActiveUseCase
	RenewTenant      renewTenantUseCase
	BlockTenant      blockTenantUseCase
	UnblockTenant    blockTenantUseCase
	Summary          getSubscriptionSummaryUseCase
	Sweep            sweepSubscriptionsUseCase
}

func NewTenantHandler(deps TenantHandlerDeps, logger logger.Interface) *TenantHandler {
	return &TenantHandler{
		createTenantUC:     deps.CreateTenant,
		getTenantUC:        deps.GetTenant,
		listTenantsUC:      deps.ListTenants,
		changeTenantPlanUC: deps.ChangeTenantPlan,
		setTenantActiveUC:  deps.SetTenantActive,
		renewTenantUC:      deps.RenewTenant,
		blockTenantUC:      deps.BlockTenant,
		unblockTenantUC:    deps.UnblockTenant,
		summaryUC:          deps.Summary,
		sweepUC:            deps.Sweep,
		logger:             logger,
	}
}

type CreateTenantRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	PlanID          uint   `json:"plan_id" binding:"required"`
	NextPaymentDate string `json:"next_payment_date"`
	Active          *bool  `json:"active"`
}

type ChangeTenantPlanRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

type SetTenantActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// RenewTenantRequest accepts loose operator input. payment_date may be a date or an
// RFC3339 instant and defaults to now; duration_months may be a number or a numeric
// string and defaults to 1. Values of the wrong JSON type fall back to the defaults.
type RenewTenantRequest struct {
	PaymentDate    json.RawMessage `json:"payment_date" swaggertype:"string"`
	DurationMonths json.RawMessage `json:"duration_months" swaggertype:"integer"`
}

// SweepResponse reports a manual sweep.
type SweepResponse struct {
	Updated int  `json:"updated"`
	Scanned int  `json:"scanned"`
	Overdue int  `json:"overdue"`
	Pending int  `json:"pending"`
	Failed  int  `json:"failed"`
	Skipped bool `json:"skipped"`
}

// CreateTenant handles POST /admin/tenants
//
//	@Summary	Create tenant
//	@Tags		admin-tenants
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		tenant	body		CreateTenantRequest	true	"Tenant"
//	@Success	201		{object}	utils.APIResponse{data=subdto.TenantDTO}
//	@Failure	404		{object}	utils.APIResponse	"Plan not found"
//	@Router		/admin/tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req CreateTenantRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create tenant", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTenantUC.Execute(c.Request.Context(), usecases.CreateTenantCommand{
		Name:            req.Name,
		PlanID:          req.PlanID,
		NextPaymentDate: req.NextPaymentDate,
		Active:          req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Tenant created successfully")
}

// GetTenant handles GET /admin/tenants/:id
//
//	@Summary	Get tenant
//	@Tags		admin-tenants
//	@Produce	json
//	@Security	Bearer
//	@Param		id	path		int	true	"Tenant ID"
//	@Success	200	{object}	utils.APIResponse{data=subdto.TenantDTO}
//	@Router		/admin/tenants/{id} [get]
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTenantUC.Execute(c.Request.Context(), tenantID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTenants handles GET /admin/tenants
//
//	@Summary	List tenants
//	@Tags		admin-tenants
//	@Produce	json
//	@Security	Bearer
//	@Param		payment_status	query		string	false	"active, pending or overdue"
//	@Param		plan_id			query		int		false	"Plan ID"
//	@Param		page			query		int		false	"Page"
//	@Param		page_size		query		int		false	"Page size"
//	@Success	200				{object}	utils.APIResponse{data=utils.ListResponse}
//	@Router		/admin/tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	query := usecases.ListTenantsQuery{
		PaymentStatus: c.Query("payment_status"),
		Page:          pagination.Page,
		PageSize:      pagination.PageSize,
	}
	if raw := c.Query("plan_id"); raw != "" {
		planID, err := parseUintQuery(raw, "plan")
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		query.PlanID = planID
	}

	result, err := h.listTenantsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tenants, result.Total, result.Page, result.PageSize)
}

// ChangeTenantPlan handles PUT /admin/tenants/:id/plan
//
//	@Summary	Change tenant plan
//	@Tags		admin-tenants
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		id		path		int						true	"Tenant ID"
//	@Param		plan	body		ChangeTenantPlanRequest	true	"New plan"
//	@Success	200		{object}	utils.APIResponse{data=subdto.TenantDTO}
//	@Router		/admin/tenants/{id}/plan [put]
func (h *TenantHandler) ChangeTenantPlan(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeTenantPlanRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for change tenant plan", "tenant_id", tenantID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.changeTenantPlanUC.Execute(c.Request.Context(), usecases.ChangeTenantPlanCommand{
		TenantID: tenantID,
		PlanID:   req.PlanID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tenant plan changed successfully", result)
}

// SetTenantActive handles PUT /admin/tenants/:id/active
//
//	@Summary		Set tenant active flag
//	@Description	Independent of the payment status; unblocking never touches this flag.
//	@Tags			admin-tenants
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int						true	"Tenant ID"
//	@Param			active	body		SetTenantActiveRequest	true	"Flag"
//	@Success		200		{object}	utils.APIResponse{data=subdto.TenantDTO}
//	@Router			/admin/tenants/{id}/active [put]
func (h *TenantHandler) SetTenantActive(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetTenantActiveRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for set tenant active", "tenant_id", tenantID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setTenantActiveUC.Execute(c.Request.Context(), usecases.SetTenantActiveCommand{
		TenantID: tenantID,
		Active:   *req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tenant updated successfully", result)
}

// RenewTenant handles POST /admin/tenants/:id/renew
//
//	@Summary	Renew subscription
//	@Tags		admin-tenants
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		id		path		int					true	"Tenant ID"
//	@Param		renewal	body		RenewTenantRequest	false	"Payment"
//	@Success	200		{object}	utils.APIResponse{data=subdto.TenantDTO}
//	@Failure	404		{object}	utils.APIResponse
//	@Router		/admin/tenants/{id}/renew [post]
func (h *TenantHandler) RenewTenant(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RenewTenantRequest
	if err := utils.BindOptionalJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for renew tenant", "tenant_id", tenantID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.renewTenantUC.Execute(c.Request.Context(), usecases.RenewTenantCommand{
		TenantID:       tenantID,
		PaymentDate:    usecases.NormalizePaymentDate(req.PaymentDate),
		DurationMonths: usecases.NormalizeDurationMonths(req.DurationMonths),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription renewed successfully", result)
}

// BlockTenant handles POST /admin/tenants/:id/block
//
//	@Summary	Block tenant for non-payment
//	@Tags		admin-tenants
//	@Produce	json
//	@Security	Bearer
//	@Param		id	path		int	true	"Tenant ID"
//	@Success	200	{object}	utils.APIResponse{data=subdto.TenantDTO}
//	@Router		/admin/tenants/{id}/block [post]
func (h *TenantHandler) BlockTenant(c *gin.Context) {
	h.changeStatus(c, h.blockTenantUC, "Tenant blocked successfully")
}

// UnblockTenant handles POST /admin/tenants/:id/unblock
//
//	@Summary	Unblock tenant
//	@Tags		admin-tenants
//	@Produce	json
//	@Security	Bearer
//	@Param		id	path		int	true	"Tenant ID"
//	@Success	200	{object}	utils.APIResponse{data=subdto.TenantDTO}
//	@Router		/admin/tenants/{id}/unblock [post]
func (h *TenantHandler) UnblockTenant(c *gin.Context) {
	h.changeStatus(c, h.unblockTenantUC, "Tenant unblocked successfully")
}

func (h *TenantHandler) changeStatus(c *gin.Context, uc blockTenantUseCase, message string) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := uc.Execute(c.Request.Context(), tenantID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// GetTenantSubscription handles GET /admin/tenants/:id/subscription
//
//	@Summary	Tenant subscription summary
//	@Tags		admin-tenants
//	@Produce	json
//	@Security	Bearer
//	@Param		id	path		int	true	"Tenant ID"
//	@Success	200	{object}	utils.APIResponse{data=subdto.SubscriptionSummaryDTO}
//	@Router		/admin/tenants/{id}/subscription [get]
func (h *TenantHandler) GetTenantSubscription(c *gin.Context) {
	tenantID, err := utils.ParseUintParam(c, "id", "tenant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.summaryUC.Execute(c.Request.Context(), tenantID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RunSweep handles POST /admin/subscriptions/sweep
//
//	@Summary	Run subscription sweep now
//	@Tags		admin-tenants
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=SweepResponse}
//	@Router		/admin/subscriptions/sweep [post]
func (h *TenantHandler) RunSweep(c *gin.Context) {
	result, err := h.sweepUC.Run(c.Request.Context())
	if err != nil {
		h.logger.Errorw("manual subscription sweep failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription sweep completed", SweepResponse{
		Updated: result.Updated(),
		Scanned: result.Scanned,
		Overdue: result.Overdue,
		Pending: result.Pending,
		Failed:  result.Failed,
		Skipped: result.Skipped,
	})
}
