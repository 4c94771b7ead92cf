package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantgate/tenantgate/internal/application/catalog/usecases"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
	"github.com/tenantgate/tenantgate/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC     createPlanUseCase
	updatePlanUC     updatePlanUseCase
	getPlanUC        getPlanUseCase
	listPlansUC      listPlansUseCase
	deletePlanUC     deletePlanUseCase
	setPlanModulesUC setPlanModulesUseCase
	logger           logger.Interface
}

func NewPlanHandler(
	createPlanUC createPlanUseCase,
	updatePlanUC updatePlanUseCase,
	getPlanUC getPlanUseCase,
	listPlansUC listPlansUseCase,
	deletePlanUC deletePlanUseCase,
	setPlanModulesUC setPlanModulesUseCase,
	logger logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:     createPlanUC,
		updatePlanUC:     updatePlanUC,
		getPlanUC:        getPlanUC,
		listPlansUC:      listPlansUC,
		deletePlanUC:     deletePlanUC,
		setPlanModulesUC: setPlanModulesUC,
		logger:           logger,
	}
}

type CreatePlanRequest struct {
	Code           string                 `json:"code" binding:"required,max=50"`
	Name           string                 `json:"name" binding:"required,max=100"`
	Description    string                 `json:"description"`
	MonthlyPrice   uint64                 `json:"monthly_price"`
	StorageLimitMB int64                  `json:"storage_limit_mb" binding:"gte=0"`
	MaxFileSizeMB  int64                  `json:"max_file_size_mb" binding:"gte=0"`
	MaxUsers       int                    `json:"max_users" binding:"gte=0"`
	Metadata       map[string]interface{} `json:"metadata"`
}

type UpdatePlanRequest struct {
	Name           *string                `json:"name" binding:"omitempty,max=100"`
	Description    *string                `json:"description"`
	MonthlyPrice   *uint64                `json:"monthly_price"`
	StorageLimitMB *int64                 `json:"storage_limit_mb" binding:"omitempty,gte=0"`
	MaxFileSizeMB  *int64                 `json:"max_file_size_mb" binding:"omitempty,gte=0"`
	MaxUsers       *int                   `json:"max_users" binding:"omitempty,gte=0"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// SetPlanModulesRequest replaces the full module set of a plan. An empty list unlinks everything.
type SetPlanModulesRequest struct {
	ModuleIDs []uint `json:"module_ids" binding:"required"`
}

// CreatePlan handles POST /admin/plans
//
//	@Summary		Create plan
//	@Tags			admin-catalog
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			plan	body		CreatePlanRequest	true	"Plan"
//	@Success		201		{object}	utils.APIResponse{data=catalogdto.PlanDTO}
//	@Failure		400		{object}	utils.APIResponse
//	@Failure		409		{object}	utils.APIResponse
//	@Router			/admin/plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), usecases.CreatePlanCommand{
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		MonthlyPrice:   req.MonthlyPrice,
		StorageLimitMB: req.StorageLimitMB,
		MaxFileSizeMB:  req.MaxFileSizeMB,
		MaxUsers:       req.MaxUsers,
		Metadata:       req.Metadata,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Plan created successfully")
}

// UpdatePlan handles PUT /admin/plans/:id
//
//	@Summary		Update plan
//	@Tags			admin-catalog
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int					true	"Plan ID"
//	@Param			plan	body		UpdatePlanRequest	true	"Fields to change"
//	@Success		200		{object}	utils.APIResponse{data=catalogdto.PlanDTO}
//	@Failure		404		{object}	utils.APIResponse
//	@Router			/admin/plans/{id} [put]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planID, err := utils.ParseUintParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update plan", "plan_id", planID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updatePlanUC.Execute(c.Request.Context(), usecases.UpdatePlanCommand{
		PlanID:         planID,
		Name:           req.Name,
		Description:    req.Description,
		MonthlyPrice:   req.MonthlyPrice,
		StorageLimitMB: req.StorageLimitMB,
		MaxFileSizeMB:  req.MaxFileSizeMB,
		MaxUsers:       req.MaxUsers,
		Metadata:       req.Metadata,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", result)
}

// GetPlan handles GET /admin/plans/:id
//
//	@Summary		Get plan
//	@Tags			admin-catalog
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"Plan ID"
//	@Success		200	{object}	utils.APIResponse{data=catalogdto.PlanDTO}
//	@Failure		404	{object}	utils.APIResponse
//	@Router			/admin/plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := utils.ParseUintParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPlanUC.Execute(c.Request.Context(), planID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListPlans handles GET /admin/plans
//
//	@Summary		List plans
//	@Tags			admin-catalog
//	@Produce		json
//	@Security		Bearer
//	@Success		200	{object}	utils.APIResponse{data=[]catalogdto.PlanDTO}
//	@Router			/admin/plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	result, err := h.listPlansUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeletePlan handles DELETE /admin/plans/:id
//
//	@Summary		Delete plan
//	@Description	Fails with 409 while a tenant is still subscribed to the plan.
//	@Tags			admin-catalog
//	@Security		Bearer
//	@Param			id	path	int	true	"Plan ID"
//	@Success		204
//	@Failure		404	{object}	utils.APIResponse
//	@Failure		409	{object}	utils.APIResponse
//	@Router			/admin/plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID, err := utils.ParseUintParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deletePlanUC.Execute(c.Request.Context(), planID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// SetPlanModules handles PUT /admin/plans/:id/modules
//
//	@Summary		Replace plan modules
//	@Tags			admin-catalog
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int						true	"Plan ID"
//	@Param			modules	body		SetPlanModulesRequest	true	"Module IDs"
//	@Success		200		{object}	utils.APIResponse{data=catalogdto.PlanDTO}
//	@Failure		400		{object}	utils.APIResponse
//	@Failure		404		{object}	utils.APIResponse
//	@Router			/admin/plans/{id}/modules [put]
func (h *PlanHandler) SetPlanModules(c *gin.Context) {
	planID, err := utils.ParseUintParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetPlanModulesRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for set plan modules", "plan_id", planID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setPlanModulesUC.Execute(c.Request.Context(), usecases.SetPlanModulesCommand{
		PlanID:    planID,
		ModuleIDs: req.ModuleIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan modules updated successfully", result)
}
