package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantgate/tenantgate/internal/application/catalog/usecases"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
	"github.com/tenantgate/tenantgate/internal/shared/utils"
)

// ModuleHandler serves modules and the feature paths they own.
type ModuleHandler struct {
	createModuleUC  createModuleUseCase
	updateModuleUC  updateModuleUseCase
	getModuleUC     getModuleUseCase
	listModulesUC   listModulesUseCase
	deleteModuleUC  deleteModuleUseCase
	createFeatureUC createFeatureUseCase
	updateFeatureUC updateFeatureUseCase
	listFeaturesUC  listFeaturesUseCase
	deleteFeatureUC deleteFeatureUseCase
	logger          logger.Interface
}

func NewModuleHandler(
	createModuleUC createModuleUseCase,
	updateModuleUC updateModuleUseCase,
	getModuleUC getModuleUseCase,
	listModulesUC listModulesUseCase,
	deleteModuleUC deleteModuleUseCase,
	createFeatureUC createFeatureUseCase,
	updateFeatureUC updateFeatureUseCase,
	listFeaturesUC listFeaturesUseCase,
	deleteFeatureUC deleteFeatureUseCase,
	logger logger.Interface,
) *ModuleHandler {
	return &ModuleHandler{
		createModuleUC:  createModuleUC,
		updateModuleUC:  updateModuleUC,
		getModuleUC:     getModuleUC,
		listModulesUC:   listModulesUC,
		deleteModuleUC:  deleteModuleUC,
		createFeatureUC: createFeatureUC,
		updateFeatureUC: updateFeatureUC,
		listFeaturesUC:  listFeaturesUC,
		deleteFeatureUC: deleteFeatureUC,
		logger:          logger,
	}
}

type CreateModuleRequest struct {
	Code        string `json:"code" binding:"required,max=50"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	IsCore      bool   `json:"is_core"`
}

type UpdateModuleRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	IsCore      *bool   `json:"is_core"`
	IsActive    *bool   `json:"is_active"`
}

// CreateFeatureRequest declares a path pattern. A single trailing * makes it a prefix match.
type CreateFeatureRequest struct {
	FeaturePath string `json:"feature_path" binding:"required,startswith=/,max=255"`
	FeatureName string `json:"feature_name" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateFeatureRequest struct {
	FeaturePath *string `json:"feature_path" binding:"omitempty,startswith=/,max=255"`
	FeatureName *string `json:"feature_name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

// CreateModule handles POST /admin/modules
//
//	@Summary	Create module
//	@Tags		admin-catalog
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		module	body		CreateModuleRequest	true	"Module"
//	@Success	201		{object}	utils.APIResponse{data=catalogdto.ModuleDTO}
//	@Failure	409		{object}	utils.APIResponse
//	@Router		/admin/modules [post]
func (h *ModuleHandler) CreateModule(c *gin.Context) {
	var req CreateModuleRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create module", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createModuleUC.Execute(c.Request.Context(), usecases.CreateModuleCommand{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		IsCore:      req.IsCore,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Module created successfully")
}

// UpdateModule handles PUT /admin/modules/:id
//
//	@Summary	Update module
//	@Tags		admin-catalog
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		id		path		int					true	"Module ID"
//	@Param		module	body		UpdateModuleRequest	true	"Fields to change"
//	@Success	200		{object}	utils.APIResponse{data=catalogdto.ModuleDTO}
//	@Router		/admin/modules/{id} [put]
func (h *ModuleHandler) UpdateModule(c *gin.Context) {
	moduleID, err := utils.ParseUintParam(c, "id", "module")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateModuleRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update module", "module_id", moduleID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateModuleUC.Execute(c.Request.Context(), usecases.UpdateModuleCommand{
		ModuleID:    moduleID,
		Name:        req.Name,
		Description: req.Description,
		IsCore:      req.IsCore,
		IsActive:    req.IsActive,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Module updated successfully", result)
}

// GetModule handles GET /admin/modules/:id
//
//	@Summary	Get module
//	@Tags		admin-catalog
//	@Produce	json
//	@Security	Bearer
//	@Param		id	path		int	true	"Module ID"
//	@Success	200	{object}	utils.APIResponse{data=catalogdto.ModuleDTO}
//	@Router		/admin/modules/{id} [get]
func (h *ModuleHandler) GetModule(c *gin.Context) {
	moduleID, err := utils.ParseUintParam(c, "id", "module")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getModuleUC.Execute(c.Request.Context(), moduleID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListModules handles GET /admin/modules
//
//	@Summary	List modules
//	@Tags		admin-catalog
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=[]catalogdto.ModuleDTO}
//	@Router		/admin/modules [get]
func (h *ModuleHandler) ListModules(c *gin.Context) {
	result, err := h.listModulesUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteModule handles DELETE /admin/modules/:id. Plan links and features go with it.
//
//	@Summary	Delete module
//	@Tags		admin-catalog
//	@Security	Bearer
//	@Param		id	path	int	true	"Module ID"
//	@Success	204
//	@Router		/admin/modules/{id} [delete]
func (h *ModuleHandler) DeleteModule(c *gin.Context) {
	moduleID, err := utils.ParseUintParam(c, "id", "module")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteModuleUC.Execute(c.Request.Context(), moduleID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// CreateFeature handles POST /admin/modules/:id/features
//
//	@Summary	Add feature to module
//	@Tags		admin-catalog
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		id		path		int						true	"Module ID"
//	@Param		feature	body		CreateFeatureRequest	true	"Feature"
//	@Success	201		{object}	utils.APIResponse{data=catalogdto.FeatureDTO}
//	@Router		/admin/modules/{id}/features [post]
func (h *ModuleHandler) CreateFeature(c *gin.Context) {
	moduleID, err := utils.ParseUintParam(c, "id", "module")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateFeatureRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create feature", "module_id", moduleID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createFeatureUC.Execute(c.Request.Context(), usecases.CreateFeatureCommand{
		ModuleID:    moduleID,
		FeaturePath: req.FeaturePath,
		FeatureName: req.FeatureName,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Feature created successfully")
}

// ListFeatures handles GET /admin/modules/:id/features
//
//	@Summary	List module features
//	@Tags		admin-catalog
//	@Produce	json
//	@Security	Bearer
//	@Param		id	path		int	true	"Module ID"
//	@Success	200	{object}	utils.APIResponse{data=[]catalogdto.FeatureDTO}
//	@Router		/admin/modules/{id}/features [get]
func (h *ModuleHandler) ListFeatures(c *gin.Context) {
	moduleID, err := utils.ParseUintParam(c, "id", "module")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listFeaturesUC.Execute(c.Request.Context(), moduleID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateFeature handles PUT /admin/features/:id
//
//	@Summary	Update feature
//	@Tags		admin-catalog
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		id		path		int						true	"Feature ID"
//	@Param		feature	body		UpdateFeatureRequest	true	"Fields to change"
//	@Success	200		{object}	utils.APIResponse{data=catalogdto.FeatureDTO}
//	@Router		/admin/features/{id} [put]
func (h *ModuleHandler) UpdateFeature(c *gin.Context) {
	featureID, err := utils.ParseUintParam(c, "id", "feature")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateFeatureRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update feature", "feature_id", featureID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateFeatureUC.Execute(c.Request.Context(), usecases.UpdateFeatureCommand{
		FeatureID:   featureID,
		FeaturePath: req.FeaturePath,
		FeatureName: req.FeatureName,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Feature updated successfully", result)
}

// DeleteFeature handles DELETE /admin/features/:id
//
//	@Summary	Delete feature
//	@Tags		admin-catalog
//	@Security	Bearer
//	@Param		id	path	int	true	"Feature ID"
//	@Success	204
//	@Router		/admin/features/{id} [delete]
func (h *ModuleHandler) DeleteFeature(c *gin.Context) {
	featureID, err := utils.ParseUintParam(c, "id", "feature")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteFeatureUC.Execute(c.Request.Context(), featureID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
