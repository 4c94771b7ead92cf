package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantgate/tenantgate/internal/interfaces/http/middleware"
	"github.com/tenantgate/tenantgate/internal/shared/authorization"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
	"github.com/tenantgate/tenantgate/internal/shared/utils"
)

// SubscriptionHandler serves a tenant's view of its own subscription. These routes are
// not behind the subscription gate, so an overdue tenant can still see why it is blocked.
type SubscriptionHandler struct {
	summaryUC getSubscriptionSummaryUseCase
	usage     storageUsageReader
	logger    logger.Interface
}

func NewSubscriptionHandler(summaryUC getSubscriptionSummaryUseCase, usage storageUsageReader, logger logger.Interface) *SubscriptionHandler {
	return &SubscriptionHandler{
		summaryUC: summaryUC,
		usage:     usage,
		logger:    logger,
	}
}

// GetMySubscription handles GET /api/subscription
//
//	@Summary	Current tenant subscription
//	@Tags		subscription
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=subdto.SubscriptionSummaryDTO}
//	@Failure	401	{object}	utils.APIResponse
//	@Failure	404	{object}	utils.APIResponse
//	@Router		/api/subscription [get]
func (h *SubscriptionHandler) GetMySubscription(c *gin.Context) {
	tenantID, ok := h.callerTenant(c)
	if !ok {
		return
	}

	result, err := h.summaryUC.Execute(c.Request.Context(), tenantID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetMyStorageUsage handles GET /api/storage/usage
//
//	@Summary	Current tenant storage usage
//	@Tags		subscription
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=storagequota.Usage}
//	@Failure	401	{object}	utils.APIResponse
//	@Router		/api/storage/usage [get]
func (h *SubscriptionHandler) GetMyStorageUsage(c *gin.Context) {
	tenantID, ok := h.callerTenant(c)
	if !ok {
		return
	}

	result, err := h.usage.GetUsage(c.Request.Context(), tenantID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) callerTenant(c *gin.Context) (uint, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return 0, false
	}
	if actor.TenantID == 0 {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError(noTenantMessage(actor)))
		return 0, false
	}
	return actor.TenantID, true
}

func noTenantMessage(actor authorization.Actor) string {
	if actor.IsOperator() {
		return "operator accounts have no tenant subscription"
	}
	return "no tenant is associated with this account"
}
