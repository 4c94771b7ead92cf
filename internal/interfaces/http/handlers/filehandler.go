package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantgate/tenantgate/internal/interfaces/http/middleware"
	"github.com/tenantgate/tenantgate/internal/shared/constants"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
	"github.com/tenantgate/tenantgate/internal/shared/utils"
)

// FileHandler answers the gated file routes. Bytes are handed to an external store,
// so the handler only acknowledges what the quota gate admitted.
type FileHandler struct {
	uploadField string
	logger      logger.Interface
}

func NewFileHandler(uploadField string, logger logger.Interface) *FileHandler {
	return &FileHandler{
		uploadField: uploadField,
		logger:      logger,
	}
}

type UploadResponse struct {
	FileName   string  `json:"file_name"`
	FileSizeMB float64 `json:"file_size_mb"`
}

// Upload handles POST /api/files
//
//	@Summary	Upload file
//	@Tags		files
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	Bearer
//	@Param		file	formData	file	true	"File"
//	@Success	201		{object}	utils.APIResponse{data=UploadResponse}
//	@Failure	402		{object}	utils.APIResponse	"Subscription overdue"
//	@Failure	403		{object}	utils.APIResponse	"Not entitled or quota exhausted"
//	@Failure	413		{object}	utils.APIResponse	"File too large or would exceed quota"
//	@Router		/api/files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	file, err := c.FormFile(h.uploadField)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "file is required")
		return
	}

	sizeMB, _ := middleware.UploadSizeMB(c)
	h.logger.Infow("file upload accepted",
		"file_name", file.Filename,
		"file_size_mb", sizeMB,
		"tenant_id", c.GetUint(constants.ContextKeyTenantID),
	)

	utils.CreatedResponse(c, UploadResponse{
		FileName:   file.Filename,
		FileSizeMB: sizeMB,
	}, "File uploaded successfully")
}

// List handles GET /api/files
//
//	@Summary	List files
//	@Tags		files
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=utils.ListResponse}
//	@Router		/api/files [get]
func (h *FileHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	utils.ListSuccessResponse(c, []UploadResponse{}, 0, pagination.Page, pagination.PageSize)
}
