package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantgate/tenantgate/internal/application/storagequota"
	"github.com/tenantgate/tenantgate/internal/shared/authorization"
	"github.com/tenantgate/tenantgate/internal/shared/constants"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/goroutine"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
	"github.com/tenantgate/tenantgate/internal/shared/utils"
)

const recordUsageTimeout = 10 * time.Second

// UploadChecker evaluates an upload against the tenant's storage quota.
type UploadChecker interface {
	CheckUpload(ctx context.Context, actor authorization.Actor, fileSizeBytes int64) (*storagequota.Decision, error)
}

// UsageRecorder adds an accepted upload to the tenant's storage counter.
type UsageRecorder interface {
	Record(ctx context.Context, tenantID uint, sizeMB float64) (float64, error)
}

// QuotaRejection is the data payload of a storage policy rejection.
type QuotaRejection struct {
	RemainingMB   float64 `json:"remaining_mb"`
	FileSizeMB    float64 `json:"file_size_mb"`
	LimitMB       int64   `json:"limit_mb"`
	MaxFileSizeMB int     `json:"max_file_size_mb"`
}

type StorageQuotaMiddleware struct {
	checker  UploadChecker
	recorder UsageRecorder
	logger   logger.Interface
}

func NewStorageQuotaMiddleware(checker UploadChecker, recorder UsageRecorder, logger logger.Interface) *StorageQuotaMiddleware {
	return &StorageQuotaMiddleware{
		checker:  checker,
		recorder: recorder,
		logger:   logger,
	}
}

// EnforceStorageQuota checks the multipart file in fieldName before the handler runs.
// Accepted uploads are added to the tenant's usage once the handler answers with 2xx.
func (m *StorageQuotaMiddleware) EnforceStorageQuota(fieldName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}

		file, err := c.FormFile(fieldName)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewBadRequestError("file is required", "field="+fieldName))
			c.Abort()
			return
		}

		decision, err := m.checker.CheckUpload(c.Request.Context(), actor, file.Size)
		if err != nil {
			if errors.IsStorageRejection(err) && decision != nil {
				utils.ErrorResponseWithData(c, err, QuotaRejection{
					RemainingMB:   decision.RemainingMB,
					FileSizeMB:    decision.FileSizeMB,
					LimitMB:       decision.LimitMB,
					MaxFileSizeMB: decision.FileCapMB,
				})
			} else {
				utils.ErrorResponseWithError(c, err)
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUploadSizeMB, decision.FileSizeMB)
		c.Next()

		if decision.Bypassed || c.Writer.Status() < http.StatusOK || c.Writer.Status() >= http.StatusMultipleChoices {
			return
		}
		tenantID, sizeMB := decision.TenantID, decision.FileSizeMB
		goroutine.SafeGo(m.logger, "record-storage-usage", func() {
			ctx, cancel := context.WithTimeout(context.Background(), recordUsageTimeout)
			defer cancel()
			if _, err := m.recorder.Record(ctx, tenantID, sizeMB); err != nil {
				m.logger.Warnw("storage usage not recorded for accepted upload",
					"tenant_id", tenantID,
					"size_mb", sizeMB,
					"error", err,
				)
			}
		})
	}
}

// UploadSizeMB returns the size EnforceStorageQuota computed for the current upload.
func UploadSizeMB(c *gin.Context) (float64, bool) {
	v, exists := c.Get(constants.ContextKeyUploadSizeMB)
	if !exists {
		return 0, false
	}
	size, ok := v.(float64)
	return size, ok
}
