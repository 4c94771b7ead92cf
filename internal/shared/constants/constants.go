package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// gin context keys set by the auth middleware
	ContextKeyUserID   = "user_id"
	ContextKeyTenantID = "tenant_id"
	ContextKeyUserRole = "user_role"

	// set by EnforceStorageQuota on an accepted upload
	ContextKeyUploadSizeMB = "upload_size_mb"

	TablePlans          = "plans"
	TableModules        = "modules"
	TablePlanModules    = "plan_modules"
	TableModuleFeatures = "module_features"
	TableTenants        = "tenants"

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgSubscriptionBlocked = "Subscription payment is overdue, please renew your subscription"
	ErrMsgNotEntitled         = "Your plan does not include this feature"
)
