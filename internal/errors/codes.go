package errors

// Error codes returned in the "error" (or "code") field of JSON error bodies.
// Format: CATEGORY_SPECIFIC_DETAIL. The editor UI maps these to messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED"
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid = "AUTH_TOKEN_INVALID"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationTooLong       = "VALIDATION_TOO_LONG"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Sites (SITE_) ====================
	SiteNotFound      = "SITE_NOT_FOUND"
	SiteNotPublished  = "SITE_NOT_PUBLISHED"
	SiteNotStorefront = "SITE_NOT_STOREFRONT"
	SiteInvalidConfig = "SITE_INVALID_CONFIG"
	SitePublishFailed = "SITE_PUBLISH_FAILED"

	// ==================== Clone (CLONE_) ====================
	CloneInvalidURL = "CLONE_INVALID_URL"
	CloneUpstream   = "CLONE_UPSTREAM"
	CloneNetwork    = "CLONE_NETWORK"

	// ==================== Metrics (METRIC_) ====================
	MetricInvalidEvent = "METRIC_INVALID_EVENT"
	MetricSiteNotFound = "METRIC_SITE_NOT_FOUND"
	MetricExportFailed = "METRIC_EXPORT_FAILED"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"
	UploadNotConfigured   = "UPLOAD_NOT_CONFIGURED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
