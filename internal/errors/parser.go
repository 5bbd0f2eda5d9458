package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a code plus a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps storage and transport errors to a code and a message that
// hides driver details. context names the failing operation ("get site",
// "create site", ...) and picks the wording.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. gorm sentinels
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: getNotFoundMessage(context),
		}
	}

	// 2. constraint violations (postgres and sqlite wording)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{Code: ResourceConflict, Message: "The record is referenced by other data"}
	}
	if strings.Contains(errStrLower, "not null constraint") || strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}
	if strings.Contains(errStrLower, "value too long") {
		return ErrorInfo{Code: ValidationTooLong, Message: "A field exceeds its maximum length"}
	}

	// 3. network
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "An upstream service is unavailable, please retry shortly",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "site_metric") {
		return ErrorInfo{Code: ResourceConflict, Message: "Concurrent metric update, please retry"}
	}
	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") || strings.Contains(errLower, "sites.id") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "A site with this id already exists"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "The record already exists"}
}

func notFoundCode(context string) string {
	if strings.Contains(strings.ToLower(context), "site") {
		return SiteNotFound
	}
	return ResourceNotFound
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "metric") {
		return "No metrics found for this site"
	}
	if strings.Contains(contextLower, "site") {
		return "Site not found"
	}
	return "The requested record was not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Could not create the record, please retry shortly"
	case strings.Contains(contextLower, "update") || strings.Contains(contextLower, "save"):
		return "Could not save changes, please retry shortly"
	case strings.Contains(contextLower, "delete"):
		return "Could not delete the record, please retry shortly"
	case strings.Contains(contextLower, "publish"):
		return "Could not publish the site, please retry shortly"
	}
	return "Something went wrong, please retry shortly"
}

// ParseAndRespond parses err and writes it as the JSON error body.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
