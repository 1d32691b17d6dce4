// Package msgkey declares the message keys used for localized API responses.
//
// Keys resolve through the meta translation map; when a key has no
// translation the key itself is returned, so responses degrade to readable
// identifiers instead of failing.
package msgkey

// Success messages.
const (
	SuccessOperation = "success.operation"
	SuccessCreated   = "success.created"
	SuccessNoContent = "success.no.content"
	SuccessPaginated = "success.paginated"
	SuccessNoResults = "success.no.results"
	SuccessPageInfo  = "success.page.info"
)

// General errors.
const (
	ErrorInternalServer = "error.internal.server"
	ErrorBadRequest     = "error.bad.request"
	ErrorNotFound       = "error.not.found"
	ErrorUnauthorized   = "error.unauthorized"
	ErrorForbidden      = "error.forbidden"
	ErrorConflict       = "error.conflict"
	ErrorThrottled      = "error.throttled"
	ErrorTimeout        = "error.timeout"
)

// Validation errors.
const (
	ErrorValidation       = "error.validation"
	ErrorParameterMissing = "error.parameter.missing"
	ErrorJSONInvalid      = "error.json.invalid"
	ErrorTypeMismatch     = "error.type.mismatch"
)
