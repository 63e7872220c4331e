package respond

// Code is a machine-readable error code carried on the wire. The set is
// closed: handlers must pick one of the constants below rather than invent
// ad-hoc strings, so clients can match on them reliably.
type Code string

const (
	CodeValidationError Code = "VALIDATION_ERROR"
	CodeNotFound        Code = "NOT_FOUND"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeBadRequest      Code = "BAD_REQUEST"

	// The SUPABASE_* strings are published wire codes from the previous
	// deployment of this API; existing clients match on them, so the
	// strings stay even though the backend is plain PostgreSQL now.
	CodeBackendNotInitialized Code = "SUPABASE_NOT_INITIALIZED"
	CodeQueryError            Code = "SUPABASE_QUERY_ERROR"
	CodeConnectionError       Code = "SUPABASE_CONNECTION_ERROR"

	CodeDuplicateEntry     Code = "DUPLICATE_ENTRY"
	CodeConflict           Code = "CONFLICT"
	CodeInternal           Code = "INTERNAL_SERVER_ERROR"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeUnknown            Code = "UNKNOWN_ERROR"
)
