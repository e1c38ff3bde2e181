package constant

import (
	"time"
)

const (
	ContextGuest = "guest"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
	ContextKeyInternal  contextKey = "internal"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID        = "id"
	RequestParamBookingID = "bookingId"
	RequestParamDate      = "date"
	RequestParamFrom      = "from"
	RequestParamTo        = "to"
	RequestParamAdminID   = "adminId"
	RequestParamPaid      = "paid"
	RequestParamSearch    = "search"
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
	MaxValueLimit     = 100
)

const (
	FieldCreatedAt  = "created_at"
	FieldCreatedBy  = "created_by"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat     = time.RFC3339
	CalendarLayout = "2006-01-02"
)

const (
	MinutesToSeconds = 60
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
	OtelStripeScopeName   = "stripe"
	OtelMailerScopeName   = "mailer"
	OtelKafkaScopeName    = "kafka"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderStripeSignature    = "Stripe-Signature"
	RequestHeaderRetryAfter         = "Retry-After"
)

const (
	ContentTypeJSON     = "application/json"
	ContentTypeCalendar = "text/calendar"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorInternal             = "internal server error"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)

const (
	EventBookingCreated  = "booking.created"
	EventBookingCanceled = "booking.canceled"
	EventBookingDeleted  = "booking.deleted"
	EventPaymentCaptured = "payment.captured"
)

const (
	CacheKeyProfile        = "user:profile"
	CacheKeyAvailability   = "availability:all"
	CacheKeyAvailabilityOf = "availability:admin"
	CacheKeyUserBookings   = "booking:user"
	CacheKeyBookingsOnDate = "booking:date"
)
