package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldDate       = "date"
	FieldMonthKey   = "month_key"
	FieldCategory   = "category"
	FieldCents      = "amount_cents"
	FieldBackend    = "backend"
	FieldRows       = "rows"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentDiary   = "diary"
	ComponentBudget  = "budget"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentMirror  = "mirror"
)

// Operations defines standard operation names.
const (
	OpLoad     = "load"
	OpUpsert   = "upsert"
	OpSummary  = "summary"
	OpSync     = "sync"
	OpResync   = "resync"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
