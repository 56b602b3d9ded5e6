package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldClientIP   = "client_ip"
	FieldQuery      = "query"

	FieldPayer       = "payer"
	FieldAmountCents = "amount_cents"
	FieldDimension   = "dimension"
	FieldSortKey     = "sort_key"
	FieldTopN        = "top_n"
	FieldRowRef      = "row_ref"
	FieldRecords     = "records"
	FieldBackend     = "store_backend"
	FieldExportPath  = "export_path"
	FieldMessageID   = "message_id"
	FieldExchange    = "exchange"
	FieldQueue       = "queue"
)

// Standard component names.
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentLedger = "ledger"
	ComponentStore  = "store"
	ComponentBoard  = "board"
	ComponentAMQP   = "amqp"
	ComponentWorker = "worker"
	ComponentExport = "export"
	ComponentDemo   = "demo"
	ComponentTrace  = "trace"
)

// Standard operation names.
const (
	OpLoad     = "load"
	OpAppend   = "append"
	OpSubmit   = "submit"
	OpGroup    = "group"
	OpRank     = "rank"
	OpExport   = "export"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
