package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldRows       = "rows"
	FieldDropped    = "dropped"
	FieldYear       = "year"
	FieldRegion     = "region"
	FieldCountry    = "country"
	FieldFile       = "file"
)

// Components
const (
	ComponentApp     = "app"
	ComponentDataset = "dataset"
	ComponentHTTP    = "http"
	ComponentChart   = "chart"
	ComponentReport  = "report"
)
