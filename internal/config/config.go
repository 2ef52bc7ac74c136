package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Anniversary/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Anniversary"
	AppID             = "com.github.tartampluch.go-anniversary"
	KeyringService    = "com.github.tartampluch.go-anniversary"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	EnvPrefix         = "GO_ANNIVERSARY_"
	EnvConfigPath     = "GO_ANNIVERSARY_CONFIG"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and exported session snapshots.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------.
	DirPermUserRWX fs.FileMode = 0700

	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion         = "version"
	FlagDebug           = "debug"
	FlagConfig          = "config"
	FlagSession         = "session"
	FlagCSV             = "csv"
	FlagVCF             = "vcf"
	FlagURL             = "url"
	FlagUser            = "user"
	FlagPassword        = "password"
	FlagRememberPass    = "remember-password"
	FlagAdd             = "add"
	FlagRemove          = "remove"
	FlagReset           = "reset"
	FlagAddMilestone    = "add-milestone"
	FlagRemoveMilestone = "remove-milestone"
	FlagOnly            = "only"
	FlagMonth           = "month"
	FlagOffset          = "offset"
	FlagExport          = "export"
	FlagICS             = "ics"
	FlagServe           = "serve"
	FlagLang            = "lang"

	FlagDescVersion         = "Show application version and exit"
	FlagDescDebug           = "Enable debug logging to stdout"
	FlagDescConfig          = "Path to a YAML settings file"
	FlagDescSession         = "Import a session snapshot (JSON) before anything else"
	FlagDescCSV             = "Import people from a CSV file with 'Name' and 'Start Date' columns"
	FlagDescVCF             = "Import people from a vCard file (ANNIVERSARY property)"
	FlagDescURL             = "Import people from a remote CSV or vCard (http/https)"
	FlagDescUser            = "Username for the remote source (HTTP Basic Auth)"
	FlagDescPassword        = "Password for the remote source; read from the OS keyring when empty"
	FlagDescRememberPass    = "Store -password in the OS keyring for -user"
	FlagDescAdd             = "Add or replace a person, as 'Name=YYYY-MM-DD' (repeatable)"
	FlagDescRemove          = "Remove a person by name (repeatable)"
	FlagDescReset           = "Clear the roster before adding people"
	FlagDescAddMilestone    = "Add a milestone, e.g. '20 Years' (repeatable)"
	FlagDescRemoveMilestone = "Remove a milestone, e.g. '1 Year' (repeatable)"
	FlagDescOnly            = "Comma separated milestone years to report, e.g. '5,10'"
	FlagDescMonth           = "Target month as YYYY-MM (defaults to the current month)"
	FlagDescOffset          = "Move the target month by N months (negative goes back)"
	FlagDescExport          = "Write the session snapshot (JSON) to this path"
	FlagDescICS             = "Write the anniversaries feed (iCalendar) to this path"
	FlagDescServe           = "Serve the anniversaries feed over HTTP until interrupted"
	FlagDescLang            = "Output language (overrides the settings file), e.g. 'fr'"

	MsgVersionOutput = "%s version %s (%s/%s)\n"

	PersonSeparator = "="
	ListSeparator   = ","
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyMilestoneLabel = "milestone_label"  // Requires Count
	TKeyEvtSummary     = "event_summary"    // Requires Name, Label
	TKeyReportTitle    = "report_title"     // Requires Period
	TKeyReportEmpty    = "report_empty"     // No anniversaries this month
	TKeyReportNoPeople = "report_no_people" // Roster is empty
	TKeyColName        = "col_name"
	TKeyColDate        = "col_date"
	TKeyColType        = "col_type"
	TKeyColYears       = "col_years"
	TKeyCalName        = "calendar_name"
)

// SupportedLanguages defines the list of available languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort          = "18081"
	DefaultRefreshMin    = 60
	DefaultLanguage      = "en"
	DefaultWindowBefore  = 1
	DefaultWindowAfter   = 11
	DefaultHTTPTimeout   = 30 * time.Second
	LeapMonth            = time.February
	LeapDay              = 29
	LeapFallbackDay      = 28
	MonthsPerYear        = 12
	MilestoneUnitSingle  = "Year"
	MilestoneUnitPlural  = "Years"
	FormatMilestoneLabel = "%d %s"
	UIDNamespace         = "https://github.com/tartampluch/go-anniversary/events/"
	FormatUIDInput       = "%s|%d|%s"
)

// DefaultMilestoneYears is the catalog a new session starts with.
var DefaultMilestoneYears = []int{1, 5, 10, 15, 25, 30, 40, 50}

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Anniversary//Engine//EN"
	ICalCalName = "Anniversaries"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropCategories = "CATEGORIES"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardFN          = "FN"
	VCardAnniversary = "ANNIVERSARY"

	DefaultICalRefresh = 1 * time.Hour

	ICalCategory = "Anniversary"
)

// -----------------------------------------------------------------------------
// Data Formats, Columns & File Extensions
// -----------------------------------------------------------------------------

const (
	// Layouts accepted for start dates (snapshot, CSV, CLI, vCard).
	DateFormatISO      = "2006-01-02"
	DateFormatISOTime  = "2006-01-02T15:04:05"
	DateFormatRFC3339  = time.RFC3339
	DateFormatBasic    = "20060102"
	DateFormatUS       = "01/02/2006"
	DateFormatSlashISO = "2006/01/02"
	DateFormatNoYearD  = "--01-02"
	DateFormatNoYearB  = "--0102"

	// Layouts used for output.
	DateFormatDisplay = "January 02, 2006"
	PeriodFormat      = "2006-01"
	PeriodDisplay     = "January 2006"

	ColumnName      = "Name"
	ColumnStartDate = "Start Date"
	ColumnAnnivDate = "Anniversary Date"
	ColumnAnnivType = "Anniversary Type"
	ColumnYears     = "Years"
	UTF8BOM         = "\uFEFF"

	// Snapshot document fields.
	SnapshotPeople = "people"
	SnapshotTypes  = "anniversary_types"
	SnapshotIndent = "    "

	MaxConsecutiveCardErrs = 8

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtCSV   = ".csv"

	MimeCSV   = "text/csv"
	MimeVCard = "text/vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderContentLength   = "Content-Length"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidArgument  = "invalid argument"
	ErrImportFailure    = "import failed"
	ErrDuplicate        = "milestone already exists"
	ErrInvalidMonth     = "month must be between 1 and 12"
	ErrMilestoneYears   = "milestone years must be a positive integer"
	ErrMilestoneLabel   = "milestone label must look like 'X Years'"
	ErrNameRequired     = "name is required"
	ErrDateRequired     = "start date is required"
	ErrDateParse        = "unable to parse date"
	ErrDateNoYear       = "date has no year"
	ErrPersonSpec       = "person must look like 'Name=YYYY-MM-DD'"
	ErrPeriodParse      = "period must look like YYYY-MM"
	ErrSnapshotDecode   = "malformed session snapshot"
	ErrSnapshotEncode   = "failed to encode session snapshot"
	ErrSnapshotPerson   = "malformed person entry"
	ErrSnapshotType     = "malformed anniversary type"
	ErrCSVHeader        = "CSV header must contain 'Name' and 'Start Date'"
	ErrCSVRow           = "malformed CSV row"
	ErrCSVRead          = "failed to read CSV"
	ErrVCardRead        = "failed to read vCard stream"
	ErrSourceEmpty      = "configuration error: no roster source given"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrSourceUnknown    = "unsupported roster source format"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrWriteFile        = "failed to write output file"
	ErrOpenFile         = "failed to open input file"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrSettingsFile     = "failed to read settings file"
	ErrSettingsParse    = "failed to parse settings file"
	ErrSettingsEnv      = "failed to parse settings from environment"
	ErrSettingsRange    = "settings value out of range"
	ErrKeyringSet       = "failed to store password in keyring"
	ErrKeyringGet       = "failed to read password from keyring"
	ErrRememberNoUser   = "-remember-password requires -user and -password"
	ErrOnlyParse        = "-only must be a comma separated list of positive integers"
	ErrUnexpectedStatus = "server returned unexpected status"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary      = "%s: %s"
	FallbackName         = "Unknown"
	FallbackReportTitle  = "Showing anniversaries for: %s"
	FallbackReportEmpty  = "No anniversaries this month."
	FallbackReportNoPeop = "No people added. Add a person or import a CSV file."

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down"
	MsgPersonAdded   = "Person added"
	MsgPersonRemoved = "Person removed"
	MsgRosterReset   = "Roster reset"
	MsgMilestoneAdd  = "Milestone added"
	MsgMilestoneDel  = "Milestone removed"
	MsgPeriodChanged = "Target period changed"
	MsgImported      = "People imported"
	MsgSessionLoaded = "Session snapshot imported"
	MsgSessionSaved  = "Session snapshot exported"
	MsgSessionReady  = "Session prepared"
	MsgICSWritten    = "Anniversaries feed written"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping card without a usable anniversary"
	MsgFeedBuilt     = "Anniversaries feed generated"
	MsgFeedRequested = "Feed rebuild requested"
	MsgFeedFailed    = "Feed rebuild failed"
	MsgReloadFailed  = "Roster reload failed, keeping previous roster"
	MsgWorkerStart   = "Background worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassStored    = "Password stored in keyring"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgSettingsFile  = "Settings file loaded"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyAddr      = "addr"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeyName      = "name"
	LogKeyYears     = "years"
	LogKeyLabel     = "label"
	LogKeyPeriod    = "period"
	LogKeyCount     = "count"
	LogKeyPeople    = "people"
	LogKeyEvents    = "events"
	LogKeyMonths    = "months"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySource    = "source"
	LogKeyDuration  = "duration_ms"

	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "build_date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompApp      = "app"
	CompSession  = "session"
	CompImporter = "importer"
	CompFeed     = "feed"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
