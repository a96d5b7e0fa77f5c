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

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Planty"
	AppID             = "com.github.tartampluch.go-planty"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
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
	// Used for the plant collection file and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion   = "version"
	FlagDebug     = "debug"
	FlagData      = "data"
	FlagLang      = "lang"
	FlagSort      = "sort"
	FlagMinTemp   = "min-temp"
	FlagServe     = "serve"
	FlagPort      = "port"
	FlagReminder  = "reminder"
	FlagWater     = "water"
	FlagWaterType = "water-type"
	FlagRepot     = "repot"
	FlagAdd       = "add"
	FlagSpecies   = "species"

	FlagDescVersion   = "Show application version and exit"
	FlagDescDebug     = "Enable debug logging to stdout"
	FlagDescData      = "Path to the plant collection JSON file"
	FlagDescLang      = "UI language code (en, ja)"
	FlagDescSort      = "Roster sort key: name, entryDate, minTemp, nextWateringDate"
	FlagDescMinTemp   = "Only show species tolerating at least this minimum temperature (°C)"
	FlagDescServe     = "Serve the care calendar over HTTP instead of printing the roster"
	FlagDescPort      = "HTTP port for the calendar server"
	FlagDescReminder  = "ISO8601 reminder trigger for calendar alarms (e.g. -P1D), empty disables"
	FlagDescWater     = "Record a watering for the plant with this id and exit"
	FlagDescWaterType = "Watering content recorded with -water"
	FlagDescRepot     = "Record a repotting for the plant with this id and exit"
	FlagDescAdd       = "Register a new plant with this display name and exit (requires -species)"
	FlagDescSpecies   = "Species id for -add"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Seasons
// -----------------------------------------------------------------------------

// Fixed month buckets. Winter wraps the year boundary (Dec-Feb).
const (
	SpringStartMonth = 3
	SpringEndMonth   = 5
	SummerStartMonth = 6
	SummerEndMonth   = 8
	AutumnStartMonth = 9
	AutumnEndMonth   = 11
	WinterStartMonth = 12
	WinterEndMonth   = 2
)

// -----------------------------------------------------------------------------
// Scheduling Thresholds & Business Logic
// -----------------------------------------------------------------------------

const (
	// MaxAlertIntervalDays caps urgency classification. Species on longer
	// cycles (and dormant species) get a plain elapsed-days message instead.
	MaxAlertIntervalDays = 30

	// DueSoonThresholdDays is the upper bound of the "due soon" band.
	DueSoonThresholdDays = 3

	// RepottingMinElapsedDays is the minimum age of the last repotting before
	// an in-window reminder fires. Exactly 365 days is the contract.
	RepottingMinElapsedDays = 365

	// DormantIntervalTag is the catalog spelling of the no-watering state.
	DormantIntervalTag = "stop"

	DefaultRefreshInterval = 1 * time.Hour
)

// Sort keys. Values match the original client's persisted preference values
// so exported preferences stay readable.
const (
	SortByName         = "name"
	SortByEntryDate    = "entryDate"
	SortByMinTemp      = "minTemp"
	SortByNextWatering = "nextWateringDate"
)

// DefaultSort orders the roster by urgency.
const DefaultSort = SortByNextWatering

// MinTempFilterOff disables the minimum-temperature filter.
const MinTempFilterOff = -100

// SupportedLanguages defines the list of available languages (ISO 639-1).
var SupportedLanguages = []string{"en", "ja"}

const DefaultLanguage = "en"

// -----------------------------------------------------------------------------
// Data Formats, Limits & Defaults
// -----------------------------------------------------------------------------

const (
	// DateFormatISO is the only accepted wire format for calendar dates.
	DateFormatISO = "2006-01-02"

	DefaultDataFile = "plants.json"
	TempFilePattern = "plants-*.json"

	JSONIndent = "  "

	// UID Generation
	UIDHashLength   = 16
	UIDSalt         = "go-planty-v1-"
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%s@%s"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Planty//Engine//EN"
	ICalCalName   = "Plant Care"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goplanty"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 1 * time.Hour
	DefaultReminder    = "-P1D"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	DefaultPort        = "18090"
	MinPort            = 1
	MaxPort            = 65535
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteCalendar      = "/calendar.ics"
	RouteSchedule      = "/schedule.json"
	AddrSeparator      = ":"
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
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInitializing = "Schedule is being computed, retry shortly"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyDateLong        = "date_long"
	TKeyToday           = "today"
	TKeyDaysAgo         = "days_ago"
	TKeyDaysAhead       = "days_ahead"
	TKeyYearsApprox     = "years_approx"
	TKeyWaterOnly       = "water_only"
	TKeyWaterFertilizer = "water_fertilizer"
	TKeyWaterActivator  = "water_activator"
	TKeyWaterComplex    = "water_complex"
	TKeyAlertOverdue    = "alert_overdue"
	TKeyAlertDueSoon    = "alert_due_soon"
	TKeyAlertOnTrack    = "alert_on_track"
	TKeyElapsedDays     = "elapsed_days"
	TKeyDormant         = "dormant"
	TKeyNoIntervalData  = "no_interval_data"
	TKeyRepotDue        = "repot_due"
	TKeyEvtWaterSummary = "event_water_summary"
	TKeyEvtRepotSummary = "event_repot_summary"
	TKeyRosterEmpty     = "roster_empty"
	TKeyNextWatering    = "next_watering"
	TKeyLastWatering    = "last_watering"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrDateParse      = "unable to parse calendar date"
	ErrCatalogDecode  = "failed to decode species catalog"
	ErrCatalogEmpty   = "species catalog is empty"
	ErrSpeciesLookup  = "species lookup failed"
	ErrStoreRead      = "failed to read plant collection file"
	ErrStoreDecode    = "failed to decode plant collection"
	ErrStoreEncode    = "failed to encode plant collection"
	ErrStoreWrite     = "failed to write plant collection file"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortInvalid    = "invalid server port"
	ErrWriteResp      = "failed to write response body"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrWaterTypeBad   = "unknown watering type"
	ErrSpeciesFlag    = "a valid -species id is required"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgStoreLoaded    = "Plant collection loaded"
	MsgStoreSaved     = "Plant collection saved"
	MsgStoreMissing   = "No collection file yet, starting empty"
	MsgRecordMigrated = "Upgraded legacy plant record"
	MsgRecordSkipped  = "Skipping corrupt plant record"
	MsgPlantSkipped   = "Skipping plant with unknown species"
	MsgScheduleBuilt  = "Schedule computed"
	MsgCalGenSuccess  = "Care calendar generation successful"
	MsgDueToday       = "Watering due today"
	MsgAlreadyLogged  = "Entry already recorded, ignoring duplicate"
	MsgWorkerStart    = "Background refresh worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Served calendar cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyPath      = "path"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyCount     = "count"
	LogKeyPlantID   = "plant_id"
	LogKeyPlant     = "plant"
	LogKeySpeciesID = "species_id"
	LogKeySeason    = "season"
	LogKeySortKey   = "sort_key"
	LogKeyDate      = "date"
	LogKeyStats     = "stats"
	LogKeyTotal     = "plants_total"
	LogKeyScheduled = "plants_scheduled"
	LogKeyDueToday  = "due_today"
	LogKeySkipped   = "plants_skipped"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "built"
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
	CompEngine = "engine"
	CompModel  = "model"
	CompStore  = "store"
	CompServer = "server"
	CompWorker = "worker"
	CompMain   = "main"
	CompI18n   = "i18n"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackWaterSummary = "Water: %s"
	FallbackRepotSummary = "Repot: %s"

	// StubVCalendar is the minimal valid iCalendar object used when nothing
	// is scheduled. Clients flag an empty body as an invalid feed.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)
