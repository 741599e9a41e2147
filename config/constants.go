package constants

// Default snapshot collection configuration
const (
	DEFAULT_SAMPLE_INTERVAL = 10  // seconds between snapshots
	DEFAULT_CAPACITY        = 100 // snapshots kept in the ring buffer
	DEFAULT_SAVE_EVERY      = 10  // persist history every N appends
	DEFAULT_TOP_PROCESSES   = 10  // processes per top-CPU / top-memory list
	DEFAULT_DISK_MOUNTS     = 5   // mounts returned by disk usage checks
)

// Analytics configuration
const (
	DEFAULT_HISTORY_COUNT     = 10  // snapshots returned by history queries
	DEFAULT_TREND_WINDOW      = 10  // minutes analyzed by trend queries
	HISTORY_TOLERANCE_SECONDS = 300 // +/- seconds for minutes-ago history lookups
	PROCESS_HISTORY_LIMIT     = 20  // most recent matches kept by process tracking
)

// File layout under the per-user data directory
const (
	DATA_DIR_NAME  = ".sysdoctor"
	SNAPSHOTS_FILE = "snapshots.json"
	PID_FILE       = "daemon.pid"
	LOG_FILE       = "daemon.log"
)
