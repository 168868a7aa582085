package base

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

/***************************************
 * Logger API
 ***************************************/

var LogGlobal = NewLogCategory("Global")

var gLogger Logger = NewLogger(os.Stderr)

func LogDebug(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_DEBUG, msg, args...)
}
func LogTrace(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_TRACE, msg, args...)
}
func LogVerbose(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_VERBOSE, msg, args...)
}
func LogInfo(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_INFO, msg, args...)
}
func LogClaim(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_CLAIM, msg, args...)
}

func LogWarning(category *LogCategory, msg string, args ...interface{}) {
	if !gLogWarningAsError {
		gLogger.Log(category, LOG_WARNING, msg, args...)
	} else {
		LogError(category, msg, args...)
	}
}
func LogError(category *LogCategory, msg string, args ...interface{}) {
	gLogErrorCount.Add(1)
	gLogger.Log(category, LOG_ERROR, msg, args...)
}

func LogPanicErr(category *LogCategory, err error) {
	LogError(category, "panic: caught error %v", err)
	FlushLog()
	Panic(err)
}
func LogPanicIfFailed(category *LogCategory, err error) {
	if err != nil {
		LogPanicErr(category, err)
	}
}

func IsLogLevelActive(level LogLevel) bool {
	return gLogger.IsVisible(level)
}
func FlushLog() {
	gLogger.Flush()
}

var gLogWarningAsError bool = false
var gLogErrorCount atomic.Int64

// Warnings are then logged, and counted, as errors
func SetLogWarningAsError(enabled bool) {
	gLogWarningAsError = enabled
}

// Number of errors logged since the process started
func LogErrorCount() int64 {
	return gLogErrorCount.Load()
}

func SetLogVisibleLevel(level LogLevel) {
	gLogger.SetLevel(level)
}

/***************************************
 * Errors
 ***************************************/

func MakeError(msg string, args ...interface{}) error {
	// don't log here: this can lock recursively the logger
	return fmt.Errorf(msg, args...)
}

func MakeUnexpectedValueError(dst interface{}, any interface{}) error {
	return MakeError("unexpected <%T> value: %#v", dst, any)
}

/***************************************
 * Logger interface
 ***************************************/

type Logger interface {
	IsVisible(LogLevel) bool

	SetLevel(LogLevel) LogLevel
	SetShowCategory(bool)
	SetShowTimestamp(bool)
	SetWriter(io.Writer)

	Log(category *LogCategory, level LogLevel, msg string, args ...interface{})

	Flush()
}

/***************************************
 * Log Manager
 ***************************************/

type LogManager struct {
	barrierRW  sync.RWMutex
	categories map[string]*LogCategory
}

var gLogManager = LogManager{
	categories: make(map[string]*LogCategory, 16),
}

func GetLogManager() *LogManager { return &gLogManager }

func (x *LogManager) SetCategoryLevel(name string, level LogLevel) error {
	if category := x.FindCategory(name); category != nil {
		category.Level = level
		return nil
	} else {
		return fmt.Errorf("unknown log category: %q", name)
	}
}
func (x *LogManager) FindCategory(name string) *LogCategory {
	x.barrierRW.RLock()
	defer x.barrierRW.RUnlock()
	return x.categories[name]
}
func (x *LogManager) FindOrAddCategory(name string) (result *LogCategory) {
	if result = x.FindCategory(name); result == nil {
		x.barrierRW.Lock()
		defer x.barrierRW.Unlock()
		if result = x.categories[name]; result == nil {
			category := MakeLogCategory(name)
			result = &category
			x.categories[name] = result
		}
	}
	return
}

/***************************************
 * Log Category
 ***************************************/

type LogCategory struct {
	Name  string
	Level LogLevel
	Hash  uint64
	Color AnsiCode
}

func MakeLogCategory(name string) LogCategory {
	sum64a := fnv.New64a()
	sum64a.Write(UnsafeBytesFromString(name))
	sum64a.Write(UnsafeBytesFromString("%%category"))
	hash := sum64a.Sum64()
	return LogCategory{
		Name:  name,
		Level: LOG_FATAL,
		Hash:  hash,
		Color: AnsiColorFromHash(hash),
	}
}

func NewLogCategory(name string) *LogCategory {
	return gLogManager.FindOrAddCategory(name)
}

/***************************************
 * Log level
 ***************************************/

type LogLevel int32

const (
	LOG_ALL LogLevel = iota
	LOG_DEBUG
	LOG_TRACE
	LOG_VERBOSE
	LOG_INFO
	LOG_CLAIM
	LOG_WARNING
	LOG_ERROR
	LOG_FATAL
)

func GetLogLevels() []LogLevel {
	return []LogLevel{
		LOG_ALL,
		LOG_DEBUG,
		LOG_TRACE,
		LOG_VERBOSE,
		LOG_INFO,
		LOG_CLAIM,
		LOG_WARNING,
		LOG_ERROR,
		LOG_FATAL,
	}
}

func (x LogLevel) IsVisible(level LogLevel) bool {
	return (int32(level) >= int32(x))
}
func (x LogLevel) Style(dst io.Writer) {
	switch x {
	case LOG_ALL:
	case LOG_DEBUG:
		fmt.Fprint(dst, ANSI_FG0_MAGENTA, ANSI_ITALIC, ANSI_FAINT)
	case LOG_TRACE:
		fmt.Fprint(dst, ANSI_FG0_CYAN, ANSI_ITALIC, ANSI_FAINT)
	case LOG_VERBOSE:
		fmt.Fprint(dst, ANSI_FG0_BLUE)
	case LOG_INFO:
		fmt.Fprint(dst, ANSI_FG1_WHITE)
	case LOG_CLAIM:
		fmt.Fprint(dst, ANSI_FG1_GREEN, ANSI_BOLD)
	case LOG_WARNING:
		fmt.Fprint(dst, ANSI_FG0_YELLOW)
	case LOG_ERROR:
		fmt.Fprint(dst, ANSI_FG1_RED, ANSI_BOLD)
	case LOG_FATAL:
		fmt.Fprint(dst, ANSI_FG1_WHITE, ANSI_BG0_RED, ANSI_BLINK0)
	default:
		UnexpectedValue(x)
	}
}
func (x LogLevel) Header() string {
	switch x {
	case LOG_ALL:
		return ""
	case LOG_DEBUG:
		return "🐜 "
	case LOG_TRACE:
		return "👣 "
	case LOG_VERBOSE:
		return "🗣️ "
	case LOG_INFO:
		return "🔹 "
	case LOG_CLAIM:
		return "❇️ "
	case LOG_WARNING:
		return "⚠️ "
	case LOG_ERROR:
		return "❌ "
	case LOG_FATAL:
		return "💀 "
	default:
		UnexpectedValue(x)
		return ""
	}
}
func (x LogLevel) String() string {
	switch x {
	case LOG_ALL:
		return "all"
	case LOG_DEBUG:
		return "debug"
	case LOG_TRACE:
		return "trace"
	case LOG_VERBOSE:
		return "verbose"
	case LOG_INFO:
		return "info"
	case LOG_CLAIM:
		return "claim"
	case LOG_WARNING:
		return "warning"
	case LOG_ERROR:
		return "error"
	case LOG_FATAL:
		return "fatal"
	default:
		UnexpectedValue(x)
		return ""
	}
}
func (x *LogLevel) Set(in string) (err error) {
	switch strings.ToLower(in) {
	case LOG_ALL.String():
		*x = LOG_ALL
	case LOG_DEBUG.String():
		*x = LOG_DEBUG
	case LOG_TRACE.String():
		*x = LOG_TRACE
	case LOG_VERBOSE.String():
		*x = LOG_VERBOSE
	case LOG_INFO.String():
		*x = LOG_INFO
	case LOG_CLAIM.String():
		*x = LOG_CLAIM
	case LOG_WARNING.String():
		*x = LOG_WARNING
	case LOG_ERROR.String():
		*x = LOG_ERROR
	case LOG_FATAL.String():
		*x = LOG_FATAL
	default:
		err = MakeUnexpectedValueError(x, in)
	}
	return err
}
func (x LogLevel) MarshalText() ([]byte, error) {
	return UnsafeBytesFromString(x.String()), nil
}
func (x *LogLevel) UnmarshalText(data []byte) error {
	return x.Set(UnsafeStringFromBytes(data))
}

/***************************************
 * Basic Logger
 ***************************************/

type basicLogger struct {
	MinimumLevel  LogLevel
	ShowCategory  bool
	ShowTimestamp bool
	Writer        io.Writer

	barrier   sync.Mutex
	startedAt time.Time
}

func NewLogger(dst io.Writer) Logger {
	return &basicLogger{
		MinimumLevel:  LOG_INFO,
		ShowCategory:  true,
		ShowTimestamp: false,
		Writer:        dst,
		startedAt:     time.Now(),
	}
}

func (x *basicLogger) IsVisible(level LogLevel) bool {
	return x.MinimumLevel.IsVisible(level)
}

func (x *basicLogger) SetLevel(level LogLevel) LogLevel {
	previous := x.MinimumLevel
	if level < LOG_FATAL {
		x.MinimumLevel = level
	} else {
		x.MinimumLevel = LOG_FATAL
	}
	return previous
}
func (x *basicLogger) SetShowCategory(enabled bool) {
	x.ShowCategory = enabled
}
func (x *basicLogger) SetShowTimestamp(enabled bool) {
	x.ShowTimestamp = enabled
}
func (x *basicLogger) SetWriter(dst io.Writer) {
	Assert(func() bool { return dst != nil })
	x.barrier.Lock()
	defer x.barrier.Unlock()
	x.Writer = dst
}

func (x *basicLogger) Log(category *LogCategory, level LogLevel, msg string, args ...interface{}) {
	// log level visible?
	if !x.IsVisible(level) && !category.Level.IsVisible(level) {
		return
	}

	x.barrier.Lock()
	defer x.barrier.Unlock()

	if x.ShowTimestamp {
		fmt.Fprintf(x.Writer, "%s%010.5f |%s  ", ANSI_FG1_BLACK, time.Since(x.startedAt).Seconds(), ANSI_RESET)
	}

	level.Style(x.Writer)
	io.WriteString(x.Writer, level.Header())

	if x.ShowCategory {
		fmt.Fprintf(x.Writer, " %s%s%s%s: ", ANSI_RESET, category.Color, category.Name, ANSI_RESET)
		level.Style(x.Writer)
	}

	if len(args) > 0 {
		fmt.Fprintf(x.Writer, msg, args...)
	} else {
		io.WriteString(x.Writer, msg)
	}

	fmt.Fprintln(x.Writer, ANSI_RESET.String())
}

func (x *basicLogger) Flush() {
	x.barrier.Lock()
	defer x.barrier.Unlock()
	if f, ok := x.Writer.(interface{ Sync() error }); ok {
		f.Sync()
	}
}
