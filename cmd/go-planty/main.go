package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/tartampluch/go-planty/internal/config"
	"github.com/tartampluch/go-planty/internal/dateutil"
	"github.com/tartampluch/go-planty/internal/engine"
	"github.com/tartampluch/go-planty/internal/errs"
	"github.com/tartampluch/go-planty/internal/i18n"
	"github.com/tartampluch/go-planty/internal/model"
	"github.com/tartampluch/go-planty/internal/server"
	"github.com/tartampluch/go-planty/internal/species"
	"github.com/tartampluch/go-planty/internal/store"
)

// options collects the parsed CLI flags.
type options struct {
	dataPath  string
	lang      string
	sortKey   string
	minTemp   int
	serve     bool
	port      string
	reminder  string
	waterID   int
	waterType string
	repotID   int
	addName   string
	speciesID int
}

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)

	var opts options
	flag.StringVar(&opts.dataPath, config.FlagData, "", config.FlagDescData)
	flag.StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	flag.StringVar(&opts.sortKey, config.FlagSort, config.DefaultSort, config.FlagDescSort)
	flag.IntVar(&opts.minTemp, config.FlagMinTemp, config.MinTempFilterOff, config.FlagDescMinTemp)
	flag.BoolVar(&opts.serve, config.FlagServe, false, config.FlagDescServe)
	flag.StringVar(&opts.port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	flag.StringVar(&opts.reminder, config.FlagReminder, config.DefaultReminder, config.FlagDescReminder)
	flag.IntVar(&opts.waterID, config.FlagWater, 0, config.FlagDescWater)
	flag.StringVar(&opts.waterType, config.FlagWaterType, string(model.WaterOnly), config.FlagDescWaterType)
	flag.IntVar(&opts.repotID, config.FlagRepot, 0, config.FlagDescRepot)
	flag.StringVar(&opts.addName, config.FlagAdd, "", config.FlagDescAdd)
	flag.IntVar(&opts.speciesID, config.FlagSpecies, 0, config.FlagDescSpecies)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// Structured logging (slog) is configured early to capture startup issues.
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	// Root context cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the dependencies and dispatches on the requested action:
// record an event, print the roster, or serve the calendar.
func run(ctx context.Context, opts options) error {
	clock := engine.RealClock{}

	catalog, err := species.LoadCatalog()
	if err != nil {
		return err
	}

	dataPath := opts.dataPath
	if dataPath == "" {
		dataPath, err = defaultDataPath()
		if err != nil {
			return err
		}
	}
	st := store.New(dataPath, clock)

	plants, err := st.Load()
	if err != nil {
		return err
	}

	// Mutating actions save and exit.
	switch {
	case opts.waterID != 0:
		return recordWatering(st, plants, opts.waterID, opts.waterType, clock)
	case opts.repotID != 0:
		return recordRepotting(st, plants, opts.repotID, clock)
	case opts.addName != "":
		return addPlant(st, catalog, plants, opts.addName, opts.speciesID, clock)
	}

	tr := i18n.New(opts.lang)

	if opts.serve {
		return serveCalendar(ctx, st, catalog, tr, opts)
	}

	printRoster(plants, catalog, tr, opts, clock)
	return nil
}

// -----------------------------------------------------------------------------
// Actions
// -----------------------------------------------------------------------------

// recordWatering appends a watering to one plant's log and saves.
func recordWatering(st *store.Store, plants []model.Plant, id int, waterType string, clock engine.Clock) error {
	wt := model.WaterType(waterType)
	if !wt.Valid() {
		return fmt.Errorf("%s: %q", config.ErrWaterTypeBad, waterType)
	}

	idx := findPlant(plants, id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", errs.ErrPlantNotFound, id)
	}

	today := engine.Today(clock)
	updated, added := plants[idx].WaterLog.Insert(today, wt)
	if !added {
		slog.Info(config.MsgAlreadyLogged,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyPlantID, id,
			config.LogKeyDate, today.String(),
		)
		return nil
	}
	plants[idx].WaterLog = updated
	return st.Save(plants)
}

// recordRepotting appends a repotting to one plant's log and saves.
func recordRepotting(st *store.Store, plants []model.Plant, id int, clock engine.Clock) error {
	idx := findPlant(plants, id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", errs.ErrPlantNotFound, id)
	}

	today := engine.Today(clock)
	updated, added := plants[idx].RepottingLog.Insert(today)
	if !added {
		slog.Info(config.MsgAlreadyLogged,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyPlantID, id,
			config.LogKeyDate, today.String(),
		)
		return nil
	}
	plants[idx].RepottingLog = updated
	return st.Save(plants)
}

// addPlant registers a new plant with the next free id and saves.
func addPlant(st *store.Store, catalog *species.Catalog, plants []model.Plant, name string, speciesID int, clock engine.Clock) error {
	if _, err := catalog.Species(speciesID); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSpeciesFlag, err)
	}

	maxID := 0
	for _, p := range plants {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	plant := model.NewPlant(maxID+1, name, speciesID, engine.Today(clock), model.WaterOnly)
	return st.Save(append(plants, plant))
}

func findPlant(plants []model.Plant, id int) int {
	for i, p := range plants {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// -----------------------------------------------------------------------------
// Roster Output
// -----------------------------------------------------------------------------

// printRoster writes the localized care overview to stdout.
func printRoster(plants []model.Plant, catalog *species.Catalog, tr *i18n.Translator, opts options, clock engine.Clock) {
	today := engine.Today(clock)

	views := engine.BuildViews(plants, catalog, today, slog.Default())
	if opts.minTemp != config.MinTempFilterOff {
		views = engine.FilterByMinTemp(views, opts.minTemp)
	}
	views = engine.Sort(views, opts.sortKey, tr.Lang())

	if len(views) == 0 {
		fmt.Println(tr.Msg(config.TKeyRosterEmpty))
		return
	}

	for _, v := range views {
		fmt.Println(rosterLine(v, tr, today))
	}
}

// rosterLine formats one plant as a single line: name, species and rough
// age, last watering, next watering or its reason, and the urgency or
// elapsed-days note.
func rosterLine(v engine.PlantView, tr *i18n.Translator, today dateutil.CalendarDate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)", v.Plant.Name, v.Species.Name)
	if years := dateutil.DaysBetween(today, v.Plant.EntryDate) / 365; years >= 1 {
		fmt.Fprintf(&b, " [%s]", tr.MsgCount(config.TKeyYearsApprox, years))
	}

	fmt.Fprintf(&b, " | %s: %s (%s, %s)",
		tr.Msg(config.TKeyLastWatering),
		tr.FormatLongDate(v.LastWatering.Date),
		tr.WaterTypeLabel(v.LastWatering.Type),
		relativeDays(tr, v.DaysSince),
	)

	switch v.Next.Reason {
	case engine.ReasonDormant:
		fmt.Fprintf(&b, " | %s", tr.Msg(config.TKeyDormant))
	case engine.ReasonUnknown:
		fmt.Fprintf(&b, " | %s", tr.Msg(config.TKeyNoIntervalData))
	default:
		fmt.Fprintf(&b, " | %s: %s",
			tr.Msg(config.TKeyNextWatering),
			tr.FormatLongDate(v.Next.Date),
		)
	}

	switch {
	case v.Alert != nil && v.Alert.Level == engine.Overdue:
		fmt.Fprintf(&b, " | %s", tr.MsgCount(config.TKeyAlertOverdue, v.Alert.OverdueDays))
	case v.Alert != nil && v.Alert.Level == engine.DueSoon:
		fmt.Fprintf(&b, " | %s", tr.MsgCount(config.TKeyAlertDueSoon, v.Alert.DaysUntil))
	case v.Alert != nil:
		fmt.Fprintf(&b, " | %s", tr.Msg(config.TKeyAlertOnTrack))
	default:
		fmt.Fprintf(&b, " | %s", tr.MsgCount(config.TKeyElapsedDays, v.DaysSince))
	}

	if v.RepotDue {
		fmt.Fprintf(&b, " | %s", tr.Msg(config.TKeyRepotDue))
	}
	return b.String()
}

// relativeDays renders a signed day distance as "today", "N days ago" or
// "in N days".
func relativeDays(tr *i18n.Translator, days int) string {
	switch {
	case days == 0:
		return tr.Msg(config.TKeyToday)
	case days > 0:
		return tr.MsgCount(config.TKeyDaysAgo, days)
	default:
		return tr.MsgCount(config.TKeyDaysAhead, -days)
	}
}

// -----------------------------------------------------------------------------
// Serve Mode
// -----------------------------------------------------------------------------

// schedulePayload is the JSON document served at the schedule route.
type schedulePayload struct {
	GeneratedAt string             `json:"generatedAt"`
	AsOf        string             `json:"asOf"`
	Plants      []engine.PlantView `json:"plants"`
}

// serveCalendar starts the HTTP server and recomputes the schedule on a
// ticker so the feed stays current when the date rolls over.
func serveCalendar(ctx context.Context, st *store.Store, catalog *species.Catalog, tr *i18n.Translator, opts options) error {
	if err := validatePort(opts.port); err != nil {
		return err
	}

	clock := engine.RealClock{}
	srv := server.NewCareServer(opts.port)

	builder := &engine.CalendarBuilder{
		Clock:              clock,
		FormatWaterSummary: tr.WaterSummary,
		FormatRepotSummary: tr.RepotSummary,
	}

	refresh := func() error {
		plants, err := st.Load()
		if err != nil {
			return err
		}

		today := engine.Today(clock)
		views := engine.BuildViews(plants, catalog, today, slog.Default())
		views = engine.Sort(views, opts.sortKey, tr.Lang())

		ics, dueToday, err := builder.Build(views, today, opts.reminder)
		if err != nil {
			return err
		}
		srv.UpdateCalendar(ics)

		payload := schedulePayload{
			GeneratedAt: clock.Now().UTC().Format(time.RFC3339),
			AsOf:        today.String(),
			Plants:      views,
		}
		data, err := json.MarshalIndent(payload, "", config.JSONIndent)
		if err != nil {
			return err
		}
		srv.UpdateSchedule(data)

		slog.Info(config.MsgScheduleBuilt,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeySeason, string(species.SeasonForMonth(today.Month)),
			config.LogKeySortKey, opts.sortKey,
			config.LogKeyCount, len(views),
			config.LogKeySkipped, len(plants)-len(views),
			config.LogKeyDueToday, dueToday,
		)
		return nil
	}

	if err := refresh(); err != nil {
		return err
	}

	go refreshWorker(ctx, refresh)

	return srv.Start(ctx)
}

// validatePort rejects a port outside the valid TCP range before the
// listener ever tries to bind it.
func validatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%s: %q", config.ErrPortInvalid, port)
	}
	if n < config.MinPort || n > config.MaxPort {
		return fmt.Errorf("%s: %d", config.ErrPortInvalid, n)
	}
	return nil
}

// refreshWorker re-runs the computation on a fixed interval until the
// context is cancelled. A failed refresh keeps the previous cache; the
// server never serves a partial update.
func refreshWorker(ctx context.Context, refresh func() error) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)
	log.Info(config.MsgWorkerStart)

	ticker := time.NewTicker(config.DefaultRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-ticker.C:
			if err := refresh(); err != nil {
				log.Error(config.ErrAppFailed, config.LogKeyError, err)
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Environment & Logging Setup
// -----------------------------------------------------------------------------

// defaultDataPath places the collection file in the user's config dir.
func defaultDataPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(configDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.DefaultDataFile), nil
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyBuilt, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	// 1. Always write to Stdout.
	writers = append(writers, os.Stdout)

	// 2. Attempt to set up a file writer in the user's cache directory.
	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Restricted permissions (700), logs may echo plant names.
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
