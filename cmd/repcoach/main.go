package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayusman/repcoach/internal/app"
	"github.com/ayusman/repcoach/internal/server"
	"github.com/ayusman/repcoach/internal/store"
	"github.com/ayusman/repcoach/internal/tray"
)

func main() {
	fmt.Println("RepCoach - Camera Workout Coach")

	pflag.String("addr", ":8080", "HTTP listen address")
	pflag.Int("camera", 0, "camera device ID")
	pflag.String("db", "", "path to the SQLite database (default ~/.repcoach/repcoach.db)")
	pflag.String("plugins", "", "plugin directory (default ~/.repcoach/plugins)")
	pflag.String("log-file", "", "log file path (default stderr)")
	pflag.Float64("presence-threshold", 1.0, "presence detection threshold in percent changed pixels")
	pflag.Duration("feedback-debounce", 3*time.Second, "minimum interval between delivered form corrections")
	pflag.Bool("no-tray", false, "run headless without the system tray")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)
	viper.SetEnvPrefix("REPCOACH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	dataDir, err := dataDir()
	if err != nil {
		log.Fatalf("Failed to resolve data directory: %v", err)
	}

	viper.SetConfigName("config")
	viper.AddConfigPath(dataDir)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Failed to read config file: %v", err)
		}
	}

	if logFile := viper.GetString("log-file"); logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	dbPath := viper.GetString("db")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "repcoach.db")
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	pluginDir := viper.GetString("plugins")
	if pluginDir == "" {
		pluginDir = filepath.Join(dataDir, "plugins")
		if err := os.MkdirAll(pluginDir, 0755); err != nil {
			log.Fatalf("Failed to create plugin directory: %v", err)
		}
	}

	a := app.New(app.Config{
		Store:            st,
		PluginDir:        pluginDir,
		CameraID:         viper.GetInt("camera"),
		PresenceThresh:   viper.GetFloat64("presence-threshold"),
		FeedbackDebounce: viper.GetDuration("feedback-debounce"),
	})

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	} else {
		log.Printf("Discovered %d plugins in %s", len(a.PluginManager().List()), pluginDir)
	}

	if err := a.Start(); err != nil {
		log.Printf("Camera unavailable (%v), running without capture", err)
	} else {
		a.SetEnabled(true)
		defer a.Stop()
	}

	// Find web directory
	webDir := findWebDir(dataDir)
	if webDir != "" {
		log.Printf("Serving static files from: %s", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    a.Camera(),
		Session:   a.Session(),
	})

	addr := viper.GetString("addr")
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if viper.GetBool("no-tray") {
		runHeadless(a)
		return
	}

	runTray(a, addr)
}

// runHeadless blocks until an interrupt, for servers and CI machines
// without a desktop session.
func runHeadless(a *app.App) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Println("Shutting down")
	a.Stop()
}

// runTray runs the system tray event loop and keeps its progress line in
// sync with the active session.
func runTray(a *app.App, addr string) {
	t := tray.New()

	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		log.Printf("Camera pipeline enabled: %v", enabled)
	})

	t.OnSettings(func() {
		openBrowser(dashboardURL(addr))
	})

	t.OnQuit(func() {
		a.Stop()
	})

	stopCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				snap := a.Session().Snapshot()
				if !snap.Active {
					t.SetProgress("", 0, 0)
					continue
				}
				t.SetProgress(snap.Exercise, snap.Reps, snap.HoldSeconds)
			}
		}
	}()

	t.Run()
	close(stopCh)
}

// dataDir returns ~/.repcoach, creating it if needed.
func dataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(homeDir, ".repcoach")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// dashboardURL turns a listen address into a browsable URL.
func dashboardURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and the data directory.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	webDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(webDir); err == nil && info.IsDir() {
		return webDir
	}

	return ""
}
