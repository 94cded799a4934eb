// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	sqliteFileName string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dataDir        string
	logFilePath    string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths = &Paths{
			configDir:      "readtime",
			configFileName: "config.yml",
			dbFileName:     "readtime.db",
			sqliteFileName: "readtime.sqlite",
			logFileName:    "readtime.log",
		}

		paths.applyEnvironmentOverrides(os.Getenv("READTIME_ENV"))
		initErr = paths.computePaths()
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return Must().configDir
}

func ConfigFilePath() string {
	return Must().configFilePath
}

// DBFilePath returns the database location for the given storage driver.
func DBFilePath(driver string) string {
	p := Must()

	if driver == "sqlite" {
		return filepath.Join(p.dataDir, p.sqliteFileName)
	}

	return filepath.Join(p.dataDir, p.dbFileName)
}

func LogFilePath() string {
	return Must().logFilePath
}

func (p *Paths) applyEnvironmentOverrides(env string) {
	env = strings.TrimSpace(env)
	if env == "" {
		return
	}

	p.configFileName = fmt.Sprintf("config_%s.yml", env)
	p.dbFileName = fmt.Sprintf("readtime_%s.db", env)
	p.sqliteFileName = fmt.Sprintf("readtime_%s.sqlite", env)
	p.logFileName = fmt.Sprintf("readtime_%s.log", env)
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.configDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return fmt.Errorf("locating config file: %w", err)
	}

	p.dataDir, err = xdg.DataFile(p.configDir)
	if err != nil {
		return fmt.Errorf("locating data dir: %w", err)
	}

	p.logFilePath = filepath.Join(p.dataDir, "log", p.logFileName)

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}
