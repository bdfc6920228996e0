package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/machinecoin-project/machinecoin-core/infrastructure/logger"
	"github.com/machinecoin-project/machinecoin-core/version"
	"github.com/pkg/errors"
)

const (
	defaultConfigFilename = "machinecoind.conf"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "machinecoind.log"
	defaultErrLogFilename = "machinecoind_err.log"
	defaultDBCacheMiB     = 64
)

var (
	// DefaultAppDir is the default home directory for machinecoind.
	DefaultAppDir = btcutil.AppDataDir("machinecoind", false)

	defaultConfigFile = filepath.Join(DefaultAppDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(DefaultAppDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(DefaultAppDir, defaultLogDirname)
)

// Flags defines the configuration options for machinecoind.
//
// See loadConfig for details on the configuration load process.
type Flags struct {
	ShowVersion bool     `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile  string   `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir     string   `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir      string   `long:"logdir" description:"Directory to log output."`
	DebugLevel  string   `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	LiteMode    bool     `long:"litemode" description:"Disable masternode, governance and quorum processing"`
	LoadHeaders []string `long:"loadheaders" description:"Import block headers from the given file, one hex-encoded header per line"`
	DBCacheMiB  int      `long:"dbcache" description:"Database cache size in MiB"`
	NetworkFlags
}

// Config defines the configuration options for machinecoind.
//
// See loadConfig for details on the configuration load process.
type Config struct {
	*Flags
}

// LogFile returns the path of the main log file.
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}

// ErrLogFile returns the path of the warnings and errors log file.
func (cfg *Config) ErrLogFile() string {
	return filepath.Join(cfg.LogDir, defaultErrLogFilename)
}

// DatabaseDir returns the directory of the block index database.
func (cfg *Config) DatabaseDir() string {
	return filepath.Join(cfg.DataDir, "blockindex")
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultAppDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

func defaultFlags() *Flags {
	return &Flags{
		ConfigFile: defaultConfigFile,
		DebugLevel: defaultLogLevel,
		DataDir:    defaultDataDir,
		LogDir:     defaultLogDir,
		DBCacheMiB: defaultDBCacheMiB,
	}
}

// LoadConfig initializes and parses the config using a config file and
// command line options, then starts the log backend with the resulting
// log directory and levels.
func LoadConfig() (*Config, error) {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return nil, err
	}

	// Initialize log rotation. After log rotation has been initialized, the
	// logger variables may be used.
	logger.InitLog(cfg.LogFile(), cfg.ErrLogFile())

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", logger.SupportedSubsystems())
		os.Exit(0)
	}

	// Parse, validate, and set debug log level(s).
	err = logger.ParseAndSetLogLevels(cfg.DebugLevel)
	if err != nil {
		err := errors.Errorf("LoadConfig: %s", err.Error())
		fmt.Fprintln(os.Stderr, err)
		return nil, err
	}

	for _, vbParams := range cfg.VBParams {
		log.Infof("Using version bits deployment override %s", vbParams)
	}
	log.Debugf("Active network is %s, data directory is %s", cfg.NetParams().Name, cfg.DataDir)
	return cfg, nil
}

// loadConfig parses args on top of the configuration file.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// Command line options always take precedence.
func loadConfig(args []string) (*Config, error) {
	cfgFlags := defaultFlags()

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified. Any errors aside from the
	// help message error can be ignored here since they will be caught by
	// the final parse below.
	preCfg := *cfgFlags
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			return nil, err
		}
	}

	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)
	if preCfg.ShowVersion {
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	// Load additional config from file. A missing config file is not an
	// error.
	parser := flags.NewParser(cfgFlags, flags.Default)
	err = flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(os.Stderr, "Error parsing config file: %s\n", err)
			fmt.Fprintln(os.Stderr, usageMessage)
			return nil, err
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); !ok || flagsErr.Type != flags.ErrHelp {
			fmt.Fprintln(os.Stderr, usageMessage)
		}
		return nil, err
	}
	if len(remainingArgs) > 0 {
		return nil, errors.Errorf("loadConfig: unexpected arguments %s", remainingArgs)
	}

	cfg := &Config{Flags: cfgFlags}
	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	if cfg.DBCacheMiB <= 0 {
		return nil, errors.Errorf("loadConfig: dbcache must be positive, got %d", cfg.DBCacheMiB)
	}

	// Append the network type to the data and log directories so they
	// are "namespaced" per network.
	cfg.DataDir = filepath.Join(cleanAndExpandPath(cfg.DataDir), cfg.NetParams().Name)
	cfg.LogDir = filepath.Join(cleanAndExpandPath(cfg.LogDir), cfg.NetParams().Name)

	for i, headersFile := range cfg.LoadHeaders {
		cfg.LoadHeaders[i] = cleanAndExpandPath(headersFile)
	}

	return cfg, nil
}
