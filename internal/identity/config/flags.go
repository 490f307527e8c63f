package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags are the persistent command-line options shared by every command.
// Only flags the user set override lower layers.
type Flags struct {
	fs *pflag.FlagSet

	configPath string
	envFiles   []string

	dsn             string
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	autoMigrate     bool
	logLevel        string
	logFormat       string
}

// RegisterFlags defines the configuration flags on fs.
//
//	-c, --config string          JSON config file
//	    --env-file strings       .env files to load (default .env)
//	-d, --dsn string             PostgreSQL DSN
//	    --max-open-conns int
//	    --max-idle-conns int
//	    --conn-max-lifetime dur
//	    --auto-migrate           apply migrations on open
//	    --log-level string
//	    --log-format string
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.configPath, "config", "c", "", "path to JSON config file")
	fs.StringSliceVar(&f.envFiles, "env-file", []string{".env"}, ".env files to load before reading IDENTITY_* variables")
	fs.StringVarP(&f.dsn, "dsn", "d", "", "PostgreSQL DSN")
	fs.IntVar(&f.maxOpenConns, "max-open-conns", 0, "maximum open database connections")
	fs.IntVar(&f.maxIdleConns, "max-idle-conns", 0, "maximum idle database connections")
	fs.DurationVar(&f.connMaxLifetime, "conn-max-lifetime", 0, "maximum connection lifetime")
	fs.BoolVar(&f.autoMigrate, "auto-migrate", false, "apply schema migrations when opening the store")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: json or text")
	return f
}

func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.configPath
}

func (f *Flags) EnvFiles() []string {
	if f == nil {
		return nil
	}
	return f.envFiles
}

func (f *Flags) apply(config *Config) {
	if f == nil {
		return
	}
	if f.fs.Changed("dsn") {
		config.DatabaseDSN = f.dsn
	}
	if f.fs.Changed("max-open-conns") {
		config.MaxOpenConns = f.maxOpenConns
	}
	if f.fs.Changed("max-idle-conns") {
		config.MaxIdleConns = f.maxIdleConns
	}
	if f.fs.Changed("conn-max-lifetime") {
		config.ConnMaxLifetime = f.connMaxLifetime
	}
	if f.fs.Changed("auto-migrate") {
		config.AutoMigrate = f.autoMigrate
	}
	if f.fs.Changed("log-level") {
		config.LogLevel = f.logLevel
	}
	if f.fs.Changed("log-format") {
		config.LogFormat = f.logFormat
	}
}
