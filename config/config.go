package config

import (
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

const DefaultFlashSecret = "quick-form-dev-secret"

type Config struct {
	Addr        string
	DataDir     string
	FieldsPath  string
	FlashSecret string
	LogFile     string
	PageSize    int
	Debug       bool
}

// ParseFlags reads the command line. Every flag defaults to the matching
// environment variable when set.
func ParseFlags() (Config, error) {
	return Parse(flag.CommandLine, os.Args[1:], os.Getenv)
}

func Parse(fs *flag.FlagSet, args []string, getenv func(string) string) (cfg Config, err error) {
	var host string
	fs.StringVar(&host, "host", getEnv(getenv, "HOST", "0.0.0.0"), "listen host name")
	var port uint
	fs.UintVar(&port, "port", uint(getEnvInt(getenv, "PORT", 5000)), "listen port number")
	fs.StringVar(&cfg.DataDir, "data-dir", getEnv(getenv, "DATA_DIR", "output"), "directory holding entry files")
	fs.StringVar(&cfg.FieldsPath, "fields", getEnv(getenv, "FIELDS_PATH", "fields.yaml"), "path to the form field definitions")
	fs.StringVar(&cfg.FlashSecret, "flash-secret", getEnv(getenv, "FLASH_SECRET", DefaultFlashSecret), "key signing flash message cookies")
	fs.StringVar(&cfg.LogFile, "log-file", getEnv(getenv, "LOG_FILE", ""), "also write logs to this file (rotated)")
	fs.IntVar(&cfg.PageSize, "page-size", getEnvInt(getenv, "PAGE_SIZE", 10), "entries per listing page")
	fs.BoolVar(&cfg.Debug, "debug", getEnvBool(getenv, "DEBUG"), "log at DEBUG level")
	if err = fs.Parse(args); err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))

	switch {
	case cfg.PageSize < 1:
		err = errors.Errorf("invalid -page-size %d", cfg.PageSize)
	case cfg.DataDir == "":
		err = errors.New("missing parameter -data-dir")
	case cfg.FieldsPath == "":
		err = errors.New("missing parameter -fields")
	}
	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func getEnv(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(getenv func(string) string, key string, fallback int) int {
	n, err := strconv.Atoi(getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(getenv func(string) string, key string) bool {
	b, _ := strconv.ParseBool(getenv(key))
	return b
}
