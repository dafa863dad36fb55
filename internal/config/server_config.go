package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"
	"github/chapool/go-near-tools/internal/util"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	BaseURL                        string
	EnableCORSMiddleware           bool
	EnableLoggerMiddleware         bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableTrailingSlashMiddleware  bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogRequestHeader   bool
	LogRequestQuery    bool
	LogResponseBody    bool
	LogResponseHeader  bool
	PrettyPrintConsole bool
}

// NearServer holds everything needed to talk to a NEAR network. AccountID
// and PrivateKey are optional, without them the server runs in read-only
// mode and rejects transaction-submitting tools.
type NearServer struct {
	NetworkID      string
	NodeURLs       []string
	AccountID      string
	PrivateKey     string `json:"-"` // never log or serialize private key material
	CredentialsDir string
	RequestTimeout time.Duration
}

type ManagementServer struct {
	Secret string `json:"-"`
}

type MetricsServer struct {
	Enable bool
}

type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Near       NearServer
	Management ManagementServer
	Metrics    MetricsServer
}

var dotEnvOnce sync.Once

// DefaultServiceConfigFromEnv returns the server config as parsed from the
// environment, applying an optional .env file first (already set variables
// win over file contents).
func DefaultServiceConfigFromEnv() Server {
	dotEnvOnce.Do(func() {
		if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Msg("Failed to apply .env file")
		}
	})

	return Server{
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			BaseURL:                        util.GetEnv("SERVER_ECHO_BASE_URL", "http://localhost:8080"),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableTrailingSlashMiddleware:  util.GetEnvAsBool("SERVER_ECHO_ENABLE_TRAILING_SLASH_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.InfoLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			LogRequestBody:     util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_BODY", false),
			LogRequestHeader:   util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_HEADER", false),
			LogRequestQuery:    util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_QUERY", false),
			LogResponseBody:    util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_BODY", false),
			LogResponseHeader:  util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_HEADER", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Near: NearServer{
			NetworkID:      util.GetEnv("SERVER_NEAR_NETWORK_ID", "testnet"),
			NodeURLs:       util.GetEnvAsStringArrTrimmed("SERVER_NEAR_NODE_URLS", nil),
			AccountID:      util.GetEnv("SERVER_NEAR_ACCOUNT_ID", ""),
			PrivateKey:     util.GetEnv("SERVER_NEAR_PRIVATE_KEY", ""),
			CredentialsDir: util.GetEnv("SERVER_NEAR_CREDENTIALS_DIR", defaultCredentialsDir()),
			RequestTimeout: time.Second * time.Duration(util.GetEnvAsInt("SERVER_NEAR_REQUEST_TIMEOUT_SECONDS", 30)), //nolint:mnd
		},
		Management: ManagementServer{
			Secret: util.GetMgmtSecret("SERVER_MANAGEMENT_SECRET"),
		},
		Metrics: MetricsServer{
			Enable: util.GetEnvAsBool("SERVER_METRICS_ENABLE", true),
		},
	}
}

func defaultCredentialsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".near-credentials"
	}

	return filepath.Join(home, ".near-credentials")
}
