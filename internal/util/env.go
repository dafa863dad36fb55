package util

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// GetEnv returns the value of the environment variable with the given key,
// the default value if unset.
func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// GetEnvAsInt returns the environment variable parsed as int, the default
// value if unset or unparsable.
func GetEnvAsInt(key string, defaultVal int) int {
	strVal := GetEnv(key, "")

	if val, err := strconv.Atoi(strVal); err == nil {
		return val
	}
	return defaultVal
}

// GetEnvAsUint returns the environment variable parsed as uint64, the default
// value if unset or unparsable.
func GetEnvAsUint(key string, defaultVal uint64) uint64 {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseUint(strVal, 10, 64); err == nil {
		return val
	}
	return defaultVal
}

// GetEnvAsBool returns the environment variable parsed as bool, the default
// value if unset or unparsable. Accepts everything strconv.ParseBool does.
func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseBool(strVal); err == nil {
		return val
	}
	return defaultVal
}

// GetEnvAsStringArr returns the environment variable split by the separator
// (default ","), the default value if unset or empty. Empty entries are
// retained.
func GetEnvAsStringArr(key string, defaultVal []string, separator ...string) []string {
	strVal := GetEnv(key, "")

	if len(strVal) == 0 {
		return defaultVal
	}

	sep := ","
	if len(separator) >= 1 {
		sep = separator[0]
	}

	return strings.Split(strVal, sep)
}

// GetEnvAsStringArrTrimmed works like GetEnvAsStringArr, trimming whitespace
// around each entry.
func GetEnvAsStringArrTrimmed(key string, defaultVal []string, separator ...string) []string {
	arr := GetEnvAsStringArr(key, defaultVal, separator...)

	for i := range arr {
		arr[i] = strings.TrimSpace(arr[i])
	}
	return arr
}

// GetMgmtSecret returns the management secret from the given environment
// variable, generating (and logging) a random one if unset. Mainly a
// convenience for local development, production deployments should always
// provide the secret explicitly.
func GetMgmtSecret(envKey string) string {
	val := GetEnv(envKey, "")

	if len(val) > 0 {
		return val
	}

	generated, err := GenerateRandomHexString(16) //nolint:mnd
	if err != nil {
		log.Panic().Err(err).Msgf("Failed to generate random management secret for env key %s", envKey)
	}

	log.Warn().Str("envKey", envKey).Msgf("%s was unset, using generated random secret for this process lifetime", envKey)

	return generated
}
