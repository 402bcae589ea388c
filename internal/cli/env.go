package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFileVar overrides the --env flag when set.
const EnvFileVar = "GTRANSLATE_ENV_FILE"

// LoadEnvFile loads variables from a .env file into the process environment,
// overriding existing values. The path comes from GTRANSLATE_ENV_FILE or
// requested. A missing file is only an error when it was asked for
// explicitly; the default ".env" is optional.
func LoadEnvFile(requested string) (string, error) {
	if custom := strings.TrimSpace(os.Getenv(EnvFileVar)); custom != "" {
		if err := godotenv.Overload(custom); err != nil {
			return "", fmt.Errorf("failed to load %s=%s: %w", EnvFileVar, custom, err)
		}
		return custom, nil
	}

	path := strings.TrimSpace(requested)
	optional := path == "" || path == ".env"
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Overload(path); err != nil {
		if optional && os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	return path, nil
}
