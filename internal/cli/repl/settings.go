package repl

import (
	"fmt"
	"strconv"
	"time"

	"github.com/yndnr/csrftok/pkg/csrf"
)

// settingKeys are the tokenizer settings `set` accepts. They match the
// configuration file keys.
var settingKeys = []string{
	"algorithm",
	"salt_length",
	"secret_length",
	"validity",
	"user_binding",
	"hmac_key",
}

// applySetting parses value and stores it in cfg under key.
func applySetting(cfg *csrf.Config, key, value string) error {
	switch key {
	case "algorithm":
		cfg.Algorithm = value
	case "salt_length":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("salt_length: %w", err)
		}
		cfg.SaltLength = n
	case "secret_length":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("secret_length: %w", err)
		}
		cfg.SecretLength = n
	case "validity":
		if value == "0" || value == "off" {
			cfg.Validity = 0
			return nil
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("validity: %w", err)
		}
		cfg.Validity = d
	case "user_binding":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("user_binding: %w", err)
		}
		cfg.UserInfo = b
	case "hmac_key":
		if value == "" {
			cfg.HMACKey = nil
		} else {
			cfg.HMACKey = []byte(value)
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
