package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	emailRegex       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonPhoneRunes    = regexp.MustCompile(`[^\d+]`)
	kenyanPhoneRegex = regexp.MustCompile(`^\+254[17]\d{8}$`)
)

func ValidateEmail(email string) (bool, error) {
	if !emailRegex.MatchString(email) {
		return false, fmt.Errorf("error: email format incorrect")
	}
	return true, nil
}

// NormalizeKenyanPhone rewrites local formats (07.., 254.., 7..) to +254XXXXXXXXX.
// Separators such as spaces and dashes are dropped.
func NormalizeKenyanPhone(phone string) string {
	cleaned := nonPhoneRunes.ReplaceAllString(phone, "")

	switch {
	case strings.HasPrefix(cleaned, "0"):
		cleaned = "+254" + cleaned[1:]
	case strings.HasPrefix(cleaned, "254"):
		cleaned = "+" + cleaned
	case !strings.HasPrefix(cleaned, "+"):
		cleaned = "+254" + cleaned
	}
	return cleaned
}

// ValidateKenyanPhone accepts Safaricom/Airtel style mobile numbers: +254 7XX XXX XXX or +254 1XX XXX XXX
func ValidateKenyanPhone(phone string) (bool, error) {
	if strings.TrimSpace(phone) == "" {
		return false, fmt.Errorf("phone number is required")
	}
	if !kenyanPhoneRegex.MatchString(NormalizeKenyanPhone(phone)) {
		return false, fmt.Errorf("phone format incorrect")
	}
	return true, nil
}

func GetQueryParamAsInt(c *gin.Context, paramName string, defaultValue int) (int, error) {
	paramValue := c.Query(paramName)
	if paramValue == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(paramValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	if intValue <= 0 {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	return intValue, nil
}
