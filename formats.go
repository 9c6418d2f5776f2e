package jsonschema

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// defaultFormats returns the built-in format validators the registry
// starts with. Credit to https://github.com/santhosh-tekuri/jsonschema for
// the reference implementations several of these are modeled on.
func defaultFormats() map[string]func(string) bool {
	return map[string]func(string) bool{
		"date-time": isDateTime,
		"date":      isDate,
		"time":      isTime,
		"duration":  isDuration,
		"email":     isEmail,
		"hostname":  isHostname,
		"ipv4":      isIPv4,
		"ipv6":      isIPv6,
		"uri":       isURI,
		"uri-reference": func(s string) bool {
			_, err := url.Parse(s)
			return err == nil
		},
		"uuid":      isUUID,
		"regex":     isRegex,
		"json-pointer": func(s string) bool {
			return s == "" || len(s) > 0 && s[0] == '/'
		},
	}
}

func isDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

func isDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isTime(s string) bool {
	_, err := time.Parse("15:04:05Z07:00", s)
	if err == nil {
		return true
	}
	_, err = time.Parse("15:04:05", s)
	return err == nil
}

var durationPattern = regexp.MustCompile(`^P(\d+W|(\d+Y)?(\d+M)?(\d+D)?(T(\d+H)?(\d+M)?(\d+S)?)?)$`)

func isDuration(s string) bool {
	return s != "P" && durationPattern.MatchString(s)
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func isHostname(s string) bool {
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	hostnamePattern := `^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`
	matched, err := regexp.MatchString(hostnamePattern, s)
	return err == nil && matched
}

func isIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
}

func isIPv6(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() == nil
}

func isURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func isRegex(s string) bool {
	_, err := regexp.Compile(s)
	return err == nil
}
