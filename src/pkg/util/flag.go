package util

import (
	"os"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

type requiredFlag struct {
	value   *string
	cliName string
}

// registration order, so missing flags are reported the way they were declared
var requiredFlags []requiredFlag

// RequiredFlag(recipientPtr, "--recipient"), can also use -recipient and recipient
func RequiredFlag(flagPointer *string, cliName string) {
	requiredFlags = append(requiredFlags, requiredFlag{value: flagPointer, cliName: normalizeFlagName(cliName)})
}

func normalizeFlagName(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "--") {
		return s
	}
	if strings.HasPrefix(s, "-") {
		return "-" + s
	}
	return "--" + s
}

// MissingFlags returns the registered flags that are still empty.
func MissingFlags() (missing []string) {
	for _, required := range requiredFlags {
		if required.value == nil || strings.TrimSpace(*required.value) == "" {
			missing = append(missing, required.cliName)
		}
	}
	return missing
}

// EnsureFlags logs every missing required flag and exits(1) if any were missing.
func EnsureFlags() {
	missing := MissingFlags()
	for _, cliName := range missing {
		tl.Log(tl.Warning, palette.YellowBold, "%s parameter is %s", cliName, "required")
	}
	if len(missing) > 0 {
		os.Exit(1)
	}
}

/*
TodayFromFlag returns the date the run should treat as "today".

An empty value means the local clock. Otherwise the value must be YYYY-MM-DD;
an unparsable value is reported and the program exits, same as a missing
required flag.
*/
func TodayFromFlag(value string, cliName string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Now()
	}

	parsed, parseErr := time.ParseInLocation("2006-01-02", trimmed, time.Local)
	if parseErr != nil {
		tl.Log(tl.Warning, palette.YellowBold, "%s parameter must look like %s, got '%s'", normalizeFlagName(cliName), "YYYY-MM-DD", trimmed)
		os.Exit(1)
	}
	return parsed
}
