package notify

import (
	"os"
	"time"
)

// BuildEnv constructs the environment variable slice for a notify command.
// It starts with the current process environment, overlays base variables,
// and adds SOONISH_* variables describing the fired reminder.
func BuildEnv(base map[string]string, rc Context) []string {
	// Start with current environment in a map for easy overlay.
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		for i := 0; i < len(e); i++ {
			if e[i] == '=' {
				envMap[e[:i]] = e[i+1:]
				break
			}
		}
	}

	// Overlay base env.
	for k, v := range base {
		envMap[k] = v
	}

	// Add reminder metadata.
	envMap["SOONISH_REMINDER_ID"] = rc.ReminderID
	envMap["SOONISH_PHRASE"] = rc.Phrase
	envMap["SOONISH_MESSAGE"] = rc.Message
	envMap["SOONISH_AT"] = rc.At.Format(time.RFC3339)

	// Convert to slice.
	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}
