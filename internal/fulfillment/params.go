package fulfillment

import (
	"strconv"
	"strings"
	"time"
)

// Dialogflow sends parameters as strings, numbers, lists or system-entity
// objects (sys.person arrives as {"name": "..."}). paramString flattens any
// of those to display text; it never yields fmt's "map[...]" rendering.

var nameKeys = []string{"first-name", "original", "value", "text"}

func paramString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		if s := paramString(t["name"]); s != "" {
			return s
		}
		given, last := paramString(t["given-name"]), paramString(t["last-name"])
		if full := strings.TrimSpace(given + " " + last); full != "" {
			return full
		}
		for _, k := range nameKeys {
			if s := paramString(t[k]); s != "" {
				return s
			}
		}
		return ""
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := paramString(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// param returns the first non-empty value among keys.
func param(params map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := paramString(params[k]); s != "" {
			return s
		}
	}
	return ""
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// dateParam renders sys.date values ("2026-10-20T12:00:00+05:00") as a date.
func dateParam(s string) string {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.Format("2006-01-02")
	}
	return s
}

// timeParam renders sys.time values as a wall-clock time.
func timeParam(s string) string {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.Format("15:04")
	}
	return s
}
