package telemetry

import (
	"fmt"
	"strings"
)

var _tagValueReplacer = strings.NewReplacer(
	"{", "_",
	"}", "",
)

// SanitizeMetricTagValue normalizes a value before using it as a metric tag.
// It trims trailing "/" and rewrites route placeholder braces so the value
// stays within the character set statsd backends accept.
func SanitizeMetricTagValue(value string) string {
	if value == "" {
		return ""
	}

	value = strings.TrimRight(value, "/")
	if value == "" {
		return "/"
	}

	return _tagValueReplacer.Replace(value)
}

// Tags builds a "tag:value" list out of alternating name/value arguments.
// It panics if the number of arguments is odd, if a name is not a string, or
// if a value is not one of the supported types (string, Stringer, integer
// types and bool).
func Tags(nameValue ...interface{}) []string {
	if len(nameValue)%2 != 0 {
		panic("number of arguments must be even")
	}

	tags := make([]string, 0, len(nameValue)/2)
	for i := 0; i+1 < len(nameValue); i += 2 {
		name, ok := nameValue[i].(string)
		if !ok {
			panic(fmt.Sprintf("tag name %v is not a string", nameValue[i]))
		}

		tags = append(tags, name+":"+tagValue(nameValue[i+1]))
	}

	return tags
}

func tagValue(value interface{}) string {
	switch t := value.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		return fmt.Sprintf("%v", value)
	default:
		panic(fmt.Sprintf("type %T is unsupported", value))
	}
}
