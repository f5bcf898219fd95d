package deflog

type Severity uint8

const (
	TRACE Severity = iota
	DEBUG
	INFO
	WARN
	ERROR
)

var severityNames = [...]string{
	TRACE: "trace",
	DEBUG: "debug",
	INFO:  "info",
	WARN:  "warn",
	ERROR: "error",
}

// Severities lists every severity from the most to the least permissive.
var Severities = [...]Severity{TRACE, DEBUG, INFO, WARN, ERROR}

// ParseSeverity matches s literally against the lowercase keywords. There is
// no trimming and no case folding.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "trace":
		return TRACE, true
	case "debug":
		return DEBUG, true
	case "info":
		return INFO, true
	case "warn":
		return WARN, true
	case "error":
		return ERROR, true
	}

	return ERROR, false
}

func (s Severity) String() string {
	if s.Valid() {
		return severityNames[s]
	}

	return "invalid"
}

func (s Severity) Valid() bool {
	return s <= ERROR
}

// Allows reports whether a statement at severity s passes a threshold of min.
func (s Severity) Allows(min Severity) bool {
	return s >= min
}
