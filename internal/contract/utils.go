package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Health label constants for scorecard output.
const (
	ExcellentValue = "Excellent" // Excellent health
	HealthyValue   = "Healthy"   // Healthy
	AtRiskValue    = "At Risk"   // Needs attention
	CriticalValue  = "Critical"  // Critical health
)

// Severity label constants for bottleneck output.
const (
	SevereValue   = "Severe"
	HighValue     = "High"
	ModerateValue = "Moderate"
	LowValue      = "Low"
)

// Color variables for console output.
var (
	GoodColor     = color.New(color.FgGreen, color.Bold)   // goodColor marks healthy signal.
	OKColor       = color.New(color.FgCyan)                // okColor marks acceptable signal.
	WarnColor     = color.New(color.FgYellow)              // warnColor marks caution, not bold.
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor marks standard danger.
	SevereColor   = color.New(color.FgMagenta, color.Bold) // severeColor marks strong, distinct warning.
)

// GetPlainHealthLabel returns a plain text label for a 0-100 health score,
// where higher is better. This is the core logic shared by CSV, JSON and
// table printing.
func GetPlainHealthLabel(score float64) string {
	switch {
	case score >= 80:
		return ExcellentValue
	case score >= 60:
		return HealthyValue
	case score >= 40:
		return AtRiskValue
	default:
		return CriticalValue
	}
}

// GetColorHealthLabel returns a colored health label for console output.
func GetColorHealthLabel(score float64) string {
	text := GetPlainHealthLabel(score)
	switch text {
	case ExcellentValue:
		return GoodColor.Sprint(text)
	case HealthyValue:
		return OKColor.Sprint(text)
	case AtRiskValue:
		return WarnColor.Sprint(text)
	default: // "Critical"
		return CriticalColor.Sprint(text)
	}
}

// GetPlainSeverityLabel returns a plain text label for a 0-100 bottleneck
// score, where higher is worse.
func GetPlainSeverityLabel(score float64) string {
	switch {
	case score >= 80:
		return SevereValue
	case score >= 60:
		return HighValue
	case score >= 40:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorSeverityLabel returns a colored severity label for console output.
func GetColorSeverityLabel(score float64) string {
	text := GetPlainSeverityLabel(score)
	switch text {
	case SevereValue:
		return SevereColor.Sprint(text)
	case HighValue:
		return CriticalColor.Sprint(text)
	case ModerateValue:
		return WarnColor.Sprint(text)
	default: // "Low"
		return OKColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateID shortens a scope identifier from the left so the distinctive
// tail stays visible in narrow tables.
func TruncateID(id string, maxWidth int) string {
	runes := []rune(id)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return id
}

// ParseBoolString parses the yes/no style boolean flags.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on", "":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized boolean value %q", s)
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
}
