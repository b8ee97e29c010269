package render

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/signguard/signguard/internal/domain"
)

var (
	sevLow             = color.New(color.FgGreen)
	sevMedium          = color.New(color.FgYellow)
	sevHigh            = color.New(color.FgHiRed)
	sevCritical        = color.New(color.FgRed, color.Bold)
	sevUnknown         = color.New(color.FgMagenta, color.Bold)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	addressStyle       = color.New(color.FgWhite)
	faintStyle         = color.New(color.Faint)
)

// FormatWarning formats a warning line with the warning icon.
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error line with the error icon.
func FormatError(message string) string {
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success line with the success icon.
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// severityStyle picks the color for a severity badge. UNKNOWN renders
// distinctly from CRITICAL even though it outranks it — a reader
// needs to tell "we couldn't assess this" apart from "this is dangerous".
func severityStyle(sev domain.Severity) *color.Color {
	switch sev {
	case domain.SeverityLow:
		return sevLow
	case domain.SeverityMedium:
		return sevMedium
	case domain.SeverityHigh:
		return sevHigh
	case domain.SeverityCritical:
		return sevCritical
	default:
		return sevUnknown
	}
}

// FormatSeverityBadge renders a bracketed, colored severity label.
func FormatSeverityBadge(sev domain.Severity) string {
	return severityStyle(sev).Sprintf("[%s]", sev)
}

// FormatBand renders a SubCallSeverityBand as a colored one-word badge.
func FormatBand(band domain.SubCallSeverityBand) string {
	switch band {
	case domain.BandOK:
		return sevLow.Sprint("OK")
	case domain.BandWarn:
		return sevHigh.Sprint("WARN")
	case domain.BandDanger:
		return sevCritical.Sprint("DANGER")
	default:
		return sevUnknown.Sprint("UNKNOWN")
	}
}

func sectionHeader(title string) string {
	return sectionHeaderStyle.Sprint(title)
}

func fmtAddress(addr string) string {
	return addressStyle.Sprint(addr)
}

func fmtFaint(s string) string {
	return faintStyle.Sprint(s)
}

func fmtSignature(result *domain.AnalysisResult) string {
	if result.FunctionName != nil {
		return *result.FunctionName
	}
	if result.Signature != nil {
		return *result.Signature
	}
	return fmt.Sprintf("unknown(%s)", result.Selector.String())
}
