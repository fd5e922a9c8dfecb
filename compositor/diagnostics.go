package compositor

import "fmt"

// Severity grades a conversion diagnostic.
type Severity uint8

const (
	// Info marks an intentional approximation or a skipped layer.
	Info Severity = iota
	// Warning marks missing or unsupported input resolved to a
	// visible default.
	Warning
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "<unknown Severity>"
	}
}

// Diagnostic records one non fatal conversion event. Diagnostics are
// values aggregated into a report, never control flow: the conversion
// always completes or fails fatally.
type Diagnostic struct {
	Severity Severity
	Layer    string // layer name, "" for document level events
	Reason   string
}

func (d Diagnostic) String() string {
	if d.Layer == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Reason)
	}
	return fmt.Sprintf("%s: layer %q: %s", d.Severity, d.Layer, d.Reason)
}

func (c *converter) diag(sev Severity, layer, format string, args ...interface{}) {
	d := Diagnostic{Severity: sev, Layer: layer, Reason: fmt.Sprintf(format, args...)}
	c.diags = append(c.diags, d)
	c.log.Debug("conversion diagnostic", "severity", sev.String(), "layer", layer, "reason", d.Reason)
}
