package commands

// Error messages
const (
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryDisabled          = "history is disabled (history.enabled: false)"
	ErrCopyFailed               = "could not copy to clipboard; run `passgen doctor` for details"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
	MsgHistoryCleared           = "History cleared."
	MsgCopied                   = "Copied to clipboard."
)

// DefaultGenerateCount is how many passwords generate prints without -n.
const DefaultGenerateCount = 1
