package backend

import (
	"context"

	"fintrack/internal/sheets"
)

// CleanupFunc releases resources held by a created component.
type CleanupFunc func() error

// SinkResult contains the ledger export sink and an optional cleanup function.
type SinkResult struct {
	Sink    sheets.LedgerSink
	Cleanup CleanupFunc
}

// Factory creates export sinks based on configuration.
type Factory interface {
	CreateSink(ctx context.Context, config Config) (*SinkResult, error)
}

// Config holds the settings needed to build a sink.
type Config struct {
	Type SinkType

	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
}

type SinkType string

const (
	MemorySink SinkType = "memory"
	SheetsSink SinkType = "sheets"
)

func (st SinkType) String() string {
	return string(st)
}

func (st SinkType) IsValid() bool {
	switch st {
	case MemorySink, SheetsSink:
		return true
	default:
		return false
	}
}
