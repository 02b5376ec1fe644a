package backend

import (
	"fmt"

	"fintrack/internal/config"
)

// FromAppConfig converts the application config to sink config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	sinkType := SinkType(appConfig.ExportSink)
	if !sinkType.IsValid() {
		return Config{}, fmt.Errorf("invalid export sink in config: %s", appConfig.ExportSink)
	}

	return Config{
		Type:                     sinkType,
		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleSheetName:          appConfig.GoogleSheetName,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
	}, nil
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid export sink: %s", c.Type)
	}

	if c.Type == SheetsSink {
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets export")
		}
		if c.GoogleSheetName == "" {
			return fmt.Errorf("Google Sheet name is required for sheets export")
		}
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" {
			return fmt.Errorf("either GoogleServiceAccountJSON or GoogleServiceAccountFile must be provided for sheets export")
		}
	}
	return nil
}

func SinkTypes() []SinkType {
	return []SinkType{MemorySink, SheetsSink}
}
