// Package logging builds the process-wide logger.
package logging

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Gobusters/ectologger"
)

// NewLogger creates a stdout logger. Messages are emitted as single-line
// JSON; pretty enables indented output for local development.
func NewLogger(appName string, pretty bool) ectologger.Logger {
	sink := func(msg ectologger.EctoLogMessage) {
		var (
			data []byte
			err  error
		)
		if pretty {
			data, err = json.MarshalIndent(msg, "", "  ")
		} else {
			data, err = json.Marshal(msg)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode log message: %v\n", err)
			return
		}
		fmt.Fprintln(os.Stdout, string(data))
	}

	return ectologger.NewEctoLogger(sink).WithField("app", appName)
}
