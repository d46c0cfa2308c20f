package utils

import (
	"strings"

	"github.com/raushankrgupta/virtual-closet/logger"
)

// Log receives helper and request logs. main replaces it at startup.
var Log = logger.Nop()

func AddToLogMessage(logMessagesBuilder *strings.Builder, strToAdd string) {

	if logMessagesBuilder.Len() == logMessagesBuilder.Cap() {

		logMessagesBuilder.Grow(len(strToAdd))
	}

	logMessagesBuilder.WriteString(strToAdd)
	logMessagesBuilder.WriteString(";")
	logMessagesBuilder.WriteString("\n")
}

// FlushLogMessage writes the collected request log as a single entry.
func FlushLogMessage(logMessagesBuilder *strings.Builder) {
	if logMessagesBuilder.Len() == 0 {
		return
	}
	Log.Info(strings.TrimSuffix(logMessagesBuilder.String(), "\n"))
}
