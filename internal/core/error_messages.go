package core

import (
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user
// messages. Patterns are matched with strings.Contains and the first match
// wins, so more specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "unsupported format",
		msg: UserMessage{
			Message: "File format is not supported",
			Action:  "Upload .csv, .txt, .xlsx, .xlsm or .xls files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "parse csv",
		msg: UserMessage{
			Message: "File is not valid comma-separated text",
			Action:  "Ensure the file is comma-separated with consistent quoting",
			Code:    "FILE002",
		},
	},
	{
		pattern: "read workbook",
		msg: UserMessage{
			Message: "Spreadsheet could not be read",
			Action:  "Re-save the workbook as .xlsx and upload again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file has no header row",
			Action:  "Upload a file with a header row and data rows",
			Code:    "FILE004",
		},
	},
	{
		pattern: "file exceeds",
		msg: UserMessage{
			Message: "File exceeds the size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE005",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Select at least one file to upload",
			Code:    "FILE006",
		},
	},
	{
		pattern: "missing columns",
		msg: UserMessage{
			Message: "One or more required columns are absent",
			Action:  "Check the file's header against the required column list",
			Code:    "EXT001",
		},
	},
	{
		pattern: "invalid range",
		msg: UserMessage{
			Message: "The requested cell range is malformed",
			Action:  "Check column letters and row numbers (e.g. F2:H6)",
			Code:    "EXT002",
		},
	},
	{
		pattern: "nothing to export",
		msg: UserMessage{
			Message: "Every file in the batch failed",
			Action:  "Review the per-file errors and re-upload",
			Code:    "BATCH001",
		},
	},
	{
		pattern: "batch not found",
		msg: UserMessage{
			Message: "The batch is unknown or has expired",
			Action:  "Run the consolidation again",
			Code:    "BATCH002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Try again",
			Code:    "BATCH003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Try again with fewer or smaller files",
			Code:    "BATCH003",
		},
	},
}

// MapError converts a technical error into a user-friendly message with an
// error code. Unmatched errors fall through to a generic message so nothing
// technical leaks to the client.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{Message: "Unknown error", Code: "SYS000"}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Try again; quote the request ID if the problem persists",
		Code:    "SYS001",
	}
}
