package kagami

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/kagami/i18n"
)

// Issue codes. The core reflection operations report absence, not errors;
// Issues exist for the fallible surfaces (key-path parsing, codec decoding).
const (
	CodeParseError  = "parse_error"
	CodeInvalidType = "invalid_type"
	CodeUnknownKind = "unknown_kind"
	CodeUnknownNode = "unknown_node"
	CodeBadSegment  = "bad_segment"
	CodeTruncated   = "truncated"
)

// Issue represents a single decode or parse problem.
type Issue struct {
	Path    string // Slash-separated location inside the input (for example: /nodes/42/fields/1).
	Code    string // One of the codes listed above.
	Message string
	Offset  int // Byte offset in textual input, -1 when unknown.
	Cause   error
}

// Issues is a collection of problems that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// NewIssue builds an Issue with the localized default message for code.
func NewIssue(path, code string) Issue {
	return Issue{Path: path, Code: code, Message: i18n.T(code, nil), Offset: -1}
}

// AppendIssues appends issues to the destination, initializing the slice
// when needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
