package errors

// ErrorCode represents a unique identifier for error types.
// Parse errors use the E1xxx range.
type ErrorCode string

const (
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Unterminated string literal
	E1003 ErrorCode = "E1003" // Invalid syntax
	E1004 ErrorCode = "E1004" // Missing expression
	E1005 ErrorCode = "E1005" // Missing range operand
	E1006 ErrorCode = "E1006" // Expected identifier
	E1007 ErrorCode = "E1007" // Unclosed delimiter
	E1008 ErrorCode = "E1008" // Invalid number literal
	E1009 ErrorCode = "E1009" // Maximum nesting depth exceeded
	E1010 ErrorCode = "E1010" // Invalid escape sequence
	E1011 ErrorCode = "E1011" // Unknown macro
	E1012 ErrorCode = "E1012" // Unexpected trailing input
	E1013 ErrorCode = "E1013" // Invalid character literal
	E1014 ErrorCode = "E1014" // Unreadable source
	E1015 ErrorCode = "E1015" // Reversed range
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "unterminated string literal",
	E1003: "invalid syntax",
	E1004: "missing expression",
	E1005: "missing range operand",
	E1006: "expected identifier",
	E1007: "unclosed delimiter",
	E1008: "invalid number literal",
	E1009: "maximum nesting depth exceeded",
	E1010: "invalid escape sequence",
	E1011: "unknown macro",
	E1012: "unexpected trailing input",
	E1013: "invalid character literal",
	E1014: "unreadable source",
	E1015: "reversed range",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}
