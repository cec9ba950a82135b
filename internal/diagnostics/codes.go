package diagnostics

// Lexer codes
const (
	ErrUnexpectedCharacter = "L0001"
	ErrUnterminatedString  = "L0002"
	ErrInvalidEscape       = "L0003"
)

// Parser codes
const (
	ErrUnexpectedToken    = "P0001"
	ErrExpectedToken      = "P0002"
	ErrExpectedExpression = "P0003"
	ErrInvalidNumber      = "P0004"
)

// Runtime codes
const (
	ErrUndefinedVariable = "R0001"
	ErrUndefinedFunction = "R0002"
	ErrTypeMismatch      = "R0003"
	ErrIndexOutOfRange   = "R0004"
	ErrDivisionByZero    = "R0005"
	ErrInput             = "R0006"
	ErrUnknownOperator   = "R0007"
	ErrUnknownNode       = "R0008"
	ErrCancelled         = "R0009"
	ErrCallDepth         = "R0010"
	ErrResultTooLarge    = "R0011"
)

// Warning codes
const (
	WarnUnreachableCode    = "W0001"
	WarnUndeclaredFunction = "W0002"
	WarnUnassignedVariable = "W0003"
	WarnRedeclaredFunction = "W0004"
	WarnUncallable         = "W0005"
)
