package errors

// ClickHouse helpers: server exception codes mapped onto ErrorCode

import (
	stderrs "errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// server exception codes we classify; the rest are ErrorCodeDB
const (
	chTypeMismatch        = 53
	chUnknownTable        = 60
	chSyntaxError         = 62
	chUnknownDatabase     = 81
	chTimeoutExceeded     = 159
	chTooManyQueries      = 202
	chMemoryLimitExceeded = 241
	chTableIsReadOnly     = 242
	chTooManyParts        = 252
	chAuthFailed          = 516
)

// ExtractCHException finds a server exception anywhere in the chain
func ExtractCHException(err error) (*clickhouse.Exception, bool) {
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// CHErrorCode classifies a ClickHouse exception; ok is false when err is not one
func CHErrorCode(err error) (ErrorCode, bool) {
	ex, ok := ExtractCHException(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch ex.Code {
	case chUnknownTable, chUnknownDatabase:
		return ErrorCodeNotFound, true
	case chTypeMismatch, chSyntaxError:
		return ErrorCodeInvalidArgument, true
	case chTooManyQueries, chTooManyParts:
		return ErrorCodeTooManyRequests, true
	case chTimeoutExceeded, chMemoryLimitExceeded, chTableIsReadOnly, chAuthFailed:
		return ErrorCodeUnavailable, true
	default:
		return ErrorCodeDB, true
	}
}

// FromClickHouse wraps err with its mapped code
func FromClickHouse(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	code, ok := CHErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: err}
}
