package usecase

import "errors"

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeConflict   = "CONFLICT"
	CodeNotFound   = "NOT_FOUND"

	CodeGateway  = "GATEWAY_ERROR"
	CodeDatabase = "DATABASE_ERROR"
)

// DomainError é falha de regra de negócio; a mensagem pode ir pro cliente.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewValidationError(msg string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg}
}

func NewConflictError(msg string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: msg}
}

func NewNotFoundError(msg string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: msg}
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

func IsValidationError(err error) bool { return hasDomainCode(err, CodeValidation) }
func IsConflictError(err error) bool { return hasDomainCode(err, CodeConflict) }
func IsNotFoundError(err error) bool { return hasDomainCode(err, CodeNotFound) }

func hasDomainCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}

// TechnicalError é falha de infraestrutura. Err fica só pros logs.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func NewGatewayError(err error) *TechnicalError {
	return &TechnicalError{Code: CodeGateway, Message: "failed to query bureau", Err: err}
}

func NewDatabaseError(msg string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeDatabase, Message: msg, Err: err}
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func IsGatewayError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te) && te.Code == CodeGateway
}
