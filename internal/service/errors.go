package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// register failure causes, each matchable on its own and as ErrValidation
	ErrEmailInvalid     = fmt.Errorf("%w: a valid email is required", ErrValidation)
	ErrPasswordRequired = fmt.Errorf("%w: password is required", ErrValidation)
	ErrPasswordMismatch = fmt.Errorf("%w: passwords don't match", ErrValidation)
)
