package cmd

import "errors"

var (
	// ErrCommandNotFound is returned when no command is registered under the name.
	ErrCommandNotFound = errors.New("command not found")
	// ErrInvalidParameters wraps every argument failure; ErrArityMismatch or
	// ErrCoercion tells which one.
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrArityMismatch     = errors.New("wrong number of arguments")
	ErrCoercion          = errors.New("cannot convert argument")
	// ErrInvocation reports a handler that returned an error or panicked.
	ErrInvocation = errors.New("command failed")

	ErrDuplicateCommand = errors.New("command already exists")
	ErrDuplicateOwner   = errors.New("owner already registered")
	ErrUnknownOwner     = errors.New("owner not registered")
	ErrInvalidCommand   = errors.New("invalid command declaration")
)
