package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating a ConfigError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *ConfigError {
	if err == nil {
		return nil
	}

	// Keep key and path of an inner ConfigError so the outer message still locates the problem
	var ce *ConfigError
	if errors.As(err, &ce) {
		return &ConfigError{
			Type:    errType,
			Code:    code,
			Message: message,
			Cause:   ce,
			Key:     ce.Key,
			Path:    ce.Path,
			Context: ce.Context,
		}
	}

	return &ConfigError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapIO wraps an error as an I/O error on path
func WrapIO(err error, code, message, path string) *ConfigError {
	ce := Wrap(err, ErrorTypeIO, code, message)
	if ce != nil {
		ce.Path = path
	}
	return ce
}

// WrapValidation wraps an error as a validation error
func WrapValidation(err error, code, message string) *ConfigError {
	return Wrap(err, ErrorTypeValidation, code, message)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(err error, code, message string) *ConfigError {
	return Wrap(err, ErrorTypeInternal, code, message)
}

// GetErrorContext extracts context information from a ConfigError
func GetErrorContext(err error) map[string]interface{} {
	var ce *ConfigError
	if errors.As(err, &ce) {
		context := make(map[string]interface{})
		for k, v := range ce.Context {
			context[k] = v
		}
		if ce.Key != "" {
			context["key"] = ce.Key
		}
		if ce.Path != "" {
			context["path"] = ce.Path
		}
		context["type"] = string(ce.Type)
		context["code"] = ce.Code
		return context
	}

	return map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}
}
