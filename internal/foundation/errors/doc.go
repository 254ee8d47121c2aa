// Package errors provides the classified error primitives used across htmlgen.
//
// Every failure that can end a build is expressed as a ClassifiedError so the
// CLI can pick an exit code and the logs carry structured context.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, filesystem, build, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and stderr presentation
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryConfig, "read template").
//		Fatal().
//		WithContext("path", templatePath).
//		Build()
package errors
