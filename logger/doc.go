// Package logger provides structured logging for the speech services
// using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("batch")
//	log.Info("job submitted", logger.Fields(logger.FieldJobID, id))
package logger
