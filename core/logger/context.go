package logger

import (
	"github.com/sirupsen/logrus"
)

// =============================================================================
// CONTEXT HELPERS - Gắn metadata chuẩn vào log entries
// =============================================================================

// WithModule trả về entry đã gắn module name, dùng cho FilterHook
func WithModule(log *logrus.Logger, module string) *logrus.Entry {
	return log.WithField("module", module)
}

// WithCollection trả về entry đã gắn collection name, dùng cho FilterHook
func WithCollection(log *logrus.Logger, collection string) *logrus.Entry {
	return log.WithField("collection", collection)
}

// WithRequest gắn các thông tin chuẩn của một HTTP request vào log entry
func WithRequest(log *logrus.Logger, requestID, method, path string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
		"log_type":   "request",
	})
}

// WithOperation gắn thông tin một database operation vào log entry
func WithOperation(log *logrus.Logger, collection, operation string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"collection": collection,
		"operation":  operation,
		"log_type":   "database",
	})
}

// WithAudit gắn thông tin audit (actor, action, target) vào log entry
func WithAudit(log *logrus.Logger, actorID, action, targetID string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"actor_id":  actorID,
		"action":    action,
		"target_id": targetID,
		"log_type":  "audit",
	})
}

// WithError gắn error vào log entry kèm log_type chuẩn
func WithError(log *logrus.Logger, err error) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"error":    err.Error(),
		"log_type": "error",
	})
}
