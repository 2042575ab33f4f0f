package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	logger *logrus.Logger
	fields logrus.Fields
}

type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
	PanicLevel LogLevel = "panic"
)

type Config struct {
	Level      LogLevel `json:"level"`
	Format     string   `json:"format"` // json, text
	Output     string   `json:"output"` // stdout, stderr, file path
	TimeFormat string   `json:"time_format"`
	Caller     bool     `json:"caller"`
	Colors     bool     `json:"colors"`
	AppName    string   `json:"app_name"`
	Version    string   `json:"version"`

	// Rotation, only used when Output is a file path
	MaxSizeMB  int  `json:"max_size_mb"`
	MaxBackups int  `json:"max_backups"`
	MaxAgeDays int  `json:"max_age_days"`
	Compress   bool `json:"compress"`
}

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	requestIDKey contextKey = "request_id"
)

func NewLogger(config *Config) (*Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(string(config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.Format == "json" {
		logger.SetFormatter(&CustomJSONFormatter{
			TimestampFormat: config.TimeFormat,
			AppName:         config.AppName,
			Version:         config.Version,
		})
	} else {
		logger.SetFormatter(&CustomTextFormatter{
			TimestampFormat: config.TimeFormat,
			ForceColors:     config.Colors,
			DisableColors:   !config.Colors,
			AppName:         config.AppName,
		})
	}

	switch config.Output {
	case "stderr":
		logger.SetOutput(os.Stderr)
	case "stdout", "":
		logger.SetOutput(os.Stdout)
	default:
		logger.SetOutput(&lumberjack.Logger{
			Filename:   config.Output,
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAgeDays,
			Compress:   config.Compress,
		})
	}

	logger.SetReportCaller(config.Caller)

	return &Logger{
		logger: logger,
		fields: make(logrus.Fields),
	}, nil
}

// NewNop returns a logger that discards everything. Used by tests and tools.
func NewNop() *Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Logger{
		logger: logger,
		fields: make(logrus.Fields),
	}
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	newFields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		newFields[k] = v
	}
	newFields[key] = value

	return &Logger{
		logger: l.logger,
		fields: newFields,
	}
}

func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	newFields := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &Logger{
		logger: l.logger,
		fields: newFields,
	}
}

func (l *Logger) WithContext(ctx context.Context) *Logger {
	return l.WithFields(extractContextFields(ctx))
}

func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

func (l *Logger) WithUserID(userID primitive.ObjectID) *Logger {
	return l.WithField("user_id", userID.Hex())
}

func (l *Logger) WithItemID(itemID primitive.ObjectID) *Logger {
	return l.WithField("item_id", itemID.Hex())
}

func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithField("request_id", requestID)
}

func (l *Logger) Debug(msg string) {
	l.logger.WithFields(l.fields).Debug(msg)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Debugf(format, args...)
}

func (l *Logger) Info(msg string) {
	l.logger.WithFields(l.fields).Info(msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Infof(format, args...)
}

func (l *Logger) Warn(msg string) {
	l.logger.WithFields(l.fields).Warn(msg)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Warnf(format, args...)
}

func (l *Logger) Error(msg string) {
	l.logger.WithFields(l.fields).Error(msg)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Errorf(format, args...)
}

func (l *Logger) Fatal(msg string) {
	l.logger.WithFields(l.fields).Fatal(msg)
}

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Fatalf(format, args...)
}

// Structured logging methods
func (l *Logger) LogUserAction(userID primitive.ObjectID, action string, details map[string]interface{}) {
	fields := map[string]interface{}{
		"user_id": userID.Hex(),
		"action":  action,
		"type":    "user_action",
	}

	for k, v := range details {
		fields[k] = v
	}

	l.WithFields(fields).Info("User action performed")
}

func (l *Logger) LogBookingEvent(bookingID primitive.ObjectID, event string, details map[string]interface{}) {
	fields := map[string]interface{}{
		"booking_id": bookingID.Hex(),
		"event":      event,
		"type":       "booking_event",
	}

	for k, v := range details {
		fields[k] = v
	}

	l.WithFields(fields).Info("Booking event occurred")
}

func (l *Logger) LogPaymentEvent(orderID primitive.ObjectID, event string, amount float64, currency string) {
	l.WithFields(map[string]interface{}{
		"order_id": orderID.Hex(),
		"event":    event,
		"amount":   amount,
		"currency": currency,
		"type":     "payment_event",
	}).Info("Payment event occurred")
}

func (l *Logger) LogAPIRequest(method, endpoint string, statusCode int, duration time.Duration, userID *primitive.ObjectID) {
	fields := map[string]interface{}{
		"method":      method,
		"endpoint":    endpoint,
		"status_code": statusCode,
		"duration_ms": duration.Milliseconds(),
		"type":        "api_request",
	}

	if userID != nil {
		fields["user_id"] = userID.Hex()
	}

	entry := l.WithFields(fields)
	switch {
	case statusCode >= 500:
		entry.Error("API request processed")
	case statusCode >= 400:
		entry.Warn("API request processed")
	default:
		entry.Info("API request processed")
	}
}

func (l *Logger) LogSecurityEvent(eventType string, severity string, details map[string]interface{}) {
	fields := map[string]interface{}{
		"event_type": eventType,
		"severity":   severity,
		"type":       "security_event",
	}

	for k, v := range details {
		fields[k] = v
	}

	if severity == "high" || severity == "critical" {
		l.WithFields(fields).Error("Security event detected")
	} else {
		l.WithFields(fields).Warn("Security event detected")
	}
}

func (l *Logger) SetOutput(output io.Writer) {
	l.logger.SetOutput(output)
}

func (l *Logger) SetLevel(level LogLevel) {
	logrusLevel, err := logrus.ParseLevel(string(level))
	if err != nil {
		logrusLevel = logrus.InfoLevel
	}
	l.logger.SetLevel(logrusLevel)
}

// ContextWithRequestID stores the request ID so WithContext can pick it up.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func ContextWithUserID(ctx context.Context, userID primitive.ObjectID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func extractContextFields(ctx context.Context) map[string]interface{} {
	fields := make(map[string]interface{})
	if ctx == nil {
		return fields
	}

	if userID, ok := ctx.Value(userIDKey).(primitive.ObjectID); ok {
		fields["user_id"] = userID.Hex()
	}

	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		fields["request_id"] = requestID
	}

	return fields
}
