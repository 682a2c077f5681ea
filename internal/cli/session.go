package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gzhole/dlprotocol/internal/backup"
	"github.com/gzhole/dlprotocol/internal/config"
	"github.com/gzhole/dlprotocol/internal/logger"
	"github.com/gzhole/dlprotocol/internal/protocol"
)

// session bundles everything an engine needs for one CLI invocation.
type session struct {
	cfg   *config.Config
	log   *zap.Logger
	store *backup.Store
	audit *logger.AuditLogger
}

// loadConfig reads the config file and applies persistent flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if backupDir != "" {
		cfg.BackupDir = backupDir
	}
	switch {
	case strings.EqualFold(auditLog, "off"):
		cfg.AuditLog = ""
	case auditLog != "":
		cfg.AuditLog = auditLog
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	cfg.Validate()

	return cfg, nil
}

func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	s := &session{
		cfg:   cfg,
		log:   log,
		store: backup.New(cfg.BackupDir),
	}

	// The audit trail is best-effort like the backups.
	if cfg.AuditLog != "" {
		audit, err := openAudit(cfg)
		if err != nil {
			log.Warn("audit log unavailable", zap.String("path", cfg.AuditLog), zap.Error(err))
		} else {
			s.audit = audit
		}
	}

	return s, nil
}

func openAudit(cfg *config.Config) (*logger.AuditLogger, error) {
	if err := cfg.EnsureAuditDir(); err != nil {
		return nil, err
	}
	return logger.New(cfg.AuditLog)
}

// newEngine returns a fresh engine sharing the session's backup store,
// logger and audit trail.
func (s *session) newEngine() *protocol.Engine {
	opts := []protocol.Option{
		protocol.WithBackup(s.store),
		protocol.WithLogger(s.log),
	}
	if s.audit != nil {
		opts = append(opts, protocol.WithRecorder(s.audit))
	}
	return protocol.New(opts...)
}

func (s *session) Close() {
	if s.audit != nil {
		_ = s.audit.Close()
	}
	_ = s.log.Sync()
}

// newLogger builds a console zap logger for engine notifications.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}
