package services

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/pandeptwidyaop/launchpad/internal/database"
)

// Audit actions.
const (
	AuditListApps      = "list_apps"
	AuditLaunch        = "launch"
	AuditWindowControl = "window_control"
)

// AuditService records privileged host actions. A nil *AuditService
// accepts every call and records nothing.
type AuditService struct {
	db     *database.DB
	logger *zap.Logger
}

// NewAuditService creates a new AuditService instance.
func NewAuditService(db *database.DB, logger *zap.Logger) *AuditService {
	return &AuditService{db: db, logger: logger.Named("audit")}
}

// AuditLog represents an audit log entry to be recorded.
type AuditLog struct {
	Details   map[string]interface{}
	Action    string
	Resource  string
	Error     string
	IPAddress string
	UserAgent string
	Success   bool
}

// Log records an audit log entry to the database.
func (s *AuditService) Log(log AuditLog) error {
	if s == nil {
		return nil
	}

	var detailsJSON string
	if log.Details != nil {
		bytes, err := json.Marshal(log.Details)
		if err == nil {
			detailsJSON = string(bytes)
		}
	}

	_, err := s.db.Exec(`
		INSERT INTO audit_logs (action, resource, success, error, ip_address, user_agent, details)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, log.Action, log.Resource, log.Success, log.Error, log.IPAddress, log.UserAgent, detailsJSON)

	if err != nil {
		// The action already happened; a lost audit row must not fail it.
		s.logger.Error("failed to write audit log", zap.String("action", log.Action), zap.Error(err))
	}

	return err
}

// LogListApps logs an application listing.
func (s *AuditService) LogListApps(origin Origin, count int, err error) {
	entry := AuditLog{
		Action:    AuditListApps,
		IPAddress: origin.IPAddress,
		UserAgent: origin.UserAgent,
		Success:   err == nil,
		Details:   map[string]interface{}{"count": count},
	}
	if err != nil {
		entry.Error = err.Error()
		entry.Details = nil
	}
	_ = s.Log(entry)
}

// LogLaunch logs a launch request, accepted or refused, or its completion.
func (s *AuditService) LogLaunch(appName string, origin Origin, err error) {
	entry := AuditLog{
		Action:    AuditLaunch,
		Resource:  appName,
		IPAddress: origin.IPAddress,
		UserAgent: origin.UserAgent,
		Success:   err == nil,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	_ = s.Log(entry)
}

// LogWindowControl logs a window-control action on the surface.
func (s *AuditService) LogWindowControl(action string, origin Origin, err error) {
	entry := AuditLog{
		Action:    AuditWindowControl,
		Resource:  action,
		IPAddress: origin.IPAddress,
		UserAgent: origin.UserAgent,
		Success:   err == nil,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	_ = s.Log(entry)
}

// AuditLogEntry represents an audit log record from the database.
type AuditLogEntry struct {
	Action    string `json:"action"`
	Resource  string `json:"resource"`
	Error     string `json:"error,omitempty"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"created_at"`
	ID        int64  `json:"id"`
	Success   bool   `json:"success"`
}

// GetLogs retrieves audit logs with pagination, newest first.
func (s *AuditService) GetLogs(limit, offset int) ([]AuditLogEntry, error) {
	logs := make([]AuditLogEntry, 0)
	if s == nil {
		return logs, nil
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.Query(`
		SELECT id, action, resource, success, error, ip_address, user_agent, details, created_at
		FROM audit_logs
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var log AuditLogEntry
		var resource, errMsg, ipAddress, userAgent, details *string

		if err := rows.Scan(
			&log.ID,
			&log.Action,
			&resource,
			&log.Success,
			&errMsg,
			&ipAddress,
			&userAgent,
			&details,
			&log.CreatedAt,
		); err != nil {
			return nil, err
		}

		if resource != nil {
			log.Resource = *resource
		}
		if errMsg != nil {
			log.Error = *errMsg
		}
		if ipAddress != nil {
			log.IPAddress = *ipAddress
		}
		if userAgent != nil {
			log.UserAgent = *userAgent
		}
		if details != nil {
			log.Details = *details
		}

		logs = append(logs, log)
	}

	return logs, rows.Err()
}
