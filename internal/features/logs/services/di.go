package logs_services

import (
	"clienttrack/internal/features/access"
	audit_logs "clienttrack/internal/features/audit_logs"
	logs_repositories "clienttrack/internal/features/logs/repositories"
)

var logRepository = &logs_repositories.LogRepository{}

var logService = &LogService{
	logRepository:   logRepository,
	accessService:   access.GetAccessService(),
	auditLogService: audit_logs.GetAuditLogService(),
}

func GetLogService() *LogService {
	return logService
}
