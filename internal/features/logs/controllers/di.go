package logs_controllers

import (
	logs_services "clienttrack/internal/features/logs/services"
)

var logController = &LogController{
	logService: logs_services.GetLogService(),
}

func GetLogController() *LogController {
	return logController
}
