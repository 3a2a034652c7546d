package clients_services

import (
	"clienttrack/internal/cache"
	"clienttrack/internal/features/access"
	audit_logs "clienttrack/internal/features/audit_logs"
	clients_models "clienttrack/internal/features/clients/models"
	clients_repositories "clienttrack/internal/features/clients/repositories"
	users_services "clienttrack/internal/features/users/services"
	cache_utils "clienttrack/internal/util/cache"

	"golang.org/x/sync/singleflight"
)

var clientRepository = &clients_repositories.ClientRepository{}

var clientService = &ClientService{
	clientRepository,
	access.GetAccessService(),
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	cache_utils.NewCacheUtil[clients_models.Client](cache.GetCache(), "ct_client:"),
	singleflight.Group{},
}

func GetClientService() *ClientService {
	return clientService
}
