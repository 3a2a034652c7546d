package clients_controllers

import (
	clients_services "clienttrack/internal/features/clients/services"
)

var clientController = &ClientController{
	clientService: clients_services.GetClientService(),
}

func GetClientController() *ClientController {
	return clientController
}
