package access

var accessRepository = &AccessRepository{}

var accessService = &AccessService{
	accessRepository,
}

func GetAccessService() *AccessService {
	return accessService
}
