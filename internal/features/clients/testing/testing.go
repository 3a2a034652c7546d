package clients_testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"clienttrack/internal/features/audit_logs"
	clients_dto "clienttrack/internal/features/clients/dto"
	clients_models "clienttrack/internal/features/clients/models"
	users_dto "clienttrack/internal/features/users/dto"
	users_middleware "clienttrack/internal/features/users/middleware"
	users_services "clienttrack/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	audit_logs.SetupDependencies()

	return router
}

func CreateTestClient(
	company string,
	creator *users_dto.SignInResponseDTO,
	router *gin.Engine,
) *clients_models.Client {
	return CreateTestClientWithUsers(company, creator, nil, router)
}

func CreateTestClientWithUsers(
	company string,
	creator *users_dto.SignInResponseDTO,
	userIDs []uuid.UUID,
	router *gin.Engine,
) *clients_models.Client {
	request := clients_dto.CreateClientRequestDTO{
		Company:   company,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     fmt.Sprintf("contact-%s@test.com", uuid.New().String()[:8]),
		UserIDs:   userIDs,
	}

	w := MakeAPIRequest(router, "POST", "/api/v1/clients", "Bearer "+creator.Token, request)

	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("Failed to create client. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var response clients_dto.ClientResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &clients_models.Client{
		ID:        response.ID,
		Slug:      response.Slug,
		Company:   response.Company,
		FirstName: response.FirstName,
		LastName:  response.LastName,
		Email:     response.Email,
	}
}

func DeleteClient(client *clients_models.Client, deleterToken string, router *gin.Engine) {
	w := MakeAPIRequest(
		router,
		"DELETE",
		"/api/v1/clients/"+client.Slug,
		"Bearer "+deleterToken,
		nil,
	)

	if w.Code != http.StatusOK {
		panic("Failed to delete client via API: " + w.Body.String())
	}
}

func MakeAPIRequest(router *gin.Engine, method, url, authToken string, body any) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
