package test_utils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type RequestOptions struct {
	Method         string
	URL            string
	AuthToken      string
	Body           any
	ExpectedStatus int
}

type Response struct {
	Code int
	Body []byte
}

func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) *Response {
	t.Helper()

	var body io.Reader
	if options.Body != nil {
		data, err := json.Marshal(options.Body)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	request := httptest.NewRequest(options.Method, options.URL, body)
	if options.Body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if options.AuthToken != "" {
		request.Header.Set("Authorization", options.AuthToken)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(
		t,
		options.ExpectedStatus,
		recorder.Code,
		"unexpected status for %s %s: %s", options.Method, options.URL, recorder.Body.String(),
	)

	return &Response{Code: recorder.Code, Body: recorder.Body.Bytes()}
}

func MakeGetRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
) *Response {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         "GET",
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
	response any,
) {
	t.Helper()

	resp := MakeGetRequest(t, router, url, authToken, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, response))
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *Response {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         "POST",
		URL:            url,
		AuthToken:      authToken,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	response any,
) {
	t.Helper()

	resp := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, response))
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *Response {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         "PUT",
		URL:            url,
		AuthToken:      authToken,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakePutRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	response any,
) {
	t.Helper()

	resp := MakePutRequest(t, router, url, authToken, body, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, response))
}

func MakeDeleteRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
) *Response {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         "DELETE",
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}
