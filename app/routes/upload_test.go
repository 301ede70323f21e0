package routes_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/pkg/response"
	"github.com/shashiranjanraj/vitrine/pkg/testkit"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n" + "fake image payload")

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doUpload(t *testing.T, app *testkit.App, token, field, filename string, content []byte) (int, response.Envelope) {
	t.Helper()

	body, contentType := multipartUpload(t, field, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, req)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestUploadStoresImage(t *testing.T) {
	app := testkit.NewApp(t)
	_, token := app.CreateUser(t, "jane", "jane@example.com", models.RoleUser)

	code, env := doUpload(t, app, token, "image", "photo.png", pngBytes)
	require.Equal(t, http.StatusOK, code)

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	path, _ := data["filePath"].(string)
	assert.Contains(t, path, "uploads/")
	assert.Contains(t, path, ".png")
	assert.NotContains(t, path, "photo", "client filename must not reach the disk")
}

func TestUploadRequiresAuth(t *testing.T) {
	app := testkit.NewApp(t)

	code, env := doUpload(t, app, "", "image", "photo.png", pngBytes)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Authentication required", env.Message)
}

func TestUploadRejectsNonImage(t *testing.T) {
	app := testkit.NewApp(t)
	_, token := app.CreateUser(t, "jane", "jane@example.com", models.RoleUser)

	code, _ := doUpload(t, app, token, "image", "payload.exe", []byte("MZ not an image at all"))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUploadOversizedAnswersBadRequest(t *testing.T) {
	app := testkit.NewApp(t)
	_, token := app.CreateUser(t, "jane", "jane@example.com", models.RoleUser)

	huge := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte("x"), 2<<20)...)
	code, env := doUpload(t, app, token, "image", "huge.png", huge)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "limit")
}

func TestUploadRequiresImageField(t *testing.T) {
	app := testkit.NewApp(t)
	_, token := app.CreateUser(t, "jane", "jane@example.com", models.RoleUser)

	code, env := doUpload(t, app, token, "file", "photo.png", pngBytes)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "image")
}
