package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/easayliu/media-gallery/internal/application/contracts"
	"github.com/easayliu/media-gallery/internal/interfaces/http/middleware"
	errs "github.com/easayliu/media-gallery/internal/shared/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMediaService struct {
	typesKey     string
	imagesKey    string
	imagesCursor string
	invalidated  []contracts.InvalidationTarget
	err          error
	panicOnTypes bool
}

func (f *fakeMediaService) GetTypes(_ context.Context, key string) ([]contracts.FolderInfo, error) {
	if f.panicOnTypes {
		panic("boom")
	}
	f.typesKey = key
	if f.err != nil {
		return nil, f.err
	}
	return []contracts.FolderInfo{{Name: "Kitchens", Path: "everything-enterprise/Kitchens"}}, nil
}

func (f *fakeMediaService) GetImages(_ context.Context, key, cursor string) ([]contracts.ImageInfo, error) {
	f.imagesKey, f.imagesCursor = key, cursor
	if f.err != nil {
		return nil, f.err
	}
	return []contracts.ImageInfo{{Name: "kitchen-1", Folder: "Kitchens", Width: 1920, Height: 1080}}, nil
}

func (f *fakeMediaService) Invalidate(target contracts.InvalidationTarget) error {
	switch target {
	case contracts.InvalidateTypes, contracts.InvalidateImages, contracts.InvalidateAll:
		f.invalidated = append(f.invalidated, target)
		return nil
	}
	return errs.NewServiceError(errs.ErrorCodeInvalidRequest, "unknown invalidation target")
}

func (f *fakeMediaService) CacheStats() []contracts.CacheStats {
	return []contracts.CacheStats{{Namespace: "CloudinaryTypes", Hits: 3}, {Namespace: "CloudinaryImages", Dirty: true}}
}

func newTestRouter(svc contracts.MediaService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := newRouter()
	registerAPI(router, svc)
	return router
}

func do(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetTypes(t *testing.T) {
	svc := &fakeMediaService{}
	router := newTestRouter(svc)

	w := do(router, http.MethodGet, "/api/v1/types?key=kitchens", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "kitchens", svc.typesKey)

	body := decode(t, w)
	assert.EqualValues(t, 0, body["code"])
	assert.Equal(t, "success", body["message"])
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Kitchens", data[0].(map[string]interface{})["name"])
}

func TestGetImages(t *testing.T) {
	svc := &fakeMediaService{}
	router := newTestRouter(svc)

	w := do(router, http.MethodGet, "/api/v1/images?key=Kitchens&cursor=abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kitchens", svc.imagesKey)
	assert.Equal(t, "abc", svc.imagesCursor)

	data := decode(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	image := data[0].(map[string]interface{})
	assert.Equal(t, "kitchen-1", image["name"])
	assert.EqualValues(t, 1920, image["width"])
}

func TestUpstreamFailureMapsTo500(t *testing.T) {
	svc := &fakeMediaService{err: errs.NewUpstreamError(errors.New("401 Unauthorized"))}
	router := newTestRouter(svc)

	w := do(router, http.MethodGet, "/api/v1/images", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decode(t, w)
	assert.Equal(t, errs.MessageUpstreamFailure, body["error"])
	assert.Equal(t, string(errs.ErrorCodeUpstreamFailure), body["code"])
	assert.NotEmpty(t, body["request_id"])
	// 上游细节不暴露给调用方
	assert.NotContains(t, w.Body.String(), "Unauthorized")
}

func TestUnknownErrorMapsTo500(t *testing.T) {
	svc := &fakeMediaService{err: errors.New("unexpected")}
	router := newTestRouter(svc)

	w := do(router, http.MethodGet, "/api/v1/types", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, string(errs.ErrorCodeInternalError), decode(t, w)["code"])
}

func TestInvalidateCache(t *testing.T) {
	svc := &fakeMediaService{}
	router := newTestRouter(svc)

	w := do(router, http.MethodPost, "/api/v1/cache/invalidate", `{"target":"images"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []contracts.InvalidationTarget{contracts.InvalidateImages}, svc.invalidated)
	assert.Equal(t, "images", decode(t, w)["data"].(map[string]interface{})["target"])

	w = do(router, http.MethodPost, "/api/v1/cache/invalidate", `{"target":"folders"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/api/v1/cache/invalidate", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(errs.ErrorCodeInvalidRequest), decode(t, w)["code"])
}

func TestCacheStats(t *testing.T) {
	router := newTestRouter(&fakeMediaService{})

	w := do(router, http.MethodGet, "/api/v1/cache/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	namespaces := decode(t, w)["data"].(map[string]interface{})["namespaces"].([]interface{})
	require.Len(t, namespaces, 2)
	assert.Equal(t, "CloudinaryTypes", namespaces[0].(map[string]interface{})["namespace"])
	assert.Equal(t, true, namespaces[1].(map[string]interface{})["dirty"])
}

func TestHealthWithoutContainer(t *testing.T) {
	router := newTestRouter(&fakeMediaService{})

	w := do(router, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.NotContains(t, body, "components")
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(&fakeMediaService{})

	w := do(router, http.MethodGet, "/api/v1/health", "")
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-supplied")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "client-supplied", w.Header().Get(middleware.RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(&fakeMediaService{})

	w := do(router, http.MethodOptions, "/api/v1/types", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPanicRecovered(t *testing.T) {
	router := newTestRouter(&fakeMediaService{panicOnTypes: true})

	w := do(router, http.MethodGet, "/api/v1/types", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, string(errs.ErrorCodeInternalError), decode(t, w)["code"])
}
