package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpapp "xr_archive/internal/app/http"
	"xr_archive/internal/domain/models"
	"xr_archive/internal/repository"
	archive "xr_archive/internal/services/archive_service"
	editor "xr_archive/internal/services/editor_service"
	"xr_archive/internal/storage"
	httprouters "xr_archive/internal/transport/http"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

type MockAIService struct {
	mock.Mock
}

func (m *MockAIService) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockAIService) Refine(ctx context.Context, basePrompt, userIntent string) (string, error) {
	args := m.Called(ctx, basePrompt, userIntent)
	return args.String(0), args.Error(1)
}

func (m *MockAIService) SuggestHotspots(ctx context.Context, title, description string, prompts models.PromptSet) []models.Hotspot {
	args := m.Called(ctx, title, description, prompts)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Hotspot)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadImage(ctx context.Context, file *multipart.FileHeader, inline bool) (*models.Image, error) {
	args := m.Called(ctx, file, inline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

type memSlot struct {
	mu   sync.Mutex
	data []byte
}

func (s *memSlot) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, storage.ErrSlotEmpty
	}
	return s.data, nil
}

func (s *memSlot) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type RoutersTestSuite struct {
	suite.Suite
	server  *httptest.Server
	archive *archive.ArchiveService
	ai      *MockAIService
	image   *MockImageService
}

func (s *RoutersTestSuite) SetupTest() {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := repository.NewRecordStore(log, &memSlot{})
	s.archive = archive.NewArchiveService(log, store)
	require.NoError(s.T(), store.Load(context.Background(), s.archive))

	s.ai = &MockAIService{}
	s.image = &MockImageService{}

	ids := 0
	editorService := editor.NewEditorService(log, s.archive, s.ai, func() string {
		ids++
		return "custom-" + strings.Repeat("x", ids)
	})

	routers := httprouters.NewRouter(log, s.archive, editorService, s.ai, s.image)

	srv := httpapp.New(log, "", "0", "", time.Second, routers)
	srv.BuildRouters()

	s.server = httptest.NewServer(srv.Handler())
}

func (s *RoutersTestSuite) TearDownTest() {
	s.server.Close()
	s.ai.AssertExpectations(s.T())
	s.image.AssertExpectations(s.T())
}

func TestRoutersSuite(t *testing.T) {
	suite.Run(t, new(RoutersTestSuite))
}

func (s *RoutersTestSuite) do(method, path string, body any) (*http.Response, envelope) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if len(raw) > 0 {
		s.Require().NoError(json.Unmarshal(raw, &env), string(raw))
	}

	return resp, env
}

func (s *RoutersTestSuite) decode(raw json.RawMessage, v any) {
	s.Require().NoError(json.Unmarshal(raw, v))
}

func (s *RoutersTestSuite) TestHealth() {
	resp, env := s.do(http.MethodGet, "/health", nil)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("success", env.Status)
}

func (s *RoutersTestSuite) TestStatus() {
	for _, enabled := range []bool{true, false} {
		s.ai.On("Enabled").Return(enabled).Once()

		resp, err := http.Get(s.server.URL + "/api/v1/status")
		s.Require().NoError(err)

		var body struct {
			Status    string `json:"status"`
			AIEnabled bool   `json:"ai_enabled"`
		}
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		s.Equal(http.StatusOK, resp.StatusCode)
		s.Equal(string(archive.StatusLive), body.Status)
		s.Equal(enabled, body.AIEnabled)
	}
}

func (s *RoutersTestSuite) TestListRecords() {
	resp, env := s.do(http.MethodGet, "/api/v1/records", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var st archive.State
	s.decode(env.Data, &st)

	s.Equal(archive.StatusLive, st.Status)
	s.Equal(archive.ViewArchive, st.View)
	s.Len(st.Records, len(models.DefaultRecords()))
	s.Nil(st.Selected)
}

func (s *RoutersTestSuite) TestOpenRecordAndGoHome() {
	id := models.DefaultRecords()[0].ID

	resp, env := s.do(http.MethodGet, "/api/v1/records/"+id, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var rec models.Record
	s.decode(env.Data, &rec)
	s.Equal(id, rec.ID)
	s.Equal(archive.ViewDetail, s.archive.State().View)

	resp, env = s.do(http.MethodPost, "/api/v1/home", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var st archive.State
	s.decode(env.Data, &st)
	s.Equal(archive.ViewArchive, st.View)
	s.Nil(s.archive.Selected())
}

func (s *RoutersTestSuite) TestOpenRecord_NotFound() {
	resp, env := s.do(http.MethodGet, "/api/v1/records/missing", nil)

	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("record_not_found", env.Error)
}

func (s *RoutersTestSuite) TestCreateRecord() {
	suggested := []models.Hotspot{{ID: "h-0", X: 10, Y: 20, Label: "Sofa"}}
	s.ai.On("SuggestHotspots", mock.Anything, "Loft", "Brick and steel", mock.Anything).Return(suggested).Once()

	resp, env := s.do(http.MethodPost, "/api/v1/records", map[string]any{
		"title":       "Loft",
		"description": "Brick and steel",
		"mainImage":   "https://img/loft.jpg",
		"atmosphere":  "Industrial",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var rec models.Record
	s.decode(env.Data, &rec)
	s.Equal("Loft", rec.Title)
	s.Equal([]string{"https://img/loft.jpg"}, rec.Gallery)
	s.Equal(suggested, rec.Hotspots)
	s.Contains(rec.Prompts.Lighting, "Mood: Industrial")

	records := s.archive.Records()
	s.Require().Len(records, len(models.DefaultRecords())+1)
	s.Equal(rec.ID, records[0].ID)
}

func (s *RoutersTestSuite) TestCreateRecord_MissingMainImage() {
	resp, env := s.do(http.MethodPost, "/api/v1/records", map[string]any{"title": "No image"})

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("main_image_required", env.Error)
	s.Len(s.archive.Records(), len(models.DefaultRecords()))
	s.ai.AssertNotCalled(s.T(), "SuggestHotspots", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RoutersTestSuite) TestUpdateRecord() {
	existing := models.DefaultRecords()[0]

	resp, env := s.do(http.MethodPut, "/api/v1/records/"+existing.ID, map[string]any{
		"title":     existing.Title,
		"subtitle":  "Revised",
		"mainImage": existing.MainImage,
		"gallery":   existing.Gallery,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var rec models.Record
	s.decode(env.Data, &rec)
	s.Equal(existing.ID, rec.ID)
	s.Equal("Revised", rec.Subtitle)
	s.Equal(existing.Hotspots, rec.Hotspots)
	s.Equal(existing.Prompts.Camera, rec.Prompts.Camera)

	got, err := s.archive.Get(existing.ID)
	s.Require().NoError(err)
	s.Equal("Revised", got.Subtitle)

	selected := s.archive.Selected()
	s.Require().NotNil(selected)
	s.Equal(existing.ID, selected.ID)
}

func (s *RoutersTestSuite) TestUpdateRecord_NotFound() {
	resp, env := s.do(http.MethodPut, "/api/v1/records/missing", map[string]any{"mainImage": "m"})

	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("record_not_found", env.Error)
}

func (s *RoutersTestSuite) TestDeleteRecord() {
	id := models.DefaultRecords()[0].ID
	_, err := s.archive.OpenByID(id)
	s.Require().NoError(err)

	resp, _ := s.do(http.MethodDelete, "/api/v1/records/"+id, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	_, err = s.archive.Get(id)
	s.ErrorIs(err, archive.ErrRecordNotFound)
	s.Nil(s.archive.Selected())

	resp, _ = s.do(http.MethodDelete, "/api/v1/records/"+id, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *RoutersTestSuite) TestRefinePrompt() {
	tests := []struct {
		name       string
		body       map[string]any
		setup      func()
		wantStatus int
		wantError  string
		wantText   string
	}{
		{
			name:       "missing fields",
			body:       map[string]any{"base_prompt": "warm light"},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name: "refined",
			body: map[string]any{"base_prompt": "warm light", "user_intent": "more dramatic"},
			setup: func() {
				s.ai.On("Refine", mock.Anything, "warm light", "more dramatic").Return("dramatic warm light", nil).Once()
			},
			wantStatus: http.StatusOK,
			wantText:   "dramatic warm light",
		},
		{
			name: "breaker open",
			body: map[string]any{"base_prompt": "a", "user_intent": "b"},
			setup: func() {
				s.ai.On("Refine", mock.Anything, "a", "b").Return("", gobreaker.ErrOpenState).Once()
			},
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "ai_unavailable",
		},
		{
			name: "upstream failure",
			body: map[string]any{"base_prompt": "c", "user_intent": "d"},
			setup: func() {
				s.ai.On("Refine", mock.Anything, "c", "d").Return("", errors.New("quota exceeded")).Once()
			},
			wantStatus: http.StatusBadGateway,
			wantError:  "ai_error",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			if tt.setup != nil {
				tt.setup()
			}

			resp, env := s.do(http.MethodPost, "/api/v1/ai/refine", tt.body)

			s.Equal(tt.wantStatus, resp.StatusCode)
			s.Equal(tt.wantError, env.Error)
			if tt.wantText != "" {
				var data map[string]string
				s.decode(env.Data, &data)
				s.Equal(tt.wantText, data["text"])
			}
		})
	}
}

func (s *RoutersTestSuite) TestSuggestHotspots() {
	s.ai.On("SuggestHotspots", mock.Anything, "Loft", "", mock.Anything).Return([]models.Hotspot{}).Once()

	resp, env := s.do(http.MethodPost, "/api/v1/ai/hotspots", map[string]any{"title": "Loft"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var hotspots []models.Hotspot
	s.decode(env.Data, &hotspots)
	s.Empty(hotspots)
}

func (s *RoutersTestSuite) upload(withFile bool, inline string) (*http.Response, envelope) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if withFile {
		part, err := writer.CreateFormFile("file", "room.png")
		s.Require().NoError(err)
		_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
		s.Require().NoError(err)
	}
	if inline != "" {
		s.Require().NoError(writer.WriteField("inline", inline))
	}
	s.Require().NoError(writer.Close())

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/api/v1/images", body)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var env envelope
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))

	return resp, env
}

func (s *RoutersTestSuite) TestUploadImage() {
	tests := []struct {
		name       string
		withFile   bool
		inline     string
		setup      func()
		wantStatus int
		wantError  string
	}{
		{
			name:     "stored",
			withFile: true,
			setup: func() {
				s.image.On("UploadImage", mock.Anything, mock.Anything, false).
					Return(&models.Image{OriginalFilename: "room.png", URL: "http://localhost/uploads/images/a.png"}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:     "inline",
			withFile: true,
			inline:   "true",
			setup: func() {
				s.image.On("UploadImage", mock.Anything, mock.Anything, true).
					Return(&models.Image{OriginalFilename: "room.png", URL: "data:image/png;base64,AA=="}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing file",
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:       "bad inline flag",
			withFile:   true,
			inline:     "maybe",
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:     "too large",
			withFile: true,
			setup: func() {
				s.image.On("UploadImage", mock.Anything, mock.Anything, false).Return(nil, storage.ErrFileTooLarge).Once()
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantError:  "file_too_large",
		},
		{
			name:     "not an image",
			withFile: true,
			setup: func() {
				s.image.On("UploadImage", mock.Anything, mock.Anything, false).Return(nil, storage.ErrInvalidFileType).Once()
			},
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  "invalid_file_type",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			if tt.setup != nil {
				tt.setup()
			}

			resp, env := s.upload(tt.withFile, tt.inline)

			s.Equal(tt.wantStatus, resp.StatusCode)
			s.Equal(tt.wantError, env.Error)
		})
	}
}

func (s *RoutersTestSuite) TestStream() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/api/v1/stream"
	conn, _, err := websocket.Dial(ctx, url, nil)
	s.Require().NoError(err)
	defer conn.CloseNow()

	var st archive.State
	s.Require().NoError(wsjson.Read(ctx, conn, &st))
	s.Equal(archive.StatusLive, st.Status)
	s.Len(st.Records, len(models.DefaultRecords()))

	id := models.DefaultRecords()[0].ID
	s.Require().NoError(s.archive.Delete(ctx, id))

	for len(st.Records) == len(models.DefaultRecords()) {
		s.Require().NoError(wsjson.Read(ctx, conn, &st))
	}

	s.Len(st.Records, len(models.DefaultRecords())-1)
	for _, rec := range st.Records {
		s.NotEqual(id, rec.ID)
	}

	conn.Close(websocket.StatusNormalClosure, "")
}
