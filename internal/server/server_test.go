package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/intervue/internal/config"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/llm"
	"github.com/abhisek/intervue/internal/speech"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		PublicURL:      "http://localhost:3000",
		SessionTTL:     time.Hour,
		RoomTTL:        time.Hour,
		RoomSecret:     "test-secret",
		AllowedOrigins: []string{"http://localhost:5173"},
		Speech:         config.SpeechConfig{PreferredVoices: config.DefaultPreferredVoices},
	}
}

func newTestServer(t *testing.T, provider llm.Provider, backend *speech.Backend) *httptest.Server {
	t.Helper()
	s := New(Deps{
		Config:      testConfig(),
		Interviewer: interview.NewInterviewer(provider, interview.DefaultConfig(), nil),
		Speech:      backend,
	})
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func mockJSON(v interface{}) llm.MockResponse {
	b, _ := json.Marshal(v)
	return llm.MockResponse{Content: b}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalog(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/catalog", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Categories []string            `json:"categories"`
		Skills     map[string][]string `json:"skills"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Categories, "Software Engineering")
	assert.Contains(t, body.Skills["Data Science"], "Machine Learning")
}

func TestSessionLifecycle(t *testing.T) {
	mock := llm.NewMockProvider(
		mockJSON(map[string]string{"question": "How did you test the dashboard?"}),
		mockJSON(map[string]string{"feedback": "Clear and concrete."}),
	)
	srv := newTestServer(t, mock, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/sessions", map[string]string{
		"jobCategory": "Software Engineering",
		"jobSkill":    "Frontend Development",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sess interview.Session
	decodeBody(t, resp, &sess)
	require.Len(t, sess.Questions, 5)
	base := srv.URL + "/api/sessions/" + sess.ID

	resp = doJSON(t, http.MethodPost, base+"/feedback", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	for i := 0; i < 4; i++ {
		resp = doJSON(t, http.MethodPost, base+"/responses", map[string]string{"text": "answer"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, base+"/responses", map[string]string{"text": "I built a dashboard"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sub submitResponseResponse
	decodeBody(t, resp, &sub)
	require.NotNil(t, sub.Question)
	assert.Equal(t, "How did you test the dashboard?", sub.Question.Text)
	assert.Equal(t, 5, sub.CurrentQuestionIndex)

	resp = doJSON(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &sess)
	assert.Len(t, sess.Questions, 6)
	assert.Len(t, sess.Responses, 5)

	resp = doJSON(t, http.MethodGet, base+"/question", nil)
	var cur struct {
		Question *interview.Question `json:"question"`
	}
	decodeBody(t, resp, &cur)
	require.NotNil(t, cur.Question)
	assert.Equal(t, "gen-6", cur.Question.ID)

	resp = doJSON(t, http.MethodPost, base+"/feedback", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fb map[string]string
	decodeBody(t, resp, &fb)
	assert.Equal(t, "Clear and concrete.", fb["feedback"])

	resp = doJSON(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionFeedbackFallsBack(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider(), nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/sessions", map[string]string{"jobCategory": "Marketing"})
	var sess interview.Session
	decodeBody(t, resp, &sess)
	assert.Len(t, sess.Questions, 3)

	base := srv.URL + "/api/sessions/" + sess.ID
	resp = doJSON(t, http.MethodPost, base+"/responses", map[string]string{"text": "I ran campaigns"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, base+"/feedback", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fb map[string]string
	decodeBody(t, resp, &fb)
	assert.NotEmpty(t, fb["feedback"])
}

func TestSessionValidation(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/sessions", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e map[string]string
	decodeBody(t, resp, &e)
	assert.Equal(t, "jobCategory is required", e["error"])

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/sessions/nope/responses", map[string]string{"text": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/sessions", map[string]string{"jobCategory": "Design"})
	var sess interview.Session
	decodeBody(t, resp, &sess)
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/sessions/"+sess.ID+"/responses", map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// blockingProvider holds every Generate call until release is closed.
type blockingProvider struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	b.started <- struct{}{}
	<-b.release
	return &llm.Response{Content: json.RawMessage(`{"question":"Slow follow-up?"}`)}, nil
}

func (b *blockingProvider) ModelID() string { return "blocking" }

func TestSessionRejectsConcurrentSubmit(t *testing.T) {
	p := &blockingProvider{started: make(chan struct{}, 1), release: make(chan struct{})}
	srv := newTestServer(t, p, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/sessions", map[string]string{"jobCategory": "Unknown"})
	var sess interview.Session
	decodeBody(t, resp, &sess)
	base := srv.URL + "/api/sessions/" + sess.ID

	for i := 0; i < 2; i++ {
		resp = doJSON(t, http.MethodPost, base+"/responses", map[string]string{"text": "a"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	done := make(chan int, 1)
	go func() {
		r, err := http.Post(base+"/responses", "application/json", bytes.NewBufferString(`{"text":"last"}`))
		if err != nil {
			done <- 0
			return
		}
		r.Body.Close()
		done <- r.StatusCode
	}()
	<-p.started

	resp = doJSON(t, http.MethodPost, base+"/responses", map[string]string{"text": "again"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "reads do not wait for the LLM")
	decodeBody(t, resp, &sess)
	assert.Len(t, sess.Responses, 2)

	close(p.release)
	assert.Equal(t, http.StatusOK, <-done)

	resp = doJSON(t, http.MethodGet, base, nil)
	decodeBody(t, resp, &sess)
	assert.Len(t, sess.Responses, 3)
	assert.Len(t, sess.Questions, 4)
}

func TestInterviewEndpoints(t *testing.T) {
	mock := llm.NewMockProvider(
		mockJSON(map[string][]string{"questions": {"AI one?", "AI two?"}}),
		mockJSON(map[string]string{"question": "Why that index?"}),
		mockJSON(map[string]string{"feedback": "Good use of examples."}),
	)
	srv := newTestServer(t, mock, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/interview/start", map[string]string{
		"jobCategory": "Data Science", "jobSkill": "Machine Learning", "technicalLanguage": "Python",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var start struct {
		Questions []interview.Question `json:"questions"`
	}
	decodeBody(t, resp, &start)
	assert.Len(t, start.Questions, 5)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/interview/response", map[string]string{
		"jobCategory": "Data Science", "jobSkill": "Machine Learning",
		"userResponse": "I used gradient boosting", "currentQuestionId": "base-0",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var next struct {
		NextQuestion interview.Question `json:"nextQuestion"`
	}
	decodeBody(t, resp, &next)
	assert.Equal(t, "Why that index?", next.NextQuestion.Text)
	assert.Equal(t, interview.CategoryFollowUp, next.NextQuestion.Category)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/interview/response", map[string]string{
		"jobSkill": "Machine Learning", "userResponse": "I used gradient boosting",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/interview/feedback", map[string]interface{}{
		"jobCategory": "Data Science",
		"jobSkill":    "Machine Learning",
		"questions":   start.Questions[:1],
		"responses":   []interview.Response{{QuestionID: start.Questions[0].ID, Text: "answer"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fb map[string]string
	decodeBody(t, resp, &fb)
	assert.Equal(t, "Good use of examples.", fb["feedback"])

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/interview/feedback", map[string]interface{}{
		"jobCategory": "Data Science", "jobSkill": "Machine Learning", "responses": []interview.Response{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/interview/feedback", map[string]interface{}{
		"jobSkill":  "Machine Learning",
		"responses": []interview.Response{{QuestionID: "base-0", Text: "answer"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/interview/start", map[string]string{
		"jobSkill": "Machine Learning",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type fakeSynth struct{}

func (fakeSynth) Voices(context.Context) ([]speech.Voice, error) {
	return []speech.Voice{{Name: "de-DE-A", Language: "de-DE"}, {Name: "en-US-B", Language: "en-US"}}, nil
}

func (fakeSynth) Synthesize(_ context.Context, text string, _ speech.Voice) ([]byte, error) {
	return []byte("ID3" + text), nil
}

func TestSpeechRoutes(t *testing.T) {
	off := newTestServer(t, nil, nil)
	resp := doJSON(t, http.MethodGet, off.URL+"/api/speech/voices", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp = doJSON(t, http.MethodPost, off.URL+"/api/speech/synthesize", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp = doJSON(t, http.MethodGet, off.URL+"/ws/speech", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	on := newTestServer(t, nil, &speech.Backend{Synthesizer: fakeSynth{}})
	resp = doJSON(t, http.MethodGet, on.URL+"/api/speech/voices", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var voices struct {
		Voices   []speech.Voice `json:"voices"`
		Selected speech.Voice   `json:"selected"`
	}
	decodeBody(t, resp, &voices)
	assert.Len(t, voices.Voices, 2)
	assert.Equal(t, "en-US-B", voices.Selected.Name)

	resp = doJSON(t, http.MethodPost, on.URL+"/api/speech/synthesize", map[string]string{"text": "Hello"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))

	resp = doJSON(t, http.MethodPost, on.URL+"/api/speech/synthesize", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoomRoutes(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/rooms", map[string]string{"title": "System design", "type": "technical", "hostName": "Grace"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created createRoomResponse
	decodeBody(t, resp, &created)
	require.NotNil(t, created.Room)
	assert.NotEmpty(t, created.Token)
	assert.Contains(t, created.Link, "/live-interview/"+created.Room.ID+"?token=")

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/rooms/"+created.Room.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/rooms/"+created.Room.ID+"/invites", map[string]string{"email": "ada@example.com"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/rooms/"+created.Room.ID+"/invites", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/rooms", map[string]string{"title": "x", "type": "panel"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/rooms/meet-missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/ws/rooms/"+created.Room.ID+"?token=bad", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestResumeValidate(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/resume/validate", map[string]interface{}{
		"personalInfo": map[string]string{"fullName": "A", "email": "bad"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body struct {
		Valid  bool `json:"valid"`
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	decodeBody(t, resp, &body)
	assert.False(t, body.Valid)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "Name must be at least 2 characters.", body.Errors[0].Message)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/resume/validate", map[string]interface{}{
		"personalInfo": map[string]string{"fullName": "Ada Lovelace", "email": "ada@example.com"},
		"experiences":  []interface{}{},
		"education":    []interface{}{},
		"skills":       []string{"Go"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/sessions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	req.Header.Set("Origin", "http://evil.example")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Empty(t, resp2.Header.Get("Access-Control-Allow-Origin"))
}

func TestSessionRegistrySlidingExpiry(t *testing.T) {
	reg := newSessionRegistry(200 * time.Millisecond)
	s := interview.Start(interview.Selection{JobCategory: "Design"})
	reg.add(s)

	for i := 0; i < 4; i++ {
		time.Sleep(100 * time.Millisecond)
		_, ok := reg.get(s.ID)
		require.True(t, ok, "access should extend the expiry")
	}

	time.Sleep(300 * time.Millisecond)
	_, ok := reg.get(s.ID)
	assert.False(t, ok)
	assert.False(t, reg.remove(s.ID))
}
