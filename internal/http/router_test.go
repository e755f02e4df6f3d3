package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyplanner-backend/internal/domain/studyplan"
	"github.com/yungbote/studyplanner-backend/internal/learning/prompts"
	httpH "github.com/yungbote/studyplanner-backend/internal/http/handlers"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
	"github.com/yungbote/studyplanner-backend/internal/services"
)

type stubPlans struct {
	calls atomic.Int32
	got   studyplan.PlanConstraints
	err   error
}

func (s *stubPlans) Generate(ctx context.Context, c studyplan.PlanConstraints) (*studyplan.StudyPlan, error) {
	s.calls.Add(1)
	s.got = c
	if s.err != nil {
		return nil, s.err
	}
	return &studyplan.StudyPlan{
		Tasks: []studyplan.StudyTask{{
			Date: "2024-01-02", Topic: "Networking", Subtasks: []string{"Read chapter 1"}, EstimatedHours: 2,
		}},
		StartDate:  c.StartDate,
		Deadline:   c.Deadline,
		TotalHours: 2,
	}, nil
}

func newTestRouter(plans services.StudyPlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	quiz := services.NewQuizService(log, nil, nil)
	return NewRouter(RouterConfig{
		Log:              log,
		MaxRequestBytes:  1 << 20,
		HealthHandler:    httpH.NewHealthHandler(),
		StudyPlanHandler: httpH.NewStudyPlanHandler(log, plans, time.Second),
		QuizHandler:      httpH.NewQuizHandler(quiz),
		ProgressHandler:  httpH.NewProgressHandler(services.NewProgressService(log, quiz)),
	})
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorText(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(&stubPlans{})

	rec := do(t, r, http.MethodGet, "/healthcheck", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
	}
	rec = do(t, r, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Backend is running") {
		t.Fatalf("api health: %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestGenerateStudyPlan_MissingFieldsNeverCallsGateway(t *testing.T) {
	cases := map[string]string{
		"no hoursPerWeek": `{"startDate":"2024-01-01","deadline":"2024-01-07","weakTopics":[]}`,
		"no startDate":    `{"hoursPerWeek":10,"deadline":"2024-01-07","weakTopics":[]}`,
		"no deadline":     `{"hoursPerWeek":10,"startDate":"2024-01-01","weakTopics":[]}`,
		"no weakTopics":   `{"hoursPerWeek":10,"startDate":"2024-01-01","deadline":"2024-01-07"}`,
		"empty body":      `{}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			plans := &stubPlans{}
			rec := do(t, newTestRouter(plans), http.MethodPost, "/api/generate-study-plan", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got=%d want=400", rec.Code)
			}
			if got := errorText(t, rec); got != "Missing required fields in request body." {
				t.Fatalf("error: %q", got)
			}
			if n := plans.calls.Load(); n != 0 {
				t.Fatalf("gateway called %d times", n)
			}
		})
	}
}

func TestGenerateStudyPlan_InvalidConstraints(t *testing.T) {
	cases := map[string]string{
		"deadline before start": `{"hoursPerWeek":10,"startDate":"2024-02-01","deadline":"2024-01-07","weakTopics":[]}`,
		"bad date":              `{"hoursPerWeek":10,"startDate":"01/02/2024","deadline":"2024-01-07","weakTopics":[]}`,
		"zero hours":            `{"hoursPerWeek":0,"startDate":"2024-01-01","deadline":"2024-01-07","weakTopics":[]}`,
		"not json":              `hoursPerWeek=10`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			plans := &stubPlans{}
			rec := do(t, newTestRouter(plans), http.MethodPost, "/api/generate-study-plan", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got=%d want=400 body=%s", rec.Code, rec.Body.String())
			}
			if n := plans.calls.Load(); n != 0 {
				t.Fatalf("gateway called %d times", n)
			}
		})
	}
}

func TestGenerateStudyPlan_Success(t *testing.T) {
	plans := &stubPlans{}
	body := `{
		"hoursPerWeek": 10,
		"startDate": "2024-01-01",
		"deadline": "2024-01-07",
		"weakTopics": ["Networking"],
		"materialNames": ["Net+ Guide"],
		"uploadedFiles": [{"name": "notes.pdf", "type": "application/pdf", "size": 1024}]
	}`
	rec := do(t, newTestRouter(plans), http.MethodPost, "/api/generate-study-plan", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var plan studyplan.StudyPlan
	if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if len(plan.Tasks) != 1 || plan.Tasks[0].Completed {
		t.Fatalf("unexpected tasks: %+v", plan.Tasks)
	}
	if plan.StartDate != "2024-01-01" || plan.Deadline != "2024-01-07" {
		t.Fatalf("dates not echoed: %+v", plan)
	}
	if got := strings.Join(plans.got.MaterialNames, "|"); got != "Net+ Guide|notes.pdf" {
		t.Fatalf("materials: %q", got)
	}
}

func TestGenerateStudyPlan_GatewayFailureIs500(t *testing.T) {
	for _, cause := range []error{services.ErrUpstream, services.ErrMalformedResponse} {
		t.Run(cause.Error(), func(t *testing.T) {
			plans := &stubPlans{err: fmt.Errorf("%w: boom", cause)}
			body := `{"hoursPerWeek":10,"startDate":"2024-01-01","deadline":"2024-01-07","weakTopics":[]}`
			rec := do(t, newTestRouter(plans), http.MethodPost, "/api/generate-study-plan", body)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status: got=%d", rec.Code)
			}
			if got := errorText(t, rec); got != "Failed to generate study plan." {
				t.Fatalf("error: %q", got)
			}
			if strings.Contains(rec.Body.String(), "boom") {
				t.Fatalf("internal error leaked: %s", rec.Body.String())
			}
		})
	}
}

func TestGenerateStudyPlan_TimeoutReachesGateway(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	slow := slowPlans{}
	r := NewRouter(RouterConfig{
		StudyPlanHandler: httpH.NewStudyPlanHandler(log, slow, 10*time.Millisecond),
	})
	body := `{"hoursPerWeek":10,"startDate":"2024-01-01","deadline":"2024-01-07","weakTopics":[]}`
	rec := do(t, r, http.MethodPost, "/api/generate-study-plan", body)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got=%d", rec.Code)
	}
}

type slowPlans struct{}

func (slowPlans) Generate(ctx context.Context, _ studyplan.PlanConstraints) (*studyplan.StudyPlan, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", services.ErrUpstream, ctx.Err())
	case <-time.After(5 * time.Second):
		return nil, errors.New("deadline was not applied")
	}
}

func TestQuizEndpoints(t *testing.T) {
	r := newTestRouter(&stubPlans{})

	rec := do(t, r, http.MethodGet, "/api/quiz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("quiz: %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "correctAnswer") {
		t.Fatalf("answers leaked: %s", rec.Body.String())
	}

	rec = do(t, r, http.MethodPost, "/api/quiz/assess", `{"answers":{"2":"HTTP","4":""}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("assess: %d", rec.Code)
	}
	var a struct {
		WeakTopics []string `json:"weakTopics"`
		Answered   int      `json:"answered"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.Answered != 1 || len(a.WeakTopics) != 1 || a.WeakTopics[0] != "Networking" {
		t.Fatalf("unexpected assessment: %+v", a)
	}
}

func TestProgressReport(t *testing.T) {
	r := newTestRouter(&stubPlans{})

	rec := do(t, r, http.MethodPost, "/api/progress-report", `{"quizAnswers":{}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing plan: got=%d", rec.Code)
	}

	body := `{"studyPlan":{"tasks":[
		{"date":"2024-01-01","topic":"Networking","tasks":["a"],"estimatedHours":2,"completed":true},
		{"date":"2024-01-02","topic":"Databases","tasks":["b"],"estimatedHours":2,"completed":false}
	],"startDate":"2024-01-01","deadline":"2024-01-07","totalHours":4},"quizAnswers":{"5":"SQL"}}`
	rec = do(t, r, http.MethodPost, "/api/progress-report", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("report: %d %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Progress studyplan.Summary `json:"progress"`
		Quiz     struct {
			Answered int `json:"answered"`
		} `json:"quiz"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Progress.CompletedTasks != 1 || out.Progress.CompletionPct != 50 {
		t.Fatalf("progress: %+v", out.Progress)
	}
	if out.Quiz.Answered != 1 {
		t.Fatalf("quiz: %+v", out.Quiz)
	}
}

func TestServerShutsDownOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewServer("127.0.0.1:0", logger.Nop(), RouterConfig{HealthHandler: httpH.NewHealthHandler()})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Second) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("server did not stop")
	}
}

// promptCapture stands in for the Gemini client and keeps the last user prompt.
type promptCapture struct {
	user string
}

func (p *promptCapture) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) ([]byte, error) {
	p.user = user
	return []byte(`{"tasks":[],"startDate":"2024-01-01","deadline":"2024-01-07","totalHours":0}`), nil
}

func (p *promptCapture) Model() string { return "capture" }

func TestGenerateStudyPlan_WeakTopicsCleanedBeforePrompt(t *testing.T) {
	cases := []struct {
		name         string
		topics       string
		wantTopics   []string
		wantFallback bool
	}{
		{"duplicates", `["Networking","Networking"," Networking "]`, []string{"Networking"}, false},
		{"all blank", `[""," "]`, []string{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			llm := &promptCapture{}
			plans := services.NewStudyPlanService(logger.Nop(), llm, nil)
			body := `{"hoursPerWeek":10,"startDate":"2024-01-01","deadline":"2024-01-07","weakTopics":` + tc.topics + `}`
			rec := do(t, newTestRouter(plans), http.MethodPost, "/api/generate-study-plan", body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
			}
			if n := strings.Count(llm.user, "Networking"); n != len(tc.wantTopics) {
				t.Fatalf("Networking appears %d times in prompt:\n%s", n, llm.user)
			}
			if got := strings.Contains(llm.user, prompts.BeginnerFallback); got != tc.wantFallback {
				t.Fatalf("fallback rendered=%v want=%v:\n%s", got, tc.wantFallback, llm.user)
			}
			if strings.Contains(llm.user, "prioritize these): ,") {
				t.Fatalf("blank topics rendered:\n%s", llm.user)
			}
		})
	}
}

func TestGenerateStudyPlan_HandlerPassesCleanTopics(t *testing.T) {
	plans := &stubPlans{}
	body := `{"hoursPerWeek":10,"startDate":"2024-01-01","deadline":"2024-01-07","weakTopics":["Networking","","Databases","Networking"]}`
	rec := do(t, newTestRouter(plans), http.MethodPost, "/api/generate-study-plan", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d", rec.Code)
	}
	if got := strings.Join(plans.got.WeakTopics, "|"); got != "Networking|Databases" {
		t.Fatalf("weak topics: %q", got)
	}
}
