package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"postcare-ai-be/internal/agent/tool"
	"postcare-ai-be/internal/constant"
	"postcare-ai-be/internal/entity"
	"postcare-ai-be/internal/pkg/recorder"
	"postcare-ai-be/internal/repository/specification"
	"postcare-ai-be/pkg/embedding"
	"postcare-ai-be/pkg/llm"
	"postcare-ai-be/pkg/rag"
	"postcare-ai-be/pkg/store"
	"postcare-ai-be/pkg/websearch"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// scriptedLLM replays canned replies in order. When the script runs out it
// either fails with exhaustErr or falls back to a generic line.
type scriptedLLM struct {
	replies    []string
	err        error
	exhaustErr error
	calls      int
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.replies) {
		if s.exhaustErr != nil {
			return "", s.exhaustErr
		}
		return "I'm here to help.", nil
	}
	reply := s.replies[s.calls]
	s.calls++
	return reply, nil
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type stubEmbedder struct{}

func (stubEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.5, 0.5}},
	}, nil
}

type stubSearcher struct {
	count      int64
	similarity float64
}

func (s *stubSearcher) Count(ctx context.Context) (int64, error) {
	return s.count, nil
}

func (s *stubSearcher) SearchSimilarWithScore(ctx context.Context, emb []float32, limit int) ([]*rag.ScoredChunk, error) {
	if s.count == 0 {
		return nil, nil
	}
	return []*rag.ScoredChunk{
		{ChunkId: "c1", DocumentId: "kidney_care.md", DocumentTitle: "Kidney Care Guide", Text: "Monitor for fluid retention.", Similarity: s.similarity},
	}, nil
}

type stubWebProvider struct {
	results []websearch.SearchResult
	err     error
}

func (stubWebProvider) Name() string { return "stub" }

func (s *stubWebProvider) Search(ctx context.Context, query string, maxResults int) ([]websearch.SearchResult, error) {
	return s.results, s.err
}

type stubPatientRepo struct {
	patients []*entity.Patient
}

func (f *stubPatientRepo) Create(ctx context.Context, p *entity.Patient) error { return nil }

func (f *stubPatientRepo) FindByNameExact(ctx context.Context, name string) (*entity.Patient, error) {
	for _, p := range f.patients {
		if strings.EqualFold(p.PatientName, name) {
			return p, nil
		}
	}
	return nil, nil
}

func (f *stubPatientRepo) SearchByName(ctx context.Context, fragment string) ([]*entity.Patient, error) {
	var out []*entity.Patient
	for _, p := range f.patients {
		if strings.Contains(strings.ToLower(p.PatientName), strings.ToLower(fragment)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *stubPatientRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Patient, error) {
	return f.patients, nil
}

func (f *stubPatientRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.patients)), nil
}

type captureRecorder struct {
	events []recorder.Event
}

func (c *captureRecorder) Record(ctx context.Context, event recorder.Event) {
	c.events = append(c.events, event)
}

func (c *captureRecorder) typeSequence() []string {
	types := make([]string, len(c.events))
	for i, e := range c.events {
		types[i] = e.Type
	}
	return types
}

type routerFixture struct {
	router *Router
	rec    *captureRecorder
	llm    *scriptedLLM
}

func newFixture(replies []string, searcher *stubSearcher, web websearch.Provider, patients ...string) *routerFixture {
	repo := &stubPatientRepo{}
	for _, name := range patients {
		repo.patients = append(repo.patients, &entity.Patient{
			Id:               uuid.New(),
			PatientName:      name,
			PrimaryDiagnosis: "Chronic kidney disease stage 3",
			WarningSigns:     "Swelling in legs, shortness of breath",
		})
	}

	provider := &scriptedLLM{replies: replies}
	rec := &captureRecorder{}

	retriever := rag.NewRetriever(stubEmbedder{}, searcher, 5, 0.35)

	receptionist := NewReceptionist(provider, tool.NewPatientLookup(repo))
	clinical := NewClinical(provider, tool.NewMedicalRetrieval(retriever), tool.NewWebSearch(web, 3))

	return &routerFixture{
		router: NewRouter(receptionist, clinical, rec, 30*time.Second),
		rec:    rec,
		llm:    provider,
	}
}

func groundedSearcher() *stubSearcher {
	return &stubSearcher{count: 10, similarity: 0.88}
}

func TestGreetingStaysWithReceptionist(t *testing.T) {
	f := newFixture([]string{"Hello! May I have your name, please?"}, groundedSearcher(), &stubWebProvider{})
	sess := store.NewSession("s1")

	result, err := f.router.HandleTurn(context.Background(), sess, "Hello")

	assert.NoError(t, err)
	assert.Equal(t, store.RoleIntake, result.ActiveRole)
	assert.Equal(t, "Hello! May I have your name, please?", result.Text)
	assert.Len(t, sess.Turns, 2)
}

func TestNameLookupAttachesPatient(t *testing.T) {
	f := newFixture([]string{
		"LOOKUP_PATIENT: John Smith",
		"Welcome back, John! How have you been feeling since your discharge?",
	}, groundedSearcher(), &stubWebProvider{}, "John Smith")
	sess := store.NewSession("s2")

	result, err := f.router.HandleTurn(context.Background(), sess, "My name is John Smith")

	assert.NoError(t, err)
	assert.Equal(t, store.RoleIntake, result.ActiveRole)
	assert.NotNil(t, sess.Patient)
	assert.Equal(t, "John Smith", sess.Patient.PatientName)
	assert.Contains(t, result.Text, "Welcome back, John")
	assert.Contains(t, f.rec.typeSequence(), recorder.EventToolCall)
}

func TestSecondNameKeepsFirstPatient(t *testing.T) {
	f := newFixture([]string{
		"LOOKUP_PATIENT: Jane Doe",
	}, groundedSearcher(), &stubWebProvider{}, "John Smith", "Jane Doe")
	sess := store.NewSession("s12")
	sess.SetPatient(&store.PatientContext{PatientName: "John Smith", PrimaryDiagnosis: "Chronic kidney disease stage 3"})

	result, err := f.router.HandleTurn(context.Background(), sess, "Actually, my name is Jane Doe")

	assert.NoError(t, err)
	assert.Equal(t, "John Smith", sess.Patient.PatientName)
	assert.NotContains(t, result.Text, "Jane")
	assert.Contains(t, result.Text, "John Smith")
	assert.Contains(t, result.Text, "reset the session")
}

func TestMedicalQuestionHandsOffToClinical(t *testing.T) {
	f := newFixture([]string{
		"ROUTE_TO_CLINICAL: I have swelling in my legs",
		"Swelling in the legs can indicate fluid retention. Contact your care team if it worsens.",
	}, groundedSearcher(), &stubWebProvider{})
	sess := store.NewSession("s3")

	result, err := f.router.HandleTurn(context.Background(), sess, "I have swelling in my legs")

	assert.NoError(t, err)
	assert.Equal(t, store.RoleClinical, result.ActiveRole)
	assert.Equal(t, SourceCorpus, result.Source)
	assert.Contains(t, result.Text, "fluid retention")
	assert.True(t, strings.HasSuffix(result.Text, constant.ClinicalDisclaimer))
	assert.Equal(t, []string{"Kidney Care Guide"}, result.Citations)

	// Handoff lands on the trail before the clinical response.
	types := f.rec.typeSequence()
	handoffAt, responseAt := -1, -1
	for i, typ := range types {
		if typ == recorder.EventHandoff {
			handoffAt = i
		}
		if typ == recorder.EventAgentResponse {
			responseAt = i
		}
	}
	assert.GreaterOrEqual(t, handoffAt, 0)
	assert.Greater(t, responseAt, handoffAt)
}

func TestBelowThresholdFallsBackToWeb(t *testing.T) {
	web := &stubWebProvider{results: []websearch.SearchResult{
		{Title: "NIH fluid retention", URL: "https://nih.example/fluid", Snippet: "Elevate your legs and limit sodium."},
	}}
	f := newFixture([]string{
		"ROUTE_TO_CLINICAL: what should I do about rare symptom X",
		"Based on current guidance, elevate your legs and limit sodium.",
	}, &stubSearcher{count: 10, similarity: 0.10}, web)
	sess := store.NewSession("s4")

	result, err := f.router.HandleTurn(context.Background(), sess, "what should I do about rare symptom X")

	assert.NoError(t, err)
	assert.Equal(t, SourceWeb, result.Source)
	assert.Equal(t, []string{"https://nih.example/fluid"}, result.Citations)
	assert.True(t, strings.HasSuffix(result.Text, constant.ClinicalDisclaimer))
}

func TestEmptyIndexAndSearchDownDegradesGracefully(t *testing.T) {
	web := &stubWebProvider{err: websearch.ErrSearchUnavailable}
	f := newFixture([]string{
		"ROUTE_TO_CLINICAL: is this medication safe",
	}, &stubSearcher{count: 0}, web)
	sess := store.NewSession("s5")

	result, err := f.router.HandleTurn(context.Background(), sess, "is this medication safe")

	assert.NoError(t, err)
	assert.Contains(t, result.Text, constant.SearchUnavailableMessage)
	assert.True(t, strings.HasSuffix(result.Text, constant.ClinicalDisclaimer))
	assert.Equal(t, store.RoleClinical, result.ActiveRole)
}

func TestAmbiguousNameAsksForClarification(t *testing.T) {
	f := newFixture([]string{
		"LOOKUP_PATIENT: Smith",
	}, groundedSearcher(), &stubWebProvider{}, "John Smith", "Jane Smith")
	sess := store.NewSession("s6")

	result, err := f.router.HandleTurn(context.Background(), sess, "I'm Smith")

	assert.NoError(t, err)
	assert.Nil(t, sess.Patient)
	assert.Contains(t, result.Text, "John Smith")
	assert.Contains(t, result.Text, "Jane Smith")
	assert.Equal(t, store.RoleIntake, result.ActiveRole)
}

func TestUnknownNameKeepsSessionClean(t *testing.T) {
	f := newFixture([]string{
		"LOOKUP_PATIENT: Robert Chen",
	}, groundedSearcher(), &stubWebProvider{}, "John Smith")
	sess := store.NewSession("s7")

	result, err := f.router.HandleTurn(context.Background(), sess, "I'm Robert Chen")

	assert.NoError(t, err)
	assert.Nil(t, sess.Patient)
	assert.Contains(t, result.Text, "Robert Chen")
}

func TestRoleFailureLeavesSessionUntouched(t *testing.T) {
	f := newFixture(nil, groundedSearcher(), &stubWebProvider{})
	f.llm.err = errors.New("model endpoint unreachable")
	sess := store.NewSession("s8")

	result, err := f.router.HandleTurn(context.Background(), sess, "Hello")

	assert.NoError(t, err)
	assert.Equal(t, constant.ApologyMessage, result.Text)
	assert.Equal(t, store.RoleIntake, result.ActiveRole)
	assert.Empty(t, sess.Turns)

	types := f.rec.typeSequence()
	assert.Contains(t, types, recorder.EventError)
	assert.NotContains(t, types, recorder.EventAgentResponse)
}

func TestClinicalFailureRevertsHandoff(t *testing.T) {
	f := newFixture([]string{
		"ROUTE_TO_CLINICAL: chest pain",
	}, groundedSearcher(), &stubWebProvider{})
	sess := store.NewSession("s9")

	// The receptionist reply is scripted; the clinical model call that follows
	// the handoff fails.
	f.llm.exhaustErr = errors.New("model endpoint unreachable")
	result, err := f.router.HandleTurn(context.Background(), sess, "chest pain")

	assert.NoError(t, err)
	assert.Equal(t, constant.ApologyMessage, result.Text)
	assert.Equal(t, store.RoleIntake, sess.ActiveRole)
	assert.Empty(t, sess.Turns)
}

func TestAdministrativeQuestionRoutesBack(t *testing.T) {
	f := newFixture([]string{
		"ROUTE_TO_RECEPTIONIST",
		"Of course! Your follow-up appointment details are in your discharge paperwork. Is there anything else?",
	}, groundedSearcher(), &stubWebProvider{})
	sess := store.NewSession("s10")
	sess.ActiveRole = store.RoleClinical

	result, err := f.router.HandleTurn(context.Background(), sess, "When is my next appointment?")

	assert.NoError(t, err)
	assert.Equal(t, store.RoleIntake, result.ActiveRole)
	assert.Contains(t, result.Text, "appointment")
	assert.False(t, strings.HasSuffix(result.Text, constant.ClinicalDisclaimer))
}

func TestClinicalStaysActiveAcrossTurns(t *testing.T) {
	f := newFixture([]string{
		"Fluid retention is common after discharge. Keep monitoring it.",
	}, groundedSearcher(), &stubWebProvider{})
	sess := store.NewSession("s11")
	sess.ActiveRole = store.RoleClinical

	result, err := f.router.HandleTurn(context.Background(), sess, "Should I weigh myself daily?")

	assert.NoError(t, err)
	assert.Equal(t, store.RoleClinical, result.ActiveRole)
	assert.True(t, strings.HasSuffix(result.Text, constant.ClinicalDisclaimer))
}
