package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"codeforge/domain"
	"codeforge/genai"
	"codeforge/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CanonicalEntryFile is the filename generated content lands under when
// a project has no files yet. Once it exists, later generations get
// uniquely numbered filenames instead of clobbering it.
const CanonicalEntryFile = "App.jsx"

// Store is the slice of the project store a session needs.
type Store interface {
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	ReplaceFiles(ctx context.Context, projectID uuid.UUID, files models.FileMap) error
	NextGenerationSeq(ctx context.Context, projectID uuid.UUID) (int, error)
}

// Ledger gates and debits an owner's credits. ReserveAndCommit must be
// atomic at the storage layer; the Remaining pre-check here is an
// optimization to avoid a doomed network call, not the guarantee.
type Ledger interface {
	Remaining(ctx context.Context, ownerID string) (int, error)
	ReserveAndCommit(ctx context.Context, ownerID string, cost int) error
}

// Generator dispatches prompts to the external generation service.
type Generator interface {
	Generate(ctx context.Context, req genai.Request) (*genai.Result, error)
}

// Session orchestrates prompt-to-code round trips for one project
// workspace. At most one submission is in flight at a time; a second
// submission is rejected, not queued.
type Session struct {
	projectID uuid.UUID
	store     Store
	ledger    Ledger
	generator Generator
	log       *ConversationLog

	mu       sync.Mutex
	inFlight bool
}

// Entries exposes the session's conversation history.
func (s *Session) Entries() []models.ConversationEntry {
	return s.log.Entries()
}

// Submit runs one end-to-end generation round trip:
//
//	validate -> credit gate -> log User+Pending -> dispatch ->
//	debit -> merge files -> resolve Pending
//
// Pre-flight rejections (blank prompt, unknown model, not enough
// credits, already in flight) leave the log and ledger untouched. A
// dispatch failure resolves the placeholder to an error entry and debits
// nothing. Credits are charged only for delivered content.
func (s *Session) Submit(ctx context.Context, ownerID, prompt, modelID string) (*models.GenerateResponse, error) {
	req := models.GenerateRequest{
		ProjectID: s.projectID.String(),
		Prompt:    prompt,
		Model:     modelID,
		TaskType:  models.TaskCodeGeneration,
	}
	if err := req.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	tier, ok := models.TierByID(modelID)
	if !ok {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown model %q", modelID)}
	}
	cost := tier.Credits

	remaining, err := s.ledger.Remaining(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if remaining < cost {
		return nil, &domain.InsufficientCreditsError{Required: cost, Remaining: remaining}
	}

	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.finish()

	s.log.Append(models.UserEntry(prompt))
	s.log.Append(models.PendingEntry())

	result, err := s.generator.Generate(ctx, genai.Request{
		ProjectID: req.ProjectID,
		Prompt:    req.Prompt,
		Model:     req.Model,
		TaskType:  req.TaskType,
	})
	if err != nil {
		s.resolve(models.ErrorEntry(userMessage(err)))
		return nil, err
	}

	if err := s.ledger.ReserveAndCommit(ctx, ownerID, cost); err != nil {
		// Lost a cross-tab race between the pre-check and the debit.
		// The generated content is discarded: no charge, no file.
		s.resolve(models.ErrorEntry(userMessage(err)))
		return nil, err
	}

	filename, err := s.mergeFiles(ctx, result.Content)
	if err != nil {
		logrus.WithError(err).WithField("project_id", s.projectID).
			Error("Failed to store generated content after debit")
		s.resolve(models.ErrorEntry("Generated code could not be saved"))
		return nil, err
	}

	modelUsed := result.ModelUsed
	if modelUsed == "" {
		modelUsed = tier.ID
	}
	s.resolve(models.AssistantEntry(
		fmt.Sprintf("Generated code using %s. Used %d credit(s).", modelUsed, cost)))

	return &models.GenerateResponse{
		Response:    result.Content,
		ModelUsed:   modelUsed,
		CreditsUsed: cost,
		File:        filename,
	}, nil
}

// mergeFiles applies the file-merge policy: an empty project gets the
// canonical entry file; otherwise the content lands under a new name
// with a strictly increasing per-project discriminator. The resulting
// map fully replaces the stored one.
func (s *Session) mergeFiles(ctx context.Context, content string) (string, error) {
	project, err := s.store.GetProject(ctx, s.projectID)
	if err != nil {
		return "", err
	}

	filename := CanonicalEntryFile
	if project.Files.Len() > 0 {
		seq, err := s.store.NextGenerationSeq(ctx, s.projectID)
		if err != nil {
			return "", err
		}
		filename = fmt.Sprintf("generated_%d.jsx", seq)
	}

	files := project.Files
	files.Set(filename, content)
	if err := s.store.ReplaceFiles(ctx, s.projectID, files); err != nil {
		return "", err
	}
	return filename, nil
}

func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return &domain.ConcurrentGenerationError{
			Message: "a generation is already in flight for this project",
		}
	}
	s.inFlight = true
	return nil
}

func (s *Session) finish() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

func (s *Session) resolve(entry models.ConversationEntry) {
	if err := s.log.ReplaceLast(entry); err != nil {
		// Unreachable while begin() serializes submissions.
		logrus.WithError(err).WithField("project_id", s.projectID).
			Error("Failed to resolve pending conversation entry")
	}
}

// userMessage extracts a message safe to show in the conversation.
func userMessage(err error) string {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	return "Generation failed"
}

// Manager hands out one session per open project workspace and discards
// it, history included, when the workspace closes.
type Manager struct {
	store     Store
	ledger    Ledger
	generator Generator

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewManager(store Store, ledger Ledger, generator Generator) *Manager {
	return &Manager{
		store:     store,
		ledger:    ledger,
		generator: generator,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// Session returns the project's session, creating it on first use.
func (m *Manager) Session(projectID uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[projectID]; ok {
		return s
	}
	s := &Session{
		projectID: projectID,
		store:     m.store,
		ledger:    m.ledger,
		generator: m.generator,
		log:       NewConversationLog(),
	}
	m.sessions[projectID] = s
	return s
}

// Conversation returns the project's history without creating a
// session.
func (m *Manager) Conversation(projectID uuid.UUID) []models.ConversationEntry {
	m.mu.Lock()
	s, ok := m.sessions[projectID]
	m.mu.Unlock()
	if !ok {
		return []models.ConversationEntry{}
	}
	return s.Entries()
}

// Close drops the project's session and its conversation history. An
// in-flight generation is not cancelled: server-side work runs to
// completion and any debit it commits stands, but its log resolution is
// discarded along with the session.
func (m *Manager) Close(projectID uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, projectID)
	m.mu.Unlock()
}
