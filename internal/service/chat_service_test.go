package service

import (
	"context"
	"testing"

	"llamadesk-be/internal/constant"
	"llamadesk-be/internal/dto"
	"llamadesk-be/internal/pkg/apperror"
	"llamadesk-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine scripts engine behavior for assembler tests.
type fakeEngine struct {
	reply   string
	err     error
	loaded  bool
	history []llm.Message // last context received
}

func (f *fakeEngine) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.history = history
	if f.err != nil {
		return "", f.err
	}
	f.loaded = true
	return f.reply, nil
}

func (f *fakeEngine) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (f *fakeEngine) Load(ctx context.Context) error { return f.err }
func (f *fakeEngine) IsLoaded() bool                 { return f.loaded }
func (f *fakeEngine) Device() string                 { return "cpu" }

func TestSendChatPersistsBothSides(t *testing.T) {
	factory := newTestFactory(t)
	sessions := NewSessionService(factory)
	engine := &fakeEngine{reply: "Hi there!"}
	chat := NewChatService(factory, engine, nopLogger{})
	ctx := context.Background()

	session, err := sessions.Create(ctx, &dto.CreateSessionRequest{Title: "greeting"})
	require.NoError(t, err)

	res, err := chat.SendChat(ctx, &dto.SendChatRequest{SessionId: session.Id, Content: "Hello"})
	require.NoError(t, err)

	assert.Equal(t, constant.ChatMessageRoleAssistant, res.Role)
	assert.Equal(t, "Hi there!", res.Content)

	messages, err := sessions.GetMessages(ctx, session.Id)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, messages[0].Role)
	assert.Equal(t, "Hello", messages[0].Content)
	assert.Equal(t, constant.ChatMessageRoleAssistant, messages[1].Role)
	assert.Equal(t, "Hi there!", messages[1].Content)
}

func TestSendChatSubmitsFullOrderedHistory(t *testing.T) {
	factory := newTestFactory(t)
	sessions := NewSessionService(factory)
	engine := &fakeEngine{reply: "reply"}
	chat := NewChatService(factory, engine, nopLogger{})
	ctx := context.Background()

	session, err := sessions.Create(ctx, &dto.CreateSessionRequest{Title: "ctx"})
	require.NoError(t, err)

	_, err = chat.SendChat(ctx, &dto.SendChatRequest{SessionId: session.Id, Content: "first"})
	require.NoError(t, err)
	_, err = chat.SendChat(ctx, &dto.SendChatRequest{SessionId: session.Id, Content: "second"})
	require.NoError(t, err)

	// The second call sees user/assistant/user: the whole history including
	// the just-appended utterance, role/content only.
	require.Len(t, engine.history, 3)
	assert.Equal(t, llm.Message{Role: "user", Content: "first"}, engine.history[0])
	assert.Equal(t, llm.Message{Role: "assistant", Content: "reply"}, engine.history[1])
	assert.Equal(t, llm.Message{Role: "user", Content: "second"}, engine.history[2])
}

func TestSendChatModelUnavailableReturnsSentinel(t *testing.T) {
	factory := newTestFactory(t)
	sessions := NewSessionService(factory)
	engine := &fakeEngine{err: &llm.LoadError{Reason: "weight file not found"}}
	chat := NewChatService(factory, engine, nopLogger{})
	ctx := context.Background()

	session, err := sessions.Create(ctx, &dto.CreateSessionRequest{Title: "degraded"})
	require.NoError(t, err)

	res, err := chat.SendChat(ctx, &dto.SendChatRequest{SessionId: session.Id, Content: "Hello"})
	require.NoError(t, err, "model unavailability is in-band, not an error")

	assert.Equal(t, constant.ChatMessageRoleAssistant, res.Role)
	assert.Equal(t, constant.SentinelModelNotLoaded, res.Content)

	// User input survives the failed generation; no assistant row is added.
	messages, err := sessions.GetMessages(ctx, session.Id)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, constant.ChatMessageRoleUser, messages[0].Role)
	assert.Equal(t, "Hello", messages[0].Content)
}

func TestSendChatGenerationFailureReturnsSentinel(t *testing.T) {
	factory := newTestFactory(t)
	sessions := NewSessionService(factory)
	engine := &fakeEngine{err: &llm.GenerationError{Err: context.DeadlineExceeded}}
	chat := NewChatService(factory, engine, nopLogger{})
	ctx := context.Background()

	session, err := sessions.Create(ctx, &dto.CreateSessionRequest{Title: "flaky"})
	require.NoError(t, err)

	res, err := chat.SendChat(ctx, &dto.SendChatRequest{SessionId: session.Id, Content: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, constant.SentinelGenerationError, res.Content)

	messages, err := sessions.GetMessages(ctx, session.Id)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestSendChatUnknownSession(t *testing.T) {
	factory := newTestFactory(t)
	chat := NewChatService(factory, &fakeEngine{reply: "x"}, nopLogger{})

	_, err := chat.SendChat(context.Background(), &dto.SendChatRequest{SessionId: uuid.New(), Content: "Hello"})
	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSendChatRejectsUnknownRole(t *testing.T) {
	factory := newTestFactory(t)
	sessions := NewSessionService(factory)
	chat := NewChatService(factory, &fakeEngine{reply: "x"}, nopLogger{})
	ctx := context.Background()

	session, err := sessions.Create(ctx, &dto.CreateSessionRequest{Title: "roles"})
	require.NoError(t, err)

	_, err = chat.SendChat(ctx, &dto.SendChatRequest{SessionId: session.Id, Content: "hi", Role: "wizard"})
	assert.Error(t, err)
}

func TestStatusReflectsEngine(t *testing.T) {
	factory := newTestFactory(t)
	engine := &fakeEngine{loaded: true}
	chat := NewChatService(factory, engine, nopLogger{})

	status := chat.Status(context.Background())
	assert.Equal(t, "running", status.Status)
	assert.True(t, status.ModelLoaded)
	assert.Equal(t, "cpu", status.Device)
}

func TestStatusWithholdsDeviceUntilLoaded(t *testing.T) {
	factory := newTestFactory(t)
	chat := NewChatService(factory, &fakeEngine{}, nopLogger{})

	status := chat.Status(context.Background())
	assert.Equal(t, "running", status.Status)
	assert.False(t, status.ModelLoaded)
	assert.Empty(t, status.Device, "an unverified device must not be advertised")
}
