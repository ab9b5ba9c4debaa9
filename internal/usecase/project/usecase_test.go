package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/usecase/project"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProjectRepo struct {
	projects map[string]*entity.Project
	deletes  []string
}

func (f *fakeProjectRepo) Create(_ context.Context, p entity.Project) (*entity.Project, error) {
	if f.projects == nil {
		f.projects = map[string]*entity.Project{}
	}
	f.projects[p.ID] = &p
	return &p, nil
}
func (f *fakeProjectRepo) GetForUser(_ context.Context, id, userID string) (*entity.Project, error) {
	if p, ok := f.projects[id]; ok && p.UserID == userID {
		return p, nil
	}
	return nil, entity.ErrProjectAccess
}
func (f *fakeProjectRepo) ListByUser(_ context.Context, userID string) ([]*entity.Project, error) {
	out := []*entity.Project{}
	for _, p := range f.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeProjectRepo) Delete(_ context.Context, id string) error {
	delete(f.projects, id)
	f.deletes = append(f.deletes, id)
	return nil
}

type fakeChatRepo struct {
	byProject map[string][]*entity.ChatMessage
}

func (f *fakeChatRepo) Append(_ context.Context, projectID string, sender entity.Sender, message string) error {
	if f.byProject == nil {
		f.byProject = map[string][]*entity.ChatMessage{}
	}
	f.byProject[projectID] = append(f.byProject[projectID], &entity.ChatMessage{
		OwnerID: projectID, Sender: sender, Message: message, CreatedAt: time.Now(),
	})
	return nil
}
func (f *fakeChatRepo) List(_ context.Context, projectID string) ([]*entity.ChatMessage, error) {
	return f.byProject[projectID], nil
}
func (f *fakeChatRepo) ListRecent(_ context.Context, projectID string, _ int) ([]*entity.ChatMessage, error) {
	return f.byProject[projectID], nil
}

type fakeHouseDetailRepo struct{}

func (fakeHouseDetailRepo) InsertIfAbsent(context.Context, string, string, string) error { return nil }
func (fakeHouseDetailRepo) ListByProject(context.Context, string) ([]*entity.Detail, error) {
	return []*entity.Detail{{Type: "floors", Value: "2"}}, nil
}
func (fakeHouseDetailRepo) MapByProject(context.Context, string) (map[string]string, error) {
	return nil, nil
}

type fakeOuterAreaRepo struct{}

func (fakeOuterAreaRepo) InsertIfAbsent(context.Context, string, string, string) error { return nil }
func (fakeOuterAreaRepo) ListByProject(context.Context, string) ([]*entity.OuterArea, error) {
	return nil, nil
}
func (fakeOuterAreaRepo) MapByProject(context.Context, string) (map[string]string, error) {
	return nil, nil
}

type fakeRoomRepo struct{}

func (fakeRoomRepo) CreateIfAbsent(context.Context, entity.Room) (bool, error) { return false, nil }
func (fakeRoomRepo) DeleteByName(context.Context, string, string) error        { return nil }
func (fakeRoomRepo) ListByProject(context.Context, string) ([]*entity.Room, error) {
	return []*entity.Room{{ID: "room-1", Name: "Bedroom"}}, nil
}
func (fakeRoomRepo) ListConfirmed(context.Context, string) ([]*entity.Room, error) { return nil, nil }
func (fakeRoomRepo) ListConfirmedExcept(context.Context, string, string) ([]*entity.Room, error) {
	return nil, nil
}
func (fakeRoomRepo) GetContextForUser(context.Context, string, string) (*entity.RoomContext, error) {
	return nil, entity.ErrRoomAccess
}
func (fakeRoomRepo) ConfirmAll(context.Context, string) error { return nil }
func (fakeRoomRepo) SetDesignPhase(context.Context, string, entity.DesignPhase) error {
	return nil
}

func newUsecase() (*project.ProjectUsecase, *fakeProjectRepo, *fakeChatRepo) {
	projects := &fakeProjectRepo{}
	chat := &fakeChatRepo{}
	uc := project.NewUsecase(projects, chat, fakeHouseDetailRepo{}, fakeOuterAreaRepo{}, fakeRoomRepo{}, zap.NewNop())
	return uc, projects, chat
}

func TestCreateProject_SeedsWelcomeQuestion(t *testing.T) {
	uc, _, chat := newUsecase()

	created, err := uc.CreateProject(context.Background(), "user-1",
		&entity.CreateProjectRequest{ProjectName: "  Dream House  "})
	require.NoError(t, err)
	require.Equal(t, "Dream House", created.Name)
	require.NotEmpty(t, created.ID)

	history := chat.byProject[created.ID]
	require.Len(t, history, 1)
	require.Equal(t, entity.SenderAssistant, history[0].Sender)
	require.Equal(t, "How many floors would you like for your dream house?", history[0].Message)
}

func TestCreateProject_BlankNameRejected(t *testing.T) {
	uc, projects, _ := newUsecase()

	_, err := uc.CreateProject(context.Background(), "user-1",
		&entity.CreateProjectRequest{ProjectName: "   "})
	require.ErrorIs(t, err, entity.ErrMissingField)
	require.Empty(t, projects.projects)
}

func TestGetSetupView(t *testing.T) {
	uc, _, _ := newUsecase()

	created, err := uc.CreateProject(context.Background(), "user-1",
		&entity.CreateProjectRequest{ProjectName: "Dream House"})
	require.NoError(t, err)

	view, err := uc.GetSetupView(context.Background(), "user-1", created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, view.Project.ID)
	require.Len(t, view.ChatHistory, 1)
	require.Len(t, view.HouseDetails, 1)
	require.Len(t, view.Rooms, 1)

	_, err = uc.GetSetupView(context.Background(), "intruder", created.ID)
	require.ErrorIs(t, err, entity.ErrProjectAccess)
}

func TestDeleteProject(t *testing.T) {
	uc, projects, _ := newUsecase()

	created, err := uc.CreateProject(context.Background(), "user-1",
		&entity.CreateProjectRequest{ProjectName: "Dream House"})
	require.NoError(t, err)

	require.ErrorIs(t, uc.DeleteProject(context.Background(), "intruder", created.ID), entity.ErrProjectAccess)
	require.Empty(t, projects.deletes)

	require.NoError(t, uc.DeleteProject(context.Background(), "user-1", created.ID))
	require.Equal(t, []string{created.ID}, projects.deletes)
}
