package setup_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/usecase/setup"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptGenerator replies from a queue in call order; an exhausted queue
// errors, which doubles as the "service down" scenario.
type scriptGenerator struct {
	replies []string
	calls   [][]entity.GeminiContent
	configs []entity.GenerationConfig
}

func (g *scriptGenerator) Generate(_ context.Context, contents []entity.GeminiContent, cfg entity.GenerationConfig) (string, error) {
	g.calls = append(g.calls, contents)
	g.configs = append(g.configs, cfg)
	if len(g.replies) == 0 {
		return "", errors.New("generation unavailable")
	}
	next := g.replies[0]
	g.replies = g.replies[1:]
	return next, nil
}

type fakeProjectRepo struct {
	project *entity.Project
}

func (f *fakeProjectRepo) Create(_ context.Context, p entity.Project) (*entity.Project, error) {
	return &p, nil
}
func (f *fakeProjectRepo) GetForUser(_ context.Context, id, userID string) (*entity.Project, error) {
	if f.project == nil || f.project.ID != id || f.project.UserID != userID {
		return nil, entity.ErrProjectAccess
	}
	return f.project, nil
}
func (f *fakeProjectRepo) ListByUser(context.Context, string) ([]*entity.Project, error) {
	return nil, nil
}
func (f *fakeProjectRepo) Delete(context.Context, string) error { return nil }

type fakeFloorRepo struct {
	floor        entity.Floor
	consolidated int
}

func (f *fakeFloorRepo) GetOrCreateFirst(context.Context, string) (*entity.Floor, error) {
	return &f.floor, nil
}
func (f *fakeFloorRepo) Consolidate(context.Context, string) (*entity.Floor, error) {
	f.consolidated++
	return &f.floor, nil
}

type fakeRoomRepo struct {
	rooms        []*entity.Room
	confirmAlls  int
	phaseChanges int
}

func (f *fakeRoomRepo) CreateIfAbsent(_ context.Context, room entity.Room) (bool, error) {
	for _, r := range f.rooms {
		if r.FloorID == room.FloorID && r.Name == room.Name {
			return false, nil
		}
	}
	r := room
	f.rooms = append(f.rooms, &r)
	return true, nil
}
func (f *fakeRoomRepo) DeleteByName(_ context.Context, floorID, name string) error {
	kept := f.rooms[:0]
	for _, r := range f.rooms {
		if !(r.FloorID == floorID && r.Name == name) {
			kept = append(kept, r)
		}
	}
	f.rooms = kept
	return nil
}
func (f *fakeRoomRepo) ListByProject(context.Context, string) ([]*entity.Room, error) {
	return f.rooms, nil
}
func (f *fakeRoomRepo) ListConfirmed(context.Context, string) ([]*entity.Room, error) {
	out := []*entity.Room{}
	for _, r := range f.rooms {
		if r.Confirmed {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeRoomRepo) ListConfirmedExcept(context.Context, string, string) ([]*entity.Room, error) {
	return nil, nil
}
func (f *fakeRoomRepo) GetContextForUser(context.Context, string, string) (*entity.RoomContext, error) {
	return nil, entity.ErrRoomAccess
}
func (f *fakeRoomRepo) ConfirmAll(context.Context, string) error {
	f.confirmAlls++
	for _, r := range f.rooms {
		r.Confirmed = true
	}
	return nil
}
func (f *fakeRoomRepo) SetDesignPhase(context.Context, string, entity.DesignPhase) error {
	f.phaseChanges++
	return nil
}

func (f *fakeRoomRepo) names() []string {
	out := make([]string, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, r.Name)
	}
	return out
}

type fakeSetupChatRepo struct {
	messages []*entity.ChatMessage
}

func (f *fakeSetupChatRepo) Append(_ context.Context, projectID string, sender entity.Sender, message string) error {
	f.messages = append(f.messages, &entity.ChatMessage{
		OwnerID: projectID, Sender: sender, Message: message, CreatedAt: time.Now(),
	})
	return nil
}
func (f *fakeSetupChatRepo) List(context.Context, string) ([]*entity.ChatMessage, error) {
	return f.messages, nil
}
func (f *fakeSetupChatRepo) ListRecent(_ context.Context, _ string, limit int) ([]*entity.ChatMessage, error) {
	if len(f.messages) > limit {
		return f.messages[len(f.messages)-limit:], nil
	}
	return f.messages, nil
}

type fakeRoomChatRepo struct {
	byRoom map[string][]*entity.ChatMessage
}

func (f *fakeRoomChatRepo) Append(_ context.Context, roomID string, sender entity.Sender, message string) error {
	if f.byRoom == nil {
		f.byRoom = map[string][]*entity.ChatMessage{}
	}
	f.byRoom[roomID] = append(f.byRoom[roomID], &entity.ChatMessage{Sender: sender, Message: message})
	return nil
}
func (f *fakeRoomChatRepo) List(_ context.Context, roomID string) ([]*entity.ChatMessage, error) {
	return f.byRoom[roomID], nil
}
func (f *fakeRoomChatRepo) HasAssistantMessage(_ context.Context, roomID string) (bool, error) {
	for _, m := range f.byRoom[roomID] {
		if m.Sender == entity.SenderAssistant {
			return true, nil
		}
	}
	return false, nil
}

type fakeDetailRepo struct {
	details map[string]map[string]string // ownerID -> type -> value
}

func (f *fakeDetailRepo) insert(ownerID, detailType, detailValue string) {
	if f.details == nil {
		f.details = map[string]map[string]string{}
	}
	if f.details[ownerID] == nil {
		f.details[ownerID] = map[string]string{}
	}
	if _, ok := f.details[ownerID][detailType]; !ok {
		f.details[ownerID][detailType] = detailValue
	}
}

func (f *fakeDetailRepo) asList(ownerID string) []*entity.Detail {
	out := []*entity.Detail{}
	for k, v := range f.details[ownerID] {
		out = append(out, &entity.Detail{OwnerID: ownerID, Type: k, Value: v})
	}
	return out
}

type fakeHouseDetailRepo struct{ fakeDetailRepo }

func (f *fakeHouseDetailRepo) InsertIfAbsent(_ context.Context, projectID, detailType, detailValue string) error {
	f.insert(projectID, detailType, detailValue)
	return nil
}
func (f *fakeHouseDetailRepo) ListByProject(_ context.Context, projectID string) ([]*entity.Detail, error) {
	return f.asList(projectID), nil
}
func (f *fakeHouseDetailRepo) MapByProject(_ context.Context, projectID string) (map[string]string, error) {
	return f.details[projectID], nil
}

type fakeRoomDetailRepo struct{ fakeDetailRepo }

func (f *fakeRoomDetailRepo) InsertIfAbsent(_ context.Context, roomID, detailType, detailValue string) error {
	f.insert(roomID, detailType, detailValue)
	return nil
}
func (f *fakeRoomDetailRepo) ListByRoom(_ context.Context, roomID string) ([]*entity.Detail, error) {
	return f.asList(roomID), nil
}
func (f *fakeRoomDetailRepo) MapByRoom(_ context.Context, roomID string) (map[string]string, error) {
	return f.details[roomID], nil
}

type fakeOuterAreaRepo struct{ fakeDetailRepo }

func (f *fakeOuterAreaRepo) InsertIfAbsent(_ context.Context, projectID, areaType, description string) error {
	f.insert(projectID, areaType, description)
	return nil
}
func (f *fakeOuterAreaRepo) ListByProject(_ context.Context, projectID string) ([]*entity.OuterArea, error) {
	out := []*entity.OuterArea{}
	for k, v := range f.details[projectID] {
		out = append(out, &entity.OuterArea{ProjectID: projectID, AreaType: k, Description: v})
	}
	return out, nil
}
func (f *fakeOuterAreaRepo) MapByProject(_ context.Context, projectID string) (map[string]string, error) {
	return f.details[projectID], nil
}

type fixture struct {
	uc         *setup.SetupUsecase
	gen        *scriptGenerator
	projects   *fakeProjectRepo
	floors     *fakeFloorRepo
	rooms      *fakeRoomRepo
	setupChat  *fakeSetupChatRepo
	roomChat   *fakeRoomChatRepo
	houseDet   *fakeHouseDetailRepo
	roomDet    *fakeRoomDetailRepo
	outerAreas *fakeOuterAreaRepo
}

func newFixture(replies ...string) *fixture {
	f := &fixture{
		gen: &scriptGenerator{replies: replies},
		projects: &fakeProjectRepo{project: &entity.Project{
			ID: "project-1", UserID: "user-1", Name: "Dream House",
		}},
		floors:     &fakeFloorRepo{floor: entity.Floor{ID: "floor-1", ProjectID: "project-1", FloorNumber: 1}},
		rooms:      &fakeRoomRepo{},
		setupChat:  &fakeSetupChatRepo{},
		roomChat:   &fakeRoomChatRepo{},
		houseDet:   &fakeHouseDetailRepo{},
		roomDet:    &fakeRoomDetailRepo{},
		outerAreas: &fakeOuterAreaRepo{},
	}
	f.uc = setup.NewUsecase(
		f.projects, f.floors, f.rooms, f.setupChat, f.roomChat,
		f.houseDet, f.roomDet, f.outerAreas, f.gen, zap.NewNop(),
	)
	return f
}

func TestChatTurn_ExtractsFactsFromMessage(t *testing.T) {
	f := newFixture(
		"Two floors, great! What architectural style do you like?",
		"```json\n{\"house_details\": [{\"detail_type\": \"floors\", \"detail_value\": \"2\"}], \"rooms\": [\"Bedroom\", \"Kitchen\"], \"room_details\": [{\"room_name\": \"Bedroom\", \"detail_type\": \"furniture\", \"detail_value\": \"king-size bed\"}]}\n```",
	)

	resp, err := f.uc.ChatTurn(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{Message: "Two floors with a Bedroom and a Kitchen"})
	require.NoError(t, err)
	require.Equal(t, "Two floors, great! What architectural style do you like?", resp.Message)

	require.Equal(t, "2", f.houseDet.details["project-1"]["floors"])
	require.ElementsMatch(t, []string{"Bedroom", "Kitchen"}, f.rooms.names())

	// Room details land on the room created in the same turn.
	var bedroomID string
	for _, r := range f.rooms.rooms {
		if r.Name == "Bedroom" {
			bedroomID = r.ID
		}
	}
	require.Equal(t, "king-size bed", f.roomDet.details[bedroomID]["furniture"])

	// New rooms start unconfirmed in the collecting phase.
	for _, r := range f.rooms.rooms {
		require.False(t, r.Confirmed)
		require.Equal(t, entity.DesignPhaseCollecting, r.DesignPhase)
	}

	require.Len(t, f.setupChat.messages, 2)
	require.Equal(t, entity.SenderUser, f.setupChat.messages[0].Sender)
	require.Equal(t, entity.SenderAssistant, f.setupChat.messages[1].Sender)
}

func TestChatTurn_LongTranscriptWindowEndsAtCurrentMessage(t *testing.T) {
	f := newFixture(
		"Noted! What about the plot size?",
		"```json\n{\"house_details\": [], \"rooms\": [], \"room_details\": []}\n```",
	)
	for i := 0; i < 25; i++ {
		require.NoError(t, f.setupChat.Append(context.Background(), "project-1",
			entity.SenderUser, fmt.Sprintf("earlier message %d", i)))
	}

	_, err := f.uc.ChatTurn(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{Message: "south-facing orientation"})
	require.NoError(t, err)

	// Instruction plus the 20 newest turns, ending at the turn being answered.
	contents := f.gen.calls[0]
	require.Len(t, contents, 21)
	require.Equal(t, "south-facing orientation", contents[len(contents)-1].Parts[0].Text)
	for _, c := range contents[1:] {
		require.NotEqual(t, "earlier message 0", c.Parts[0].Text,
			"messages beyond the window must not reach the model")
	}
}

func TestChatTurn_GeneratorDownFallsBackAndKeepsMessage(t *testing.T) {
	f := newFixture() // every generator call errors

	resp, err := f.uc.ChatTurn(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{Message: "I'd like three floors"})
	require.NoError(t, err)
	require.Equal(t, "Sorry, I'm having trouble. What's next for your house?", resp.Message)

	require.Len(t, f.setupChat.messages, 2)
	require.Equal(t, "I'd like three floors", f.setupChat.messages[0].Message)
	require.Empty(t, f.houseDet.details)
}

func TestChatTurn_OuterAreaActionSkipsGeneration(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.ChatTurn(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{Action: entity.SetupActionOuterArea})
	require.NoError(t, err)
	require.Equal(t, "What outdoor features would you like, such as a garden, parking, or balconies?", resp.Message)
	require.Empty(t, f.gen.calls)
}

func TestChatTurn_RecordsOuterAreaKeywords(t *testing.T) {
	f := newFixture(
		"A garden sounds lovely!",
		"```json\n{\"house_details\": [], \"rooms\": [], \"room_details\": []}\n```",
	)

	_, err := f.uc.ChatTurn(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{Message: "I want a garden and covered parking"})
	require.NoError(t, err)

	areas := f.outerAreas.details["project-1"]
	require.Equal(t, "I want a garden and covered parking", areas["garden"])
	require.Equal(t, "I want a garden and covered parking", areas["parking"])
	require.NotContains(t, areas, "balcony")
}

func TestChatTurn_UnownedProjectDenied(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ChatTurn(context.Background(), "intruder", "project-1",
		&entity.ChatTurnRequest{Message: "hello"})
	require.ErrorIs(t, err, entity.ErrProjectAccess)
	require.Empty(t, f.setupChat.messages)
}

func TestFinalize_SummarizesConfirmsAndSeeds(t *testing.T) {
	f := newFixture("1. General Information:\n- Two-story house\n\nOverall Summary: a lovely home.")
	f.rooms.rooms = []*entity.Room{
		{ID: "room-1", FloorID: "floor-1", Name: "Bedroom"},
		{ID: "room-2", FloorID: "floor-1", Name: "Kitchen"},
	}

	resp, err := f.uc.ChatTurn(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{Action: entity.SetupActionFinalize})
	require.NoError(t, err)
	require.Contains(t, resp.Message, "Overall Summary")

	require.Equal(t, 1, f.floors.consolidated)
	require.Equal(t, 1, f.rooms.confirmAlls)
	for _, r := range f.rooms.rooms {
		require.True(t, r.Confirmed)
	}

	// Each room transcript opens with exactly one vibe question.
	require.Equal(t, []*entity.ChatMessage{
		{Sender: entity.SenderAssistant, Message: "What's the overall vibe you're going for in your Bedroom?"},
	}, f.roomChat.byRoom["room-1"])
	require.Len(t, f.roomChat.byRoom["room-2"], 1)
}

func TestFinalize_SeedingIsIdempotent(t *testing.T) {
	f := newFixture("summary one", "summary two")
	f.rooms.rooms = []*entity.Room{{ID: "room-1", FloorID: "floor-1", Name: "Bedroom"}}

	_, err := f.uc.ChatTurn(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{Action: entity.SetupActionFinalize})
	require.NoError(t, err)
	_, err = f.uc.ChatTurn(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{Action: entity.SetupActionFinalize})
	require.NoError(t, err)

	require.Len(t, f.roomChat.byRoom["room-1"], 1, "a second finalize must not reseed the room")
}

func TestFinalize_GeneratorDownLeavesStateUntouched(t *testing.T) {
	f := newFixture()
	f.rooms.rooms = []*entity.Room{{ID: "room-1", FloorID: "floor-1", Name: "Bedroom"}}

	resp, err := f.uc.ChatTurn(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{Action: entity.SetupActionFinalize})
	require.NoError(t, err)
	require.Equal(t, "Sorry, I couldn't generate the summary. Let's proceed to room design.", resp.Message)

	require.Zero(t, f.floors.consolidated)
	require.Zero(t, f.rooms.confirmAlls)
	require.False(t, f.rooms.rooms[0].Confirmed)
	require.Empty(t, f.roomChat.byRoom)
}

func TestConfirmRooms_AffirmativeConfirmsAndSeeds(t *testing.T) {
	f := newFixture(
		"Awesome, rooms confirmed: Bedroom, Kitchen! Let's start designing them.",
		"```json\n{\"add\": [], \"remove\": []}\n```",
	)
	f.rooms.rooms = []*entity.Room{
		{ID: "room-1", FloorID: "floor-1", Name: "Bedroom"},
		{ID: "room-2", FloorID: "floor-1", Name: "Kitchen"},
	}

	resp, err := f.uc.ConfirmRooms(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{Message: "Yes, those are the rooms"})
	require.NoError(t, err)
	require.Contains(t, resp.Message, "confirmed")

	require.Equal(t, 1, f.rooms.confirmAlls)
	require.Len(t, f.roomChat.byRoom["room-1"], 1)
	require.Len(t, f.roomChat.byRoom["room-2"], 1)
}

func TestConfirmRooms_DeltaUpdatesListAndRegenerates(t *testing.T) {
	f := newFixture(
		"Current rooms are Bedroom and Study Room.",
		"```json\n{\"add\": [\"Bathroom\"], \"remove\": [\"Study Room\"]}\n```",
		"Updated rooms: Bedroom, Bathroom. Is this final?",
	)
	f.rooms.rooms = []*entity.Room{
		{ID: "room-1", FloorID: "floor-1", Name: "Bedroom"},
		{ID: "room-2", FloorID: "floor-1", Name: "Study Room"},
	}

	resp, err := f.uc.ConfirmRooms(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{Message: "Swap the Study Room for a Bathroom"})
	require.NoError(t, err)
	require.Equal(t, "Updated rooms: Bedroom, Bathroom. Is this final?", resp.Message)

	require.ElementsMatch(t, []string{"Bedroom", "Bathroom"}, f.rooms.names())
	require.Zero(t, f.rooms.confirmAlls, "an adjustment turn must not confirm")
}

func TestConfirmRooms_EmptyMessageStillReplies(t *testing.T) {
	f := newFixture("What rooms do you want, like Living Room, Kitchen, Bedroom?")

	resp, err := f.uc.ConfirmRooms(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{})
	require.NoError(t, err)
	require.Contains(t, resp.Message, "What rooms do you want")

	// No user message to persist, only the assistant reply.
	require.Len(t, f.setupChat.messages, 1)
	require.Equal(t, entity.SenderAssistant, f.setupChat.messages[0].Sender)
}

func TestConfirmRooms_GeneratorDownFallsBack(t *testing.T) {
	f := newFixture()
	f.rooms.rooms = []*entity.Room{{ID: "room-1", FloorID: "floor-1", Name: "Bedroom"}}

	resp, err := f.uc.ConfirmRooms(context.Background(), "user-1", "project-1",
		&entity.ChatTurnRequest{Message: "add a Kitchen please"})
	require.NoError(t, err)
	require.Equal(t, "Sorry, I'm having trouble confirming rooms. What rooms do you want?", resp.Message)
	require.Zero(t, f.rooms.confirmAlls)
}
