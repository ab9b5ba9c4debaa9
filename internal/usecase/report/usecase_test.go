package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/pkg/formatter"
	"github.com/mkondratev/housing-assistant/internal/usecase/report"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingGenerator struct {
	reply string
	err   error
	calls int
}

func (g *countingGenerator) Generate(context.Context, []entity.GeminiContent, entity.GenerationConfig) (string, error) {
	g.calls++
	return g.reply, g.err
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

type fakeRoomRepo struct {
	confirmed []*entity.Room
}

func (f *fakeRoomRepo) CreateIfAbsent(context.Context, entity.Room) (bool, error) { return false, nil }
func (f *fakeRoomRepo) DeleteByName(context.Context, string, string) error        { return nil }
func (f *fakeRoomRepo) ListByProject(context.Context, string) ([]*entity.Room, error) {
	return f.confirmed, nil
}
func (f *fakeRoomRepo) ListConfirmed(context.Context, string) ([]*entity.Room, error) {
	return f.confirmed, nil
}
func (f *fakeRoomRepo) ListConfirmedExcept(context.Context, string, string) ([]*entity.Room, error) {
	return nil, nil
}
func (f *fakeRoomRepo) GetContextForUser(context.Context, string, string) (*entity.RoomContext, error) {
	return nil, entity.ErrRoomAccess
}
func (f *fakeRoomRepo) ConfirmAll(context.Context, string) error { return nil }
func (f *fakeRoomRepo) SetDesignPhase(context.Context, string, entity.DesignPhase) error {
	return nil
}

type mapRepo struct {
	values map[string]string
}

func (m *mapRepo) InsertIfAbsent(context.Context, string, string, string) error { return nil }
func (m *mapRepo) MapByProject(context.Context, string) (map[string]string, error) {
	return m.values, nil
}
func (m *mapRepo) MapByRoom(context.Context, string) (map[string]string, error) {
	return m.values, nil
}
func (m *mapRepo) ListByProject(context.Context, string) ([]*entity.Detail, error) {
	return nil, nil
}
func (m *mapRepo) ListByRoom(context.Context, string) ([]*entity.Detail, error) { return nil, nil }

type areaRepo struct{ mapRepo }

func (a *areaRepo) ListByProject(context.Context, string) ([]*entity.OuterArea, error) {
	return nil, nil
}

func newUsecase(gen *countingGenerator) *report.ReportUsecase {
	return report.NewUsecase(
		&fakeProjectRepo{project: &entity.Project{ID: "project-1", UserID: "user-1", Name: "Dream House"}},
		&fakeRoomRepo{confirmed: []*entity.Room{{ID: "room-1", Name: "Bedroom", Confirmed: true}}},
		&mapRepo{values: map[string]string{"floors": "2"}},
		&mapRepo{values: map[string]string{"atmosphere": "cozy"}},
		&areaRepo{mapRepo{values: map[string]string{"garden": "a rose garden"}}},
		gen,
		formatter.NewFactory(),
		5*time.Minute,
		zap.NewNop(),
	)
}

func TestGenerateReport_Markdown(t *testing.T) {
	gen := &countingGenerator{reply: "1. General Information:\n- Two-story house"}
	uc := newUsecase(gen)

	file, err := uc.GenerateReport(context.Background(), "user-1", "project-1", entity.FormatMarkdown)
	require.NoError(t, err)
	require.Equal(t, "Dream House_summary_report.md", file.Filename)
	require.Equal(t, "text/markdown; charset=utf-8", file.ContentType)
	require.Contains(t, string(file.Data), "# Summary Report: Dream House")
	require.Contains(t, string(file.Data), "Two-story house")
}

func TestGenerateReport_CachesSummaryAcrossFormats(t *testing.T) {
	gen := &countingGenerator{reply: "a concise recap"}
	uc := newUsecase(gen)

	_, err := uc.GenerateReport(context.Background(), "user-1", "project-1", entity.FormatMarkdown)
	require.NoError(t, err)
	file, err := uc.GenerateReport(context.Background(), "user-1", "project-1", entity.FormatPDF)
	require.NoError(t, err)

	require.Equal(t, 1, gen.calls, "the second format must reuse the cached summary")
	require.Equal(t, "application/pdf", file.ContentType)
	require.True(t, len(file.Data) > 4 && string(file.Data[:4]) == "%PDF")
}

func TestGenerateReport_GeneratorFailure(t *testing.T) {
	gen := &countingGenerator{err: errors.New("upstream 503")}
	uc := newUsecase(gen)

	_, err := uc.GenerateReport(context.Background(), "user-1", "project-1", entity.FormatPDF)
	require.ErrorIs(t, err, entity.ErrReportFailed)
}

func TestGenerateReport_EmptyProjectStillRenders(t *testing.T) {
	gen := &countingGenerator{reply: "Overall Summary: nothing specified yet."}
	uc := report.NewUsecase(
		&fakeProjectRepo{project: &entity.Project{ID: "project-1", UserID: "user-1", Name: "Blank Slate"}},
		&fakeRoomRepo{},
		&mapRepo{},
		&mapRepo{},
		&areaRepo{},
		gen,
		formatter.NewFactory(),
		5*time.Minute,
		zap.NewNop(),
	)

	file, err := uc.GenerateReport(context.Background(), "user-1", "project-1", entity.FormatDOCX)
	require.NoError(t, err)
	require.Equal(t, "Blank Slate_summary_report.docx", file.Filename)
	require.NotEmpty(t, file.Data)
}

func TestGenerateReport_UnownedProjectDenied(t *testing.T) {
	gen := &countingGenerator{reply: "summary"}
	uc := newUsecase(gen)

	_, err := uc.GenerateReport(context.Background(), "intruder", "project-1", entity.FormatPDF)
	require.ErrorIs(t, err, entity.ErrProjectAccess)
	require.Zero(t, gen.calls)
}
