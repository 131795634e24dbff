package cleaning

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capitas-dashboard/internal/model"
	"capitas-dashboard/pkg/utils"
)

// fakeRunStore records every store call in memory.
type fakeRunStore struct {
	mu       sync.Mutex
	runs     map[string]*model.CleaningRun
	statuses map[string][]string
	errors   map[string][]string
}

func newFakeRunStore() *fakeRunStore {
	return &fakeRunStore{
		runs:     make(map[string]*model.CleaningRun),
		statuses: make(map[string][]string),
		errors:   make(map[string][]string),
	}
}

func (s *fakeRunStore) SaveRun(run *model.CleaningRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

func (s *fakeRunStore) UpdateRunStatus(id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[id] = append(s.statuses[id], status)
	return nil
}

func (s *fakeRunStore) SaveRunStats(id string, stats model.CleanStats, artifactPath string) error {
	return nil
}

func (s *fakeRunStore) SaveRunError(id, stage string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[id] = append(s.errors[id], stage)
	return nil
}

func (s *fakeRunStore) stagesFor(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.errors[id]...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeRawFile(t *testing.T, dirs *utils.DataDirs, institution, name, content string) {
	t.Helper()
	dir := filepath.Join(dirs.RawDir, institution)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const oneCSV = `Años,,2020,2021
Afiliados,Subsidiado,100,200
`

const cnssCSV = `Año,Mes,Recaudos
2020,Enero,300
2020,Febrero,400
`

func newTestRunner(t *testing.T, store RunStore, workers int) (*Runner, *utils.DataDirs) {
	t.Helper()
	base := t.TempDir()
	dirs := utils.NewDataDirs(filepath.Join(base, "raw"), filepath.Join(base, "processed"))
	require.NoError(t, dirs.EnsureDirs())
	runner := NewRunner(dirs, store, Strategies(testCoercer()), testLogger(), workers)
	return runner, dirs
}

func TestRunnerExecuteCompletes(t *testing.T) {
	store := newFakeRunStore()
	runner, dirs := newTestRunner(t, store, 1)
	writeRawFile(t, dirs, model.InstitutionCNSS, "recaudos.csv", cnssCSV)

	run, err := runner.StartRun(model.InstitutionCNSS, "")
	require.NoError(t, err)
	assert.Equal(t, model.RunPending, run.Status)

	require.NoError(t, runner.Execute(context.Background(), run))

	assert.Equal(t, []string{model.RunRunning, model.RunCompleted}, store.statuses[run.ID])
	assert.Equal(t, model.CleanStats{RowsIn: 2, RowsKept: 2}, run.Stats)
	assert.Equal(t, dirs.ProcessedPath(model.InstitutionCNSS), run.ArtifactPath)
	assert.True(t, dirs.HasProcessed(model.InstitutionCNSS))
}

func TestRunnerExecuteRecordsLoadError(t *testing.T) {
	store := newFakeRunStore()
	runner, _ := newTestRunner(t, store, 1)

	run, err := runner.StartRun(model.InstitutionONE, "")
	require.NoError(t, err)

	err = runner.Execute(context.Background(), run)
	require.Error(t, err)
	assert.Equal(t, []string{model.RunRunning, model.RunFailed}, store.statuses[run.ID])
	assert.Equal(t, []string{"load"}, store.stagesFor(run.ID))
}

func TestRunnerExecuteRecordsCleanError(t *testing.T) {
	store := newFakeRunStore()
	runner, dirs := newTestRunner(t, store, 1)
	writeRawFile(t, dirs, model.InstitutionCNSS, "roto.csv", "Año,Recaudos\n2020,100\n")

	run, err := runner.StartRun(model.InstitutionCNSS, "")
	require.NoError(t, err)

	err = runner.Execute(context.Background(), run)
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))
	assert.Equal(t, []string{"clean"}, store.stagesFor(run.ID))
	assert.False(t, dirs.HasProcessed(model.InstitutionCNSS))
}

func TestRunnerStartRunUnknownInstitution(t *testing.T) {
	runner, _ := newTestRunner(t, newFakeRunStore(), 1)
	_, err := runner.StartRun("sisalril", "")
	assert.Error(t, err)
}

func TestRunnerCleanAllIsolatesFailures(t *testing.T) {
	store := newFakeRunStore()
	runner, dirs := newTestRunner(t, store, 2)

	// ONE has good data; CNSS has no raw directory at all.
	writeRawFile(t, dirs, model.InstitutionONE, "afiliados.csv", oneCSV)

	runs := runner.CleanAll(context.Background())
	require.Len(t, runs, 2)

	byTag := make(map[string]*model.CleaningRun)
	for _, run := range runs {
		byTag[run.Institution] = run
	}
	assert.Equal(t, model.RunFailed, byTag[model.InstitutionCNSS].Status)
	assert.Equal(t, model.RunCompleted, byTag[model.InstitutionONE].Status)
	assert.True(t, dirs.HasProcessed(model.InstitutionONE))
	assert.False(t, dirs.HasProcessed(model.InstitutionCNSS))
}

func TestRunnerInstitutionsSorted(t *testing.T) {
	runner, _ := newTestRunner(t, newFakeRunStore(), 1)
	assert.Equal(t, []string{model.InstitutionCNSS, model.InstitutionONE}, runner.Institutions())
}

func TestRunnerMergesMultipleFiles(t *testing.T) {
	store := newFakeRunStore()
	runner, dirs := newTestRunner(t, store, 1)
	writeRawFile(t, dirs, model.InstitutionCNSS, "a.csv", cnssCSV)
	writeRawFile(t, dirs, model.InstitutionCNSS, "b.csv", "Año,Mes,Pagos\n2021,Marzo,500\n")

	run, err := runner.StartRun(model.InstitutionCNSS, "")
	require.NoError(t, err)
	require.NoError(t, runner.Execute(context.Background(), run))

	table, err := ReadArtifact(dirs.ProcessedPath(model.InstitutionCNSS))
	require.NoError(t, err)
	require.Len(t, table.Records, 3)
	assert.Equal(t, model.CleanStats{RowsIn: 3, RowsKept: 3}, run.Stats)
}
