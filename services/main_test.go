package services

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"freelancehub/database"
	"freelancehub/events"
	"freelancehub/models"
	"freelancehub/storage"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	subjects := make([]string, 0, len(p.events))
	for _, e := range p.events {
		subjects = append(subjects, e.Subject)
	}
	return subjects
}

type testEnv struct {
	db        *gorm.DB
	svc       *Services
	store     *storage.LocalStore
	uploadDir string
	events    *recordingPublisher
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	pub := &recordingPublisher{}
	return &testEnv{
		db:        db,
		svc:       New(db, store, pub),
		store:     store,
		uploadDir: dir,
		events:    pub,
	}
}

func (e *testEnv) user(t *testing.T, name string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) project(t *testing.T, buyer *models.User, budget float64) *models.Project {
	t.Helper()

	project, err := e.svc.Projects.Create(context.Background(), buyer.ID, CreateProjectInput{
		Title:       "Landing page",
		Description: "Build a landing page",
		Budget:      budget,
	})
	require.NoError(t, err)
	return project
}

func (e *testEnv) assignedProject(t *testing.T, buyer, solver *models.User, budget float64) *models.Project {
	t.Helper()

	project := e.project(t, buyer, budget)
	project, err := e.svc.Projects.Assign(context.Background(), project.ID, solver.ID, buyer.ID)
	require.NoError(t, err)
	return project
}

func (e *testEnv) task(t *testing.T, project *models.Project, solver *models.User) *models.Task {
	t.Helper()

	task, err := e.svc.Tasks.Create(context.Background(), solver.ID, CreateTaskInput{
		Title:       "Wireframes",
		Description: "Low fidelity wireframes",
		ProjectID:   project.ID,
		Timeline:    time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return task
}

// reload reads the row with id into dest, discarding what dest held before.
func (e *testEnv) reload(t *testing.T, dest any, id string) {
	t.Helper()

	v := reflect.ValueOf(dest).Elem()
	v.Set(reflect.Zero(v.Type()))
	require.NoError(t, e.db.First(dest, "id = ?", id).Error)
}
