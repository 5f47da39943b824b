package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/contact-service/internal/config"
	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/events"
	"github.com/spec-kit/contact-service/internal/observability"
	"github.com/spec-kit/contact-service/internal/persistence"
	sqliterepo "github.com/spec-kit/contact-service/internal/repository/sqlite"
	"github.com/spec-kit/contact-service/internal/validation"
)

type testEnv struct {
	auth     *AuthService
	contacts *ContactService
	metrics  *observability.Metrics
	events   []events.Event
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := persistence.OpenSQLite(context.Background(), persistence.MemorySQLiteDSN(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, persistence.RunSQLiteMigrations(db.Writer))

	env := &testEnv{metrics: observability.NewMetrics()}
	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range events.ContactEventTypes {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			env.events = append(env.events, e)
			return nil
		})
	}
	NewActivityService(dispatcher, zap.NewNop(), env.metrics).RegisterHandlers()

	v := validation.New()
	env.auth = NewAuthService(config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 5, BcryptCost: 4},
		sqliterepo.NewUserRepository(db), v)
	env.contacts = NewContactService(sqliterepo.NewContactRepository(db), v, dispatcher, zap.NewNop())
	return env
}

func (e *testEnv) register(t *testing.T, email string) domain.Identity {
	t.Helper()
	result, err := e.auth.Register(context.Background(), email, "password123")
	require.NoError(t, err)
	return result.Identity
}

func contactInput(name, email, phone, typ string) ContactInput {
	return ContactInput{
		Name:  domain.Some(name),
		Email: domain.Some(email),
		Phone: domain.Some(phone),
		Type:  domain.Some(typ),
	}
}
