package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/repository"
)

func TestBuildFilter(t *testing.T) {
	owner := primitive.NewObjectID()
	personal := domain.ContactTypePersonal
	search := " a.b+c "

	got, err := buildFilter(repository.ContactFilter{OwnerID: owner.Hex(), Type: &personal, Search: &search})
	require.NoError(t, err)

	pattern := primitive.Regex{Pattern: ` a\.b\+c `, Options: "i"}
	want := bson.M{
		"owner_id": owner,
		"type":     "personal",
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
			bson.M{"phone": pattern},
		},
	}
	assert.Equal(t, want, got)
}

func TestBuildFilter_InvalidOwner(t *testing.T) {
	_, err := buildFilter(repository.ContactFilter{OwnerID: "not-an-object-id"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateSet_OnlyIncludesSetFields(t *testing.T) {
	phone := "+1987654321"
	set := updateSet(domain.ContactFields{Phone: &phone})

	assert.Len(t, set, 2)
	assert.Equal(t, phone, set["phone"])
	assert.Contains(t, set, "updated_at")
}

func TestContactRepository_ValidID(t *testing.T) {
	repo := &ContactRepository{}
	assert.True(t, repo.ValidID("507f1f77bcf86cd799439011"))
	assert.False(t, repo.ValidID("3f1c2b9e-8a47-4d0e-9b6a-2f5d8c1e7a90"))
	assert.False(t, repo.ValidID("123"))
}

func setupDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database(fmt.Sprintf("contacts_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	require.NoError(t, EnsureIndexes(ctx, db))
	return db
}

func TestContactRepository_Integration(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	contacts := NewContactRepository(db)

	owner := &domain.User{Email: "john@example.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, owner))
	assert.ErrorIs(t, users.Create(ctx, &domain.User{Email: "john@example.com"}), repository.ErrDuplicate)

	alice := &domain.Contact{OwnerID: owner.ID, Name: "Alice Johnson", Email: "alice@example.com", Phone: "+1234567890", Type: domain.ContactTypePersonal}
	require.NoError(t, contacts.Create(ctx, alice))
	assert.ErrorIs(t, contacts.Create(ctx, &domain.Contact{OwnerID: owner.ID, Name: "Dup", Email: "alice@example.com", Type: domain.ContactTypeWork}), repository.ErrDuplicate)

	search := "ALICE"
	n, err := contacts.Count(ctx, repository.ContactFilter{OwnerID: owner.ID, Search: &search})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	name := "Alice Cooper"
	updated, err := contacts.Update(ctx, owner.ID, alice.ID, domain.ContactFields{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)

	other := primitive.NewObjectID().Hex()
	_, err = contacts.GetByID(ctx, other, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, contacts.Delete(ctx, owner.ID, alice.ID))
	assert.ErrorIs(t, contacts.Delete(ctx, owner.ID, alice.ID), repository.ErrNotFound)
}
