package mongodb

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/repository"
)

var _ repository.ContactRepository = (*ContactRepository)(nil)

// ContactRepository stores contacts in the contacts collection.
type ContactRepository struct {
	coll *mongo.Collection
}

// NewContactRepository binds the repository to db.
func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: db.Collection(contactsCollection)}
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	owner, err := objectID(contact.OwnerID)
	if err != nil {
		return err
	}

	ts := now()
	doc := contactDocument{
		ID:        primitive.NewObjectID(),
		OwnerID:   owner,
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Type:      string(contact.Type),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mapError("create contact", err)
	}

	contact.ID = doc.ID.Hex()
	contact.CreatedAt = ts
	contact.UpdatedAt = ts
	return nil
}

func (r *ContactRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, "get contact", filter)
}

func (r *ContactRepository) FindByEmail(ctx context.Context, ownerID, email, excludeID string) (*domain.Contact, error) {
	owner, err := objectID(ownerID)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"owner_id": owner, "email": email}
	if excludeID != "" {
		if exclude, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": exclude}
		}
	}
	return r.findOne(ctx, "find contact by email", filter)
}

func (r *ContactRepository) List(ctx context.Context, filter repository.ContactFilter) ([]domain.Contact, error) {
	query, err := buildFilter(filter)
	if err != nil {
		return nil, err
	}

	limit := int64(filter.Limit)
	if limit <= 0 {
		limit = 10
	}
	offset := int64(filter.Offset)
	if offset < 0 {
		offset = 0
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, mapError("list contacts", err)
	}
	defer cursor.Close(ctx)

	var docs []contactDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mapError("decode contacts", err)
	}

	contacts := make([]domain.Contact, 0, len(docs))
	for _, doc := range docs {
		contacts = append(contacts, doc.toDomain())
	}
	return contacts, nil
}

func (r *ContactRepository) Count(ctx context.Context, filter repository.ContactFilter) (int64, error) {
	query, err := buildFilter(filter)
	if err != nil {
		return 0, err
	}
	n, err := r.coll.CountDocuments(ctx, query)
	return n, mapError("count contacts", err)
}

func (r *ContactRepository) Update(ctx context.Context, ownerID, id string, fields domain.ContactFields) (*domain.Contact, error) {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc contactDocument
	err = r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": updateSet(fields)}, opts).Decode(&doc)
	if err != nil {
		return nil, mapError("update contact", err)
	}
	contact := doc.toDomain()
	return &contact, nil
}

func (r *ContactRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return err
	}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return mapError("delete contact", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ValidID accepts 24 character hex ObjectIDs.
func (r *ContactRepository) ValidID(id string) bool {
	return validObjectID(id)
}

func (r *ContactRepository) findOne(ctx context.Context, op string, filter bson.M) (*domain.Contact, error) {
	var doc contactDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(op, err)
	}
	contact := doc.toDomain()
	return &contact, nil
}

func ownedFilter(ownerID, id string) (bson.M, error) {
	owner, err := objectID(ownerID)
	if err != nil {
		return nil, err
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid, "owner_id": owner}, nil
}

func buildFilter(filter repository.ContactFilter) (bson.M, error) {
	owner, err := objectID(filter.OwnerID)
	if err != nil {
		return nil, err
	}

	query := bson.M{"owner_id": owner}
	if filter.Type != nil {
		query["type"] = string(*filter.Type)
	}
	if term := filter.SearchTerm(); term != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
			bson.M{"phone": pattern},
		}
	}
	return query, nil
}

func updateSet(fields domain.ContactFields) bson.M {
	set := bson.M{"updated_at": now()}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Email != nil {
		set["email"] = *fields.Email
	}
	if fields.Phone != nil {
		set["phone"] = *fields.Phone
	}
	if fields.Type != nil {
		set["type"] = string(*fields.Type)
	}
	return set
}
