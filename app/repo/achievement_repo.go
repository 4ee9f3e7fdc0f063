package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fiber/wof/app/model"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AchievementRepository interface {
	Find(ctx context.Context, filter model.AchievementFilter) ([]model.Achievement, error)
	FindByID(ctx context.Context, id string) (*model.Achievement, error)
	Create(ctx context.Context, a *model.Achievement) (string, error)
	Patch(ctx context.Context, id string, fields model.Fields) (int64, error)
	BatchPatch(ctx context.Context, items []model.PatchItem) (model.BatchResult, error)
	CountTop10(ctx context.Context) (int64, error)
}

type AchievementRepo struct {
	coll *mongo.Collection
}

var _ AchievementRepository = (*AchievementRepo)(nil)

func NewAchievementRepo(mongoDB *mongo.Database, collection string) *AchievementRepo {
	return &AchievementRepo{coll: mongoDB.Collection(collection)}
}

// ValidatePatch rejects a single patch with no id or nothing to set.
func ValidatePatch(id string, fields model.Fields) error {
	if strings.TrimSpace(id) == "" {
		return model.NewValidationError("_id", "missing required field: _id")
	}
	if len(fields) == 0 {
		return model.NewValidationError("", "no update fields provided")
	}
	return nil
}

// ValidateBatch rejects the whole batch if any item is invalid.
func ValidateBatch(items []model.PatchItem) error {
	if len(items) == 0 {
		return model.NewValidationError("", "empty array provided")
	}
	for i, item := range items {
		if err := ValidatePatch(item.ID, item.Fields); err != nil {
			return model.NewValidationError("", fmt.Sprintf("invalid item at index %d: %s", i, err.Error()))
		}
	}
	return nil
}

func ObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, model.NewValidationError("_id", "invalid id: "+id)
	}
	return oid, nil
}

// BuildFilter translates the store filter into a Mongo query.
func BuildFilter(f model.AchievementFilter) (bson.M, error) {
	q := bson.M{}
	if f.Category != "" {
		q["achievementCategory"] = f.Category
	}
	if f.ProfessorEmail != "" {
		q["professorEmail"] = f.ProfessorEmail
	}
	if f.ApprovedFrom != nil {
		q["approved"] = bson.M{"$gte": f.ApprovedFrom.UTC()}
	}
	if f.Archived != nil {
		q["archived"] = *f.Archived
	}
	if f.ID != "" {
		oid, err := ObjectID(f.ID)
		if err != nil {
			return nil, err
		}
		q["_id"] = oid
	}
	return q, nil
}

// BuildProjection returns nil when every field is wanted.
func BuildProjection(whitelist, blacklist []string) bson.M {
	if len(whitelist) == 0 && len(blacklist) == 0 {
		return nil
	}
	p := bson.M{}
	if len(whitelist) > 0 {
		for field := range model.ResolveProjection(whitelist, blacklist) {
			p[field] = 1
		}
		return p
	}
	for _, field := range blacklist {
		field = strings.TrimSpace(field)
		if field != "" && field != "_id" {
			p[field] = 0
		}
	}
	if len(p) == 0 {
		return nil
	}
	return p
}

// BuildUpdate wraps normalized fields in a $set document.
func BuildUpdate(fields model.Fields) bson.M {
	set := bson.M{}
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		set[k] = v
	}
	return bson.M{"$set": set}
}

func (r *AchievementRepo) Find(ctx context.Context, filter model.AchievementFilter) ([]model.Achievement, error) {
	q, err := BuildFilter(filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if p := BuildProjection(filter.Whitelist, filter.Blacklist); p != nil {
		opts.SetProjection(p)
	}

	cursor, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, storageErr("find", err)
	}
	defer cursor.Close(ctx)

	results := []model.Achievement{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, storageErr("decode", err)
	}
	return results, nil
}

func (r *AchievementRepo) FindByID(ctx context.Context, id string) (*model.Achievement, error) {
	oid, err := ObjectID(id)
	if err != nil {
		return nil, err
	}

	var a model.Achievement
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find one", err)
	}
	return &a, nil
}

func (r *AchievementRepo) Create(ctx context.Context, a *model.Achievement) (string, error) {
	if a.SubmissionDate.IsZero() {
		a.SubmissionDate = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return "", storageErr("insert", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", storageErr("insert", errors.New("unexpected inserted id type"))
	}
	a.ID = oid
	return oid.Hex(), nil
}

func (r *AchievementRepo) Patch(ctx context.Context, id string, fields model.Fields) (int64, error) {
	if err := ValidatePatch(id, fields); err != nil {
		return 0, err
	}
	oid, err := ObjectID(id)
	if err != nil {
		return 0, err
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, BuildUpdate(fields))
	if err != nil {
		return 0, storageErr("update", err)
	}
	if res.MatchedCount == 0 {
		return 0, model.ErrNotFound
	}
	return res.ModifiedCount, nil
}

// BatchPatch runs one ordered bulk write. Writes before a failing item stay committed.
func (r *AchievementRepo) BatchPatch(ctx context.Context, items []model.PatchItem) (model.BatchResult, error) {
	if err := ValidateBatch(items); err != nil {
		return model.BatchResult{}, err
	}

	writes := make([]mongo.WriteModel, 0, len(items))
	for _, item := range items {
		oid, err := ObjectID(item.ID)
		if err != nil {
			return model.BatchResult{}, err
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": oid}).
			SetUpdate(BuildUpdate(item.Fields)))
	}

	res, err := r.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	var out model.BatchResult
	if res != nil {
		out = model.BatchResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
	}
	if err != nil {
		return out, storageErr("bulk write", err)
	}
	return out, nil
}

func (r *AchievementRepo) CountTop10(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"overAllTop10": true})
	if err != nil {
		return 0, storageErr("count", err)
	}
	return n, nil
}

func storageErr(op string, err error) error {
	return &model.StorageError{Op: op, Err: errors.Wrap(err, "achievers")}
}
