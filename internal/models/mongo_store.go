package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Each path maps onto the Mongo collection named by its last collection
// segment. _id holds the full document path and _parent the owning document
// path, "" for top level documents.
const (
	idField     = "_id"
	parentField = "_parent"
)

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	client := mdb.mongodbClient.Database(dbName).Collection(colName)
	return client, nil
}

func (mdb *MongodbRepo) Get(ctx context.Context, docPath string) (*Document, error) {
	colName, _, id, err := splitDocPath(docPath)
	if err != nil {
		return nil, err
	}
	col, err := mdb.GetCollection(ctx, mdb.dbName, colName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var raw bson.M
	key := strings.Trim(docPath, "/")
	if err := col.FindOne(ctx, bson.M{idField: key}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding document %s: %w", key, err)
	}
	return &Document{ID: id, Path: key, Fields: fieldsFromBSON(raw)}, nil
}

func (mdb *MongodbRepo) Set(ctx context.Context, docPath string, fields map[string]interface{}, merge bool) error {
	colName, parent, _, err := splitDocPath(docPath)
	if err != nil {
		return err
	}
	col, err := mdb.GetCollection(ctx, mdb.dbName, colName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}
	key := strings.Trim(docPath, "/")
	filter := bson.M{idField: key}

	if merge {
		set := bson.M{parentField: parent}
		for k, v := range fields {
			set[k] = v
		}
		_, err = col.UpdateOne(ctx, filter, bson.M{"$set": set}, options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("error merging document %s: %w", key, err)
		}
		return nil
	}

	doc := bson.M{idField: key, parentField: parent}
	for k, v := range fields {
		doc[k] = v
	}
	if _, err := col.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("error writing document %s: %w", key, err)
	}
	return nil
}

func (mdb *MongodbRepo) Delete(ctx context.Context, docPath string) error {
	colName, _, _, err := splitDocPath(docPath)
	if err != nil {
		return err
	}
	col, err := mdb.GetCollection(ctx, mdb.dbName, colName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}
	key := strings.Trim(docPath, "/")
	if _, err := col.DeleteOne(ctx, bson.M{idField: key}); err != nil {
		return fmt.Errorf("error deleting document %s: %w", key, err)
	}
	return nil
}

// List returns the direct children of a collection ordered by _id. Documents
// written by other systems into a top level collection carry no _parent field
// and are matched as well.
func (mdb *MongodbRepo) List(ctx context.Context, collectionPath string) ([]*Document, error) {
	colName, parent, err := splitCollectionPath(collectionPath)
	if err != nil {
		return nil, err
	}
	col, err := mdb.GetCollection(ctx, mdb.dbName, colName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{parentField: parent}
	if parent == "" {
		filter = bson.M{"$or": bson.A{
			bson.M{parentField: ""},
			bson.M{parentField: bson.M{"$exists": false}},
		}}
	}

	cursor, err := col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: idField, Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", collectionPath, err)
	}
	defer cursor.Close(ctx)

	var docs []*Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("error decoding document: %w", err)
		}
		id, key := documentKey(raw[idField], strings.Trim(collectionPath, "/"))
		docs = append(docs, &Document{ID: id, Path: key, Fields: fieldsFromBSON(raw)})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return docs, nil
}

func (mdb *MongodbRepo) NewID(collectionPath string) string {
	return uuid.New().String()
}

func documentKey(rawID interface{}, collectionPath string) (id, path string) {
	switch v := rawID.(type) {
	case string:
		return v[strings.LastIndex(v, "/")+1:], v
	case primitive.ObjectID:
		return v.Hex(), collectionPath + "/" + v.Hex()
	default:
		s := fmt.Sprint(v)
		return s, collectionPath + "/" + s
	}
}

func fieldsFromBSON(raw bson.M) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if k == idField || k == parentField {
			continue
		}
		out[k] = normalizeBSON(v)
	}
	return out
}

func normalizeBSON(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case bson.M:
		return fieldsFromBSON(t)
	case primitive.A:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = normalizeBSON(t[i])
		}
		return out
	default:
		return v
	}
}
