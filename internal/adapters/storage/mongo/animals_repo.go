package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/queries"
)

var (
	ErrNotFound = errors.New("not found")
)

type AnimalsRepo struct {
	coll *mongo.Collection
}

// NewAnimalsRepo usa db.collection del cliente (p.ej. AAC.animals).
func NewAnimalsRepo(client *mongo.Client, database, collection string) *AnimalsRepo {
	return &AnimalsRepo{coll: client.Database(database).Collection(collection)}
}

// buildFilter traduce el predicado a un filtro de Mongo.
// Sin condiciones devuelve {} (todos los documentos).
func buildFilter(p queries.Predicate) bson.D {
	f := bson.D{}
	if p.AnimalType != "" {
		f = append(f, bson.E{Key: animals.ColAnimalType, Value: p.AnimalType})
	}
	if pats := p.BreedPatterns(); len(pats) > 0 {
		ors := make(bson.A, 0, len(pats))
		for _, pat := range pats {
			ors = append(ors, bson.D{{Key: animals.ColBreed, Value: bson.D{{Key: "$regex", Value: pat}}}})
		}
		f = append(f, bson.E{Key: "$or", Value: ors})
	}
	if p.Sex != "" {
		f = append(f, bson.E{Key: animals.ColSexUponOutcome, Value: string(p.Sex)})
	}
	if p.Age != nil {
		f = append(f, bson.E{Key: animals.ColAgeWeeks, Value: bson.D{
			{Key: "$gte", Value: p.Age.Min},
			{Key: "$lt", Value: p.Age.Max},
		}})
	}
	return f
}

func (r *AnimalsRepo) Read(ctx context.Context, p queries.Predicate) ([]animals.Record, error) {
	// el _id del store no se expone
	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}})

	cur, err := r.coll.Find(ctx, buildFilter(p), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]animals.Record, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnimalsRepo) Create(ctx context.Context, records []animals.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	docs := make([]any, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.AnimalID) == "" {
			return 0, errors.New("animal_id required")
		}
		docs = append(docs, rec)
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// byAnimalID filtra por animal_id; vacío => nil (no se toca el store).
func byAnimalID(animalID string) bson.D {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil
	}
	return bson.D{{Key: animals.ColAnimalID, Value: animalID}}
}

// Update reemplaza el primer documento con ese animal_id.
func (r *AnimalsRepo) Update(ctx context.Context, animalID string, rec animals.Record) error {
	f := byAnimalID(animalID)
	if f == nil {
		return ErrNotFound
	}
	res, err := r.coll.ReplaceOne(ctx, f, rec)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete borra todos los outcomes de ese animal_id.
func (r *AnimalsRepo) Delete(ctx context.Context, animalID string) error {
	f := byAnimalID(animalID)
	if f == nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteMany(ctx, f)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
