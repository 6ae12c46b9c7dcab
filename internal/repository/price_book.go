// Package repository provides data access for price book versions.
package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agroplan/plan-service/internal/domain/model"
)

// PriceBookEntryDocument is one budgeted unit price as stored. UnitPrice is
// kept as a decimal string so no float rounding ever touches stored money.
type PriceBookEntryDocument struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Crop      string `bson:"crop,omitempty" json:"crop,omitempty"`
	Pass      string `bson:"pass,omitempty" json:"pass,omitempty"`
	Unit      string `bson:"unit" json:"unit"`
	UnitPrice string `bson:"unit_price" json:"unit_price"`
}

// PriceBookVersion represents one stored price book version document.
// Exactly one version per season is active at a time; publishing a new
// version deactivates the previous one but keeps it for history.
type PriceBookVersion struct {
	ID        primitive.ObjectID       `bson:"_id,omitempty" json:"id"`
	Season    string                   `bson:"season,omitempty" json:"season,omitempty"`
	Entries   []PriceBookEntryDocument `bson:"entries" json:"entries"`
	Active    bool                     `bson:"active" json:"active"`
	Version   int                      `bson:"version" json:"version"`
	CreatedAt time.Time                `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time                `bson:"updated_at" json:"updated_at"`
	CreatedBy string                   `bson:"created_by,omitempty" json:"created_by,omitempty"`
	Notes     string                   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// PriceBook converts the stored entries into the engine's price book shape.
// Entries whose unit or price no longer parse are skipped; they were
// validated on write, so a skip here means the document was edited by hand.
func (v *PriceBookVersion) PriceBook() model.PriceBook {
	book := make(model.PriceBook, 0, len(v.Entries))
	for _, e := range v.Entries {
		unit, err := model.ParseUnit(e.Unit)
		if err != nil {
			continue
		}
		price, err := decimal.NewFromString(e.UnitPrice)
		if err != nil {
			continue
		}
		book = append(book, model.PriceBookEntry{
			ProductID: e.ProductID,
			Crop:      e.Crop,
			Pass:      e.Pass,
			Unit:      unit,
			UnitPrice: price,
		})
	}
	return book
}

// EntryDocuments converts engine price book entries into their stored form.
func EntryDocuments(book model.PriceBook) []PriceBookEntryDocument {
	docs := make([]PriceBookEntryDocument, 0, len(book))
	for _, e := range book {
		docs = append(docs, PriceBookEntryDocument{
			ProductID: e.ProductID,
			Crop:      e.Crop,
			Pass:      e.Pass,
			Unit:      string(e.Unit),
			UnitPrice: e.UnitPrice.String(),
		})
	}
	return docs
}

// PriceBookRepository provides methods for price book version operations.
type PriceBookRepository struct {
	collection *mongo.Collection
}

// NewPriceBookRepository creates a new price book repository.
func NewPriceBookRepository(db *MongoDB) *PriceBookRepository {
	return &PriceBookRepository{
		collection: db.PriceBooks,
	}
}

// GetActive returns the active price book version for a season. An empty
// season matches the unscoped default book. Returns (nil, nil) when no
// active version exists.
func (r *PriceBookRepository) GetActive(ctx context.Context, season string) (*PriceBookVersion, error) {
	var version PriceBookVersion
	err := r.collection.FindOne(ctx, bson.M{"active": true, "season": season}).Decode(&version)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// Create publishes a new active price book version for a season,
// deactivating any currently active version of that season.
func (r *PriceBookRepository) Create(ctx context.Context, season string, entries []PriceBookEntryDocument, createdBy, notes string) (*PriceBookVersion, error) {
	var previous PriceBookVersion
	nextVersion := 1
	err := r.collection.FindOne(
		ctx,
		bson.M{"season": season},
		options.FindOne().SetSort(bson.M{"version": -1}),
	).Decode(&previous)
	if err == nil {
		nextVersion = previous.Version + 1
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{"active": true, "season": season},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return nil, err
	}

	version := PriceBookVersion{
		ID:        primitive.NewObjectID(),
		Season:    season,
		Entries:   entries,
		Active:    true,
		Version:   nextVersion,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		CreatedBy: createdBy,
		Notes:     notes,
	}

	_, err = r.collection.InsertOne(ctx, version)
	if err != nil {
		return nil, err
	}

	return &version, nil
}

// History returns price book versions for a season, newest first.
func (r *PriceBookRepository) History(ctx context.Context, season string, limit int) ([]PriceBookVersion, error) {
	opts := options.Find().SetSort(bson.M{"version": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"season": season}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var versions []PriceBookVersion
	if err := cursor.All(ctx, &versions); err != nil {
		return nil, err
	}

	return versions, nil
}
