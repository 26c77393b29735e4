package store

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/openbloom/bloom/apperr"
)

// Encode converts a bson-tagged model into a Document via a bson round
// trip, so repositories do not hand-map every field.
func Encode(model any) (Document, error) {
	raw, err := bson.Marshal(model)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "failed encoding model", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "failed encoding model", err)
	}
	return Document(doc), nil
}

// Decode fills a bson-tagged model from a Document.
func Decode(doc Document, model any) error {
	raw, err := bson.Marshal(bson.M(doc))
	if err != nil {
		return apperr.Wrap(apperr.KindPersistence, "failed decoding document", err)
	}
	if err := bson.Unmarshal(raw, model); err != nil {
		return apperr.Wrap(apperr.KindPersistence, "failed decoding document", err)
	}
	return nil
}
