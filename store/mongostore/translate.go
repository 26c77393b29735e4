package mongostore

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/openbloom/bloom/store"
)

// buildUpdate splits fields into mongo update operator buckets, mapping the
// store markers to $inc, $addToSet and $pull.
func buildUpdate(fields store.Document) bson.M {
	sets := bson.M{}
	incs := bson.M{}
	adds := bson.M{}
	pulls := bson.M{}

	for field, value := range fields {
		switch v := value.(type) {
		case store.IncValue:
			incs[field] = v.Amount
		case store.ArrayUnionValue:
			adds[field] = v.Value
		case store.ArrayRemoveValue:
			pulls[field] = v.Value
		case store.ServerTimestampValue:
			sets[field] = nowMillis()
		default:
			sets[field] = value
		}
	}

	update := bson.M{}
	if len(sets) > 0 {
		update["$set"] = sets
	}
	if len(incs) > 0 {
		update["$inc"] = incs
	}
	if len(adds) > 0 {
		update["$addToSet"] = adds
	}
	if len(pulls) > 0 {
		update["$pull"] = pulls
	}
	if len(update) == 0 {
		update["$set"] = bson.M{"_touched": nowMillis()}
	}
	return update
}

// resolveValues materializes markers for full-document writes, where no
// prior value exists to mutate.
func resolveValues(fields store.Document) bson.M {
	out := bson.M{}
	for field, value := range fields {
		switch v := value.(type) {
		case store.IncValue:
			out[field] = v.Amount
		case store.ArrayUnionValue:
			out[field] = bson.A{v.Value}
		case store.ArrayRemoveValue:
			out[field] = bson.A{}
		case store.ServerTimestampValue:
			out[field] = nowMillis()
		default:
			out[field] = value
		}
	}
	return out
}

// buildFilter translates the query's filters plus its cursor into one mongo
// filter document. The cursor becomes the lexicographic "strictly after"
// predicate over the order-by fields.
func buildFilter(q store.Query) bson.M {
	var clauses []bson.M
	for _, f := range q.Filters {
		clauses = append(clauses, filterClause(f))
	}
	if cursor := cursorClause(q); cursor != nil {
		clauses = append(clauses, cursor)
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

func filterClause(f store.Filter) bson.M {
	switch f.Op {
	case store.OpEq:
		return bson.M{f.Field: f.Value}
	case store.OpIn:
		return bson.M{f.Field: bson.M{"$in": f.Value}}
	case store.OpGt:
		return bson.M{f.Field: bson.M{"$gt": f.Value}}
	case store.OpGte:
		return bson.M{f.Field: bson.M{"$gte": f.Value}}
	case store.OpLt:
		return bson.M{f.Field: bson.M{"$lt": f.Value}}
	case store.OpLte:
		return bson.M{f.Field: bson.M{"$lte": f.Value}}
	}
	return bson.M{}
}

func cursorClause(q store.Query) bson.M {
	if len(q.StartAfter) == 0 || len(q.OrderBy) == 0 {
		return nil
	}
	n := len(q.StartAfter)
	if len(q.OrderBy) < n {
		n = len(q.OrderBy)
	}

	var branches []bson.M
	for i := 0; i < n; i++ {
		branch := bson.M{}
		for j := 0; j < i; j++ {
			branch[q.OrderBy[j].Field] = q.StartAfter[j]
		}
		op := "$gt"
		if q.OrderBy[i].Desc {
			op = "$lt"
		}
		branch[q.OrderBy[i].Field] = bson.M{op: q.StartAfter[i]}
		branches = append(branches, branch)
	}
	if len(branches) == 1 {
		return branches[0]
	}
	return bson.M{"$or": branches}
}
