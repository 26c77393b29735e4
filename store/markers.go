package store

// Field-update markers. Usable as values inside Put/Update/Batch fields;
// plain values overwrite, markers mutate in place. Inc is commutative and
// therefore safe under concurrent writers.

type IncValue struct {
	Amount int64
}

// Inc marks a numeric field for atomic increment (negative for decrement).
func Inc(amount int64) IncValue {
	return IncValue{Amount: amount}
}

type ArrayUnionValue struct {
	Value any
}

// ArrayUnion marks set-style append: the value is added unless already
// present.
func ArrayUnion(value any) ArrayUnionValue {
	return ArrayUnionValue{Value: value}
}

type ArrayRemoveValue struct {
	Value any
}

// ArrayRemove marks set-style removal of every matching element.
func ArrayRemove(value any) ArrayRemoveValue {
	return ArrayRemoveValue{Value: value}
}

type ServerTimestampValue struct{}

// ServerTimestamp resolves to the store's clock, in unix milliseconds, at
// write time.
func ServerTimestamp() ServerTimestampValue {
	return ServerTimestampValue{}
}
