package types

import (
	"encoding/binary"
	"encoding/json"
)

// SortJSON takes any JSON and returns it sorted by keys. Also, all white-spaces
// are removed.
// This method can be used to canonicalize JSON to be returned by GetSignBytes,
// e.g. for the ledger integration.
// If the passed JSON isn't valid it will return an error.
func SortJSON(toSortJSON []byte) ([]byte, error) {
	var c interface{}
	err := json.Unmarshal(toSortJSON, &c)
	if err != nil {
		return nil, err
	}
	js, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return js, nil
}

// MustSortJSON is like SortJSON but panic if an error occurs, e.g., if
// the passed JSON isn't valid.
func MustSortJSON(toSortJSON []byte) []byte {
	js, err := SortJSON(toSortJSON)
	if err != nil {
		panic(err)
	}
	return js
}

// Int64ToBigEndian encodes a counter so that keys sort in numeric order.
func Int64ToBigEndian(i int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(i))
	return b
}

// BigEndianToInt64 is the inverse of Int64ToBigEndian.
func BigEndianToInt64(bz []byte) int64 {
	if len(bz) != 8 {
		panic("BigEndianToInt64 expects 8 bytes")
	}
	return int64(binary.BigEndian.Uint64(bz))
}
