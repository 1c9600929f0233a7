package ephemeral

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// record is the persisted form of the ephemeral key.
type record struct {
	ID       string `cbor:"1,keyasint"`
	Key      []byte `cbor:"2,keyasint"` // PKCS#8 DER
	NotAfter int64  `cbor:"3,keyasint"` // unix nanoseconds
}

var (
	recordEncMode cbor.EncMode
	recordDecMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	recordEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create key record CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	recordDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create key record CBOR decoder mode: %v", err))
	}
}

func encodeRecord(r record) ([]byte, error) {
	return recordEncMode.Marshal(r)
}

func decodeRecord(b []byte) (record, error) {
	var r record
	if err := recordDecMode.Unmarshal(b, &r); err != nil {
		return record{}, err
	}
	return r, nil
}
