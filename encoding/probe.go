package encoding

import (
	ssz "github.com/ferranbt/fastssz"
	"golang.org/x/xerrors"
)

/*
ProbeSSZ finds the variant an untagged SSZ payload was encoded with.

Variants are attempted in the order given, which Untagged defines as newest first.
The first variant whose structural decode succeeds is returned with its receiver
filled. Variable-size fields are located through offsets, so bytes of one schema
rarely line up with another schema's fixed part, but nothing guarantees it: when a
payload decodes under more than one variant, the first attempted wins.

If every attempt fails, the error of the last attempt is returned unchanged. Callers
rely on getting the oldest schema's specific error rather than a generic one.

Each attempt reads the same slice and shares no state with the others.
*/
func ProbeSSZ(data []byte, variants []Variant) (Variant, error) {
	if len(variants) == 0 {
		return Variant{}, xerrors.New("no variants to probe")
	}

	var err error
	for _, variant := range variants {
		if err = unmarshalVariant(variant, data); err == nil {
			return variant, nil
		}
	}

	return Variant{}, err
}

// Runs a single structural decode, catching panics to return as errors.
func unmarshalVariant(variant Variant, data []byte) (err error) {
	defer func() {
		recovered := recover()
		if recovered != nil {
			err = xerrors.Errorf("panic during %v decode: %v", variant.Name, recovered)
		}
	}()

	unmarshaler, ok := variant.Receiver.(ssz.Unmarshaler)
	if !ok {
		return xerrors.Errorf("variant %v cannot be decoded from ssz", variant.Name)
	}

	return unmarshaler.UnmarshalSSZ(data)
}
