package relaytypes

import (
	"github.com/ethereum/go-ethereum/common"
	ssz "github.com/ferranbt/fastssz"
	"github.com/illuscio-dev/relayapi-go/encoding"
	"golang.org/x/xerrors"
)

// Version names a schema generation of the execution payload.
type Version int

const (
	VersionUnknown Version = iota
	VersionBellatrix
	VersionCapella
	VersionDeneb
	VersionElectra
)

func (version Version) String() string {
	switch version {
	case VersionBellatrix:
		return "bellatrix"
	case VersionCapella:
		return "capella"
	case VersionDeneb:
		return "deneb"
	case VersionElectra:
		return "electra"
	default:
		return "unknown"
	}
}

// ErrNoVariant is returned when a versioned value has no populated generation.
var ErrNoVariant = xerrors.New("versioned value has no populated variant")

/*
VersionedExecutionPayload holds exactly one execution payload generation, named by
Version. It has no discriminant on the wire: JSON and SSZ decoding discover the
generation, and encoding writes the populated generation as-is.
*/
type VersionedExecutionPayload struct {
	Version   Version
	Bellatrix *ExecutionPayloadBellatrix
	Capella   *ExecutionPayloadCapella
	Deneb     *ExecutionPayloadDeneb
	Electra   *ExecutionPayloadElectra
}

// Variants lists fresh receivers from the newest generation to the oldest.
func (payload *VersionedExecutionPayload) Variants() []encoding.Variant {
	return []encoding.Variant{
		{Name: VersionElectra.String(), Receiver: &ExecutionPayloadElectra{}},
		{Name: VersionDeneb.String(), Receiver: &ExecutionPayloadDeneb{}},
		{Name: VersionCapella.String(), Receiver: &ExecutionPayloadCapella{}},
		{Name: VersionBellatrix.String(), Receiver: &ExecutionPayloadBellatrix{}},
	}
}

func (payload *VersionedExecutionPayload) SetVariant(variant encoding.Variant) error {
	switch receiver := variant.Receiver.(type) {
	case *ExecutionPayloadBellatrix:
		*payload = VersionedExecutionPayload{Version: VersionBellatrix, Bellatrix: receiver}
	case *ExecutionPayloadCapella:
		*payload = VersionedExecutionPayload{Version: VersionCapella, Capella: receiver}
	case *ExecutionPayloadDeneb:
		*payload = VersionedExecutionPayload{Version: VersionDeneb, Deneb: receiver}
	case *ExecutionPayloadElectra:
		*payload = VersionedExecutionPayload{Version: VersionElectra, Electra: receiver}
	default:
		return xerrors.Errorf("unsupported execution payload variant %T", receiver)
	}
	return nil
}

func (payload *VersionedExecutionPayload) Variant() interface{} {
	if payload == nil {
		return nil
	}
	variant, err := payload.variantSSZ()
	if err != nil {
		return nil
	}
	return variant
}

func (payload *VersionedExecutionPayload) variantSSZ() (payloadSSZ, error) {
	switch payload.Version {
	case VersionBellatrix:
		if payload.Bellatrix != nil {
			return payload.Bellatrix, nil
		}
	case VersionCapella:
		if payload.Capella != nil {
			return payload.Capella, nil
		}
	case VersionDeneb:
		if payload.Deneb != nil {
			return payload.Deneb, nil
		}
	case VersionElectra:
		if payload.Electra != nil {
			return payload.Electra, nil
		}
	}
	return nil, ErrNoVariant
}

// Header returns the fields every generation shares.
func (payload *VersionedExecutionPayload) Header() (*ExecutionPayloadBellatrix, error) {
	switch payload.Version {
	case VersionBellatrix:
		if payload.Bellatrix != nil {
			return payload.Bellatrix, nil
		}
	case VersionCapella:
		if payload.Capella != nil {
			return &payload.Capella.ExecutionPayloadBellatrix, nil
		}
	case VersionDeneb:
		if payload.Deneb != nil {
			return &payload.Deneb.ExecutionPayloadBellatrix, nil
		}
	case VersionElectra:
		if payload.Electra != nil {
			return &payload.Electra.ExecutionPayloadBellatrix, nil
		}
	}
	return nil, ErrNoVariant
}

func (payload *VersionedExecutionPayload) SizeSSZ() int {
	variant, err := payload.variantSSZ()
	if err != nil {
		return 0
	}
	return variant.SizeSSZ()
}

func (payload *VersionedExecutionPayload) MarshalSSZ() ([]byte, error) {
	return payload.MarshalSSZTo(make([]byte, 0, payload.SizeSSZ()))
}

func (payload *VersionedExecutionPayload) MarshalSSZTo(dst []byte) ([]byte, error) {
	variant, err := payload.variantSSZ()
	if err != nil {
		return nil, err
	}
	return variant.MarshalSSZTo(dst)
}

func (payload *VersionedExecutionPayload) UnmarshalSSZ(buf []byte) error {
	variant, err := encoding.ProbeSSZ(buf, payload.Variants())
	if err != nil {
		return err
	}
	return payload.SetVariant(variant)
}

/*
VersionedSubmitBlockRequest is a builder block submission of any payload generation.

Builders do not say which generation they are submitting. Decoding tries the newest
generation first, so should a body ever satisfy two generations the newer one is kept.
*/
type VersionedSubmitBlockRequest struct {
	Version   Version
	Bellatrix *SubmitBlockRequestBellatrix
	Capella   *SubmitBlockRequestCapella
	Deneb     *SubmitBlockRequestDeneb
	Electra   *SubmitBlockRequestElectra
}

// Variants lists fresh receivers from the newest generation to the oldest.
func (request *VersionedSubmitBlockRequest) Variants() []encoding.Variant {
	return []encoding.Variant{
		{Name: VersionElectra.String(), Receiver: &SubmitBlockRequestElectra{}},
		{Name: VersionDeneb.String(), Receiver: &SubmitBlockRequestDeneb{}},
		{Name: VersionCapella.String(), Receiver: &SubmitBlockRequestCapella{}},
		{Name: VersionBellatrix.String(), Receiver: &SubmitBlockRequestBellatrix{}},
	}
}

func (request *VersionedSubmitBlockRequest) SetVariant(variant encoding.Variant) error {
	switch receiver := variant.Receiver.(type) {
	case *SubmitBlockRequestBellatrix:
		*request = VersionedSubmitBlockRequest{Version: VersionBellatrix, Bellatrix: receiver}
	case *SubmitBlockRequestCapella:
		*request = VersionedSubmitBlockRequest{Version: VersionCapella, Capella: receiver}
	case *SubmitBlockRequestDeneb:
		*request = VersionedSubmitBlockRequest{Version: VersionDeneb, Deneb: receiver}
	case *SubmitBlockRequestElectra:
		*request = VersionedSubmitBlockRequest{Version: VersionElectra, Electra: receiver}
	default:
		return xerrors.Errorf("unsupported submission variant %T", receiver)
	}
	return nil
}

func (request *VersionedSubmitBlockRequest) Variant() interface{} {
	if request == nil {
		return nil
	}
	variant, err := request.variantSSZ()
	if err != nil {
		return nil
	}
	return variant
}

func (request *VersionedSubmitBlockRequest) variantSSZ() (ssz.Marshaler, error) {
	switch request.Version {
	case VersionBellatrix:
		if request.Bellatrix != nil {
			return request.Bellatrix, nil
		}
	case VersionCapella:
		if request.Capella != nil {
			return request.Capella, nil
		}
	case VersionDeneb:
		if request.Deneb != nil {
			return request.Deneb, nil
		}
	case VersionElectra:
		if request.Electra != nil {
			return request.Electra, nil
		}
	}
	return nil, ErrNoVariant
}

// BidTrace returns the submission's message.
func (request *VersionedSubmitBlockRequest) BidTrace() (*BidTraceV1, error) {
	switch request.Version {
	case VersionBellatrix:
		if request.Bellatrix != nil {
			return &request.Bellatrix.Message, nil
		}
	case VersionCapella:
		if request.Capella != nil {
			return &request.Capella.Message, nil
		}
	case VersionDeneb:
		if request.Deneb != nil {
			return &request.Deneb.Message, nil
		}
	case VersionElectra:
		if request.Electra != nil {
			return &request.Electra.Message, nil
		}
	}
	return nil, ErrNoVariant
}

// ExecutionPayload returns the submitted payload, sharing memory with the request.
func (request *VersionedSubmitBlockRequest) ExecutionPayload() (
	*VersionedExecutionPayload, error,
) {
	switch request.Version {
	case VersionBellatrix:
		if request.Bellatrix != nil {
			return &VersionedExecutionPayload{
				Version:   VersionBellatrix,
				Bellatrix: &request.Bellatrix.ExecutionPayload,
			}, nil
		}
	case VersionCapella:
		if request.Capella != nil {
			return &VersionedExecutionPayload{
				Version: VersionCapella,
				Capella: &request.Capella.ExecutionPayload,
			}, nil
		}
	case VersionDeneb:
		if request.Deneb != nil {
			return &VersionedExecutionPayload{
				Version: VersionDeneb,
				Deneb:   &request.Deneb.ExecutionPayload,
			}, nil
		}
	case VersionElectra:
		if request.Electra != nil {
			return &VersionedExecutionPayload{
				Version: VersionElectra,
				Electra: &request.Electra.ExecutionPayload,
			}, nil
		}
	}
	return nil, ErrNoVariant
}

// BlockHash returns the hash of the submitted block as claimed by the message.
func (request *VersionedSubmitBlockRequest) BlockHash() (common.Hash, error) {
	trace, err := request.BidTrace()
	if err != nil {
		return common.Hash{}, err
	}
	return trace.BlockHash, nil
}

func (request *VersionedSubmitBlockRequest) SizeSSZ() int {
	variant, err := request.variantSSZ()
	if err != nil {
		return 0
	}
	return variant.SizeSSZ()
}

func (request *VersionedSubmitBlockRequest) MarshalSSZ() ([]byte, error) {
	return request.MarshalSSZTo(make([]byte, 0, request.SizeSSZ()))
}

func (request *VersionedSubmitBlockRequest) MarshalSSZTo(dst []byte) ([]byte, error) {
	variant, err := request.variantSSZ()
	if err != nil {
		return nil, err
	}
	return variant.MarshalSSZTo(dst)
}

// UnmarshalSSZ probes the generations newest first. When none decodes, the error of
// the Bellatrix attempt is returned as-is.
func (request *VersionedSubmitBlockRequest) UnmarshalSSZ(buf []byte) error {
	variant, err := encoding.ProbeSSZ(buf, request.Variants())
	if err != nil {
		return err
	}
	return request.SetVariant(variant)
}
