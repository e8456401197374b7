package relaytypes

import (
	"golang.org/x/xerrors"
)

// message, execution_payload offset, signature
const submitBlockRequestFixedSize = bidTraceV1Size + offsetLength + SignatureLength

// payloadSSZ is satisfied by every execution payload generation.
type payloadSSZ interface {
	SizeSSZ() int
	MarshalSSZTo(dst []byte) ([]byte, error)
	UnmarshalSSZ(buf []byte) error
}

// SubmitBlockRequestBellatrix is a block submission carrying a Bellatrix payload.
type SubmitBlockRequestBellatrix struct {
	Message          BidTraceV1                `json:"message"`
	ExecutionPayload ExecutionPayloadBellatrix `json:"execution_payload"`
	Signature        Signature                 `json:"signature"`
}

// SubmitBlockRequestCapella is a block submission carrying a Capella payload.
type SubmitBlockRequestCapella struct {
	Message          BidTraceV1              `json:"message"`
	ExecutionPayload ExecutionPayloadCapella `json:"execution_payload"`
	Signature        Signature               `json:"signature"`
}

// SubmitBlockRequestDeneb is a block submission carrying a Deneb payload.
type SubmitBlockRequestDeneb struct {
	Message          BidTraceV1            `json:"message"`
	ExecutionPayload ExecutionPayloadDeneb `json:"execution_payload"`
	Signature        Signature             `json:"signature"`
}

// SubmitBlockRequestElectra is a block submission carrying an Electra payload.
type SubmitBlockRequestElectra struct {
	Message          BidTraceV1              `json:"message"`
	ExecutionPayload ExecutionPayloadElectra `json:"execution_payload"`
	Signature        Signature               `json:"signature"`
}

func sizeSubmitBlockRequest(payload payloadSSZ) int {
	return submitBlockRequestFixedSize + payload.SizeSSZ()
}

func marshalSubmitBlockRequest(
	dst []byte, message *BidTraceV1, payload payloadSSZ, signature *Signature,
) ([]byte, error) {
	encodedPayload, err := payload.MarshalSSZTo(make([]byte, 0, payload.SizeSSZ()))
	if err != nil {
		return nil, xerrors.Errorf("execution_payload: %w", err)
	}
	encodedMessage, err := message.MarshalSSZ()
	if err != nil {
		return nil, xerrors.Errorf("message: %w", err)
	}

	writer := newSSZWriter(submitBlockRequestFixedSize)
	writer.putBytes(encodedMessage)
	writer.putDynamic(encodedPayload)
	writer.putBytes(signature[:])
	return writer.finish(dst)
}

func unmarshalSubmitBlockRequest(
	buf []byte, message *BidTraceV1, payload payloadSSZ, signature *Signature,
) error {
	reader, err := newSSZReader(buf, submitBlockRequestFixedSize, true)
	if err != nil {
		return err
	}

	if err := message.UnmarshalSSZ(reader.take(bidTraceV1Size)); err != nil {
		return xerrors.Errorf("message: %w", err)
	}
	reader.getOffset()
	reader.getBytes(signature[:])

	if err := reader.split(); err != nil {
		return err
	}
	if err := payload.UnmarshalSSZ(reader.section()); err != nil {
		return xerrors.Errorf("execution_payload: %w", err)
	}
	return nil
}

func (request *SubmitBlockRequestBellatrix) SizeSSZ() int {
	return sizeSubmitBlockRequest(&request.ExecutionPayload)
}

func (request *SubmitBlockRequestBellatrix) MarshalSSZ() ([]byte, error) {
	return request.MarshalSSZTo(make([]byte, 0, request.SizeSSZ()))
}

func (request *SubmitBlockRequestBellatrix) MarshalSSZTo(dst []byte) ([]byte, error) {
	return marshalSubmitBlockRequest(
		dst, &request.Message, &request.ExecutionPayload, &request.Signature,
	)
}

func (request *SubmitBlockRequestBellatrix) UnmarshalSSZ(buf []byte) error {
	return unmarshalSubmitBlockRequest(
		buf, &request.Message, &request.ExecutionPayload, &request.Signature,
	)
}

func (request *SubmitBlockRequestCapella) SizeSSZ() int {
	return sizeSubmitBlockRequest(&request.ExecutionPayload)
}

func (request *SubmitBlockRequestCapella) MarshalSSZ() ([]byte, error) {
	return request.MarshalSSZTo(make([]byte, 0, request.SizeSSZ()))
}

func (request *SubmitBlockRequestCapella) MarshalSSZTo(dst []byte) ([]byte, error) {
	return marshalSubmitBlockRequest(
		dst, &request.Message, &request.ExecutionPayload, &request.Signature,
	)
}

func (request *SubmitBlockRequestCapella) UnmarshalSSZ(buf []byte) error {
	return unmarshalSubmitBlockRequest(
		buf, &request.Message, &request.ExecutionPayload, &request.Signature,
	)
}

func (request *SubmitBlockRequestDeneb) SizeSSZ() int {
	return sizeSubmitBlockRequest(&request.ExecutionPayload)
}

func (request *SubmitBlockRequestDeneb) MarshalSSZ() ([]byte, error) {
	return request.MarshalSSZTo(make([]byte, 0, request.SizeSSZ()))
}

func (request *SubmitBlockRequestDeneb) MarshalSSZTo(dst []byte) ([]byte, error) {
	return marshalSubmitBlockRequest(
		dst, &request.Message, &request.ExecutionPayload, &request.Signature,
	)
}

func (request *SubmitBlockRequestDeneb) UnmarshalSSZ(buf []byte) error {
	return unmarshalSubmitBlockRequest(
		buf, &request.Message, &request.ExecutionPayload, &request.Signature,
	)
}

func (request *SubmitBlockRequestElectra) SizeSSZ() int {
	return sizeSubmitBlockRequest(&request.ExecutionPayload)
}

func (request *SubmitBlockRequestElectra) MarshalSSZ() ([]byte, error) {
	return request.MarshalSSZTo(make([]byte, 0, request.SizeSSZ()))
}

func (request *SubmitBlockRequestElectra) MarshalSSZTo(dst []byte) ([]byte, error) {
	return marshalSubmitBlockRequest(
		dst, &request.Message, &request.ExecutionPayload, &request.Signature,
	)
}

func (request *SubmitBlockRequestElectra) UnmarshalSSZ(buf []byte) error {
	return unmarshalSubmitBlockRequest(
		buf, &request.Message, &request.ExecutionPayload, &request.Signature,
	)
}
