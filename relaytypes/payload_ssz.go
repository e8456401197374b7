package relaytypes

const (
	withdrawalSize           = 44
	depositRequestSize       = 192
	withdrawalRequestSize    = 76
	consolidationRequestSize = 116

	bellatrixPayloadFixedSize = 508
	capellaPayloadFixedSize   = bellatrixPayloadFixedSize + offsetLength
	denebPayloadFixedSize     = capellaPayloadFixedSize + 16
	electraPayloadFixedSize   = denebPayloadFixedSize + 3*offsetLength
)

// Withdrawal

func (withdrawal *Withdrawal) SizeSSZ() int {
	return withdrawalSize
}

func (withdrawal *Withdrawal) MarshalSSZ() ([]byte, error) {
	return withdrawal.MarshalSSZTo(make([]byte, 0, withdrawalSize))
}

func (withdrawal *Withdrawal) MarshalSSZTo(dst []byte) ([]byte, error) {
	writer := newSSZWriter(withdrawalSize)
	writer.putUint64(uint64(withdrawal.Index))
	writer.putUint64(uint64(withdrawal.ValidatorIndex))
	writer.putBytes(withdrawal.Address[:])
	writer.putUint64(uint64(withdrawal.Amount))
	return writer.finish(dst)
}

func (withdrawal *Withdrawal) UnmarshalSSZ(buf []byte) error {
	reader, err := newSSZReader(buf, withdrawalSize, false)
	if err != nil {
		return err
	}
	withdrawal.Index = QuotedUint64(reader.getUint64())
	withdrawal.ValidatorIndex = QuotedUint64(reader.getUint64())
	reader.getBytes(withdrawal.Address[:])
	withdrawal.Amount = QuotedUint64(reader.getUint64())
	return reader.split()
}

// DepositRequest

func (request *DepositRequest) SizeSSZ() int {
	return depositRequestSize
}

func (request *DepositRequest) MarshalSSZ() ([]byte, error) {
	return request.MarshalSSZTo(make([]byte, 0, depositRequestSize))
}

func (request *DepositRequest) MarshalSSZTo(dst []byte) ([]byte, error) {
	writer := newSSZWriter(depositRequestSize)
	writer.putBytes(request.Pubkey[:])
	writer.putBytes(request.WithdrawalCredentials[:])
	writer.putUint64(uint64(request.Amount))
	writer.putBytes(request.Signature[:])
	writer.putUint64(uint64(request.Index))
	return writer.finish(dst)
}

func (request *DepositRequest) UnmarshalSSZ(buf []byte) error {
	reader, err := newSSZReader(buf, depositRequestSize, false)
	if err != nil {
		return err
	}
	reader.getBytes(request.Pubkey[:])
	reader.getBytes(request.WithdrawalCredentials[:])
	request.Amount = QuotedUint64(reader.getUint64())
	reader.getBytes(request.Signature[:])
	request.Index = QuotedUint64(reader.getUint64())
	return reader.split()
}

// WithdrawalRequest

func (request *WithdrawalRequest) SizeSSZ() int {
	return withdrawalRequestSize
}

func (request *WithdrawalRequest) MarshalSSZ() ([]byte, error) {
	return request.MarshalSSZTo(make([]byte, 0, withdrawalRequestSize))
}

func (request *WithdrawalRequest) MarshalSSZTo(dst []byte) ([]byte, error) {
	writer := newSSZWriter(withdrawalRequestSize)
	writer.putBytes(request.SourceAddress[:])
	writer.putBytes(request.ValidatorPubkey[:])
	writer.putUint64(uint64(request.Amount))
	return writer.finish(dst)
}

func (request *WithdrawalRequest) UnmarshalSSZ(buf []byte) error {
	reader, err := newSSZReader(buf, withdrawalRequestSize, false)
	if err != nil {
		return err
	}
	reader.getBytes(request.SourceAddress[:])
	reader.getBytes(request.ValidatorPubkey[:])
	request.Amount = QuotedUint64(reader.getUint64())
	return reader.split()
}

// ConsolidationRequest

func (request *ConsolidationRequest) SizeSSZ() int {
	return consolidationRequestSize
}

func (request *ConsolidationRequest) MarshalSSZ() ([]byte, error) {
	return request.MarshalSSZTo(make([]byte, 0, consolidationRequestSize))
}

func (request *ConsolidationRequest) MarshalSSZTo(dst []byte) ([]byte, error) {
	writer := newSSZWriter(consolidationRequestSize)
	writer.putBytes(request.SourceAddress[:])
	writer.putBytes(request.SourcePubkey[:])
	writer.putBytes(request.TargetPubkey[:])
	return writer.finish(dst)
}

func (request *ConsolidationRequest) UnmarshalSSZ(buf []byte) error {
	reader, err := newSSZReader(buf, consolidationRequestSize, false)
	if err != nil {
		return err
	}
	reader.getBytes(request.SourceAddress[:])
	reader.getBytes(request.SourcePubkey[:])
	reader.getBytes(request.TargetPubkey[:])
	return reader.split()
}

// ExecutionPayloadBellatrix

func (payload *ExecutionPayloadBellatrix) writeFields(writer *sszWriter) error {
	extraData, err := marshalByteList(payload.ExtraData, maxExtraDataBytes, "extra_data")
	if err != nil {
		return err
	}
	transactions, err := marshalByteLists(
		payload.Transactions,
		maxTransactionsPerPayload,
		maxBytesPerTransaction,
		"transactions",
	)
	if err != nil {
		return err
	}

	writer.putBytes(payload.ParentHash[:])
	writer.putBytes(payload.FeeRecipient[:])
	writer.putBytes(payload.StateRoot[:])
	writer.putBytes(payload.ReceiptsRoot[:])
	writer.putBytes(payload.LogsBloom[:])
	writer.putBytes(payload.PrevRandao[:])
	writer.putUint64(uint64(payload.BlockNumber))
	writer.putUint64(uint64(payload.GasLimit))
	writer.putUint64(uint64(payload.GasUsed))
	writer.putUint64(uint64(payload.Timestamp))
	writer.putDynamic(extraData)
	writer.putUint256(&payload.BaseFeePerGas)
	writer.putBytes(payload.BlockHash[:])
	writer.putDynamic(transactions)
	return nil
}

func (payload *ExecutionPayloadBellatrix) readFixed(reader *sszReader) {
	reader.getBytes(payload.ParentHash[:])
	reader.getBytes(payload.FeeRecipient[:])
	reader.getBytes(payload.StateRoot[:])
	reader.getBytes(payload.ReceiptsRoot[:])
	reader.getBytes(payload.LogsBloom[:])
	reader.getBytes(payload.PrevRandao[:])
	payload.BlockNumber = QuotedUint64(reader.getUint64())
	payload.GasLimit = QuotedUint64(reader.getUint64())
	payload.GasUsed = QuotedUint64(reader.getUint64())
	payload.Timestamp = QuotedUint64(reader.getUint64())
	reader.getOffset()
	reader.getUint256(&payload.BaseFeePerGas)
	reader.getBytes(payload.BlockHash[:])
	reader.getOffset()
}

func (payload *ExecutionPayloadBellatrix) readDynamic(reader *sszReader) (err error) {
	payload.ExtraData, err = unmarshalByteList(
		reader.section(), maxExtraDataBytes, "extra_data",
	)
	if err != nil {
		return err
	}
	payload.Transactions, err = unmarshalByteLists(
		reader.section(),
		maxTransactionsPerPayload,
		maxBytesPerTransaction,
		"transactions",
	)
	return err
}

func (payload *ExecutionPayloadBellatrix) dynamicSize() int {
	return len(payload.ExtraData) + byteListsSize(payload.Transactions)
}

func (payload *ExecutionPayloadBellatrix) SizeSSZ() int {
	return bellatrixPayloadFixedSize + payload.dynamicSize()
}

func (payload *ExecutionPayloadBellatrix) MarshalSSZ() ([]byte, error) {
	return payload.MarshalSSZTo(make([]byte, 0, payload.SizeSSZ()))
}

func (payload *ExecutionPayloadBellatrix) MarshalSSZTo(dst []byte) ([]byte, error) {
	writer := newSSZWriter(bellatrixPayloadFixedSize)
	if err := payload.writeFields(writer); err != nil {
		return nil, err
	}
	return writer.finish(dst)
}

func (payload *ExecutionPayloadBellatrix) UnmarshalSSZ(buf []byte) error {
	reader, err := newSSZReader(buf, bellatrixPayloadFixedSize, true)
	if err != nil {
		return err
	}
	payload.readFixed(reader)
	if err := reader.split(); err != nil {
		return err
	}
	return payload.readDynamic(reader)
}

// ExecutionPayloadCapella

func (payload *ExecutionPayloadCapella) writeFields(writer *sszWriter) error {
	withdrawals, err := marshalFixedList(
		nil,
		payload.Withdrawals,
		maxWithdrawalsPerPayload,
		"withdrawals",
		(*Withdrawal).MarshalSSZTo,
	)
	if err != nil {
		return err
	}

	if err := payload.ExecutionPayloadBellatrix.writeFields(writer); err != nil {
		return err
	}
	writer.putDynamic(withdrawals)
	return nil
}

func (payload *ExecutionPayloadCapella) readFixed(reader *sszReader) {
	payload.ExecutionPayloadBellatrix.readFixed(reader)
	reader.getOffset()
}

func (payload *ExecutionPayloadCapella) readDynamic(reader *sszReader) (err error) {
	if err = payload.ExecutionPayloadBellatrix.readDynamic(reader); err != nil {
		return err
	}
	payload.Withdrawals, err = unmarshalFixedList(
		reader.section(),
		withdrawalSize,
		maxWithdrawalsPerPayload,
		"withdrawals",
		(*Withdrawal).UnmarshalSSZ,
	)
	return err
}

func (payload *ExecutionPayloadCapella) dynamicSize() int {
	return payload.ExecutionPayloadBellatrix.dynamicSize() +
		withdrawalSize*len(payload.Withdrawals)
}

func (payload *ExecutionPayloadCapella) SizeSSZ() int {
	return capellaPayloadFixedSize + payload.dynamicSize()
}

func (payload *ExecutionPayloadCapella) MarshalSSZ() ([]byte, error) {
	return payload.MarshalSSZTo(make([]byte, 0, payload.SizeSSZ()))
}

func (payload *ExecutionPayloadCapella) MarshalSSZTo(dst []byte) ([]byte, error) {
	writer := newSSZWriter(capellaPayloadFixedSize)
	if err := payload.writeFields(writer); err != nil {
		return nil, err
	}
	return writer.finish(dst)
}

func (payload *ExecutionPayloadCapella) UnmarshalSSZ(buf []byte) error {
	reader, err := newSSZReader(buf, capellaPayloadFixedSize, true)
	if err != nil {
		return err
	}
	payload.readFixed(reader)
	if err := reader.split(); err != nil {
		return err
	}
	return payload.readDynamic(reader)
}

// ExecutionPayloadDeneb

func (payload *ExecutionPayloadDeneb) writeFields(writer *sszWriter) error {
	if err := payload.ExecutionPayloadCapella.writeFields(writer); err != nil {
		return err
	}
	writer.putUint64(uint64(payload.BlobGasUsed))
	writer.putUint64(uint64(payload.ExcessBlobGas))
	return nil
}

func (payload *ExecutionPayloadDeneb) readFixed(reader *sszReader) {
	payload.ExecutionPayloadCapella.readFixed(reader)
	payload.BlobGasUsed = QuotedUint64(reader.getUint64())
	payload.ExcessBlobGas = QuotedUint64(reader.getUint64())
}

func (payload *ExecutionPayloadDeneb) SizeSSZ() int {
	return denebPayloadFixedSize + payload.dynamicSize()
}

func (payload *ExecutionPayloadDeneb) MarshalSSZ() ([]byte, error) {
	return payload.MarshalSSZTo(make([]byte, 0, payload.SizeSSZ()))
}

func (payload *ExecutionPayloadDeneb) MarshalSSZTo(dst []byte) ([]byte, error) {
	writer := newSSZWriter(denebPayloadFixedSize)
	if err := payload.writeFields(writer); err != nil {
		return nil, err
	}
	return writer.finish(dst)
}

func (payload *ExecutionPayloadDeneb) UnmarshalSSZ(buf []byte) error {
	reader, err := newSSZReader(buf, denebPayloadFixedSize, true)
	if err != nil {
		return err
	}
	payload.readFixed(reader)
	if err := reader.split(); err != nil {
		return err
	}
	return payload.readDynamic(reader)
}

// ExecutionPayloadElectra

func (payload *ExecutionPayloadElectra) writeFields(writer *sszWriter) error {
	deposits, err := marshalFixedList(
		nil,
		payload.DepositRequests,
		maxDepositRequestsPerPayload,
		"deposit_requests",
		(*DepositRequest).MarshalSSZTo,
	)
	if err != nil {
		return err
	}
	withdrawals, err := marshalFixedList(
		nil,
		payload.WithdrawalRequests,
		maxWithdrawalRequests,
		"withdrawal_requests",
		(*WithdrawalRequest).MarshalSSZTo,
	)
	if err != nil {
		return err
	}
	consolidations, err := marshalFixedList(
		nil,
		payload.ConsolidationRequests,
		maxConsolidationRequests,
		"consolidation_requests",
		(*ConsolidationRequest).MarshalSSZTo,
	)
	if err != nil {
		return err
	}

	if err := payload.ExecutionPayloadDeneb.writeFields(writer); err != nil {
		return err
	}
	writer.putDynamic(deposits)
	writer.putDynamic(withdrawals)
	writer.putDynamic(consolidations)
	return nil
}

func (payload *ExecutionPayloadElectra) readFixed(reader *sszReader) {
	payload.ExecutionPayloadDeneb.readFixed(reader)
	reader.getOffset()
	reader.getOffset()
	reader.getOffset()
}

func (payload *ExecutionPayloadElectra) readDynamic(reader *sszReader) (err error) {
	if err = payload.ExecutionPayloadDeneb.readDynamic(reader); err != nil {
		return err
	}

	payload.DepositRequests, err = unmarshalFixedList(
		reader.section(),
		depositRequestSize,
		maxDepositRequestsPerPayload,
		"deposit_requests",
		(*DepositRequest).UnmarshalSSZ,
	)
	if err != nil {
		return err
	}
	payload.WithdrawalRequests, err = unmarshalFixedList(
		reader.section(),
		withdrawalRequestSize,
		maxWithdrawalRequests,
		"withdrawal_requests",
		(*WithdrawalRequest).UnmarshalSSZ,
	)
	if err != nil {
		return err
	}
	payload.ConsolidationRequests, err = unmarshalFixedList(
		reader.section(),
		consolidationRequestSize,
		maxConsolidationRequests,
		"consolidation_requests",
		(*ConsolidationRequest).UnmarshalSSZ,
	)
	return err
}

func (payload *ExecutionPayloadElectra) dynamicSize() int {
	return payload.ExecutionPayloadDeneb.dynamicSize() +
		depositRequestSize*len(payload.DepositRequests) +
		withdrawalRequestSize*len(payload.WithdrawalRequests) +
		consolidationRequestSize*len(payload.ConsolidationRequests)
}

func (payload *ExecutionPayloadElectra) SizeSSZ() int {
	return electraPayloadFixedSize + payload.dynamicSize()
}

func (payload *ExecutionPayloadElectra) MarshalSSZ() ([]byte, error) {
	return payload.MarshalSSZTo(make([]byte, 0, payload.SizeSSZ()))
}

func (payload *ExecutionPayloadElectra) MarshalSSZTo(dst []byte) ([]byte, error) {
	writer := newSSZWriter(electraPayloadFixedSize)
	if err := payload.writeFields(writer); err != nil {
		return nil, err
	}
	return writer.finish(dst)
}

func (payload *ExecutionPayloadElectra) UnmarshalSSZ(buf []byte) error {
	reader, err := newSSZReader(buf, electraPayloadFixedSize, true)
	if err != nil {
		return err
	}
	payload.readFixed(reader)
	if err := reader.split(); err != nil {
		return err
	}
	return payload.readDynamic(reader)
}
