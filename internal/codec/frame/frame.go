// Package frame implements the two length-delimited binary messages that
// carry document content through a QR grid: DocumentPayload (the whole
// document) and QRContent (one QR symbol's share of it, wrapped around a
// QRMeta header). Both use tag-length-value wire encoding with varint
// lengths, modeled on the protobuf wire format but with no .proto file or
// generated code — field numbers and types are hand-assigned below and
// must stay in sync with the comments that document them.
package frame

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// DataType tags the payload kind carried by a DocumentPayload. Only
// UTF8String is defined; any other value on decode is a hard error.
type DataType uint64

const (
	UTF8String DataType = 0
)

const (
	qrMetaDocumentHash   protowire.Number = 1
	qrMetaSequenceNumber protowire.Number = 2
	qrMetaTotalQRCodes   protowire.Number = 3
	qrMetaNumECC         protowire.Number = 4

	qrContentMeta        protowire.Number = 1
	qrContentDocFragment protowire.Number = 2

	docPayloadContent  protowire.Number = 1
	docPayloadMetadata protowire.Number = 2
	docPayloadDataType protowire.Number = 3
)

// MaxVarintLen is the widest a protobuf varint can be (10 bytes covers a
// full 64-bit value including the continuation bits).
const MaxVarintLen = 10

// QRMeta is the per-QR header: which document it belongs to, where this
// chunk sits in the sequence, and how many total/parity chunks exist.
type QRMeta struct {
	DocumentHash   uint64
	SequenceNumber uint32
	TotalQRCodes   uint32
	NumECC         uint32
}

// Marshal appends the wire encoding of m to b and returns the result.
func (m QRMeta) Marshal(b []byte) []byte {
	b = protowire.AppendTag(b, qrMetaDocumentHash, protowire.VarintType)
	b = protowire.AppendVarint(b, m.DocumentHash)
	b = protowire.AppendTag(b, qrMetaSequenceNumber, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.SequenceNumber))
	b = protowire.AppendTag(b, qrMetaTotalQRCodes, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.TotalQRCodes))
	b = protowire.AppendTag(b, qrMetaNumECC, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.NumECC))
	return b
}

// UnmarshalQRMeta parses a QRMeta from b. Unknown fields are skipped.
func UnmarshalQRMeta(b []byte) (QRMeta, error) {
	var m QRMeta
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return QRMeta{}, fmt.Errorf("%w: QRMeta tag", ErrMalformed)
		}
		b = b[n:]

		if typ != protowire.VarintType {
			nn := protowire.ConsumeFieldValue(num, typ, b)
			if nn < 0 {
				return QRMeta{}, fmt.Errorf("%w: QRMeta field %d", ErrMalformed, num)
			}
			b = b[nn:]
			continue
		}

		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return QRMeta{}, fmt.Errorf("%w: QRMeta field %d", ErrMalformed, num)
		}
		b = b[n:]

		switch num {
		case qrMetaDocumentHash:
			m.DocumentHash = v
		case qrMetaSequenceNumber:
			m.SequenceNumber = uint32(v)
		case qrMetaTotalQRCodes:
			m.TotalQRCodes = uint32(v)
		case qrMetaNumECC:
			m.NumECC = uint32(v)
		default:
			// unknown varint field, already consumed above
		}
	}
	return m, nil
}

// MaxQRMetaBytes is the size in bytes of a QRMeta with every field at its
// maximum value — the reservation the chunker must budget for before any
// actual document_hash/sequence_number/total_qr_codes/num_ecc is known.
func MaxQRMetaBytes() int {
	max := QRMeta{
		DocumentHash:   ^uint64(0),
		SequenceNumber: ^uint32(0),
		TotalQRCodes:   ^uint32(0),
		NumECC:         ^uint32(0),
	}
	return len(max.Marshal(nil))
}

// ProtobufReservedLen is the maximum per-QR frame overhead: a full-size
// QRMeta submessage plus four field headers (tag+length varints), one per
// QRContent/QRMeta/DocumentPayload-adjacent length-delimited field this
// chunk's framing can introduce.
func ProtobufReservedLen() int {
	return MaxQRMetaBytes() + 4*MaxVarintLen
}

// QRContent is the frame placed inside a single QR symbol.
type QRContent struct {
	Meta        QRMeta
	DocFragment []byte
}

// Marshal appends the wire encoding of c to b and returns the result.
func (c QRContent) Marshal(b []byte) []byte {
	metaBytes := c.Meta.Marshal(nil)
	b = protowire.AppendTag(b, qrContentMeta, protowire.BytesType)
	b = protowire.AppendBytes(b, metaBytes)
	b = protowire.AppendTag(b, qrContentDocFragment, protowire.BytesType)
	b = protowire.AppendBytes(b, c.DocFragment)
	return b
}

// UnmarshalQRContent parses a QRContent from b.
func UnmarshalQRContent(b []byte) (QRContent, error) {
	var c QRContent
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return QRContent{}, fmt.Errorf("%w: QRContent tag", ErrMalformed)
		}
		b = b[n:]

		if typ != protowire.BytesType {
			nn := protowire.ConsumeFieldValue(num, typ, b)
			if nn < 0 {
				return QRContent{}, fmt.Errorf("%w: QRContent field %d", ErrMalformed, num)
			}
			b = b[nn:]
			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return QRContent{}, fmt.Errorf("%w: QRContent field %d", ErrTruncated, num)
		}
		b = b[n:]

		switch num {
		case qrContentMeta:
			meta, err := UnmarshalQRMeta(v)
			if err != nil {
				return QRContent{}, err
			}
			c.Meta = meta
		case qrContentDocFragment:
			c.DocFragment = append([]byte(nil), v...)
		}
	}
	return c, nil
}

// DocumentPayload is the logical record: the document's text content, an
// optional JSON metadata blob, and a reserved data-type tag.
type DocumentPayload struct {
	Content  string
	Metadata []byte // UTF-8 JSON; nil means absent
	DataType DataType
}

// Marshal appends the wire encoding of p to b and returns the result.
func (p DocumentPayload) Marshal(b []byte) []byte {
	b = protowire.AppendTag(b, docPayloadContent, protowire.BytesType)
	b = protowire.AppendString(b, p.Content)
	if p.Metadata != nil {
		b = protowire.AppendTag(b, docPayloadMetadata, protowire.BytesType)
		b = protowire.AppendBytes(b, p.Metadata)
	}
	b = protowire.AppendTag(b, docPayloadDataType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.DataType))
	return b
}

// UnmarshalDocumentPayload parses a DocumentPayload from b. Returns
// ErrUnknownDataType if data_type is not a defined DataType value.
func UnmarshalDocumentPayload(b []byte) (DocumentPayload, error) {
	var p DocumentPayload
	haveMetadata := false
	haveDataType := false

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return DocumentPayload{}, fmt.Errorf("%w: DocumentPayload tag", ErrMalformed)
		}
		b = b[n:]

		switch {
		case num == docPayloadContent && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return DocumentPayload{}, fmt.Errorf("%w: content", ErrTruncated)
			}
			b = b[n:]
			p.Content = string(v)
		case num == docPayloadMetadata && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return DocumentPayload{}, fmt.Errorf("%w: metadata", ErrTruncated)
			}
			b = b[n:]
			p.Metadata = append([]byte(nil), v...)
			haveMetadata = true
		case num == docPayloadDataType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return DocumentPayload{}, fmt.Errorf("%w: data_type", ErrMalformed)
			}
			b = b[n:]
			p.DataType = DataType(v)
			haveDataType = true
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return DocumentPayload{}, fmt.Errorf("%w: field %d", ErrMalformed, num)
			}
			b = b[n:]
		}
	}

	if haveDataType && p.DataType != UTF8String {
		return DocumentPayload{}, fmt.Errorf("%w: %d", ErrUnknownDataType, p.DataType)
	}
	_ = haveMetadata
	return p, nil
}
