package frame

import (
	"bytes"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestQRMetaRoundTrip(t *testing.T) {
	m := QRMeta{DocumentHash: 0xdeadbeefcafebabe, SequenceNumber: 7, TotalQRCodes: 42, NumECC: 9}
	got, err := UnmarshalQRMeta(m.Marshal(nil))
	if err != nil {
		t.Fatalf("UnmarshalQRMeta: %v", err)
	}
	if got != m {
		t.Errorf("got %+v, want %+v", got, m)
	}
}

func TestQRContentRoundTrip(t *testing.T) {
	c := QRContent{
		Meta:        QRMeta{DocumentHash: 1, SequenceNumber: 0, TotalQRCodes: 1, NumECC: 0},
		DocFragment: []byte("hello world"),
	}
	got, err := UnmarshalQRContent(c.Marshal(nil))
	if err != nil {
		t.Fatalf("UnmarshalQRContent: %v", err)
	}
	if got.Meta != c.Meta || !bytes.Equal(got.DocFragment, c.DocFragment) {
		t.Errorf("got %+v, want %+v", got, c)
	}
}

func TestDocumentPayloadRoundTrip(t *testing.T) {
	tests := []DocumentPayload{
		{Content: "hello", Metadata: []byte(`{"a":1}`), DataType: UTF8String},
		{Content: "", Metadata: nil, DataType: UTF8String},
		{Content: "日本語", DataType: UTF8String},
	}
	for _, p := range tests {
		got, err := UnmarshalDocumentPayload(p.Marshal(nil))
		if err != nil {
			t.Fatalf("UnmarshalDocumentPayload(%q): %v", p.Content, err)
		}
		if got.Content != p.Content || got.DataType != p.DataType {
			t.Errorf("got %+v, want %+v", got, p)
		}
		if p.Metadata == nil && got.Metadata != nil {
			t.Errorf("expected nil metadata, got %q", got.Metadata)
		}
		if p.Metadata != nil && !bytes.Equal(got.Metadata, p.Metadata) {
			t.Errorf("metadata = %q, want %q", got.Metadata, p.Metadata)
		}
	}
}

func TestUnknownDataTypeRejected(t *testing.T) {
	p := DocumentPayload{Content: "x", DataType: DataType(5)}
	_, err := UnmarshalDocumentPayload(p.Marshal(nil))
	if err == nil {
		t.Fatal("expected ErrUnknownDataType")
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("ignore me"))
	p := DocumentPayload{Content: "kept", DataType: UTF8String}
	b = p.Marshal(b)

	got, err := UnmarshalDocumentPayload(b)
	if err != nil {
		t.Fatalf("UnmarshalDocumentPayload: %v", err)
	}
	if got.Content != "kept" {
		t.Errorf("Content = %q, want %q", got.Content, "kept")
	}
}

func TestMaxQRMetaBytesIsMaximal(t *testing.T) {
	max := MaxQRMetaBytes()
	cases := []QRMeta{
		{},
		{DocumentHash: 1, SequenceNumber: 1, TotalQRCodes: 1, NumECC: 1},
		{DocumentHash: ^uint64(0) - 1, SequenceNumber: 1 << 20, TotalQRCodes: 1 << 20, NumECC: 1 << 20},
	}
	for _, c := range cases {
		if n := len(c.Marshal(nil)); n > max {
			t.Errorf("QRMeta %+v marshaled to %d bytes, exceeds MaxQRMetaBytes() = %d", c, n, max)
		}
	}
}

func TestProtobufReservedLenCoversFramingOverhead(t *testing.T) {
	reserved := ProtobufReservedLen()
	meta := QRMeta{DocumentHash: ^uint64(0), SequenceNumber: ^uint32(0), TotalQRCodes: ^uint32(0), NumECC: ^uint32(0)}
	frag := make([]byte, 1000)
	content := QRContent{Meta: meta, DocFragment: frag}
	overhead := len(content.Marshal(nil)) - len(frag)
	if overhead > reserved {
		t.Errorf("actual framing overhead %d exceeds reserved %d", overhead, reserved)
	}
}
