package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the on-disk metadata side table. Field order is part
// of the artifact format and must not change between releases.

var (
	// IDMUS serializes chunk IDs.
	IDMUS = idMUS{}
	// ChunkRecordMUS serializes full chunk records, embedding vector included.
	ChunkRecordMUS = chunkRecordMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

// timeMUS encodes an instant as a presence flag plus Unix microseconds, so
// the zero time (absent date) survives a round trip exactly.
type timeMUS struct{}

func (timeMUS) Marshal(v time.Time, bs []byte) (n int) {
	n = ord.Bool.Marshal(!v.IsZero(), bs)
	if !v.IsZero() {
		n += varint.Int64.Marshal(v.UnixMicro(), bs[n:])
	}
	return n
}

func (timeMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return time.Time{}, n, err
	}
	micros, n1, err := varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func (timeMUS) Size(v time.Time) (size int) {
	size = ord.Bool.Size(!v.IsZero())
	if !v.IsZero() {
		size += varint.Int64.Size(v.UnixMicro())
	}
	return size
}

var timeSer = timeMUS{}

type chunkRecordMUS struct{}

func (chunkRecordMUS) Marshal(v ChunkRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Folder, bs[n:])
	n += varint.Int.Marshal(len(v.Tags), bs[n:])
	for _, tag := range v.Tags {
		n += ord.String.Marshal(tag, bs[n:])
	}
	n += timeSer.Marshal(v.MeetingDate, bs[n:])
	n += timeSer.Marshal(v.ValidFrom, bs[n:])
	n += timeSer.Marshal(v.ValidTo, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Filename, bs[n:])
	n += ord.String.Marshal(v.TextPreview, bs[n:])
	n += varint.Int.Marshal(len(v.Vector), bs[n:])
	for _, f := range v.Vector {
		n += varint.Float32.Marshal(f, bs[n:])
	}
	n += timeSer.Marshal(v.InsertedAt, bs[n:])
	n += timeSer.Marshal(v.UpdatedAt, bs[n:])
	return n
}

func (chunkRecordMUS) Unmarshal(bs []byte) (v ChunkRecord, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.Folder, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	tagCount, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	if tagCount < 0 {
		return v, n, ErrCorruptRecord
	}
	if tagCount > 0 {
		v.Tags = make([]string, tagCount)
		for i := range v.Tags {
			v.Tags[i], n1, err = ord.String.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return v, n, err
			}
		}
	}
	v.MeetingDate, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.ValidFrom, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.ValidTo, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Filename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.TextPreview, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	vecLen, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	if vecLen < 0 {
		return v, n, ErrCorruptRecord
	}
	if vecLen > 0 {
		v.Vector = make([]float32, vecLen)
		for i := range v.Vector {
			v.Vector[i], n1, err = varint.Float32.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return v, n, err
			}
		}
	}
	v.InsertedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.UpdatedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (chunkRecordMUS) Size(v ChunkRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Folder)
	size += varint.Int.Size(len(v.Tags))
	for _, tag := range v.Tags {
		size += ord.String.Size(tag)
	}
	size += timeSer.Size(v.MeetingDate)
	size += timeSer.Size(v.ValidFrom)
	size += timeSer.Size(v.ValidTo)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Filename)
	size += ord.String.Size(v.TextPreview)
	size += varint.Int.Size(len(v.Vector))
	for _, f := range v.Vector {
		size += varint.Float32.Size(f)
	}
	size += timeSer.Size(v.InsertedAt)
	size += timeSer.Size(v.UpdatedAt)
	return size
}
