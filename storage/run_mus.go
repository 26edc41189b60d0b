package storage

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/userflow/core"
)

// RunMUS is the mus serializer for core.Run.
// Times are stored as Unix microseconds; zero times are stored as 0.
var RunMUS = runMUS{}

var _ mus.Serializer[core.Run] = RunMUS

type runMUS struct{}

func (s runMUS) Marshal(v core.Run, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += varint.Int64.Marshal(int64(v.Status), bs[n:])
	n += varint.Int64.Marshal(timeToMicro(v.StartedAt), bs[n:])
	n += varint.Int64.Marshal(timeToMicro(v.FinishedAt), bs[n:])
	n += ord.String.Marshal(v.SourceURL, bs[n:])
	n += ord.String.Marshal(v.Model, bs[n:])
	n += varint.Int64.Marshal(int64(v.Rows), bs[n:])
	n += ord.String.Marshal(v.OutputPath, bs[n:])
	n += ord.String.Marshal(v.Checksum, bs[n:])
	return n + ord.String.Marshal(v.Error, bs[n:])
}

func (s runMUS) Unmarshal(bs []byte) (v core.Run, n int, err error) {
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var (
		n1  int
		num int64
	)
	num, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status = core.RunStatus(num)
	num, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartedAt = microToTime(num)
	num, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FinishedAt = microToTime(num)
	v.SourceURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Model, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	num, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Rows = int(num)
	v.OutputPath, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Checksum, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Error, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s runMUS) Size(v core.Run) (size int) {
	size = ord.String.Size(v.ID)
	size += varint.Int64.Size(int64(v.Status))
	size += varint.Int64.Size(timeToMicro(v.StartedAt))
	size += varint.Int64.Size(timeToMicro(v.FinishedAt))
	size += ord.String.Size(v.SourceURL)
	size += ord.String.Size(v.Model)
	size += varint.Int64.Size(int64(v.Rows))
	size += ord.String.Size(v.OutputPath)
	size += ord.String.Size(v.Checksum)
	return size + ord.String.Size(v.Error)
}

func (s runMUS) Skip(bs []byte) (n int, err error) {
	skips := []func([]byte) (int, error){
		ord.String.Skip,
		varint.Int64.Skip,
		varint.Int64.Skip,
		varint.Int64.Skip,
		ord.String.Skip,
		ord.String.Skip,
		varint.Int64.Skip,
		ord.String.Skip,
		ord.String.Skip,
		ord.String.Skip,
	}
	var n1 int
	for _, skip := range skips {
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func timeToMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func microToTime(us int64) time.Time {
	if us == 0 {
		return time.Time{}
	}
	return time.UnixMicro(us).UTC()
}
