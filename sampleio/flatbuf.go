package sampleio

import (
	"fmt"
	"math"
	"os"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/signalnine/wartime/gosim/sampleio/fbsample"
)

// Record is one variant's sample as stored in a sample set.
type Record struct {
	Variant    string
	WarDeposit int
	Reduction  bool
	Seed       uint64
	Flips      []int
}

// EncodeSampleSet serializes records into a FlatBuffers SampleSet.
func EncodeSampleSet(records []Record) ([]byte, error) {
	builder := flatbuffers.NewBuilder(1024)

	offsets := make([]flatbuffers.UOffsetT, len(records))
	for i, rec := range records {
		for _, flips := range rec.Flips {
			if flips < 0 || flips > math.MaxInt32 {
				return nil, fmt.Errorf("%w: variant %q: flip count %d out of range", ErrMalformedSample, rec.Variant, flips)
			}
		}

		name := builder.CreateString(rec.Variant)
		fbsample.SampleRecordStartFlipsVector(builder, len(rec.Flips))
		for j := len(rec.Flips) - 1; j >= 0; j-- {
			builder.PrependInt32(int32(rec.Flips[j]))
		}
		flips := builder.EndVector(len(rec.Flips))

		fbsample.SampleRecordStart(builder)
		fbsample.SampleRecordAddVariant(builder, name)
		fbsample.SampleRecordAddWarDeposit(builder, int32(rec.WarDeposit))
		fbsample.SampleRecordAddReduction(builder, rec.Reduction)
		fbsample.SampleRecordAddSeed(builder, rec.Seed)
		fbsample.SampleRecordAddFlips(builder, flips)
		offsets[i] = fbsample.SampleRecordEnd(builder)
	}

	fbsample.SampleSetStartRecordsVector(builder, len(offsets))
	for i := len(offsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(offsets[i])
	}
	vec := builder.EndVector(len(offsets))

	fbsample.SampleSetStart(builder)
	fbsample.SampleSetAddRecords(builder, vec)
	builder.Finish(fbsample.SampleSetEnd(builder))

	return builder.FinishedBytes(), nil
}

// DecodeSampleSet parses a buffer written by EncodeSampleSet.
func DecodeSampleSet(buf []byte) (records []Record, err error) {
	if len(buf) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("%w: sample set is %d bytes", ErrMalformedSample, len(buf))
	}
	// Out-of-range offsets in a corrupt buffer surface as index panics.
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("%w: corrupt sample set: %v", ErrMalformedSample, r)
		}
	}()

	// Every vector element takes at least four bytes, so no honest length
	// exceeds this.
	maxLen := len(buf) / flatbuffers.SizeUint32

	set := fbsample.GetRootAsSampleSet(buf, 0)
	if n := set.RecordsLength(); n > maxLen {
		return nil, fmt.Errorf("%w: %d records in a %d byte buffer", ErrMalformedSample, n, len(buf))
	}
	records = make([]Record, set.RecordsLength())
	rec := new(fbsample.SampleRecord)
	for i := range records {
		if !set.Records(rec, i) {
			return nil, fmt.Errorf("%w: missing record %d", ErrMalformedSample, i)
		}
		if n := rec.FlipsLength(); n > maxLen {
			return nil, fmt.Errorf("%w: record %d claims %d entries in a %d byte buffer", ErrMalformedSample, i, n, len(buf))
		}
		flips := make([]int, rec.FlipsLength())
		for j := range flips {
			flips[j] = int(rec.Flips(j))
			if flips[j] < 0 {
				return nil, fmt.Errorf("%w: record %d entry %d is negative", ErrMalformedSample, i, j)
			}
		}
		records[i] = Record{
			Variant:    string(rec.Variant()),
			WarDeposit: int(rec.WarDeposit()),
			Reduction:  rec.Reduction(),
			Seed:       rec.Seed(),
			Flips:      flips,
		}
	}
	return records, nil
}

// WriteSampleSetFile encodes records to path.
func WriteSampleSetFile(path string, records []Record) error {
	data, err := EncodeSampleSet(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write sample set: %w", err)
	}
	return nil
}

// ReadSampleSetFile decodes the sample set stored at path.
func ReadSampleSetFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample set: %w", err)
	}
	records, err := DecodeSampleSet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
