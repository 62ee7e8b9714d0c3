// Package fbsample holds the FlatBuffers accessors for sample.fbs.
package fbsample

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// SampleRecord is one variant's flips plus the rules that produced them.
type SampleRecord struct {
	_tab flatbuffers.Table
}

func (rcv *SampleRecord) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *SampleRecord) Variant() []byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos)
	}
	return nil
}

func (rcv *SampleRecord) WarDeposit() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *SampleRecord) Reduction() bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		return rcv._tab.GetBool(o + rcv._tab.Pos)
	}
	return false
}

func (rcv *SampleRecord) Seed() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(10))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *SampleRecord) Flips(j int) int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(12))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetInt32(a + flatbuffers.UOffsetT(j*4))
	}
	return 0
}

func (rcv *SampleRecord) FlipsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(12))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func SampleRecordStart(builder *flatbuffers.Builder) {
	builder.StartObject(5)
}

func SampleRecordAddVariant(builder *flatbuffers.Builder, variant flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, variant, 0)
}

func SampleRecordAddWarDeposit(builder *flatbuffers.Builder, warDeposit int32) {
	builder.PrependInt32Slot(1, warDeposit, 0)
}

func SampleRecordAddReduction(builder *flatbuffers.Builder, reduction bool) {
	builder.PrependBoolSlot(2, reduction, false)
}

func SampleRecordAddSeed(builder *flatbuffers.Builder, seed uint64) {
	builder.PrependUint64Slot(3, seed, 0)
}

func SampleRecordAddFlips(builder *flatbuffers.Builder, flips flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(4, flips, 0)
}

func SampleRecordStartFlipsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func SampleRecordEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

// SampleSet is the root table of a sample file.
type SampleSet struct {
	_tab flatbuffers.Table
}

func GetRootAsSampleSet(buf []byte, offset flatbuffers.UOffsetT) *SampleSet {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &SampleSet{}
	x.Init(buf, n+offset)
	return x
}

func (rcv *SampleSet) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *SampleSet) Records(obj *SampleRecord, j int) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		x := rcv._tab.Vector(o)
		x += flatbuffers.UOffsetT(j) * 4
		x = rcv._tab.Indirect(x)
		obj.Init(rcv._tab.Bytes, x)
		return true
	}
	return false
}

func (rcv *SampleSet) RecordsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func SampleSetStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func SampleSetAddRecords(builder *flatbuffers.Builder, records flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, records, 0)
}

func SampleSetStartRecordsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func SampleSetEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}
