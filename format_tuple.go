package deflog

import "github.com/webbmaffian/go-deflog/intern"

// Tuples are fixed-arity heterogeneous sequences. The tuple tag only names the
// arity; each element decides on its own tag from the ambient state.

type Tuple1[T0 Format] struct {
	V0 T0
}

func Tup1[T0 Format](v0 T0) Tuple1[T0] {
	return Tuple1[T0]{v0}
}

func (t Tuple1[T0]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagTuple1)
	encode(f, t.V0)
}

type Tuple2[T0, T1 Format] struct {
	V0 T0
	V1 T1
}

func Tup2[T0, T1 Format](v0 T0, v1 T1) Tuple2[T0, T1] {
	return Tuple2[T0, T1]{v0, v1}
}

func (t Tuple2[T0, T1]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagTuple2)
	encode(f, t.V0)
	encode(f, t.V1)
}

type Tuple3[T0, T1, T2 Format] struct {
	V0 T0
	V1 T1
	V2 T2
}

func Tup3[T0, T1, T2 Format](v0 T0, v1 T1, v2 T2) Tuple3[T0, T1, T2] {
	return Tuple3[T0, T1, T2]{v0, v1, v2}
}

func (t Tuple3[T0, T1, T2]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagTuple3)
	encode(f, t.V0)
	encode(f, t.V1)
	encode(f, t.V2)
}

type Tuple4[T0, T1, T2, T3 Format] struct {
	V0 T0
	V1 T1
	V2 T2
	V3 T3
}

func Tup4[T0, T1, T2, T3 Format](v0 T0, v1 T1, v2 T2, v3 T3) Tuple4[T0, T1, T2, T3] {
	return Tuple4[T0, T1, T2, T3]{v0, v1, v2, v3}
}

func (t Tuple4[T0, T1, T2, T3]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagTuple4)
	encode(f, t.V0)
	encode(f, t.V1)
	encode(f, t.V2)
	encode(f, t.V3)
}

type Tuple5[T0, T1, T2, T3, T4 Format] struct {
	V0 T0
	V1 T1
	V2 T2
	V3 T3
	V4 T4
}

func Tup5[T0, T1, T2, T3, T4 Format](v0 T0, v1 T1, v2 T2, v3 T3, v4 T4) Tuple5[T0, T1, T2, T3, T4] {
	return Tuple5[T0, T1, T2, T3, T4]{v0, v1, v2, v3, v4}
}

func (t Tuple5[T0, T1, T2, T3, T4]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagTuple5)
	encode(f, t.V0)
	encode(f, t.V1)
	encode(f, t.V2)
	encode(f, t.V3)
	encode(f, t.V4)
}

type Tuple6[T0, T1, T2, T3, T4, T5 Format] struct {
	V0 T0
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
}

func Tup6[T0, T1, T2, T3, T4, T5 Format](v0 T0, v1 T1, v2 T2, v3 T3, v4 T4, v5 T5) Tuple6[T0, T1, T2, T3, T4, T5] {
	return Tuple6[T0, T1, T2, T3, T4, T5]{v0, v1, v2, v3, v4, v5}
}

func (t Tuple6[T0, T1, T2, T3, T4, T5]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagTuple6)
	encode(f, t.V0)
	encode(f, t.V1)
	encode(f, t.V2)
	encode(f, t.V3)
	encode(f, t.V4)
	encode(f, t.V5)
}

type Tuple7[T0, T1, T2, T3, T4, T5, T6 Format] struct {
	V0 T0
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
}

func Tup7[T0, T1, T2, T3, T4, T5, T6 Format](v0 T0, v1 T1, v2 T2, v3 T3, v4 T4, v5 T5, v6 T6) Tuple7[T0, T1, T2, T3, T4, T5, T6] {
	return Tuple7[T0, T1, T2, T3, T4, T5, T6]{v0, v1, v2, v3, v4, v5, v6}
}

func (t Tuple7[T0, T1, T2, T3, T4, T5, T6]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagTuple7)
	encode(f, t.V0)
	encode(f, t.V1)
	encode(f, t.V2)
	encode(f, t.V3)
	encode(f, t.V4)
	encode(f, t.V5)
	encode(f, t.V6)
}

type Tuple8[T0, T1, T2, T3, T4, T5, T6, T7 Format] struct {
	V0 T0
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
	V7 T7
}

func Tup8[T0, T1, T2, T3, T4, T5, T6, T7 Format](v0 T0, v1 T1, v2 T2, v3 T3, v4 T4, v5 T5, v6 T6, v7 T7) Tuple8[T0, T1, T2, T3, T4, T5, T6, T7] {
	return Tuple8[T0, T1, T2, T3, T4, T5, T6, T7]{v0, v1, v2, v3, v4, v5, v6, v7}
}

func (t Tuple8[T0, T1, T2, T3, T4, T5, T6, T7]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagTuple8)
	encode(f, t.V0)
	encode(f, t.V1)
	encode(f, t.V2)
	encode(f, t.V3)
	encode(f, t.V4)
	encode(f, t.V5)
	encode(f, t.V6)
	encode(f, t.V7)
}
