package intern

// Builtin shape tags. Every Table is seeded with builtinShapes in this exact
// order, so these values are the same in every build.
const (
	TagU8 Tag = iota + 1
	TagU16
	TagU32
	TagU64
	TagI8
	TagI16
	TagI32
	TagI64
	TagIsize
	TagUsize
	TagF32
	TagF64
	TagBool
	TagChar
	TagStr
	TagIStr
	TagBytes
	TagOption
	TagResult
	TagUnit
	TagPhantom
	TagSlice
	TagArray
	TagDuration
	TagTuple1
	TagTuple2
	TagTuple3
	TagTuple4
	TagTuple5
	TagTuple6
	TagTuple7
	TagTuple8

	// TagDyn precedes a value whose static type is an interface. The value
	// itself always follows with its own tag.
	TagDyn

	firstUserTag
)

// MaxTupleArity is the largest tuple shape with a builtin tag.
const MaxTupleArity = 8

var builtinShapes = [...]string{
	TagU8 - 1:       "{=u8}",
	TagU16 - 1:      "{=u16}",
	TagU32 - 1:      "{=u32}",
	TagU64 - 1:      "{=u64}",
	TagI8 - 1:       "{=i8}",
	TagI16 - 1:      "{=i16}",
	TagI32 - 1:      "{=i32}",
	TagI64 - 1:      "{=i64}",
	TagIsize - 1:    "{=isize}",
	TagUsize - 1:    "{=usize}",
	TagF32 - 1:      "{=f32}",
	TagF64 - 1:      "{=f64}",
	TagBool - 1:     "{=bool}",
	TagChar - 1:     "{=char}",
	TagStr - 1:      "{=str}",
	TagIStr - 1:     "{=istr}",
	TagBytes - 1:    "{=[u8]}",
	TagOption - 1:   "None|Some({=?})",
	TagResult - 1:   "Err({=?})|Ok({=?})",
	TagUnit - 1:     "()",
	TagPhantom - 1:  "PhantomData",
	TagSlice - 1:    "{=[?]}",
	TagArray - 1:    "{=[?;0]}",
	TagDuration - 1: "Duration {{ secs: {=u64}, nanos: {=u32} }}",
	TagTuple1 - 1:   "({=?})",
	TagTuple2 - 1:   "({=?}, {=?})",
	TagTuple3 - 1:   "({=?}, {=?}, {=?})",
	TagTuple4 - 1:   "({=?}, {=?}, {=?}, {=?})",
	TagTuple5 - 1:   "({=?}, {=?}, {=?}, {=?}, {=?})",
	TagTuple6 - 1:   "({=?}, {=?}, {=?}, {=?}, {=?}, {=?})",
	TagTuple7 - 1:   "({=?}, {=?}, {=?}, {=?}, {=?}, {=?}, {=?})",
	TagTuple8 - 1:   "({=?}, {=?}, {=?}, {=?}, {=?}, {=?}, {=?}, {=?})",
	TagDyn - 1:      "{=?}",
}

// TupleTag returns the builtin tag of a tuple with n elements, or 0 when n is
// outside 1..MaxTupleArity.
func TupleTag(n int) Tag {
	if n < 1 || n > MaxTupleArity {
		return 0
	}

	return TagTuple1 + Tag(n-1)
}

// TupleArity is the inverse of TupleTag.
func TupleArity(t Tag) int {
	if t < TagTuple1 || t > TagTuple8 {
		return 0
	}

	return int(t-TagTuple1) + 1
}

// IsBuiltin reports whether t is one of the seeded shape tags.
func IsBuiltin(t Tag) bool {
	return t > 0 && t < firstUserTag
}
