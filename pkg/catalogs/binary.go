package catalogs

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/agentstation/coursemap/pkg/errors"
)

// Width is the byte width of length and count prefixes in the binary format.
type Width int

const (
	// Width32 reads and writes files produced by 32-bit hosts.
	Width32 Width = 4
	// Width64 matches files produced by 64-bit hosts. It is the default.
	Width64 Width = 8
)

// Valid reports whether w is a supported width.
func (w Width) Valid() bool {
	return w == Width32 || w == Width64
}

func (w Width) String() string {
	return fmt.Sprintf("%d-byte", int(w))
}

// ParseWidth converts a byte count into a Width.
func ParseWidth(n int) (Width, error) {
	w := Width(n)
	if !w.Valid() {
		return 0, errors.NewValidationError("length_width", n, "must be 4 or 8")
	}
	return w, nil
}

// Codec converts a department mapping to and from the catalog binary format.
//
// The layout has no header. All integers are little-endian. Strings are a
// length prefix of Width bytes followed by the raw bytes.
//
//	file       = count:W { key:str department }
//	department = code:str chair:str majors:i32 count:W { key:str course }
//	course     = capacity:i32 enrolled:i32 location:str instructor:str time:str
type Codec struct {
	Width Width
}

// Encode serializes departments in ascending key order so equal catalogs
// produce identical bytes.
func (c Codec) Encode(departments map[string]*Department) ([]byte, error) {
	if !c.Width.Valid() {
		return nil, errors.NewValidationError("width", int(c.Width), "must be 4 or 8")
	}
	e := &encoder{width: c.Width}

	keys := sortedKeys(departments)
	e.size(len(keys))
	for _, key := range keys {
		d := departments[key]
		if d == nil {
			return nil, errors.NewValidationError("department", key, "nil department")
		}
		e.str(key)
		e.str(d.code)
		e.str(d.chair)
		e.int32("majors", d.majors)

		codes := d.CourseCodes()
		e.size(len(codes))
		for _, code := range codes {
			course := d.courses[code]
			e.str(code)
			e.int32("capacity", course.capacity)
			e.int32("enrolled", course.enrolled)
			e.str(course.location)
			e.str(course.instructor)
			e.str(course.timeSlot)
		}
		if e.err != nil {
			return nil, e.err
		}
	}
	return e.buf, e.err
}

// Decode parses data produced by Encode with the same Width. Malformed input
// yields a *errors.ParseError wrapping errors.ErrCorrupt.
func (c Codec) Decode(data []byte) (map[string]*Department, error) {
	if !c.Width.Valid() {
		return nil, errors.NewValidationError("width", int(c.Width), "must be 4 or 8")
	}
	d := &decoder{data: data, width: c.Width}
	w := int(c.Width)

	count := d.count(4*w + 4)
	departments := make(map[string]*Department, count)
	for i := 0; i < count && d.err == nil; i++ {
		key := d.str()
		dept := &Department{
			code:  d.str(),
			chair: d.str(),
		}
		dept.majors = d.int32()

		n := d.count(4*w + 8)
		dept.courses = make(map[string]*Course, n)
		for j := 0; j < n && d.err == nil; j++ {
			code := d.str()
			course := &Course{}
			course.capacity = d.int32()
			course.enrolled = d.int32()
			course.location = d.str()
			course.instructor = d.str()
			course.timeSlot = d.str()
			if d.err != nil {
				break
			}
			if _, dup := dept.courses[code]; dup {
				d.fail(fmt.Sprintf("duplicate course %q in department %q", code, key))
				break
			}
			dept.courses[code] = course
		}
		if d.err != nil {
			break
		}
		if _, dup := departments[key]; dup {
			d.fail(fmt.Sprintf("duplicate department %q", key))
			break
		}
		departments[key] = dept
	}
	if d.err == nil && d.off != len(d.data) {
		d.fail(fmt.Sprintf("%d trailing bytes", len(d.data)-d.off))
	}
	if d.err != nil {
		return nil, d.err
	}
	return departments, nil
}

type encoder struct {
	buf   []byte
	width Width
	err   error
}

func (e *encoder) size(n int) {
	if e.err != nil {
		return
	}
	if e.width == Width32 {
		if uint64(n) > math.MaxUint32 {
			e.err = errors.NewValidationError("length", n, "exceeds 4-byte prefix")
			return
		}
		e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(n))
		return
	}
	e.buf = binary.LittleEndian.AppendUint64(e.buf, uint64(n))
}

func (e *encoder) str(s string) {
	e.size(len(s))
	if e.err == nil {
		e.buf = append(e.buf, s...)
	}
}

func (e *encoder) int32(field string, v int) {
	if e.err != nil {
		return
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		e.err = errors.NewValidationError(field, v, "does not fit in 32 bits")
		return
	}
	e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(int32(v)))
}

type decoder struct {
	data  []byte
	off   int
	width Width
	err   error
}

func (d *decoder) remaining() int {
	return len(d.data) - d.off
}

func (d *decoder) fail(msg string) {
	if d.err != nil {
		return
	}
	d.err = &errors.ParseError{
		Format:  "binary",
		Offset:  int64(d.off),
		Message: msg,
		Err:     errors.ErrCorrupt,
	}
}

func (d *decoder) size() uint64 {
	if d.err != nil {
		return 0
	}
	w := int(d.width)
	if d.remaining() < w {
		d.fail("truncated length prefix")
		return 0
	}
	var n uint64
	if d.width == Width32 {
		n = uint64(binary.LittleEndian.Uint32(d.data[d.off:]))
	} else {
		n = binary.LittleEndian.Uint64(d.data[d.off:])
	}
	d.off += w
	return n
}

// count reads an element count and rejects counts that could not fit in the
// remaining input given the smallest possible element size.
func (d *decoder) count(minElem int) int {
	n := d.size()
	if d.err != nil {
		return 0
	}
	if n > uint64(d.remaining()/minElem) {
		d.fail(fmt.Sprintf("count %d exceeds remaining input", n))
		return 0
	}
	return int(n)
}

func (d *decoder) str() string {
	n := d.size()
	if d.err != nil {
		return ""
	}
	if n > uint64(d.remaining()) {
		d.fail(fmt.Sprintf("string length %d exceeds remaining input", n))
		return ""
	}
	s := string(d.data[d.off : d.off+int(n)])
	d.off += int(n)
	return s
}

func (d *decoder) int32() int {
	if d.err != nil {
		return 0
	}
	if d.remaining() < 4 {
		d.fail("truncated integer")
		return 0
	}
	v := int32(binary.LittleEndian.Uint32(d.data[d.off:]))
	d.off += 4
	return int(v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
