// Package scratch formats short per-frame strings (overlay lines, stats)
// into one reusable buffer.
package scratch

import (
	"strconv"
	"time"
	"unsafe"
)

// Arena is single-threaded. Strings it returns alias its buffer and are
// valid until the next Reset; growth moves later writes to a new array and
// leaves earlier strings intact.
type Arena struct {
	buf []byte
}

func New(capacity int) *Arena {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Arena{buf: make([]byte, 0, capacity)}
}

// Reset clears the buffer without freeing memory. Call once per frame.
func (a *Arena) Reset() { a.buf = a.buf[:0] }

func (a *Arena) Len() int { return len(a.buf) }
func (a *Arena) Cap() int { return cap(a.buf) }

func (a *Arena) view(mark int) string {
	b := a.buf[mark:]
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// Sprintf supports %s %d %f (with .prec, default 3), %v for durations and %%.
// Unknown verbs are written literally.
func (a *Arena) Sprintf(format string, args ...any) string {
	mark := len(a.buf)
	ai := 0
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' {
			a.buf = append(a.buf, ch)
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			a.buf = append(a.buf, '%')
			i++
			continue
		}
		i++
		prec := -1
		if i < len(format) && format[i] == '.' {
			i++
			start := i
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
			prec, _ = strconv.Atoi(format[start:i])
		}
		if i >= len(format) || ai >= len(args) {
			break
		}
		arg := args[ai]
		ai++
		switch format[i] {
		case 's':
			a.appendString(arg)
		case 'd':
			a.appendInt(arg)
		case 'f':
			if prec < 0 {
				prec = 3
			}
			a.buf = strconv.AppendFloat(a.buf, toFloat64(arg), 'f', prec, 64)
		case 'v':
			if d, ok := arg.(time.Duration); ok {
				a.buf = append(a.buf, d.String()...)
			} else {
				a.appendString(arg)
			}
		default:
			a.buf = append(a.buf, '%', format[i])
		}
	}
	return a.view(mark)
}

func (a *Arena) appendString(v any) {
	switch x := v.(type) {
	case string:
		a.buf = append(a.buf, x...)
	case []byte:
		a.buf = append(a.buf, x...)
	default:
		a.buf = append(a.buf, "<?>"...)
	}
}

func (a *Arena) appendInt(v any) {
	switch x := v.(type) {
	case int:
		a.buf = strconv.AppendInt(a.buf, int64(x), 10)
	case int32:
		a.buf = strconv.AppendInt(a.buf, int64(x), 10)
	case int64:
		a.buf = strconv.AppendInt(a.buf, x, 10)
	case uint:
		a.buf = strconv.AppendUint(a.buf, uint64(x), 10)
	case uint32:
		a.buf = strconv.AppendUint(a.buf, uint64(x), 10)
	case uint64:
		a.buf = strconv.AppendUint(a.buf, x, 10)
	default:
		a.buf = append(a.buf, "<?>"...)
	}
}

func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	case int:
		return float64(x)
	}
	return 0
}
